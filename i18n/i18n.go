package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when a Localizer is created without
// WithDefaultLanguage.
const DefaultLanguage = "en"

// Keys used by the parked responder.
const (
	KeyDefault                = "default"
	KeyCallbackQueryAlertText = "callback_query_alert_text"
	KeyInlineQueryAlertText   = "inline_query_alert_text"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Sentinel errors
var (
	ErrNoLocales       = errors.New("parkbot/i18n: no locale files found")
	ErrDefaultLanguage = errors.New("parkbot/i18n: default language has no locale file")
)

// Translator looks up localized text. Implemented by *Localizer.
type Translator interface {
	T(lang, key string) string
}

// Localizer maps a language code and message key to translated text.
// It is immutable after construction and safe for concurrent use.
type Localizer struct {
	defaultLang string
	catalogs    map[string]map[string]string
	langs       []string
}

var _ Translator = (*Localizer)(nil)

// Option configures a Localizer.
type Option func(*Localizer)

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(l *Localizer) {
		l.defaultLang = normalize(lang)
	}
}

// New loads the locales bundled with the binary.
func New(opts ...Option) (*Localizer, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return Load(sub, opts...)
}

// Load reads every *.yaml / *.yml file at the root of fsys. The file name
// without extension is the language code ("en.yaml", "pt-br.yaml").
func Load(fsys fs.FS, opts ...Option) (*Localizer, error) {
	l := &Localizer{
		defaultLang: DefaultLanguage,
		catalogs:    make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(l)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("parkbot/i18n: reading locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		lang := normalize(strings.TrimSuffix(entry.Name(), ext))
		if _, err := language.Parse(lang); err != nil {
			return nil, fmt.Errorf("parkbot/i18n: %s: invalid language code: %w", entry.Name(), err)
		}

		raw, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("parkbot/i18n: reading %s: %w", entry.Name(), err)
		}

		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parkbot/i18n: parsing %s: %w", entry.Name(), err)
		}

		catalog := make(map[string]string, len(doc))
		flatten("", doc, catalog)
		l.catalogs[lang] = catalog
	}

	if len(l.catalogs) == 0 {
		return nil, ErrNoLocales
	}
	if _, ok := l.catalogs[l.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrDefaultLanguage, l.defaultLang)
	}

	for lang := range l.catalogs {
		l.langs = append(l.langs, lang)
	}
	sort.Strings(l.langs)

	return l, nil
}

// T returns the text for key in lang.
//
// Resolution never fails: an unsupported language uses the default language,
// a key missing in the resolved language falls back to the default language,
// and a key missing everywhere is returned as-is.
func (l *Localizer) T(lang, key string) string {
	if text, ok := l.catalogs[l.Resolve(lang)][key]; ok {
		return text
	}
	if text, ok := l.catalogs[l.defaultLang][key]; ok {
		return text
	}
	return key
}

// Resolve maps a Telegram language_code to a loaded language.
//
// Order: exact match ("pt-br"), base language ("en-US" -> "en"), first
// regional variant of the base ("pt" -> "pt-br"), default language.
func (l *Localizer) Resolve(lang string) string {
	lang = normalize(lang)
	if lang == "" {
		return l.defaultLang
	}
	if _, ok := l.catalogs[lang]; ok {
		return lang
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return l.defaultLang
	}
	base, _ := tag.Base()
	if _, ok := l.catalogs[base.String()]; ok {
		return base.String()
	}
	for _, candidate := range l.langs {
		if strings.HasPrefix(candidate, base.String()+"-") {
			return candidate
		}
	}
	return l.defaultLang
}

// DefaultLanguage returns the fallback language.
func (l *Localizer) DefaultLanguage() string {
	return l.defaultLang
}

// Languages returns the loaded languages, sorted.
func (l *Localizer) Languages() []string {
	return slices.Clone(l.langs)
}

// Has reports whether a locale file for lang was loaded.
func (l *Localizer) Has(lang string) bool {
	_, ok := l.catalogs[normalize(lang)]
	return ok
}

func normalize(lang string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "_", "-"))
}

// flatten turns nested YAML maps into dotted keys ("menu.title").
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
			// empty value, leave missing so fallback applies
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

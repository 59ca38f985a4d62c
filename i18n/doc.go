// Package i18n provides the localized texts of the parked responder.
//
// Locales are flat (or nested) YAML maps, one file per language, bundled with
// the binary. A different set can be loaded from any fs.FS:
//
//	loc, err := i18n.Load(os.DirFS("/etc/parkbot/locales"), i18n.WithDefaultLanguage("en"))
//	text := loc.T("de-AT", i18n.KeyDefault) // falls back to "de", then "en"
package i18n

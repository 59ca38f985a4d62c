// Package testutil provides testing utilities for parkbot.
//
// This package is intended for internal testing only and should not be imported
// by external packages.
//
// # Fixtures
//
//	testutil.CommandUpdate(1, "/start", "de")
//	testutil.MessageUpdate(2, testutil.TestGroupChat(tg.ChatTypeGroup), "en", "hi")
//	testutil.CallbackUpdate(3, "btn:1", "en")
//	testutil.InlineQueryUpdate(4, "cats", "en")
//
// # Webhook Capture
//
// PostUpdate and Get run a request through an http.Handler and capture the
// response:
//
//	cap := testutil.PostUpdate(t, handler, "/", update)
//	cap.AssertStatus(t, http.StatusOK)
//	cap.AssertMethod(t, "sendMessage")
//
// # Fake Clock
//
// FakeClock drives rate limiters without sleeping:
//
//	clock := testutil.NewFakeClock(testutil.Epoch)
//	clock.Advance(3 * time.Second)
package testutil

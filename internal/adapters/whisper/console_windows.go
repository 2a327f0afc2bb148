//go:build windows

package whisper

import "golang.org/x/sys/windows"

const utf8CodePage = 65001

// forceConsoleUTF8 switches the console output code page to UTF-8 so
// whisper's language names are captured intact, returning a func that
// restores the prior code page.
func forceConsoleUTF8() func() {
	prev, err := windows.GetConsoleOutputCP()
	if err != nil || prev == utf8CodePage {
		return func() {}
	}
	if err := windows.SetConsoleOutputCP(utf8CodePage); err != nil {
		return func() {}
	}
	return func() { _ = windows.SetConsoleOutputCP(prev) }
}

//go:build !windows

package whisper

// Console code pages are a Windows concern; other platforms are assumed
// to speak UTF-8 already.
func forceConsoleUTF8() func() {
	return func() {}
}

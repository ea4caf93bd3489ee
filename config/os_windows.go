//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

const forbiddenNameChars = `<>":/\|?*` + string(os.PathListSeparator)

// device names could not be used as file names regardless of extension
var reservedNames = []string{
	"CON", "PRN", "AUX", "NUL",
	"COM1", "COM2", "COM3", "COM4", "COM5", "COM6", "COM7", "COM8", "COM9",
	"LPT1", "LPT2", "LPT3", "LPT4", "LPT5", "LPT6", "LPT7", "LPT8", "LPT9",
}

// CleanFileName makes document file name safe for the local file system.
func CleanFileName(in string) string {
	return cleanName(in, forbiddenNameChars, func(name string) bool {
		base, _, _ := strings.Cut(name, ".")
		for _, r := range reservedNames {
			if strings.EqualFold(base, r) {
				return true
			}
		}
		return false
	})
}

// EnableColorOutput checks if colorized output is possible and switches
// console into VT100 mode. Only Windows 10 and later console supports it.
func EnableColorOutput(stream *os.File) bool {
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	major, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	k.Close()
	if err != nil || major < 10 {
		return false
	}

	const enableVirtualTerminalProcessing uint32 = 0x4

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|enableVirtualTerminalProcessing) == nil
}

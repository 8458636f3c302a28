//go:build windows

package main

import "syscall"

// utf8CodePage is the Windows code page identifier for UTF-8
const utf8CodePage = 65001

// init switches the console to UTF-8 so Cyrillic advisor answers and CLI
// output print correctly.
func init() {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	kernel32.NewProc("SetConsoleOutputCP").Call(uintptr(utf8CodePage))
	kernel32.NewProc("SetConsoleCP").Call(uintptr(utf8CodePage))
}

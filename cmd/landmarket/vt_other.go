//go:build !windows
// +build !windows

package main

// enableVT is a no-op outside Windows; Unix terminals interpret ANSI
// sequences natively.
func enableVT() {}

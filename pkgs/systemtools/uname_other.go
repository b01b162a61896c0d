//go:build !(linux || darwin || freebsd)

package systemtools

func unameSysname() string { return "" }

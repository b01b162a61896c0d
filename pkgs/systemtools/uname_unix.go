//go:build linux || darwin || freebsd

package systemtools

import "golang.org/x/sys/unix"

func unameSysname() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Sysname[:])
}

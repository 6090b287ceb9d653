//go:build linux

package fbdev

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func ioctl(fd, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

func getVarScreenInfo(fd uintptr, v *VarScreenInfo) error {
	return ioctl(fd, ioctlGetVarScreenInfo, unsafe.Pointer(v))
}

func getFixScreenInfo(fd uintptr, f *FixScreenInfo) error {
	return ioctl(fd, ioctlGetFixScreenInfo, unsafe.Pointer(f))
}

//go:build !linux

package fbdev

func getVarScreenInfo(uintptr, *VarScreenInfo) error {
	return errUnsupported
}

func getFixScreenInfo(uintptr, *FixScreenInfo) error {
	return errUnsupported
}

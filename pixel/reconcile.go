package pixel

// Transform rewrites a packed pixel slice, returning the result. The input
// must not be used afterwards.
type Transform func(pix []byte) []byte

// Channel permutations used to swap between RGB and BGR. The same table
// works in both directions.
var (
	swap3 = [3]int{2, 1, 0}
	swap4 = [4]int{2, 1, 0, 3}
)

func identity(pix []byte) []byte {
	return pix
}

// pad widens three channels to four by appending Padding to every pixel.
func pad(pix []byte) []byte {
	out := make([]byte, 0, len(pix)/3*4)
	for i := 0; i+3 <= len(pix); i += 3 {
		out = append(out, pix[i], pix[i+1], pix[i+2], Padding)
	}
	return out
}

// strip narrows four channels to three by dropping the last byte of every
// pixel.
func strip(pix []byte) []byte {
	out := make([]byte, 0, len(pix)/4*3)
	for i := 0; i+4 <= len(pix); i += 4 {
		out = append(out, pix[i], pix[i+1], pix[i+2])
	}
	return out
}

// Reconcile returns the transform that changes the number of channels per
// pixel from src to dst.
func Reconcile(src, dst int) (Transform, error) {
	switch {
	case src == dst:
		return identity, nil
	case src == 3 && dst == 4:
		return pad, nil
	case src == 4 && dst == 3:
		return strip, nil
	}
	return nil, &DepthError{From: src, To: dst}
}

// Swap swaps the red and blue channels of every pixel in place. Anything
// other than three or four channels is left untouched.
func Swap(pix []byte, channels int) {
	switch channels {
	case 3:
		for i := 0; i+3 <= len(pix); i += 3 {
			p := pix[i : i+3 : i+3]
			p[0], p[1], p[2] = p[swap3[0]], p[swap3[1]], p[swap3[2]]
		}
	case 4:
		for i := 0; i+4 <= len(pix); i += 4 {
			p := pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = p[swap4[0]], p[swap4[1]], p[swap4[2]], p[swap4[3]]
		}
	}
}

// Convert converts pix from one layout to another. The channel count is
// reconciled first and then the channel order is swapped if the two
// layouts use a different order.
func Convert(pix []byte, src, dst Format) ([]byte, error) {
	t, err := Reconcile(src.Channels, dst.Channels)
	if err != nil {
		return nil, err
	}

	pix = t(pix)

	if src.Order != dst.Order {
		Swap(pix, dst.Channels)
	}

	return pix, nil
}

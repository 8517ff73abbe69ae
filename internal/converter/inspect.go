package converter

import (
	"image"
	"image/color"
)

// Mode selects how an image is encoded to WebP.
type Mode int

const (
	// ModeOpaque encodes an opaque 3-channel image at the configured
	// quality, dropping any alpha channel for smaller output.
	ModeOpaque Mode = iota
	// ModeKeepAlpha preserves the alpha channel.
	ModeKeepAlpha
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeKeepAlpha:
		return "keep-alpha"
	default:
		return "opaque"
	}
}

// HasAlphaChannel reports whether the image's color model carries a
// dedicated alpha channel. Paletted images do not count even when the
// palette contains transparent entries; they take the opaque path, matching
// the converter's long-standing behavior.
func HasAlphaChannel(img image.Image) bool {
	switch img.ColorModel() {
	case color.NRGBAModel, color.NRGBA64Model, color.RGBAModel, color.RGBA64Model:
		return true
	default:
		return false
	}
}

// AlphaRange scans the whole image and returns the minimum and maximum
// alpha sample values, scaled to 8 bits. For an image without an alpha
// channel both values are 255.
func AlphaRange(img image.Image) (min, max uint8) {
	min, max = 0xff, 0x00

	switch m := img.(type) {
	case *image.NRGBA:
		for y := 0; y < m.Rect.Dy(); y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+m.Rect.Dx()*4]
			for i := 3; i < len(row); i += 4 {
				a := row[i]
				if a < min {
					min = a
				}
				if a > max {
					max = a
				}
			}
		}
	case *image.RGBA:
		for y := 0; y < m.Rect.Dy(); y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+m.Rect.Dx()*4]
			for i := 3; i < len(row); i += 4 {
				a := row[i]
				if a < min {
					min = a
				}
				if a > max {
					max = a
				}
			}
		}
	default:
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				a8 := uint8(a >> 8)
				if a8 < min {
					min = a8
				}
				if a8 > max {
					max = a8
				}
			}
		}
	}

	if min > max {
		// Empty image; treat as fully opaque.
		return 0xff, 0xff
	}
	return min, max
}

// DecideMode picks the encode mode for a decoded image. Transparency is
// considered in use only when the image has an alpha channel and at least
// one pixel is not fully opaque.
func DecideMode(img image.Image) Mode {
	if !HasAlphaChannel(img) {
		return ModeOpaque
	}
	if min, _ := AlphaRange(img); min < 0xff {
		return ModeKeepAlpha
	}
	return ModeOpaque
}

package converter

import (
	"image"
	"image/color"
	"testing"
)

func TestHasAlphaChannel(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	cases := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"nrgba", image.NewNRGBA(rect), true},
		{"nrgba64", image.NewNRGBA64(rect), true},
		{"rgba", image.NewRGBA(rect), true},
		{"rgba64", image.NewRGBA64(rect), true},
		{"gray", image.NewGray(rect), false},
		{"paletted", image.NewPaletted(rect, color.Palette{color.Black, color.White}), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := HasAlphaChannel(c.img); got != c.want {
				t.Errorf("HasAlphaChannel = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAlphaRange(t *testing.T) {
	t.Run("transparent", func(t *testing.T) {
		img := transparentImage(4, 4)
		min, max := AlphaRange(img)
		if min != 0 || max != 0xff {
			t.Errorf("got [%d, %d], want [0, 255]", min, max)
		}
	})

	t.Run("opaque", func(t *testing.T) {
		img := opaqueImage(4, 4)
		min, max := AlphaRange(img)
		if min != 0xff || max != 0xff {
			t.Errorf("got [%d, %d], want [255, 255]", min, max)
		}
	})

	t.Run("semi transparent only", func(t *testing.T) {
		img := opaqueImage(4, 4)
		img.SetNRGBA(2, 2, color.NRGBA{R: 10, G: 10, B: 10, A: 100})
		min, max := AlphaRange(img)
		if min != 100 || max != 0xff {
			t.Errorf("got [%d, %d], want [100, 255]", min, max)
		}
	})

	t.Run("gray has no alpha samples", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 3, 3))
		min, max := AlphaRange(img)
		if min != 0xff || max != 0xff {
			t.Errorf("got [%d, %d], want [255, 255]", min, max)
		}
	})

	t.Run("rgba fast path", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		// Zero-valued RGBA pixels have alpha 0.
		min, max := AlphaRange(img)
		if min != 0 || max != 0 {
			t.Errorf("got [%d, %d], want [0, 0]", min, max)
		}
	})
}

func TestDecideMode(t *testing.T) {
	cases := []struct {
		name string
		img  image.Image
		want Mode
	}{
		{"transparency in use", transparentImage(4, 4), ModeKeepAlpha},
		{"alpha channel but fully opaque", opaqueImage(4, 4), ModeOpaque},
		{"no alpha channel", image.NewGray(image.Rect(0, 0, 4, 4)), ModeOpaque},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DecideMode(c.img); got != c.want {
				t.Errorf("DecideMode = %v, want %v", got, c.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ModeKeepAlpha.String() != "keep-alpha" || ModeOpaque.String() != "opaque" {
		t.Error("unexpected mode names")
	}
}

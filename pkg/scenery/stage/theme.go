package stage

import "github.com/veandco/go-sdl2/sdl"

// Theme defines the stage's colors and overlay placement.
type Theme struct {
	BackgroundColor sdl.Color // Letterbox color behind scenes
	OverlayMargin   int32     // Distance of the pagination overlay from the bottom edge
}

// DefaultTheme is a black letterbox with the overlay 24px off the bottom.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: HexToColor(0x000000),
		OverlayMargin:   24,
	}
}

// HexToColor converts 0xRRGGBB to an opaque sdl.Color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16 & 0xFF),
		G: uint8(hex >> 8 & 0xFF),
		B: uint8(hex & 0xFF),
		A: 0xFF,
	}
}

// fitRect scales a w x h texture to fit inside the area, centered, keeping
// its aspect ratio.
func fitRect(w, h, areaW, areaH int32) sdl.Rect {
	if w <= 0 || h <= 0 || areaW <= 0 || areaH <= 0 {
		return sdl.Rect{}
	}
	scaledW, scaledH := areaW, h*areaW/w
	if scaledH > areaH {
		scaledW, scaledH = w*areaH/h, areaH
	}
	return sdl.Rect{
		X: (areaW - scaledW) / 2,
		Y: (areaH - scaledH) / 2,
		W: scaledW,
		H: scaledH,
	}
}

// Package pagination renders a position indicator for a scene navigator:
// a localized "Step 2 of 3" label and a strip of dots, one per scene, with
// the active dot filled.
package pagination

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Dots describes the dot strip.
type Dots struct {
	Count  int
	Active int
	Radius int    // Dot radius in pixels (default 8)
	Gap    int    // Space between dots in pixels (default Radius)
	Stroke int    // Outline width in pixels (default 2)
	Color  string // SVG color for outline and fill (default "#ffffff")
}

func (d Dots) withDefaults() Dots {
	if d.Radius <= 0 {
		d.Radius = 8
	}
	if d.Gap <= 0 {
		d.Gap = d.Radius
	}
	if d.Stroke <= 0 {
		d.Stroke = 2
	}
	if d.Color == "" {
		d.Color = "#ffffff"
	}
	return d
}

// Size returns the strip dimensions in pixels.
func (d Dots) Size() (w, h int) {
	d = d.withDefaults()
	h = 2*d.Radius + 2*d.Stroke
	if d.Count <= 0 {
		return 0, h
	}
	w = d.Count*2*d.Radius + (d.Count-1)*d.Gap + 2*d.Stroke
	return w, h
}

// Center returns the pixel center of dot i.
func (d Dots) Center(i int) (x, y int) {
	d = d.withDefaults()
	x = d.Stroke + d.Radius + i*(2*d.Radius+d.Gap)
	y = d.Stroke + d.Radius
	return x, y
}

// SVG returns the strip as an SVG document.
func (d Dots) SVG() string {
	d = d.withDefaults()
	w, h := d.Size()

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	for i := 0; i < d.Count; i++ {
		cx, cy := d.Center(i)
		fill := "none"
		if i == d.Active {
			fill = d.Color
		}
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="%d"/>`,
			cx, cy, d.Radius, fill, d.Color, d.Stroke)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// Rasterize draws the strip into an RGBA image.
func (d Dots) Rasterize() (*image.RGBA, error) {
	if d.Count <= 0 {
		return nil, fmt.Errorf("pagination: no dots to draw")
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(d.SVG()))
	if err != nil {
		return nil, fmt.Errorf("pagination: parse svg: %w", err)
	}

	w, h := d.Size()
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return img, nil
}

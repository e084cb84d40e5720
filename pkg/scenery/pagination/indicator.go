package pagination

import (
	"image"
	"sync"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
)

// Indicator tracks the active scene and keeps a label and dot image current.
// Use Update as, or inside, a navigator's PostTransition hook.
type Indicator struct {
	mu    sync.Mutex
	loc   *Localizer
	dots  Dots
	label string
	image *image.RGBA

	// OnChange, if set, is called after every update with the new label and image.
	OnChange func(label string, img *image.RGBA)
}

// NewIndicator creates an indicator positioned at dots.Active.
func NewIndicator(loc *Localizer, dots Dots) (*Indicator, error) {
	ind := &Indicator{loc: loc, dots: dots}
	if err := ind.render(); err != nil {
		return nil, err
	}
	return ind, nil
}

// Update moves the indicator to res.Current.
func (ind *Indicator) Update(res scenery.Result, _ *scenery.Event) error {
	ind.mu.Lock()
	ind.dots.Active = res.Current
	err := ind.render()
	label, img, onChange := ind.label, ind.image, ind.OnChange
	ind.mu.Unlock()

	if err != nil {
		return err
	}
	if onChange != nil {
		onChange(label, img)
	}
	return nil
}

func (ind *Indicator) render() error {
	img, err := ind.dots.Rasterize()
	if err != nil {
		return err
	}
	ind.image = img
	ind.label = ind.loc.Label(ind.dots.Active, ind.dots.Count)
	return nil
}

// Label returns the current label.
func (ind *Indicator) Label() string {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.label
}

// Image returns the current dot strip.
func (ind *Indicator) Image() *image.RGBA {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.image
}

// Active returns the index the indicator points at.
func (ind *Indicator) Active() int {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.dots.Active
}

// MirrorClass returns a post-transition hook that moves class from the
// element at the previous index to the element at the current index, the
// way a list of pagination bullets follows the scenes. Indices without an
// element are skipped.
func MirrorClass(elements []scenery.Element, class string) scenery.PostTransitionFunc {
	return func(res scenery.Result, _ *scenery.Event) error {
		if res.Previous >= 0 && res.Previous < len(elements) {
			elements[res.Previous].RemoveClass(class)
		}
		if res.Current >= 0 && res.Current < len(elements) {
			elements[res.Current].AddClass(class)
		}
		return nil
	}
}

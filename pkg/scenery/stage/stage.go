// Package stage hosts a scene navigator in an SDL2 window.
//
// Scenes are images; the one carrying the active class fills the window.
// Triggers are Buttons bound to keyboard keys and game controller buttons,
// so a handheld's shoulder buttons can page through a deck. The stage is a
// scenery.Document: build it, add scenes and buttons, then hand it to
// scenery.New.
package stage

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/BrandonKowalski/scenery/pkg/scenery/constants"
	"github.com/BrandonKowalski/scenery/pkg/scenery/internal"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

// Options configures a Stage.
type Options struct {
	Title         string
	WindowOptions WindowOptions
	Theme         Theme
	ActiveClass   string // Must match the navigator's ActiveClass (default "active")
	CacheSize     int    // Scene textures kept loaded (default 5)

	// OnTriggerError, if set, receives errors returned by button listeners
	// (hook failures from the navigator) after they are logged.
	OnTriggerError func(error)
}

// Stage is an SDL-backed scenery.Document.
type Stage struct {
	opts    Options
	scenes  []*Scene
	buttons []*Button

	window      *Window
	cache       *lruCache[*sdl.Texture]
	controllers []*sdl.GameController

	overlayMu      sync.Mutex
	overlay        *image.RGBA
	overlayDirty   bool
	overlayTexture *sdl.Texture

	log *slog.Logger
}

// New creates a stage without opening a window. Open it with Run.
func New(opts Options) *Stage {
	if opts.ActiveClass == "" {
		opts.ActiveClass = constants.DefaultActiveClass
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme()
	}
	return &Stage{
		opts: opts,
		log:  internal.GetInternalLogger(),
	}
}

// AddScene appends an image scene. classes default to "scene".
func (s *Stage) AddScene(path string, classes ...string) *Scene {
	if len(classes) == 0 {
		classes = []string{"scene"}
	}
	sc := &Scene{Path: path}
	sc.init(classes)
	s.scenes = append(s.scenes, sc)
	return sc
}

// AddButton adds a virtual trigger bound to keys. Use the trigger group's
// class (e.g. "scene__next") so the navigator wires it.
func (s *Stage) AddButton(class string, keys ...sdl.Keycode) *Button {
	b := &Button{Keys: keys}
	b.init([]string{class})
	s.buttons = append(s.buttons, b)
	return b
}

// DefaultButtons adds the usual keyboard and controller bindings for every
// trigger group except goto. Each button gets the first class of its
// group's selector; pass the same Selectors the navigator is built with.
// Empty fields take the defaults.
func (s *Stage) DefaultButtons(sel scenery.Selectors) error {
	sel = sel.WithDefaults()
	bindings := []struct {
		selector    string
		keys        []sdl.Keycode
		controllers []sdl.GameControllerButton
	}{
		{sel.Next, []sdl.Keycode{sdl.K_RIGHT, sdl.K_PAGEDOWN, sdl.K_SPACE},
			[]sdl.GameControllerButton{sdl.CONTROLLER_BUTTON_RIGHTSHOULDER, sdl.CONTROLLER_BUTTON_DPAD_RIGHT}},
		{sel.Prev, []sdl.Keycode{sdl.K_LEFT, sdl.K_PAGEUP},
			[]sdl.GameControllerButton{sdl.CONTROLLER_BUTTON_LEFTSHOULDER, sdl.CONTROLLER_BUTTON_DPAD_LEFT}},
		{sel.Reset, []sdl.Keycode{sdl.K_HOME},
			[]sdl.GameControllerButton{sdl.CONTROLLER_BUTTON_BACK}},
		{sel.Pop, []sdl.Keycode{sdl.K_BACKSPACE, sdl.K_ESCAPE},
			[]sdl.GameControllerButton{sdl.CONTROLLER_BUTTON_B}},
	}

	// Resolve every class before adding anything so a bad selector leaves
	// the stage unchanged.
	classes := make([]string, len(bindings))
	for i, b := range bindings {
		class, err := ClassFor(b.selector)
		if err != nil {
			return err
		}
		classes[i] = class
	}
	for i, b := range bindings {
		btn := s.AddButton(classes[i], b.keys...)
		btn.Controllers = b.controllers
	}
	return nil
}

// QueryAll implements scenery.Document. Scenes come before buttons, each in
// insertion order.
func (s *Stage) QueryAll(selector string) ([]scenery.Element, error) {
	classes, err := classSelectors(selector)
	if err != nil {
		return nil, err
	}

	var out []scenery.Element
	for _, sc := range s.scenes {
		if matches(&sc.node, classes) {
			out = append(out, sc)
		}
	}
	for _, b := range s.buttons {
		if matches(&b.node, classes) {
			out = append(out, b)
		}
	}
	return out, nil
}

// SetOverlay replaces the image drawn over the bottom of the active scene.
// Safe to call from any goroutine; the texture is rebuilt on the next frame.
func (s *Stage) SetOverlay(overlay *image.RGBA) {
	s.overlayMu.Lock()
	defer s.overlayMu.Unlock()
	s.overlay = overlay
	s.overlayDirty = true
}

// Run opens the window and runs the frame loop until the window is closed
// or ctx is done. It must be called from the main goroutine.
func (s *Stage) Run(ctx context.Context) error {
	if err := initSDL(); err != nil {
		return err
	}
	defer quitSDL()

	window, err := openWindow(s.opts.Title, s.opts.WindowOptions)
	if err != nil {
		return err
	}
	s.window = window
	s.cache = newTextureCache(s.opts.CacheSize)
	s.openControllers()

	defer func() {
		s.cache.clear()
		if s.overlayTexture != nil {
			s.overlayTexture.Destroy()
		}
		for _, c := range s.controllers {
			c.Close()
		}
		s.window.close()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if quit := s.handleEvent(event); quit {
				return nil
			}
		}

		s.render()
		s.window.Present()
	}
}

func (s *Stage) openControllers() {
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		if c := sdl.GameControllerOpen(i); c != nil {
			s.controllers = append(s.controllers, c)
			s.log.Debug("Opened game controller", "index", i, "name", c.Name())
		}
	}
}

// handleEvent reports whether the stage should close.
func (s *Stage) handleEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return false
		}
		for _, b := range s.buttonsForKey(e.Keysym.Sym) {
			s.clickButton(b)
		}
	case *sdl.ControllerButtonEvent:
		if e.Type != sdl.CONTROLLERBUTTONDOWN {
			return false
		}
		for _, b := range s.buttonsForController(sdl.GameControllerButton(e.Button)) {
			s.clickButton(b)
		}
	}
	return false
}

func (s *Stage) buttonsForKey(k sdl.Keycode) []*Button {
	var out []*Button
	for _, b := range s.buttons {
		if b.boundToKey(k) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Stage) buttonsForController(c sdl.GameControllerButton) []*Button {
	var out []*Button
	for _, b := range s.buttons {
		if b.boundToController(c) {
			out = append(out, b)
		}
	}
	return out
}

func (s *Stage) clickButton(b *Button) {
	if err := b.Click(); err != nil {
		s.log.Error("Trigger failed", "error", err)
		if s.opts.OnTriggerError != nil {
			s.opts.OnTriggerError(err)
		}
	}
}

// activeScene returns the first scene carrying the active class.
func (s *Stage) activeScene() *Scene {
	for _, sc := range s.scenes {
		if sc.HasClass(s.opts.ActiveClass) {
			return sc
		}
	}
	return nil
}

func (s *Stage) render() {
	r := s.window.Renderer
	bg := s.opts.Theme.BackgroundColor
	r.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	r.Clear()

	winW, winH := s.window.Size()

	if sc := s.activeScene(); sc != nil {
		texture, err := s.cache.get(sc.Path, func() (*sdl.Texture, error) {
			return img.LoadTexture(r, sc.Path)
		})
		if err != nil {
			s.log.Error("Failed to load scene", "path", sc.Path, "error", err)
		} else if _, _, w, h, err := texture.Query(); err == nil {
			dst := fitRect(w, h, winW, winH)
			r.Copy(texture, nil, &dst)
		}
	}

	s.renderOverlay(winW, winH)
}

func (s *Stage) renderOverlay(winW, winH int32) {
	s.overlayMu.Lock()
	overlay, dirty := s.overlay, s.overlayDirty
	s.overlayDirty = false
	s.overlayMu.Unlock()

	if dirty {
		if s.overlayTexture != nil {
			s.overlayTexture.Destroy()
			s.overlayTexture = nil
		}
		if overlay != nil {
			texture, err := textureFromRGBA(s.window.Renderer, overlay)
			if err != nil {
				s.log.Error("Failed to build overlay texture", "error", err)
			}
			s.overlayTexture = texture
		}
	}

	if s.overlayTexture == nil || overlay == nil {
		return
	}
	w, h := int32(overlay.Bounds().Dx()), int32(overlay.Bounds().Dy())
	dst := sdl.Rect{X: (winW - w) / 2, Y: winH - h - s.opts.Theme.OverlayMargin, W: w, H: h}
	s.window.Renderer.Copy(s.overlayTexture, nil, &dst)
}

// textureFromRGBA copies an RGBA image into a static texture.
func textureFromRGBA(r *sdl.Renderer, src *image.RGBA) (*sdl.Texture, error) {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(w), int32(h), 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return nil, fmt.Errorf("stage: create surface: %w", err)
	}
	defer surface.Free()

	pixels := surface.Pixels()
	pitch := int(surface.Pitch)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		copy(pixels[y*pitch:], row)
	}

	texture, err := r.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("stage: create texture: %w", err)
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}

package stage

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/veandco/go-sdl2/sdl"
)

// node is the class, data and listener state shared by scenes and buttons.
type node struct {
	mu        sync.Mutex
	classes   []string
	data      map[string]string
	listeners []func(*scenery.Event) error
}

func (n *node) init(classes []string) {
	n.classes = append([]string(nil), classes...)
	n.data = make(map[string]string)
}

func (n *node) AddClass(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.classes {
		if c == name {
			return
		}
	}
	n.classes = append(n.classes, name)
}

func (n *node) RemoveClass(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.classes[:0]
	for _, c := range n.classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	n.classes = kept
}

func (n *node) HasClass(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (n *node) Data(key string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.data[key]
	return v, ok
}

func (n *node) SetData(key, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.data[key] = value
}

func (n *node) OnClick(handler func(*scenery.Event) error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, handler)
}

func (n *node) click(target scenery.Element, source string) error {
	n.mu.Lock()
	listeners := make([]func(*scenery.Event) error, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	var errs []error
	for _, l := range listeners {
		if err := l(&scenery.Event{Source: source, Target: target, Time: time.Now()}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Scene is an image shown full-window while it carries the active class.
type Scene struct {
	node
	Path string // Image file loaded with SDL_image
}

// Click dispatches a click to the scene's listeners.
func (s *Scene) Click() error {
	return s.click(s, "sdl")
}

// Button is an invisible trigger bound to keys and controller buttons.
type Button struct {
	node
	Keys        []sdl.Keycode
	Controllers []sdl.GameControllerButton
}

// Click dispatches a click to the button's listeners.
func (b *Button) Click() error {
	return b.click(b, "sdl")
}

func (b *Button) boundToKey(k sdl.Keycode) bool {
	for _, bound := range b.Keys {
		if bound == k {
			return true
		}
	}
	return false
}

func (b *Button) boundToController(c sdl.GameControllerButton) bool {
	for _, bound := range b.Controllers {
		if bound == c {
			return true
		}
	}
	return false
}

// classSelectors parses a comma-separated list of class selectors such as
// ".scene, .slide". Stage elements have no tree, so nothing else applies.
// ClassFor returns the class an element needs to match selector: the first
// class of a comma-separated list of class selectors.
func ClassFor(selector string) (string, error) {
	classes, err := classSelectors(selector)
	if err != nil {
		return "", err
	}
	return classes[0], nil
}

func classSelectors(selector string) ([]string, error) {
	var classes []string
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if len(part) < 2 || part[0] != '.' || strings.ContainsAny(part[1:], ". #[]:>+~") {
			return nil, fmt.Errorf("stage: unsupported selector %q: only class selectors are supported", part)
		}
		classes = append(classes, part[1:])
	}
	return classes, nil
}

func matches(n *node, classes []string) bool {
	for _, c := range classes {
		if n.HasClass(c) {
			return true
		}
	}
	return false
}

// Package input drives a scene navigator from Linux input devices.
//
// Key and button events are read with holoplot/go-evdev and mapped to
// trigger groups through Bindings. Held next/prev keys auto-repeat.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/BrandonKowalski/scenery/pkg/scenery/constants"
	"github.com/BrandonKowalski/scenery/pkg/scenery/internal"
	"github.com/holoplot/go-evdev"
)

// Key event values as reported by the kernel.
const (
	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// Bindings maps key and button codes to trigger groups.
type Bindings map[evdev.EvCode]scenery.Trigger

// DefaultBindings covers keyboards, presenter remotes and gamepad shoulders.
func DefaultBindings() Bindings {
	return Bindings{
		evdev.KEY_RIGHT:     scenery.TriggerNext,
		evdev.KEY_PAGEDOWN:  scenery.TriggerNext,
		evdev.KEY_SPACE:     scenery.TriggerNext,
		evdev.BTN_TR:        scenery.TriggerNext,
		evdev.KEY_LEFT:      scenery.TriggerPrev,
		evdev.KEY_PAGEUP:    scenery.TriggerPrev,
		evdev.BTN_TL:        scenery.TriggerPrev,
		evdev.KEY_HOME:      scenery.TriggerReset,
		evdev.BTN_SELECT:    scenery.TriggerReset,
		evdev.KEY_BACKSPACE: scenery.TriggerPop,
		evdev.KEY_ESC:       scenery.TriggerPop,
	}
}

// EventReader is the part of *evdev.InputDevice a Source reads from.
type EventReader interface {
	ReadOne() (*evdev.InputEvent, error)
}

// Firer receives triggers; *scenery.Navigator implements it.
type Firer interface {
	Fire(t scenery.Trigger, evt *scenery.Event) (*scenery.Transition, error)
}

// Options configures a Source.
type Options struct {
	Bindings       Bindings      // Defaults to DefaultBindings()
	RepeatDelay    time.Duration // Hold time before the first repeat
	RepeatInterval time.Duration // Time between subsequent repeats
	PollInterval   time.Duration // How often held keys are checked (default 20ms)

	// OnError, if set, receives errors returned by the Firer (hook failures
	// from the navigator) after they are logged.
	OnError func(error)
}

// Source feeds input events into a Firer.
type Source struct {
	reader   EventReader
	closer   io.Closer
	firer    Firer
	bindings Bindings
	repeat   *internal.Repeater[evdev.EvCode]
	poll     time.Duration
	onError  func(error)
	log      *slog.Logger
}

// NewSource wraps an event reader. If the reader is also an io.Closer, Close
// and a cancelled Run close it.
func NewSource(r EventReader, f Firer, opts Options) *Source {
	if opts.Bindings == nil {
		opts.Bindings = DefaultBindings()
	}
	repeat := internal.NewRepeater[evdev.EvCode]()
	if opts.RepeatDelay > 0 || opts.RepeatInterval > 0 {
		delay, interval := opts.RepeatDelay, opts.RepeatInterval
		if delay <= 0 {
			delay = constants.DefaultRepeatDelay
		}
		if interval <= 0 {
			interval = constants.DefaultRepeatInterval
		}
		repeat = internal.NewRepeaterWithTiming[evdev.EvCode](delay, interval)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 20 * time.Millisecond
	}

	s := &Source{
		reader:   r,
		firer:    f,
		bindings: opts.Bindings,
		repeat:   repeat,
		poll:     opts.PollInterval,
		onError:  opts.OnError,
		log:      internal.GetInternalLogger(),
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Open opens the device at path (e.g. /dev/input/event1).
func Open(path string, f Firer, opts Options) (*Source, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	if name, err := dev.Name(); err == nil {
		internal.GetInternalLogger().Debug("Opened input device", "path", path, "name", name)
	}
	return NewSource(dev, f, opts), nil
}

// Close closes the underlying device, if the source owns one.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Translate maps a raw event to a trigger. ok is false for events that are
// not bound key presses. Kernel auto-repeat events are ignored; Source does
// its own repeat.
func (s *Source) Translate(ev evdev.InputEvent) (t scenery.Trigger, ok bool) {
	if ev.Type != evdev.EV_KEY || ev.Value != valuePress {
		return scenery.TriggerNone, false
	}
	t, ok = s.bindings[ev.Code]
	return t, ok
}

// Run reads events until ctx is done or the reader fails. Triggers fire on
// the Run goroutine. Hook failures are logged and do not stop the loop.
func (s *Source) Run(ctx context.Context) error {
	events := make(chan evdev.InputEvent)
	readErr := make(chan error, 1)

	go func() {
		for {
			ev, err := s.reader.ReadOne()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case events <- *ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return ctx.Err()

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input: read: %w", err)

		case ev := <-events:
			s.handle(ev)

		case <-ticker.C:
			if code, ok := s.repeat.Update(); ok {
				s.fire(s.bindings[code], code, "repeat")
			}
		}
	}
}

func (s *Source) handle(ev evdev.InputEvent) {
	if ev.Type != evdev.EV_KEY {
		return
	}
	t, bound := s.bindings[ev.Code]
	if !bound {
		return
	}

	switch ev.Value {
	case valuePress:
		if repeatable(t) {
			s.repeat.SetHeld(ev.Code, true)
		}
		s.fire(t, ev.Code, "press")
	case valueRelease:
		s.repeat.SetHeld(ev.Code, false)
	case valueRepeat:
		// Kernel repeat; held keys are repeated by s.repeat instead.
	}
}

func (s *Source) fire(t scenery.Trigger, code evdev.EvCode, kind string) {
	evt := &scenery.Event{
		Trigger: t,
		Source:  "evdev",
		Time:    time.Now(),
		Payload: code,
	}
	if _, err := s.firer.Fire(t, evt); err != nil {
		s.log.Error("Trigger failed", "trigger", t.String(), "code", uint16(code), "kind", kind, "error", err)
		if s.onError != nil {
			s.onError(err)
		}
	}
}

func repeatable(t scenery.Trigger) bool {
	return t == scenery.TriggerNext || t == scenery.TriggerPrev
}

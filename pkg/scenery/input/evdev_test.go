package input

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/BrandonKowalski/scenery/pkg/scenery/dom"
	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptReader replays events, then blocks until closed (hold) or reports EOF.
type scriptReader struct {
	events []evdev.InputEvent
	hold   bool
	closed chan struct{}
	once   sync.Once
}

func newScriptReader(hold bool, events ...evdev.InputEvent) *scriptReader {
	return &scriptReader{events: events, hold: hold, closed: make(chan struct{})}
}

func (r *scriptReader) ReadOne() (*evdev.InputEvent, error) {
	if len(r.events) > 0 {
		ev := r.events[0]
		r.events = r.events[1:]
		return &ev, nil
	}
	if r.hold {
		<-r.closed
		return nil, errors.New("device closed")
	}
	return nil, io.EOF
}

func (r *scriptReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}

type recordingFirer struct {
	mu    sync.Mutex
	fired []scenery.Trigger
}

func (f *recordingFirer) Fire(t scenery.Trigger, evt *scenery.Event) (*scenery.Transition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fired = append(f.fired, t)
	return nil, nil
}

func (f *recordingFirer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fired)
}

func key(code evdev.EvCode, value int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func TestTranslate(t *testing.T) {
	s := NewSource(newScriptReader(false), &recordingFirer{}, Options{})

	tr, ok := s.Translate(key(evdev.KEY_RIGHT, valuePress))
	assert.True(t, ok)
	assert.Equal(t, scenery.TriggerNext, tr)

	tr, ok = s.Translate(key(evdev.KEY_ESC, valuePress))
	assert.True(t, ok)
	assert.Equal(t, scenery.TriggerPop, tr)

	_, ok = s.Translate(key(evdev.KEY_RIGHT, valueRelease))
	assert.False(t, ok)
	_, ok = s.Translate(key(evdev.KEY_RIGHT, valueRepeat))
	assert.False(t, ok)
	_, ok = s.Translate(key(evdev.KEY_A, valuePress))
	assert.False(t, ok)
	_, ok = s.Translate(evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.KEY_RIGHT, Value: 1})
	assert.False(t, ok)
}

func TestRun_DrivesNavigator(t *testing.T) {
	doc, err := dom.ParseString(`<div class="scene"></div><div class="scene"></div><div class="scene"></div>`)
	require.NoError(t, err)
	var sources []string
	nav, err := scenery.New(doc, scenery.Options{
		PostTransition: func(_ scenery.Result, evt *scenery.Event) error {
			sources = append(sources, evt.Source)
			return nil
		},
	})
	require.NoError(t, err)

	events := []evdev.InputEvent{
		key(evdev.KEY_RIGHT, valuePress),
		key(evdev.KEY_RIGHT, valueRepeat),
		key(evdev.KEY_RIGHT, valueRelease),
		key(evdev.KEY_RIGHT, valuePress),
		key(evdev.KEY_RIGHT, valueRelease),
		key(evdev.KEY_LEFT, valuePress),
		key(evdev.KEY_LEFT, valueRelease),
		key(evdev.KEY_ESC, valuePress),
	}

	src := NewSource(newScriptReader(false, events...), nav, Options{RepeatDelay: time.Hour})
	require.NoError(t, src.Run(context.Background()))

	assert.Equal(t, 2, nav.ActiveIndex())
	assert.Equal(t, []int{0, 1, 2, 2}, nav.History())
	assert.Equal(t, []string{"evdev", "evdev", "evdev", "evdev"}, sources)
}

func TestRun_CustomBindings(t *testing.T) {
	firer := &recordingFirer{}
	src := NewSource(newScriptReader(false,
		key(evdev.KEY_N, valuePress),
		key(evdev.KEY_RIGHT, valuePress),
	), firer, Options{Bindings: Bindings{evdev.KEY_N: scenery.TriggerGoto}, RepeatDelay: time.Hour})

	require.NoError(t, src.Run(context.Background()))
	assert.Equal(t, []scenery.Trigger{scenery.TriggerGoto}, firer.fired)
}

func TestRun_RepeatsHeldKey(t *testing.T) {
	firer := &recordingFirer{}
	reader := newScriptReader(true, key(evdev.BTN_TR, valuePress))
	src := NewSource(reader, firer, Options{
		RepeatDelay:    5 * time.Millisecond,
		RepeatInterval: 5 * time.Millisecond,
		PollInterval:   time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()

	require.Eventually(t, func() bool { return firer.count() >= 3 }, 2*time.Second, time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	firer.mu.Lock()
	defer firer.mu.Unlock()
	for _, tr := range firer.fired {
		assert.Equal(t, scenery.TriggerNext, tr)
	}
}

type failingFirer struct{ err error }

func (f failingFirer) Fire(scenery.Trigger, *scenery.Event) (*scenery.Transition, error) {
	return nil, f.err
}

func TestRun_ReportsFireErrors(t *testing.T) {
	boom := errors.New("boom")
	var got []error
	src := NewSource(newScriptReader(false,
		key(evdev.KEY_RIGHT, valuePress),
		key(evdev.KEY_RIGHT, valueRelease),
		key(evdev.KEY_LEFT, valuePress),
	), failingFirer{err: boom}, Options{
		RepeatDelay: time.Hour,
		OnError:     func(err error) { got = append(got, err) },
	})

	require.NoError(t, src.Run(context.Background()), "fire errors do not stop the source")
	require.Len(t, got, 2)
	for _, err := range got {
		assert.ErrorIs(t, err, boom)
	}
}

func TestRun_ReadError(t *testing.T) {
	reader := newScriptReader(true)
	src := NewSource(reader, &recordingFirer{}, Options{})
	require.NoError(t, reader.Close())

	err := src.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device closed")
}

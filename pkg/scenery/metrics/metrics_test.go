package metrics

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/BrandonKowalski/scenery/pkg/scenery/dom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deck = `<div>
  <section class="scene">one</section>
  <section class="scene">two</section>
  <button class="scene__next">next</button>
</div>`

func TestRecorderCountsClicks(t *testing.T) {
	doc, err := dom.ParseString(deck)
	require.NoError(t, err)

	rec := NewRecorder(prometheus.NewRegistry())
	_, err = scenery.New(doc, scenery.Options{PostTransition: rec.PostTransition})
	require.NoError(t, err)

	next, err := doc.First(".scene__next")
	require.NoError(t, err)
	require.NoError(t, next.Click())
	require.NoError(t, next.Click()) // clamped at the last scene

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.transitions.WithLabelValues("next", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.transitions.WithLabelValues("next", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.active))
}

func TestRecorderProgrammaticTransition(t *testing.T) {
	doc, err := dom.ParseString(deck)
	require.NoError(t, err)

	rec := NewRecorder(prometheus.NewRegistry())
	nav, err := scenery.New(doc, scenery.Options{PostTransition: rec.PostTransition})
	require.NoError(t, err)

	_, err = nav.Goto(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.transitions.WithLabelValues("none", "true")))
}

func TestRecorderObserveError(t *testing.T) {
	rec := NewRecorder(prometheus.NewRegistry())

	rec.ObserveError(&scenery.HookError{Phase: scenery.PhasePre, Err: errors.New("boom")})
	rec.ObserveError(errors.New("not a hook error"))
	rec.ObserveError(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.hookErrors.WithLabelValues("pre")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.hookErrors.WithLabelValues("post")))
}

func TestNewRecorderRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)
	rec.SetActive(3)
	rec.transitions.WithLabelValues("next", "true").Inc()

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Panics(t, func() { NewRecorder(reg) }, "duplicate registration")
}

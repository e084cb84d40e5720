// Command scenery-demo pages through a deck of images in an SDL window.
//
// Usage:
//
//	scenery-demo -config deck.toml intro.png terms.png done.png
//
// Scenes after the second are gated: press A (or the controller's A
// button) to accept the terms first. Set -evdev to read triggers from
// a Linux input device as well, for handhelds without SDL keyboard focus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/BrandonKowalski/scenery/pkg/scenery/config"
	"github.com/BrandonKowalski/scenery/pkg/scenery/constants"
	"github.com/BrandonKowalski/scenery/pkg/scenery/input"
	"github.com/BrandonKowalski/scenery/pkg/scenery/metrics"
	"github.com/BrandonKowalski/scenery/pkg/scenery/pagination"
	"github.com/BrandonKowalski/scenery/pkg/scenery/stage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

// Scenes past termsScene are unreachable until the terms are accepted.
const termsScene = 1

func init() {
	// SDL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath  = flag.String("config", "", "Navigator config file (.toml, .yaml, .yml or .json)")
		lang        = flag.String("lang", "en", "Language for the pagination label")
		evdevPath   = flag.String("evdev", "", "Linux input device to read triggers from (e.g. /dev/input/event0)")
		fullscreen  = flag.Bool("fullscreen", false, "Open the window fullscreen")
		metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9100)")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one scene image is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*configPath, *lang, *evdevPath, *metricsAddr, *fullscreen, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, lang, evdevPath, metricsAddr string, fullscreen bool, scenes []string) error {
	var file config.File
	if configPath != "" {
		var err error
		if file, err = config.Load(configPath); err != nil {
			return err
		}
	}

	if path := os.Getenv(constants.LogPathEnvVar); path != "" {
		scenery.SetLogPath(path)
	}
	level := os.Getenv(constants.LogLevelEnvVar)
	if level == "" {
		level = file.LogLevel
	}
	if level != "" {
		scenery.SetRawLogLevel(level)
		scenery.SetDebug(strings.EqualFold(level, "debug"))
	}
	defer scenery.CloseLogger()
	logger := scenery.GetLogger()

	opts := file.Options()

	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)
	recorder.SetActive(opts.InitialIndex)

	st := stage.New(stage.Options{
		Title:          "scenery",
		WindowOptions:  stage.WindowOptions{FullscreenDesktop: fullscreen},
		ActiveClass:    opts.ActiveClass,
		OnTriggerError: recorder.ObserveError,
	})
	sceneClass, err := stage.ClassFor(opts.Selectors.WithDefaults().Scene)
	if err != nil {
		return err
	}
	for _, path := range scenes {
		st.AddScene(path, sceneClass)
	}
	if err := st.DefaultButtons(opts.Selectors); err != nil {
		return err
	}

	var accepted atomic.Bool
	accept := st.AddButton("terms__accept", sdl.K_a)
	accept.Controllers = []sdl.GameControllerButton{sdl.CONTROLLER_BUTTON_A}
	accept.OnClick(func(*scenery.Event) error {
		logger.Info("Terms toggled", "accepted", !accepted.Toggle())
		return nil
	})

	loc, err := pagination.NewLocalizer(lang)
	if err != nil {
		return err
	}
	indicator, err := pagination.NewIndicator(loc, pagination.Dots{Count: len(scenes), Active: opts.InitialIndex})
	if err != nil {
		return err
	}
	indicator.OnChange = func(label string, img *image.RGBA) {
		logger.Info("Scene changed", "label", label)
		st.SetOverlay(img)
	}
	st.SetOverlay(indicator.Image())

	opts.PreTransition = func(req scenery.Request, proceed scenery.Proceed, _ *scenery.Event) error {
		if req.Next.Or(constants.FallbackIndex) > termsScene && !accepted.Load() {
			logger.Info("Terms not accepted, staying put")
			return proceed(scenery.Redirect(req.Current))
		}
		return proceed(scenery.Continue())
	}
	opts.PostTransition = scenery.ChainPostTransitions(recorder.PostTransition, indicator.Update)

	nav, err := scenery.New(st, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server stopped", "addr", metricsAddr, "error", err)
			}
		}()
		defer srv.Close()
	}

	if evdevPath != "" {
		src, err := input.Open(evdevPath, nav, input.Options{OnError: recorder.ObserveError})
		if err != nil {
			return err
		}
		defer src.Close()
		go func() {
			if err := src.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Input device stopped", "path", evdevPath, "error", err)
			}
		}()
	}

	if err := st.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("Closed", "history", nav.History())
	return nil
}

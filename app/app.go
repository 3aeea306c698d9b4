// Package app wires the terminal, event loop, controller and renderer into
// the running program
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/stalker-eyes/audio"
	"github.com/lixenwraith/stalker-eyes/config"
	"github.com/lixenwraith/stalker-eyes/controller"
	"github.com/lixenwraith/stalker-eyes/core"
	"github.com/lixenwraith/stalker-eyes/engine"
	"github.com/lixenwraith/stalker-eyes/expression"
	"github.com/lixenwraith/stalker-eyes/render"
)

// Options configures an App
type Options struct {
	Controller controller.Config
	Metrics    render.Metrics
	Player     audio.Player    // nil plays nothing
	Logger     *zap.Logger     // nil discards
	Rand       controller.Rand // nil seeds from the clock

	// OnChange observes every controller change after it is drawn
	OnChange func(controller.Change)
}

// OptionsFromConfig maps loaded configuration onto app options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Controller: controller.Config{
			BaseDelay:     cfg.Mood.BaseDelay,
			Jitter:        cfg.Mood.Jitter,
			SurpriseSpeed: cfg.Gaze.SurpriseSpeed,
			GazeRadius:    cfg.Gaze.Radius,
		},
		Metrics: render.Metrics{
			CellW: cfg.Display.CellWidth,
			CellH: cfg.Display.CellHeight,
		},
	}
}

// App runs one pair of eyes on a terminal screen
type App struct {
	screen  tcell.Screen
	loop    *engine.Loop
	surface *render.Surface
	ctrl    *controller.Controller
	input   *InputHandler
	player  audio.Player
	logger  *zap.Logger

	onChange func(controller.Change)
	last     expression.Expression
}

// New creates an app on an initialized screen
// The app owns the screen from here on and finalizes it when Run returns
func New(screen tcell.Screen, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	player := opts.Player
	if player == nil {
		player = audio.Silent{}
	}

	loop := engine.NewLoop(engine.DefaultLoopCapacity)
	surface := render.NewSurface(opts.Metrics)

	a := &App{
		screen:   screen,
		loop:     loop,
		surface:  surface,
		player:   player,
		logger:   logger,
		onChange: opts.OnChange,
		last:     expression.Neutral,
	}
	a.ctrl = controller.New(opts.Controller, engine.NewLoopScheduler(loop), surface.Bounds, opts.Rand, logger)
	a.input = NewInputHandler(opts.Metrics, a.resize, logger.Named("input"))
	return a
}

// Controller returns the state machine driving the eyes
func (a *App) Controller() *controller.Controller {
	return a.ctrl
}

// Run draws the eyes and processes events until a quit key or ctx cancellation
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.HideCursor()
	a.surface.Resize(a.screen.Size())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(guard(func() error {
		err := a.loop.Run(gctx)
		a.teardown()
		return err
	}))

	// Queued ahead of any input
	a.loop.Post(a.start)

	g.Go(guard(func() error {
		a.poll()
		return nil
	}))

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// start runs on the loop before any input is processed
func (a *App) start() {
	l := a.surface.Layout()
	a.logger.Info("eyes opened",
		zap.Int("cols", l.Cols),
		zap.Int("rows", l.Rows),
		zap.Bool("measurable", l.Measurable()),
	)
	a.ctrl.Subscribe(a.handleChange)
	a.ctrl.Start(a.input)
	a.redraw(a.ctrl.Snapshot())
}

// poll forwards screen events to the loop until the screen is finalized
func (a *App) poll() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.loop.Post(func() { a.handleEvent(ev) }) {
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) {
	if !a.input.HandleEvent(ev) {
		a.logger.Info("quit requested")
		a.loop.Close()
	}
}

func (a *App) handleChange(ch controller.Change) {
	a.redraw(ch.State)

	switch ch.Cause {
	case controller.CauseSurprise:
		if a.last != expression.Surprise {
			a.player.Play(audio.CueSurprise)
		}
	case controller.CauseMood:
		a.player.Play(audio.CueMood)
	}

	if ch.State.Expression != a.last {
		a.logger.Info("expression changed",
			zap.Stringer("from", a.last),
			zap.Stringer("to", ch.State.Expression),
			zap.Stringer("cause", ch.Cause),
			zap.Duration("held", ch.Held),
		)
		a.last = ch.State.Expression
	}

	if a.onChange != nil {
		a.onChange(ch)
	}
}

func (a *App) resize(cols, rows int) {
	a.surface.Resize(cols, rows)
	a.logger.Debug("resized",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Bool("measurable", a.surface.Layout().Measurable()),
	)
	a.screen.Sync()
	a.redraw(a.ctrl.Snapshot())
}

func (a *App) redraw(state controller.State) {
	render.Draw(a.screen, render.Project(state, a.surface.Layout()))
}

// teardown releases resources in dependency order, on the loop goroutine
func (a *App) teardown() {
	a.ctrl.Stop()
	a.loop.Close()
	core.SetCrashScreen(nil)
	a.screen.Fini()
	a.player.Close()
	a.logger.Info("eyes closed")
}

// guard routes panics in supervised goroutines through the crash handler
func guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()
		return fn()
	}
}

// OpenScreen selects the color mode, initializes the terminal and registers
// it for crash recovery
func OpenScreen(colorMode string) (tcell.Screen, error) {
	switch colorMode {
	case config.Color256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case config.ColorTrueColor:
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashScreen(screen)
	return screen, nil
}

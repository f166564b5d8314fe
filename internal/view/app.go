// Package view draws the live wand scene in a terminal and handles
// keyboard input. The tcell screen is injected by the caller, so tests
// can drive the app against a simulation screen instead of a real tty.
package view

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/irview/internal/diag"
	"github.com/banshee-data/irview/internal/export"
	"github.com/banshee-data/irview/internal/scene"
	"github.com/banshee-data/irview/internal/timeutil"
)

// RenderInterval matches the frame cadence of the wand firmware, about
// fifty redraws per second.
const RenderInterval = 20 * time.Millisecond

// Config carries the collaborators the app renders and controls.
type Config struct {
	// Scene is the state rendered each tick. Required.
	Scene *scene.Scene

	// Lines delivers raw serial lines. The app drains whatever is
	// buffered on every tick. May be nil for a static display.
	Lines <-chan string

	// Session receives snapshot artefacts when the user presses "s".
	// May be nil, in which case the key reports that snapshots are
	// not configured.
	Session *export.Session

	// PortLabel is shown in the status bar, for example
	// "/dev/ttyACM0 115200-8N1" or "replay capture.txt".
	PortLabel string

	// Tick overrides RenderInterval, mainly for tests.
	Tick time.Duration

	// Clock drives the render ticker. Defaults to the real clock.
	Clock timeutil.Clock
}

// App owns the terminal screen and the render loop.
type App struct {
	screen    tcell.Screen
	sc        *scene.Scene
	lines     <-chan string
	session   *export.Session
	portLabel string
	tick      time.Duration
	clock     timeutil.Clock

	width  int
	height int

	finishOnce sync.Once
}

// NewApp wraps an initialised screen. The caller remains responsible
// for finalising the screen, normally via Finish.
func NewApp(screen tcell.Screen, cfg Config) (*App, error) {
	if screen == nil {
		return nil, fmt.Errorf("view: screen is required")
	}
	if cfg.Scene == nil {
		return nil, fmt.Errorf("view: scene is required")
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = RenderInterval
	}
	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	a := &App{
		screen:    screen,
		sc:        cfg.Scene,
		lines:     cfg.Lines,
		session:   cfg.Session,
		portLabel: cfg.PortLabel,
		tick:      tick,
		clock:     clock,
	}
	a.width, a.height = screen.Size()
	return a, nil
}

// NewTerminalScreen opens and initialises the process terminal.
func NewTerminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// Run drives the render loop until the user quits or the context is
// cancelled. The scene is only touched from this goroutine.
func (a *App) Run(ctx context.Context) error {
	ticker := a.clock.NewTicker(a.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// PollEvent returns nil once the screen is finalised.
				return
			}
			eventChan <- ev
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return nil
			}

		case <-ticker.C():
			a.drain()
			a.draw()
		}
	}
}

// Finish restores the terminal. Safe to call more than once.
func (a *App) Finish() {
	a.finishOnce.Do(a.screen.Fini)
}

// drain feeds every line buffered on the subscription into the scene
// without blocking. A closed channel disables further draining rather
// than spinning on the zero value.
func (a *App) drain() {
	for {
		select {
		case line, ok := <-a.lines:
			if !ok {
				a.lines = nil
				return
			}
			a.sc.IngestLine(line)
		default:
			return
		}
	}
}

// handleEvent processes one terminal event. It returns false when the
// user asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 's' || ev.Rune() == 'S'):
			a.snapshot()
		}

	case *tcell.EventResize:
		a.width, a.height = a.screen.Size()
		a.screen.Sync()
	}
	return true
}

// snapshot writes the current trails to disk and reports the outcome
// through the message log, where the user can actually see it.
func (a *App) snapshot() {
	if a.session == nil {
		a.sc.AddMessage("snapshot: no session directory configured")
		return
	}
	pngPath, _, err := a.session.WriteSnapshot(a.sc)
	if err != nil {
		diag.Logf("snapshot failed: %v", err)
		a.sc.AddMessage(fmt.Sprintf("snapshot failed: %v", err))
		return
	}
	a.sc.AddMessage("saved " + filepath.Base(pngPath))
}

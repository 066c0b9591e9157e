package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lanerace/audio"
	"github.com/lixenwraith/lanerace/input"
	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/race"
	"github.com/lixenwraith/lanerace/render"
)

// errQuit reports that the user asked to leave
var errQuit = errors.New("quit requested")

// driver paces simulation steps, feeds key events and renders every tick
type driver struct {
	screen   *render.Screen
	keys     *input.KeyState
	sound    *audio.SoundManager
	events   chan tcell.Event
	interval time.Duration
}

// newDriver starts the event poller; fps 0 steps as fast as possible
func newDriver(term tcell.Screen, track *race.Track, sound *audio.SoundManager, fps int) *driver {
	d := &driver{
		screen: render.NewScreen(term, track),
		keys:   input.NewKeyState(input.DefaultKeyTable(), parameter.KeyHoldTicks),
		sound:  sound,
		events: make(chan tcell.Event, 256),
	}
	if fps > 0 {
		d.interval = time.Second / time.Duration(fps)
	}

	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				term.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := term.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			d.events <- ev
		}
	}()

	return d
}

// run drives sim until it is over, the context ends or the user quits
// The simulation is stopped at a tick boundary on every early exit
func (d *driver) run(ctx context.Context, sim *race.Simulation, hud func() render.HUD) error {
	var tick <-chan time.Time
	if d.interval > 0 {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	d.screen.Draw(sim.Snapshot(), hud())

	for !sim.Over() {
		if tick != nil {
			select {
			case <-ctx.Done():
				sim.Stop()
				return ctx.Err()
			case ev := <-d.events:
				if err := d.handle(ev); err != nil {
					sim.Stop()
					return err
				}
				continue
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				sim.Stop()
				return ctx.Err()
			case ev := <-d.events:
				if err := d.handle(ev); err != nil {
					sim.Stop()
					return err
				}
				continue
			default:
			}
		}

		res := sim.Step()
		d.keys.Tick()
		d.sound.Observe(res)
		d.screen.Draw(sim.Snapshot(), hud())
	}
	return nil
}

// handle applies one terminal event
func (d *driver) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Resize()
	case *tcell.EventKey:
		switch d.keys.HandleEvent(ev) {
		case input.IntentQuit:
			return errQuit
		case input.IntentToggleMute:
			d.sound.SetMuted(!d.sound.Muted())
		}
	}
	return nil
}

// waitKey shows msg and blocks until any key, a quit or the context ends
// Keys typed before the banner appeared do not dismiss it
func (d *driver) waitKey(ctx context.Context, msg string) {
	d.drainEvents()
	d.keys.Release()
	d.screen.Banner(msg)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.events:
			switch ev.(type) {
			case *tcell.EventKey:
				return
			case *tcell.EventResize:
				d.screen.Resize()
				d.screen.Banner(msg)
			}
		}
	}
}

// drainEvents discards queued key events, resizes are still applied
func (d *driver) drainEvents() {
	for {
		select {
		case ev := <-d.events:
			if _, ok := ev.(*tcell.EventResize); ok {
				d.screen.Resize()
			}
		default:
			return
		}
	}
}

// muted reports the HUD mute flag
func (d *driver) muted() bool {
	return d.sound.Muted()
}

// Command evade-tui runs the delete-account page in a terminal. The mouse is
// tracked in cells, so the button is tuned in cells per second.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"EvasiveDelete/internal/game"
	"EvasiveDelete/internal/motion"
	"EvasiveDelete/internal/physics"

	"github.com/gdamore/tcell/v2"
)

const (
	buttonLabel = "[ Yes, delete my account ]"
	renderID    = "render"
)

type app struct {
	screen tcell.Screen
	hub    *game.Hub
	room   *game.Room
	start  time.Time
	inside bool
	status string
}

func cellParams() game.ButtonParams {
	p := game.DefaultButtonParams()
	p.RangeX = 30
	p.RangeY = 8
	p.MinImpulse = 40
	p.MaxImpulse = 200
	p.RestSpeed = 0.5
	return game.SanitizeButtonParams(p)
}

func main() {
	hz := flag.Float64("frame-hz", game.FrameHz, "animation frame rate")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	sched := physics.NewScheduler(physics.SystemClock, physics.NewTimerFrames(*hz, physics.SystemClock))
	hub := game.NewHub(cellParams(), sched)
	a := &app{
		screen: screen,
		hub:    hub,
		room:   hub.Join("terminal"),
		start:  time.Now(),
		status: "Move the mouse over the button. Esc quits.",
	}
	a.run()
}

func (a *app) run() {
	a.draw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyEnter:
				a.status = a.room.Confirm()
			}
		case *tcell.EventMouse:
			a.pointer(ev)
		case *tcell.EventInterrupt:
		case nil:
			return
		}
		a.draw()
	}
}

// slot is where the button rests, centred on screen.
func (a *app) slot() motion.Rect {
	w, h := a.screen.Size()
	bw := float64(len(buttonLabel))
	return motion.RectFromBounds(math.Floor((float64(w)-bw)/2), math.Floor(float64(h)/2), bw, 1)
}

func (a *app) buttonRect() motion.Rect {
	s := a.slot()
	off := a.room.Snapshot().Offset
	return motion.RectFromBounds(s.Left+math.Round(off.X), s.Top+math.Round(off.Y), s.Width, s.Height)
}

func (a *app) pointer(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := motion.Point{X: float64(x), Y: float64(y)}
	a.room.RecordPointer(motion.Sample{X: p.X, Y: p.Y, Time: float64(time.Since(a.start).Microseconds()) / 1000})

	rect := a.buttonRect()
	if !onCell(rect, x, y) {
		a.inside = false
		return
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		a.status = a.room.Confirm()
		return
	}
	if a.inside {
		return
	}
	a.inside = true

	// Collisions are resolved against the slot, so undo the current offset.
	slot := a.slot()
	local := motion.Point{X: p.X - (rect.Left - slot.Left), Y: p.Y - (rect.Top - slot.Top)}
	c := a.room.PointerEnter(local, slot)
	a.status = fmt.Sprintf("Nope. %.0f cells/s at %.0f°", c.Velocity.Speed, c.Velocity.Angle)
	a.hub.Sched.RegisterFunc(renderID, func(float64) {
		if !a.room.Snapshot().Moving {
			a.hub.Sched.Unregister(renderID)
		}
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}

// onCell reports whether cell (x, y) is covered by r. Right and Bottom are exclusive.
func onCell(r motion.Rect, x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.Left && fx < r.Right && fy >= r.Top && fy < r.Bottom
}

func (a *app) draw() {
	a.screen.Clear()
	title := tcell.StyleDefault.Bold(true)
	text := tcell.StyleDefault
	danger := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)

	w, h := a.screen.Size()
	drawText(a.screen, (w-14)/2, h/2-4, title, "Delete account")
	drawText(a.screen, 2, h/2-2, text, "This will permanently delete your account. This cannot be undone.")

	r := a.buttonRect()
	drawText(a.screen, int(r.Left), int(r.Top), danger, buttonLabel)

	st := a.room.Snapshot()
	drawText(a.screen, 2, h-2, text, fmt.Sprintf("%s  (dodged %d)", a.status, st.Hits))
	a.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

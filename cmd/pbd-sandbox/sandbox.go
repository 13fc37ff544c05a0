package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pbd/parameter"
	"github.com/lixenwraith/pbd/physics"
	"github.com/lixenwraith/pbd/status"
	"github.com/lixenwraith/pbd/vmath"
)

const (
	clickFreq       = 880
	clickDurationMs = 30
	clickCooldownMs = 120
)

var (
	styleCollider = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	styleLink     = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	stylePin      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleVertex   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAnchor   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDragged  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

type Sandbox struct {
	screen tcell.Screen
	view   Viewport

	cfg    physics.Config
	sys    *physics.System
	reg    *status.Registry
	logger *log.Logger

	contacts   int64
	dragged    *physics.Vertex
	lastTick   time.Time
	lastClick  time.Time
	showStatus bool

	// Frame-rate readout
	frameCount int
	fpsSince   time.Time
	fps        float64

	// Audio
	audioInit bool
}

func NewSandbox(cfg physics.Config, logger *log.Logger, mute bool) (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	sb := &Sandbox{
		screen: screen,
		cfg:    cfg,
		logger: logger,
	}
	sb.view = NewViewport(screen.Size())

	if !mute {
		if err := sb.initAudio(); err != nil {
			// Non-fatal, the sandbox runs without sound
			logger.Printf("Audio initialization failed: %v", err)
		}
	}

	if err := sb.reset(); err != nil {
		screen.Fini()
		return nil, err
	}
	return sb, nil
}

func (sb *Sandbox) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		sb.audioInit = true
	}
	return err
}

func (sb *Sandbox) playContactSound() {
	if !sb.audioInit || time.Since(sb.lastClick) < clickCooldownMs*time.Millisecond {
		return
	}
	sb.lastClick = time.Now()

	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, clickFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(clickDurationMs*time.Millisecond), sine))
}

// reset rebuilds the scene for the current screen size, keeping solver settings
func (sb *Sandbox) reset() error {
	iterations, damping := sb.cfg.SolverIterations, sb.cfg.Damping
	if sb.sys != nil {
		iterations, damping = sb.sys.SolverIterations(), sb.sys.Damping()
	}

	sys := physics.NewSystem(sb.cfg)
	sys.SetLogger(sb.logger)
	sys.SetSolverIterations(iterations)
	sys.SetDamping(damping)

	if err := buildScene(sys, sb.view); err != nil {
		return err
	}

	sb.reg = status.NewRegistry()
	sys.AttachRegistry(sb.reg)
	sb.sys = sys
	sb.dragged = nil
	sb.contacts = 0
	sb.lastTick = time.Now()
	sb.fpsSince = sb.lastTick
	sb.frameCount = 0
	sb.logger.Printf("scene reset: %d bodies, %d constraints, %d colliders",
		len(sys.Bodies()), len(sys.Constraints()), len(sys.Colliders()))
	return nil
}

// buildScene lays out a floor, a ledge, a pinned rope, a falling box and a hanging fabric
func buildScene(sys *physics.System, view Viewport) error {
	w, h := view.World()
	g := sys.Gravity()

	if _, err := sys.AddRectangle(vmath.V2(w/2, 16), w-16, 32); err != nil {
		return fmt.Errorf("floor: %w", err)
	}
	if _, err := sys.AddRectangle(vmath.V2(w*0.45, h*0.35), w*0.2, 24); err != nil {
		return fmt.Errorf("ledge: %w", err)
	}

	if _, err := physics.NewRope(sys, "rope", vmath.V2(w*0.15, h-24), vmath.V2(1, 0), w*0.25, 14, true, g); err != nil {
		return err
	}
	if _, err := physics.NewBox(sys, "box", vmath.V2(w*0.45, h*0.75), vmath.V2(64, 64), g); err != nil {
		return err
	}
	if _, err := physics.NewFabric(sys, "fabric", w*0.65, h-24, w*0.25, h*0.35, 9, 6, g); err != nil {
		return err
	}
	return nil
}

func (sb *Sandbox) handleResize() {
	cols, rows := sb.screen.Size()
	if cols == sb.view.Cols && rows == sb.view.Rows {
		return
	}
	sb.view = NewViewport(cols, rows)
	sb.screen.Sync()
	if err := sb.reset(); err != nil {
		sb.logger.Printf("reset after resize failed: %v", err)
	}
}

// handleInput returns false when the sandbox should exit
func (sb *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		clock := sb.sys.Clock()
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if clock.Paused() {
				clock.Resume()
			} else {
				clock.Pause()
			}
		case '.':
			clock.StepOnce(1)
		case '+', '=':
			sb.sys.SetSolverIterations(sb.sys.SolverIterations() + 1)
		case '-':
			sb.sys.SetSolverIterations(sb.sys.SolverIterations() - 1)
		case ']':
			sb.sys.SetDamping(sb.sys.Damping() + 0.05)
		case '[':
			sb.sys.SetDamping(sb.sys.Damping() - 0.05)
		case 's':
			sb.showStatus = !sb.showStatus
		case 'r':
			if err := sb.reset(); err != nil {
				sb.logger.Printf("reset failed: %v", err)
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		p := sb.view.ToWorld(col, row)
		if ev.Buttons()&tcell.Button1 == 0 {
			sb.dragged = nil
			return true
		}
		if sb.dragged == nil {
			sb.dragged = sb.sys.FindVertexAt(p[0], p[1])
		}
		if sb.dragged != nil {
			sb.sys.MoveVertex(sb.dragged, p[0], p[1])
		}

	case *tcell.EventResize:
		sb.handleResize()
	}

	return true
}

func (sb *Sandbox) tick() {
	now := time.Now()
	elapsed := now.Sub(sb.lastTick).Seconds()
	sb.lastTick = now

	// Pin the dragged vertex against the pull of its constraints
	if sb.dragged != nil {
		p := sb.dragged.Position()
		sb.sys.Update(elapsed)
		sb.sys.MoveVertex(sb.dragged, p[0], p[1])
	} else {
		sb.sys.Update(elapsed)
	}

	contacts := sb.reg.Ints.Get(status.KeyCollisions).Load()
	if contacts > sb.contacts {
		sb.playContactSound()
	}
	sb.contacts = contacts

	sb.frameCount++
	if window := now.Sub(sb.fpsSince); window >= parameter.FPSSampleInterval {
		sb.fps = float64(sb.frameCount) / window.Seconds()
		sb.frameCount = 0
		sb.fpsSince = now
	}
}

func (sb *Sandbox) set(col, row int, r rune, style tcell.Style) {
	if sb.view.Visible(col, row) {
		sb.screen.SetContent(col, row, r, nil, style)
	}
}

func (sb *Sandbox) draw() {
	sb.screen.Clear()

	// Colliders first so links and vertices draw over them
	for _, c := range sb.sys.Colliders() {
		rect, ok := c.(*physics.AARectangleCollider)
		if !ok {
			continue
		}
		b := rect.Bounds()
		c0, r0 := sb.view.ToCell(vmath.V2(b.Min[0], b.Max[1]))
		c1, r1 := sb.view.ToCell(vmath.V2(b.Max[0], b.Min[1]))
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				sb.set(col, row, '░', styleCollider)
			}
		}
	}

	for _, d := range sb.sys.Drawables() {
		switch d := d.(type) {
		case *physics.DistanceConstraint:
			a, b := d.Vertices()
			x0, y0 := sb.view.ToCellF(a.Position())
			x1, y1 := sb.view.ToCellF(b.Position())
			w := newCellWalker(x0, y0, x1, y1)
			for w.Next() {
				col, row := w.Pos()
				sb.set(col, row, '·', styleLink)
			}
		case *physics.AnchorConstraint:
			col, row := sb.view.ToCell(d.Target())
			sb.set(col, row, '+', stylePin)
		}
	}

	for _, d := range sb.sys.Drawables() {
		v, ok := d.(*physics.Vertex)
		if !ok {
			continue
		}
		col, row := sb.view.ToCell(v.Position())
		switch {
		case v == sb.dragged:
			sb.set(col, row, 'O', styleDragged)
		case v.IsAnchor():
			sb.set(col, row, '@', styleAnchor)
		default:
			sb.set(col, row, 'o', styleVertex)
		}
	}

	sb.drawHUD()
	sb.screen.Show()
}

func (sb *Sandbox) drawHUD() {
	state := "running"
	if sb.sys.Clock().Paused() {
		state = "paused"
	}
	hud := fmt.Sprintf(" %s | %.0f fps | t=%.2fs | iter=%d | damping=%.2f | contacts=%d | space pause . step +/- iter [/] damping r reset s stats q quit ",
		state, sb.fps, sb.sys.ElapsedTime(), sb.sys.SolverIterations(), sb.sys.Damping(), sb.contacts)
	sb.drawText(0, 0, hud, styleHUD)

	if !sb.showStatus {
		return
	}
	for i, line := range sb.reg.Lines() {
		sb.drawText(0, i+1, " "+line+" ", styleHUD)
	}
}

func (sb *Sandbox) drawText(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		sb.set(col, row, r, style)
		col++
	}
}

func (sb *Sandbox) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- sb.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return
			}
			if !sb.handleInput(ev) {
				return
			}

		case <-ticker.C:
			sb.tick()
			sb.draw()
		}
	}
}

func (sb *Sandbox) cleanup() {
	if sb.audioInit {
		speaker.Close()
	}
	sb.screen.Fini()
}

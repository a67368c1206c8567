package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/gleam/pkg/assets"
	"github.com/taigrr/gleam/pkg/controls"
	"github.com/taigrr/gleam/pkg/core"
	"github.com/taigrr/gleam/pkg/engine"
	"github.com/taigrr/gleam/pkg/render"
	"github.com/taigrr/gleam/pkg/scene"
	"github.com/taigrr/gleam/pkg/transform"
)

// viewCmd runs on the render goroutine, which owns the viewer state.
type viewCmd func(v *viewer)

// viewer shows a scene in the terminal and routes input to the control panel.
type viewer struct {
	term  *uv.Terminal
	sc    *scene.Scene
	panel *controls.Panel
	cam   *render.Camera
	soft  *render.Software
	loop  *engine.Loop
	dolly *Dolly
	hud   *HUD
	fps   int

	title   string
	showHUD bool
	reloads <-chan assets.Reload
	cmds    chan viewCmd
}

func newViewer(sc *scene.Scene, cam *render.Camera, lens transform.Lens, fps int) (*viewer, error) {
	fps = max(1, fps)
	// Sized to the terminal once it starts.
	soft := render.NewSoftware(render.NewFramebuffer(1, 2))
	loop, err := engine.NewLoop(sc, soft, cam, lens)
	if err != nil {
		return nil, err
	}
	return &viewer{
		sc:      sc,
		panel:   controls.NewPanel(sc),
		cam:     cam,
		soft:    soft,
		loop:    loop,
		dolly:   NewDolly(fps, cam.Distance()),
		hud:     NewHUD(),
		fps:     fps,
		showHUD: true,
		cmds:    make(chan viewCmd, 32),
	}, nil
}

// Run takes over the terminal until ctx is cancelled or the user quits.
func (v *viewer) Run(ctx context.Context) error {
	v.term = uv.DefaultTerminal()

	width, height, err := v.term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := v.term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	v.term.EnterAltScreen()
	v.term.HideCursor()
	// Wheel events only, SGR encoded.
	fmt.Fprint(os.Stdout, "\x1b[?1000h\x1b[?1006h")
	defer v.cleanup()

	v.resize(width, height)
	v.cam.Dolly(v.dolly.Distance)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go v.handleEvents(ctx, cancel)

	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()
	clock := core.NewClock()
	clock.Start()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-v.cmds:
			cmd(v)
		case r, ok := <-v.reloads:
			if !ok {
				v.reloads = nil
				continue
			}
			assets.Apply(v.sc, r)
		case <-ticker.C:
			if err := v.frame(clock.Delta()); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// frame advances the scene by dt seconds and presents it.
func (v *viewer) frame(dt float64) error {
	if v.dolly.Update() {
		v.cam.Dolly(v.dolly.Distance)
	}
	v.loop.Tick(dt)

	area := v.term.Bounds()
	v.soft.Framebuffer().Draw(v.term, area)
	v.hud.Tick()
	if v.showHUD {
		v.hud.Draw(v.term, area, v.status())
	}
	return v.term.Display()
}

// resize matches the framebuffer to the terminal: two pixels per cell row.
func (v *viewer) resize(width, height int) {
	v.term.Erase()
	if err := v.term.Resize(width, height); err != nil {
		core.LogWarn("resize terminal: %v", err)
	}
	v.soft.Resize(width, height*2)
	core.LogDebug("viewport %dx%d", width, height*2)
}

func (v *viewer) handleEvents(ctx context.Context, cancel context.CancelFunc) {
	for {
		var ev uv.Event
		select {
		case <-ctx.Done():
			return
		case e, ok := <-v.term.Events():
			if !ok {
				cancel()
				return
			}
			ev = e
		}

		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			v.send(ctx, func(v *viewer) { v.resize(ev.Width, ev.Height) })
		case uv.KeyPressEvent:
			if ev.MatchString("escape", "ctrl+c") {
				cancel()
				return
			}
			if b, key, ok := lookupBinding(ev); ok {
				v.send(ctx, func(v *viewer) { b.run(v, key) })
			}
		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				v.send(ctx, func(v *viewer) { v.dolly.Nudge(-dollyStep) })
			case uv.MouseWheelDown:
				v.send(ctx, func(v *viewer) { v.dolly.Nudge(dollyStep) })
			}
		}
	}
}

func (v *viewer) send(ctx context.Context, cmd viewCmd) {
	select {
	case v.cmds <- cmd:
	case <-ctx.Done():
	}
}

// status summarizes the selected object for the HUD.
func (v *viewer) status() hudStatus {
	s := hudStatus{title: v.title, objects: v.sc.Len()}
	obj := v.panel.Object()
	if obj == nil {
		return s
	}
	st := obj.Snapshot()
	s.selected = v.panel.Selected() + 1
	s.name = obj.Name
	s.variant = st.Variant.String()
	s.material = fmt.Sprintf("ka %.2f  kd %.2f  ks %.2f  n %.0f",
		st.Material.Ka, st.Material.Kd, st.Material.Ks, st.Material.Shininess)
	s.shear = fmt.Sprintf("shear %s %.2f", st.Transform.Shear.Axis, st.Transform.Shear.Factors[0])
	if st.Mesh != nil {
		s.triangles = st.Mesh.TriangleCount()
	}
	return s
}

func (v *viewer) cleanup() {
	fmt.Fprint(os.Stdout, "\x1b[?1000l\x1b[?1006l")
	v.term.ExitAltScreen()
	v.term.ShowCursor()
	if err := v.term.Shutdown(context.Background()); err != nil {
		core.LogWarn("shutdown terminal: %v", err)
	}
}

type hudStatus struct {
	title     string
	objects   int
	selected  int
	name      string
	variant   string
	material  string
	shear     string
	triangles int
}

// HUD overlays frame rate and the selected object's settings.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// Tick counts a frame; call once per frame.
func (h *HUD) Tick() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

var (
	hudBg     = color.RGBA{0, 0, 0, 255}
	hudWhite  = color.RGBA{240, 240, 240, 255}
	hudGreen  = color.RGBA{80, 220, 120, 255}
	hudCyan   = color.RGBA{80, 200, 230, 255}
	hudYellow = color.RGBA{230, 210, 80, 255}
)

// Draw writes the overlay on the top and bottom rows of area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, s hudStatus) {
	if area.Dy() < 2 || area.Dx() < 10 {
		return
	}
	top, bottom := area.Min.Y, area.Max.Y-1
	left, right := area.Min.X, area.Max.X

	drawText(scr, left, top, right, fmt.Sprintf(" %.0f FPS ", h.fps), uv.Style{Fg: hudGreen, Bg: hudBg})
	title := fmt.Sprintf(" %s ", s.title)
	drawText(scr, left+(area.Dx()-len(title))/2, top, right, title, uv.Style{Fg: hudWhite, Bg: hudBg, Attrs: uv.AttrBold})

	if s.selected == 0 {
		drawText(scr, left, bottom, right, " no objects ", uv.Style{Fg: hudYellow, Bg: hudBg})
		return
	}
	obj := fmt.Sprintf(" [%d/%d] %s (%s, %d tris) ", s.selected, s.objects, s.name, s.variant, s.triangles)
	x := drawText(scr, left, bottom, right, obj, uv.Style{Fg: hudCyan, Bg: hudBg, Attrs: uv.AttrBold})
	x = drawText(scr, x, bottom, right, s.material+" ", uv.Style{Fg: hudWhite, Bg: hudBg})
	drawText(scr, x, bottom, right, " "+s.shear+" ", uv.Style{Fg: hudYellow, Bg: hudBg})
}

// drawText writes ASCII text from x up to limit and returns the column
// after the last cell written.
func drawText(scr uv.Screen, x, y, limit int, text string, style uv.Style) int {
	for _, r := range text {
		if x >= limit {
			break
		}
		scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		x++
	}
	return x
}

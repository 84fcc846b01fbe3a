// Package showroom runs the interactive viewer: window, frame loop, keyboard
// and mouse input, the remote control bridge and snapshots.
package showroom

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/assets"
	"github.com/Faultbox/carviewer/internal/config"
	"github.com/Faultbox/carviewer/internal/engine/input"
	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/internal/engine/picking"
	"github.com/Faultbox/carviewer/internal/engine/renderer"
	"github.com/Faultbox/carviewer/internal/engine/snapshot"
	"github.com/Faultbox/carviewer/internal/engine/window"
	"github.com/Faultbox/carviewer/internal/logger"
	"github.com/Faultbox/carviewer/internal/remote"
	"github.com/Faultbox/carviewer/internal/viewer"
)

const title = "CarViewer"

// statusInterval is how often the status is re-broadcast without controls.
const statusInterval = time.Second

// Showroom is the interactive viewer application.
type Showroom struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	asset   *assets.Asset
	session *viewer.Session
	remote  *remote.Server
	capture *snapshot.Capture

	// pending receives model paths picked in the file dialog.
	pending chan string
}

// New loads the model and opens the window.
func New(cfg *config.Config) (*Showroom, error) {
	logger.Info("initializing showroom",
		zap.String("model", cfg.Viewer.ModelPath),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	format, err := snapshot.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		return nil, err
	}

	a := &Showroom{
		cfg:     cfg,
		session: viewer.NewSession(viewer.OptionsFromConfig(cfg)),
		capture: snapshot.NewCapture(cfg.Snapshot.Dir, "carviewer", format),
		pending: make(chan string, 1),
	}

	path := cfg.Viewer.ModelPath
	if path == "" {
		if path, err = pickModel(); err != nil {
			return nil, err
		}
	}
	if err := a.loadModel(path); err != nil {
		return nil, err
	}

	// Window before renderer: the GL context must exist.
	a.window, err = window.New(window.ConfigFromGraphics(title, cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	rcfg := renderer.ConfigFromGraphics(cfg.Graphics)
	rcfg.Width, rcfg.Height = a.window.DrawableSize()
	a.renderer, err = renderer.New(rcfg)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	if cfg.Remote.Enabled {
		a.remote = remote.New(0)
		if err := a.remote.Start(cfg.Remote.Listen); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.updateTitle()
	logger.Info("showroom initialized")
	return a, nil
}

// Run is the frame loop. It returns when the window closes or Esc is pressed.
func (a *Showroom) Run() error {
	a.running = true
	lastTime := time.Now()
	lastStatus := time.Time{}
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")
	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		select {
		case path := <-a.pending:
			if err := a.loadModel(path); err != nil {
				logger.Error("failed to open model", zap.String("path", path), zap.Error(err))
			}
		default:
		}

		changed := false
		if a.remote != nil {
			n, _ := a.remote.Drain(a.session.HandleControl)
			changed = n > 0
		}

		if err := a.session.Tick(dt, a.renderer); err != nil {
			return fmt.Errorf("frame %d: %w", a.session.Frames(), err)
		}
		a.window.SwapBuffers()

		if a.remote != nil && (changed || now.Sub(lastStatus) >= statusInterval) {
			a.remote.Broadcast(a.session.Status())
			lastStatus = now
		}
		if changed {
			a.updateTitle()
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *Showroom) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventDrag:
			a.session.Controls().HandleDrag(e.DX, e.DY)
		case input.EventZoom:
			a.session.Controls().HandleZoom(e.Zoom)
		case input.EventKey:
			a.handleKey(e.Key)
		case input.EventPick:
			a.inspect(e.X, e.Y)
		}
	}
}

func (a *Showroom) handleKey(key string) {
	switch key {
	case "Escape":
		a.running = false
		return
	case "F12":
		a.snapshot()
		return
	case "O", "o":
		a.openModelDialog()
		return
	}
	c, ok := a.session.KeyControl(key)
	if !ok {
		return
	}
	if err := a.session.HandleControl(c); err != nil {
		logger.Warn("control failed", zap.String("attribute", c.Attribute), zap.String("value", c.Value), zap.Error(err))
		return
	}
	a.updateTitle()
	if a.remote != nil {
		a.remote.Broadcast(a.session.Status())
	}
}

// loadModel replaces the session's model with the file at path.
func (a *Showroom) loadModel(path string) error {
	asset, err := assets.Load(path)
	if err != nil {
		return err
	}
	a.asset = asset
	report := a.session.Load(asset.Model, asset.Clips)
	for _, e := range report.Materials {
		logger.Debug("material enhanced",
			zap.String("node", e.Node),
			zap.String("material", e.Material),
			zap.Stringer("category", e.Category))
	}
	a.updateTitle()
	return nil
}

func pickModel() (string, error) {
	return dialog.File().
		Filter("glTF Models", "glb", "gltf").
		Filter("All Files", "*").
		Title("Open Car Model").
		Load()
}

// openModelDialog shows the file dialog off the frame loop; the chosen path
// is loaded by Run on the main thread.
func (a *Showroom) openModelDialog() {
	go func() {
		path, err := pickModel()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog", zap.Error(err))
			}
			return
		}
		select {
		case a.pending <- path:
		default:
		}
	}()
}

// inspect logs the part under the cursor and the category of its materials.
func (a *Showroom) inspect(x, y float32) {
	w, h := a.window.Size()
	controls := a.session.Controls()
	ray := picking.ScreenToRay(x, y, picking.Lens{
		Eye:    controls.Position,
		Target: controls.Target,
		FovY:   a.cfg.Graphics.FOV * math32.Pi / 180,
		Width:  float32(w),
		Height: float32(h),
	})
	hit, ok := picking.Pick(a.session.Model(), ray)
	if !ok {
		logger.Debug("nothing under cursor", zap.Float32("x", x), zap.Float32("y", y))
		return
	}
	p := hit.Primitive.Material
	name := material.LookupName(p, hit.Node.Name)
	logger.Info("part picked",
		zap.String("node", hit.Node.Name),
		zap.String("material", name),
		zap.Stringer("category", material.Classify(name)),
		zap.Bool("body", a.session.Body().Contains(p)),
		zap.Float32("distance", hit.Distance))
}

func (a *Showroom) snapshot() {
	path, err := a.renderer.Snapshot(a.session, a.capture)
	if err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		return
	}
	logger.Info("snapshot saved", zap.String("path", path))
}

func (a *Showroom) updateTitle() {
	if a.window == nil {
		return
	}
	st := a.session.Status()
	a.window.SetTitle(fmt.Sprintf("%s - %s - %s - %s", title, a.session.Model().Name, st.Color, st.RotationLabel))
}

// Close releases everything New created.
func (a *Showroom) Close() {
	logger.Info("closing showroom")
	if a.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.remote.Close(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("remote shutdown", zap.Error(err))
		}
		cancel()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

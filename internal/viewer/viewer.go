// Package viewer runs the desktop XR preview: a window, an orbit camera and a
// simulated hand that pushes the objects it touches.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/config"
	"github.com/Faultbox/midgard-xr/internal/engine/camera"
	"github.com/Faultbox/midgard-xr/internal/engine/collider"
	"github.com/Faultbox/midgard-xr/internal/engine/debug"
	"github.com/Faultbox/midgard-xr/internal/engine/input"
	"github.com/Faultbox/midgard-xr/internal/engine/input/hand"
	"github.com/Faultbox/midgard-xr/internal/engine/lighting"
	"github.com/Faultbox/midgard-xr/internal/engine/model"
	"github.com/Faultbox/midgard-xr/internal/engine/renderer"
	"github.com/Faultbox/midgard-xr/internal/engine/scene"
	"github.com/Faultbox/midgard-xr/internal/engine/window"
	"github.com/Faultbox/midgard-xr/internal/logger"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Viewer is the interactive preview application.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	hand     *hand.Hand
	palm     *model.Model
	scene    *scene.Scene
	names    map[scene.ID]string

	overlay bool
	shots   *debug.ScreenshotCapture
	capture bool
}

var (
	boundsColor   = model.Color{R: 0.3, G: 1, B: 0.4, A: 1}
	colliderColor = model.Color{R: 1, G: 0.3, B: 0.3, A: 1}
)

// New opens the window and prepares s for display. names maps IDs to the
// object names used in log output and may be nil.
func New(cfg *config.Config, s *scene.Scene, names map[scene.ID]string) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("objects", s.Len()),
	)

	layers, err := cfg.VisibleLayers()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:    cfg,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		hand:   hand.New(math.V3(0, 0, 1), cfg.Scene.HandSpeed),
		scene:  s,
		names:  names,
	}
	v.shots, err = debug.NewScreenshotCapture("screenshots", "xr", cfg.Graphics.ScreenshotFormat)
	if err != nil {
		return nil, err
	}

	// Window first: the renderer needs its OpenGL context.
	v.window, err = window.New(window.Config{
		Title:      "midgard-xr",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fbWidth, fbHeight := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbWidth,
		Height:     fbHeight,
		ClearColor: model.Color{R: 0.1, G: 0.1, B: 0.15, A: 1},
		Sun:        lighting.Sun{Azimuth: cfg.Graphics.SunAzimuth, Elevation: cfg.Graphics.SunElevation},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.VisibleLayers = layers | model.LayerVFX

	marker, err := assets.GenCube(math.V3(0.08, 0.08, 0.08), 0)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.palm, err = model.FromMesh(marker)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.palm.Tint = model.Color{R: 1, G: 0.8, B: 0.2, A: 1}
	v.palm.Layer = model.LayerVFX

	if b, ok := s.Bounds(); ok {
		v.camera.FitToBounds(b)
	}

	logger.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for v.running {
		dt := v.window.DeltaTime()

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.update(dt)
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			v.window.SetTitle(fmt.Sprintf("midgard-xr | %d fps", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F1:
				v.overlay = !v.overlay
			case sdl.SCANCODE_F12:
				v.capture = true
			}
		case input.EventMouseMove:
			if v.input.IsButtonHeld(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.Wheel)
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_RIGHT {
				v.pick(e.MouseX, e.MouseY)
			}
		}
	}
}

// update moves the hand and pushes every object containing the palm.
func (v *Viewer) update(dt float32) {
	v.hand.Update(v.input.HandControls(), dt)
	palm := v.hand.PalmPosition()
	v.palm.SetPosVec(palm)

	for _, id := range v.scene.PickCollider(v.hand.Collider()) {
		logger.Debug("hand collider overlaps", zap.String("object", v.name(id)))
	}

	touched := v.scene.PickPoint(palm)
	v.scene.TranslateAll(touched, math.V3(v.cfg.Scene.PushDistance, 0, 0))
	for _, id := range touched {
		logger.Debug("object pushed", zap.String("object", v.name(id)))
	}
}

func (v *Viewer) render() {
	v.renderer.SetViewProjection(v.camera.ViewProjection(v.renderer.AspectRatio()))

	v.renderer.Begin()
	v.scene.Frame(v.renderer)
	v.palm.Draw(v.renderer)
	if v.overlay {
		v.drawOverlay()
	}
	v.renderer.End()

	if v.capture {
		v.capture = false
		pixels, w, h := v.renderer.ReadPixels()
		name, err := v.shots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
			return
		}
		logger.Info("screenshot saved", zap.String("file", name))
	}
}

// drawOverlay outlines every model's bounds and collider, plus the hand collider.
func (v *Viewer) drawOverlay() {
	var boxes, capsules []math.Vec3
	v.scene.Each(func(_ scene.ID, m *model.Model) bool {
		boxes = append(boxes, debug.BoundsWireframe(m.Bounds(), m.RigidMatrix())...)
		if c, ok := m.Collider(); ok {
			if capsule, isCapsule := c.(collider.Capsule); isCapsule {
				capsules = append(capsules, debug.CapsuleWireframe(capsule, 16)...)
			}
		}
		return true
	})
	capsules = append(capsules, debug.CapsuleWireframe(v.hand.Collider(), 12)...)

	v.renderer.DrawLines(boxes, boundsColor)
	v.renderer.DrawLines(capsules, colliderColor)
}

func (v *Viewer) pick(x, y int) {
	w, h := v.window.GetSize()
	ray := v.camera.Ray(float32(x), float32(y), float32(w), float32(h))
	id, dist, ok := v.scene.PickRay(ray)
	if !ok {
		logger.Debug("pick missed")
		return
	}
	logger.Info("picked", zap.String("object", v.name(id)), zap.Float32("distance", dist))

	// Teleport the hand onto the picked surface.
	v.hand.SetPalmPosition(ray.At(dist))
}

func (v *Viewer) name(id scene.ID) string {
	if n, ok := v.names[id]; ok {
		return n
	}
	return id.String()
}

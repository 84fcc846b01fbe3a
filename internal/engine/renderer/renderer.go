// Package renderer draws a viewer session with OpenGL 4.1: a shadow pass for
// the key light, a cube map environment capture and a lit PBR pass over the
// stage and the car.
package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/config"
	"github.com/Faultbox/carviewer/internal/engine/framebuffer"
	"github.com/Faultbox/carviewer/internal/engine/lighting"
	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/internal/engine/shader"
	"github.com/Faultbox/carviewer/internal/engine/shadow"
	"github.com/Faultbox/carviewer/internal/engine/snapshot"
	"github.com/Faultbox/carviewer/internal/logger"
	"github.com/Faultbox/carviewer/internal/viewer"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Texture units.
const (
	unitShadow = 0
	unitEnv    = 1
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32

	Background       string
	ShadowResolution int32
	EnvironmentSize  int32
}

// ConfigFromGraphics derives renderer settings from the graphics section.
func ConfigFromGraphics(g config.GraphicsConfig) Config {
	return Config{
		Width:            g.Width,
		Height:           g.Height,
		FOV:              g.FOV,
		Near:             g.Near,
		Far:              g.Far,
		Background:       g.Background,
		ShadowResolution: shadow.DefaultResolution,
		EnvironmentSize:  256,
	}
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer draws sessions. It implements viewer.Drawer and
// viewer.EnvironmentCapturer.
type Renderer struct {
	cfg   Config
	rig   *lighting.Rig
	stage lighting.Stage

	lit   *shader.Program
	depth *shader.Program

	shadowMap *shadow.Map
	env       *framebuffer.Cube
	envReady  bool
	offscreen *framebuffer.Framebuffer

	model    *scene.Model
	meshes   map[*scene.Primitive]*gpuMesh
	floor    *gpuMesh
	platform *gpuMesh

	lightViewProj math.Mat4
	lastView      math.Mat4
	lastEye       math.Vec3
}

var (
	_ viewer.Drawer              = (*Renderer)(nil)
	_ viewer.EnvironmentCapturer = (*Renderer)(nil)
)

// New creates a renderer. It must be called after the GL context exists.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		cfg:           cfg,
		rig:           lighting.StudioRig(),
		stage:         lighting.DefaultStage(cfg.Background),
		meshes:        make(map[*scene.Primitive]*gpuMesh),
		lightViewProj: math.Identity(),
		lastView:      math.Identity(),
	}

	var err error
	if r.lit, err = shader.New(litVertexShader, litFragmentShader); err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	if r.depth, err = shader.New(depthVertexShader, depthFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("depth shader: %w", err)
	}

	if r.shadowMap, err = shadow.NewMap(cfg.ShadowResolution); err != nil {
		logger.Warn("shadows disabled", zap.Error(err))
	}
	if r.env, err = framebuffer.NewCube(cfg.EnvironmentSize); err != nil {
		logger.Warn("environment reflections disabled", zap.Error(err))
	}

	r.floor = upload(planeData(r.stage.FloorSize))
	r.platform = upload(discData(r.stage.PlatformRadius, r.stage.PlatformHeight, 64))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.releaseMeshes()
	for _, m := range []*gpuMesh{r.floor, r.platform} {
		if m != nil {
			m.destroy()
		}
	}
	if r.lit != nil {
		r.lit.Delete()
	}
	if r.depth != nil {
		r.depth.Delete()
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.env != nil {
		r.env.Destroy()
	}
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.cfg.Width, r.cfg.Height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

func (r *Renderer) projection() math.Mat4 {
	aspect := float32(r.cfg.Width) / float32(max(r.cfg.Height, 1))
	return math.Perspective(r.cfg.FOV*math32.Pi/180, aspect, r.cfg.Near, r.cfg.Far)
}

// Draw renders the session to the current framebuffer.
func (r *Renderer) Draw(s *viewer.Session, view math.Mat4) error {
	r.sync(s.Model())
	r.lastView = view
	r.lastEye = s.Controls().Position

	items := buildDrawList(s.Model(), r.lastEye)
	r.shadowPass(s.Model(), items)
	r.scenePass(items, view, r.projection(), r.lastEye, true)
	return glError("draw")
}

// CaptureEnvironment renders the stage into the reflection cube map from
// the car's center. The car itself is hidden by the caller.
func (r *Renderer) CaptureEnvironment(s *viewer.Session) error {
	if r.env == nil {
		return nil
	}
	m := s.Model()
	r.sync(m)
	eye := math.V3(0, 0.5, 0)
	if m != nil {
		if b := m.Bounds(); b.Valid() {
			eye = b.Transform(m.Transform()).Center()
		}
	}
	items := buildDrawList(m, eye)
	proj := math.Perspective(math32.Pi/2, 1, 0.1, r.cfg.Far)

	// the lit pass must not sample the cube while it is the render target
	r.envReady = false
	r.env.Render(func(face int) {
		r.scenePass(items, framebuffer.FaceView(face, eye), proj, eye, false)
	})
	r.envReady = true
	return glError("capture environment")
}

// Snapshot renders the last drawn view offscreen and saves it.
func (r *Renderer) Snapshot(s *viewer.Session, c *snapshot.Capture) (string, error) {
	w, h := int32(r.cfg.Width), int32(r.cfg.Height)
	if r.offscreen == nil {
		fb, err := framebuffer.New(w, h)
		if err != nil {
			return "", err
		}
		r.offscreen = fb
	}
	r.offscreen.Resize(w, h)

	items := buildDrawList(s.Model(), r.lastEye)
	restore := r.offscreen.Bind()
	r.scenePass(items, r.lastView, r.projection(), r.lastEye, true)
	restore()

	fw, fh := r.offscreen.Size()
	return c.FromPixels(r.offscreen.ReadPixels(), int(fw), int(fh))
}

// sync drops GPU meshes when the session switched models.
func (r *Renderer) sync(m *scene.Model) {
	if m != r.model {
		r.releaseMeshes()
		r.model = m
		r.envReady = false
	}
}

func (r *Renderer) releaseMeshes() {
	for p, m := range r.meshes {
		m.destroy()
		delete(r.meshes, p)
	}
}

func (r *Renderer) mesh(p *scene.Primitive) *gpuMesh {
	if m, ok := r.meshes[p]; ok {
		return m
	}
	m := upload(primitiveData(p))
	r.meshes[p] = m
	return m
}

func (r *Renderer) shadowPass(m *scene.Model, items []drawItem) {
	if r.shadowMap == nil || m == nil {
		return
	}
	key, ok := r.rig.ShadowCaster()
	if !ok {
		return
	}
	bounds := m.Bounds().Transform(m.Transform())
	r.lightViewProj = shadow.LightMatrix(key.Direction(), bounds)

	r.shadowMap.Begin()
	r.depth.Use()
	r.depth.SetMat4("uLightViewProj", r.lightViewProj)
	for _, it := range items {
		if !it.castShadow {
			continue
		}
		r.depth.SetMat4("uModel", it.world)
		r.mesh(it.prim).draw()
	}
	r.shadowMap.End()
}

// scenePass clears the bound target and draws the stage and items.
func (r *Renderer) scenePass(items []drawItem, view, proj math.Mat4, eye math.Vec3, final bool) {
	bg := r.stage.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	p := r.lit
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	p.SetMat4("uLightViewProj", r.lightViewProj)
	p.SetVec3("uCameraPos", eye.Array())
	p.SetBool("uToneMap", final)
	p.SetFloat("uExposure", r.rig.Exposure)
	r.setLights(p)

	p.SetInt("uShadowMap", unitShadow)
	p.SetInt("uEnvMap", unitEnv)
	hasShadow := r.shadowMap != nil && final
	if r.shadowMap != nil {
		r.shadowMap.BindTexture(unitShadow)
	}
	useEnv := r.env != nil && r.envReady && final
	if useEnv {
		r.env.BindTexture(unitEnv)
	}
	p.SetBool("uUseEnvMap", useEnv)

	identity := math.Identity()
	r.drawSurface(r.floor, identity, stageUniforms(r.stage.Floor), hasShadow)
	r.drawSurface(r.platform, identity, stageUniforms(r.stage.Platform), hasShadow)

	blending := false
	for _, it := range items {
		if it.surface.Transparent && !blending {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			gl.DepthMask(false)
			blending = true
		}
		r.drawSurface(r.mesh(it.prim), it.world, it.surface, hasShadow && it.receiveShadow)
	}
	if blending {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
}

func (r *Renderer) setLights(p *shader.Program) {
	rig := r.rig
	amb := rig.Ambient
	p.SetVec3("uAmbient", [3]float32{amb[0] * rig.AmbientIntensity, amb[1] * rig.AmbientIntensity, amb[2] * rig.AmbientIntensity})
	h := rig.Hemisphere
	p.SetVec3("uHemiSky", [3]float32{h.Sky[0] * h.Intensity, h.Sky[1] * h.Intensity, h.Sky[2] * h.Intensity})
	p.SetVec3("uHemiGround", [3]float32{h.Ground[0] * h.Intensity, h.Ground[1] * h.Intensity, h.Ground[2] * h.Intensity})

	p.SetInt("uDirCount", int32(rig.Count()))
	p.SetVec3Array("uDirDirection", rig.Directions())
	p.SetVec3Array("uDirRadiance", rig.Radiance())
	shadowIdx := int32(-1)
	for i := 0; i < rig.Count(); i++ {
		if rig.Directional[i].CastShadow {
			shadowIdx = int32(i)
			break
		}
	}
	p.SetInt("uShadowLight", shadowIdx)

	sp := rig.Spot
	p.SetVec3("uSpotPosition", sp.Position.Array())
	p.SetVec3("uSpotDirection", sp.Position.Scale(-1).Normalize().Array())
	p.SetVec3("uSpotRadiance", [3]float32{sp.Color[0] * sp.Intensity, sp.Color[1] * sp.Intensity, sp.Color[2] * sp.Intensity})
	inner, outer := sp.CosCutoffs()
	gl.Uniform2f(p.Loc("uSpotCos"), inner, outer)
	p.SetFloat("uSpotDecay", sp.Decay)
	p.SetFloat("uSpotDistance", sp.Distance)
}

func (r *Renderer) drawSurface(m *gpuMesh, world math.Mat4, u surfaceUniforms, receiveShadow bool) {
	p := r.lit
	p.SetMat4("uModel", world)
	p.SetVec3("uBaseColor", u.Color)
	p.SetFloat("uOpacity", u.Opacity)
	p.SetFloat("uRoughness", u.Roughness)
	p.SetFloat("uMetalness", u.Metalness)
	p.SetFloat("uClearcoat", u.Clearcoat)
	p.SetFloat("uClearcoatRoughness", u.ClearcoatRoughness)
	p.SetFloat("uEnvIntensity", u.EnvIntensity)
	p.SetBool("uDoubleSided", u.DoubleSided)
	p.SetBool("uReceiveShadow", receiveShadow)
	m.draw()
}

func upload(d meshData) *gpuMesh {
	m := &gpuMesh{count: int32(len(d.indices))}
	if len(d.vertices) == 0 || len(d.indices) == 0 {
		return m
	}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.vertices)*4, gl.Ptr(d.vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.indices)*4, gl.Ptr(d.indices), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return m
}

func (m *gpuMesh) draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (m *gpuMesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = gpuMesh{}
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
	return nil
}

// Package renderer draws scene models with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-xr/internal/assets"
	"github.com/Faultbox/midgard-xr/internal/engine/lighting"
	"github.com/Faultbox/midgard-xr/internal/engine/model"
	"github.com/Faultbox/midgard-xr/internal/engine/shader"
	"github.com/Faultbox/midgard-xr/internal/logger"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor model.Color
	Sun        lighting.Sun
}

// gpuMesh is an uploaded mesh.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer implements model.Renderer on an OpenGL 4.1 core context.
type Renderer struct {
	config Config

	program  *shader.Program
	lines    *lineBatch
	locMVP   int32
	locModel int32
	locTint  int32
	locLight int32

	viewProj math.Mat4
	meshes   map[*assets.Mesh]*gpuMesh
	skipped  map[model.Asset]bool

	// VisibleLayers filters DrawModel calls; models on no visible layer are skipped.
	VisibleLayers model.Layer

	// LightDir is the world-space direction light travels.
	LightDir math.Vec3

	drawn int
}

var _ model.Renderer = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c.R, c.G, c.B, c.A)

	program, err := shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}

	lines, err := newLineBatch()
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r := &Renderer{
		config:        cfg,
		lines:         lines,
		program:       program,
		locMVP:        program.Uniform("uMVP"),
		locModel:      program.Uniform("uModel"),
		locTint:       program.Uniform("uTint"),
		locLight:      program.Uniform("uLightDir"),
		viewProj:      math.Identity(),
		meshes:        make(map[*assets.Mesh]*gpuMesh),
		skipped:       make(map[model.Asset]bool),
		VisibleLayers: model.LayerAll,
		LightDir:      cfg.Sun.Direction(),
	}
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close releases every uploaded mesh and the shader program.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for mesh, gm := range r.meshes {
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
		delete(r.meshes, mesh)
	}
	r.lines.close()
	r.program.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// AspectRatio returns width / height of the viewport.
func (r *Renderer) AspectRatio() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetViewProjection sets the camera matrix used by subsequent draws.
func (r *Renderer) SetViewProjection(viewProj math.Mat4) {
	r.viewProj = viewProj
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	r.drawn = 0
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	light := r.LightDir.Array()
	gl.Uniform3fv(r.locLight, 1, &light[0])
}

// End finishes the current frame and returns the number of models drawn.
func (r *Renderer) End() int {
	gl.BindVertexArray(0)
	return r.drawn
}

// DrawModel draws one model. Assets other than *assets.Mesh have no GPU
// representation and are skipped.
func (r *Renderer) DrawModel(asset model.Asset, matrix math.Mat4, tint model.Color, layer model.Layer) {
	if !r.VisibleLayers.Overlaps(layer) {
		return
	}
	mesh, ok := asset.(*assets.Mesh)
	if !ok {
		if !r.skipped[asset] {
			r.skipped[asset] = true
			logger.Warn("asset has no GPU representation", zap.String("type", fmt.Sprintf("%T", asset)))
		}
		return
	}

	gm := r.upload(mesh)
	mvp := r.viewProj.Mul(matrix)
	tintArr := tint.Array()
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(r.locModel, 1, false, matrix.Ptr())
	gl.Uniform4fv(r.locTint, 1, &tintArr[0])

	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	r.drawn++
}

// upload returns the GPU copy of mesh, creating it on first use. Meshes are
// immutable, so the copy never goes stale.
func (r *Renderer) upload(mesh *assets.Mesh) *gpuMesh {
	if gm, ok := r.meshes[mesh]; ok {
		return gm
	}

	vertices := mesh.Vertices()
	indices := mesh.Indices()
	gm := &gpuMesh{indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	stride := int32(unsafe.Sizeof(assets.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	if len(indices) > 0 {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	r.meshes[mesh] = gm
	logger.Debug("mesh uploaded",
		zap.String("name", mesh.Name()),
		zap.Uint32("vao", gm.vao),
		zap.Int32("indices", gm.indexCount),
	)
	return gm
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec4 uTint;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	FragColor = vec4(uTint.rgb * (0.3 + 0.7 * diffuse), uTint.a);
}
`

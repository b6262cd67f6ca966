package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-xr/internal/engine/debug"
	"github.com/Faultbox/midgard-xr/internal/engine/model"
	"github.com/Faultbox/midgard-xr/internal/engine/shader"
	"github.com/Faultbox/midgard-xr/pkg/math"
)

// lineBatch streams world-space line lists through one dynamic buffer.
type lineBatch struct {
	program  *shader.Program
	vao, vbo uint32
	capacity int // bytes
}

func newLineBatch() (*lineBatch, error) {
	program, err := shader.NewProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, err
	}
	lb := &lineBatch{program: program}

	gl.GenVertexArrays(1, &lb.vao)
	gl.BindVertexArray(lb.vao)
	gl.GenBuffers(1, &lb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return lb, nil
}

func (lb *lineBatch) draw(points []math.Vec3, viewProj math.Mat4, color model.Color) {
	if len(points) < 2 {
		return
	}
	data := debug.Flatten(points)
	size := len(data) * 4

	lb.program.Use()
	gl.UniformMatrix4fv(lb.program.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	c := color.Array()
	gl.Uniform4fv(lb.program.Uniform("uColor"), 1, &c[0])

	gl.BindVertexArray(lb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)
	if size > lb.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&data[0]), gl.STREAM_DRAW)
		lb.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&data[0]))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(points)))
	gl.BindVertexArray(0)
}

func (lb *lineBatch) close() {
	gl.DeleteVertexArrays(1, &lb.vao)
	gl.DeleteBuffers(1, &lb.vbo)
	lb.program.Delete()
}

// DrawLines draws a world-space line list (pairs of endpoints) on top of the
// scene. Model drawing resumes with the model program on the next DrawModel.
func (r *Renderer) DrawLines(points []math.Vec3, color model.Color) {
	r.lines.draw(points, r.viewProj, color)
	r.program.Use()
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

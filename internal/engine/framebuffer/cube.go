package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/carviewer/pkg/math"
)

// Cube is a cube map color target rendered one face at a time.
type Cube struct {
	fbo      uint32
	texture  uint32
	depthRBO uint32
	size     int32
}

// CubeFace is the camera setup for rendering one cube map face.
type CubeFace struct {
	Target uint32
	Dir    math.Vec3
	Up     math.Vec3
}

// CubeFaces lists the faces in GL order with the up vectors GL expects.
var CubeFaces = [6]CubeFace{
	{gl.TEXTURE_CUBE_MAP_POSITIVE_X, math.V3(1, 0, 0), math.V3(0, -1, 0)},
	{gl.TEXTURE_CUBE_MAP_NEGATIVE_X, math.V3(-1, 0, 0), math.V3(0, -1, 0)},
	{gl.TEXTURE_CUBE_MAP_POSITIVE_Y, math.V3(0, 1, 0), math.V3(0, 0, 1)},
	{gl.TEXTURE_CUBE_MAP_NEGATIVE_Y, math.V3(0, -1, 0), math.V3(0, 0, -1)},
	{gl.TEXTURE_CUBE_MAP_POSITIVE_Z, math.V3(0, 0, 1), math.V3(0, -1, 0)},
	{gl.TEXTURE_CUBE_MAP_NEGATIVE_Z, math.V3(0, 0, -1), math.V3(0, -1, 0)},
}

// FaceView returns the view matrix for face i seen from eye.
func FaceView(i int, eye math.Vec3) math.Mat4 {
	f := CubeFaces[i]
	return math.LookAt(eye, eye.Add(f.Dir), f.Up)
}

// NewCube creates a cube target with size x size faces.
func NewCube(size int32) (*Cube, error) {
	c := &Cube{size: max(size, 1)}

	gl.GenTextures(1, &c.texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.texture)
	for _, f := range CubeFaces {
		gl.TexImage2D(f.Target, 0, gl.RGBA16F, c.size, c.size, 0, gl.RGBA, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.GenFramebuffers(1, &c.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo)
	gl.GenRenderbuffers(1, &c.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, c.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, c.size, c.size)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, c.depthRBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, CubeFaces[0].Target, c.texture, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		c.Destroy()
		return nil, fmt.Errorf("cube framebuffer incomplete: 0x%x", status)
	}
	return c, nil
}

// Render draws every face with draw and regenerates the mip chain.
func (c *Cube) Render(draw func(face int)) {
	restore := bindSaving(c.fbo, c.size, c.size)
	for i, f := range CubeFaces {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, f.Target, c.texture, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		draw(i)
	}
	restore()

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.texture)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

// BindTexture binds the cube map to texture unit GL_TEXTURE0+unit.
func (c *Cube) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.texture)
}

// Destroy releases the GPU resources.
func (c *Cube) Destroy() {
	if c.fbo != 0 {
		gl.DeleteFramebuffers(1, &c.fbo)
		c.fbo = 0
	}
	if c.texture != 0 {
		gl.DeleteTextures(1, &c.texture)
		c.texture = 0
	}
	if c.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &c.depthRBO)
		c.depthRBO = 0
	}
}

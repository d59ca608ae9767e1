// Package framebuffer provides OpenGL framebuffer utilities for offscreen rendering.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer manages an offscreen render target with named float color
// attachments and a depth attachment. Geometry baking reads the color
// attachments back as float data, so they use RGBA32F storage.
type Framebuffer struct {
	fbo      uint32
	textures []uint32
	names    []string
	depthRBO uint32
	width    int32
	height   int32
}

// New creates a framebuffer with one RGBA32F color attachment per name,
// bound in order to COLOR_ATTACHMENT0..n.
func New(width, height int32, attachments []string) (*Framebuffer, error) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if len(attachments) == 0 {
		return nil, fmt.Errorf("framebuffer needs at least one color attachment")
	}

	fb := &Framebuffer{
		width:  width,
		height: height,
		names:  append([]string(nil), attachments...),
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	fb.textures = make([]uint32, len(fb.names))
	gl.GenTextures(int32(len(fb.textures)), &fb.textures[0])

	drawBuffers := make([]uint32, len(fb.textures))
	for i, texture := range fb.textures {
		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, fb.width, fb.height, 0, gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, texture, 0)
		drawBuffers[i] = attachment
	}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	gl.GenRenderbuffers(1, &fb.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// Bind makes this framebuffer the current render target.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Clear clears every color attachment to zero and the depth buffer to the
// given value.
func (fb *Framebuffer) Clear(depth float32) {
	gl.ClearColor(0, 0, 0, 0)
	gl.ClearDepth(float64(depth))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Attachment returns the index of the named color attachment.
func (fb *Framebuffer) Attachment(name string) (int, bool) {
	for i, n := range fb.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// FBO returns the underlying framebuffer object ID.
func (fb *Framebuffer) FBO() uint32 {
	return fb.fbo
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// ReadPixels reads a named color attachment as RGBA float data. Row 0 is
// the bottom row, matching clip-space y=-1.
func (fb *Framebuffer) ReadPixels(name string) ([]float32, error) {
	index, ok := fb.Attachment(name)
	if !ok {
		return nil, fmt.Errorf("framebuffer has no attachment %q", name)
	}

	pixels := make([]float32, fb.width*fb.height*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.ReadBuffer(uint32(gl.COLOR_ATTACHMENT0 + index))

	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.FLOAT, gl.Ptr(pixels))

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	return pixels, nil
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if len(fb.textures) != 0 {
		gl.DeleteTextures(int32(len(fb.textures)), &fb.textures[0])
		fb.textures = nil
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}

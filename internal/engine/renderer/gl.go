package renderer

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/MkFair/rbfx/internal/engine/framebuffer"
	"github.com/MkFair/rbfx/internal/engine/model"
	"github.com/MkFair/rbfx/internal/engine/renderpath"
	"github.com/MkFair/rbfx/internal/engine/shader"
	"github.com/MkFair/rbfx/internal/engine/window"
	"github.com/MkFair/rbfx/internal/logger"
	"github.com/MkFair/rbfx/pkg/math"
)

//go:embed shaders/lightmap_gbuffer.vert
var gbufferVertexSrc string

//go:embed shaders/lightmap_gbuffer.frag
var gbufferFragmentSrc string

// fragOutputNames maps render path output names to fragment shader outputs.
var fragOutputNames = map[string]string{
	"position":       "oPosition",
	"smoothposition": "oSmoothPosition",
	"facenormal":     "oFaceNormal",
	"smoothnormal":   "oSmoothNormal",
}

// GLDevice renders baking scenes through OpenGL. It owns a hidden SDL2
// window for its context and an offscreen float framebuffer per target.
// All methods must be called from the thread that created the device.
type GLDevice struct {
	window *window.Window
	lost   bool

	programs map[string]glProgram
	meshes   map[*model.Model]*glMesh
}

// glProgram is a linked baking program with its uniform locations.
type glProgram struct {
	id                uint32
	uModel            int32
	uLMOffset         int32
	uLightmapLayer    int32
	uLightmapGeometry int32
}

// glMesh is a model uploaded to GPU buffers.
type glMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// NewGLDevice creates an OpenGL device with a hidden window.
func NewGLDevice() (*GLDevice, error) {
	win, err := window.New(window.Config{
		Title:  "glowbake",
		Width:  16,
		Height: 16,
		Hidden: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GL context: %w", err)
	}

	if err := gl.Init(); err != nil {
		win.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	return &GLDevice{
		window:   win,
		programs: make(map[string]glProgram),
		meshes:   make(map[*model.Model]*glMesh),
	}, nil
}

// BeginFrame implements Device.
func (d *GLDevice) BeginFrame() bool {
	return !d.lost
}

// EndFrame implements Device.
func (d *GLDevice) EndFrame() {}

// Close implements Device.
func (d *GLDevice) Close() {
	for _, mesh := range d.meshes {
		mesh.destroy()
	}
	d.meshes = nil
	for _, program := range d.programs {
		gl.DeleteProgram(program.id)
	}
	d.programs = nil
	d.window.Close()
}

// glTarget wraps a float framebuffer as a device target.
type glTarget struct {
	fb     *framebuffer.Framebuffer
	width  int
	height int
}

func (t *glTarget) Width() int  { return t.width }
func (t *glTarget) Height() int { return t.height }
func (t *glTarget) Release() {
	if t.fb != nil {
		t.fb.Destroy()
		t.fb = nil
	}
}

// ScreenBuffer implements Device. The framebuffer is created lazily on the
// first Draw because its attachments depend on the render path.
func (d *GLDevice) ScreenBuffer(width, height int) (Target, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	return &glTarget{width: width, height: height}, nil
}

// Draw implements Device.
func (d *GLDevice) Draw(target Target, path *renderpath.RenderPath, batches []Batch) error {
	t, ok := target.(*glTarget)
	if !ok {
		return fmt.Errorf("target does not belong to the GL device")
	}

	if t.fb == nil {
		fb, err := framebuffer.New(int32(t.width), int32(t.height), path.Outputs)
		if err != nil {
			return err
		}
		t.fb = fb
	}

	program, err := d.program(path)
	if err != nil {
		return err
	}

	t.fb.Bind()
	defer t.fb.Unbind()

	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	t.fb.Clear(path.ClearDepth)

	gl.UseProgram(program.id)
	for _, batch := range batches {
		mesh, err := d.mesh(batch.Model)
		if err != nil {
			return fmt.Errorf("drawing %s: %w", batch.Model.Name(), err)
		}
		if mesh.indexCount == 0 {
			continue
		}

		transform := batch.Transform
		gl.UniformMatrix4fv(program.uModel, 1, false, transform.Ptr())
		lmOffset := batch.Material.Vec4(ParamLMOffset)
		gl.Uniform4f(program.uLMOffset, lmOffset[0], lmOffset[1], lmOffset[2], lmOffset[3])
		gl.Uniform1f(program.uLightmapLayer, batch.Material.Float(ParamLightmapLayer))
		gl.Uniform1f(program.uLightmapGeometry, batch.Material.Float(ParamLightmapGeometry))

		gl.BindVertexArray(mesh.vao)
		gl.DrawElements(gl.TRIANGLES, mesh.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)

	return nil
}

// ReadOutput implements Device.
func (d *GLDevice) ReadOutput(target Target, output string, dst []math.Vec4) ([]math.Vec4, error) {
	t, ok := target.(*glTarget)
	if !ok {
		return nil, fmt.Errorf("target does not belong to the GL device")
	}
	if t.fb == nil {
		return nil, fmt.Errorf("target was never drawn to")
	}

	pixels, err := t.fb.ReadPixels(output)
	if err != nil {
		return nil, err
	}

	// Clip y=-1 reads back as row 0 and maps to v=0, so no flip is needed.
	count := len(pixels) / 4
	if cap(dst) < count {
		dst = make([]math.Vec4, count)
	}
	dst = dst[:count]
	for i := range dst {
		dst[i] = math.Vec4{pixels[i*4], pixels[i*4+1], pixels[i*4+2], pixels[i*4+3]}
	}
	return dst, nil
}

// program returns the baking program for a render path, compiling it on
// first use.
func (d *GLDevice) program(path *renderpath.RenderPath) (glProgram, error) {
	if program, ok := d.programs[path.Name]; ok {
		return program, nil
	}

	fragOutputs := make([]string, len(path.Outputs))
	for i, output := range path.Outputs {
		name, ok := fragOutputNames[output]
		if !ok {
			return glProgram{}, fmt.Errorf("render path %s: unknown output %q", path.Name, output)
		}
		fragOutputs[i] = name
	}

	id, err := shader.CompileProgram(gbufferVertexSrc, gbufferFragmentSrc, fragOutputs...)
	if err != nil {
		return glProgram{}, fmt.Errorf("compiling baking shader: %w", err)
	}

	program := glProgram{
		id:                id,
		uModel:            shader.GetUniform(id, "uModel"),
		uLMOffset:         shader.GetUniform(id, "uLMOffset"),
		uLightmapLayer:    shader.GetUniform(id, "uLightmapLayer"),
		uLightmapGeometry: shader.GetUniform(id, "uLightmapGeometry"),
	}
	d.programs[path.Name] = program
	return program, nil
}

// mesh returns the uploaded form of a model, uploading on first use.
func (d *GLDevice) mesh(m *model.Model) (*glMesh, error) {
	if mesh, ok := d.meshes[m]; ok {
		return mesh, nil
	}

	var view model.View
	if err := view.Import(m); err != nil {
		return nil, err
	}

	// Interleave position, normal and lightmap UV of every geometry's
	// first LOD into one stream.
	var vertices []float32
	var indices []uint32
	for _, geometry := range view.Geometries() {
		if len(geometry.LODs) == 0 {
			continue
		}
		lod := geometry.LODs[0]
		base := uint32(len(vertices) / 8)
		for _, vertex := range lod.Vertices {
			vertices = append(vertices,
				vertex.Position.X, vertex.Position.Y, vertex.Position.Z,
				vertex.Normal.X, vertex.Normal.Y, vertex.Normal.Z,
				vertex.UVs[LightmapUVChannel].X, vertex.UVs[LightmapUVChannel].Y,
			)
		}
		for _, index := range lod.Indices {
			indices = append(indices, base+index)
		}
	}

	mesh := &glMesh{indexCount: int32(len(indices))}
	if len(indices) == 0 {
		d.meshes[m] = mesh
		return mesh, nil
	}

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mesh.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	d.meshes[m] = mesh
	return mesh, nil
}

func (mesh *glMesh) destroy() {
	if mesh.vao != 0 {
		gl.DeleteVertexArrays(1, &mesh.vao)
	}
	if mesh.vbo != 0 {
		gl.DeleteBuffers(1, &mesh.vbo)
	}
	if mesh.ebo != 0 {
		gl.DeleteBuffers(1, &mesh.ebo)
	}
}

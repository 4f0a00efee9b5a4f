// Package scene draws the tessellated terrain with OpenGL.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/seamless-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/seamless-terrain/internal/engine/shader"
	"github.com/Faultbox/seamless-terrain/internal/engine/terrain"
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

const mat4Size = int(unsafe.Sizeof(math.Mat4{}))

// gpuMesh holds the buffers of one library mesh.
type gpuMesh struct {
	vao         uint32
	vbo         uint32
	ebo         uint32
	instanceVBO uint32
	indexCount  int32
}

// TerrainRenderer implements terrain.Submitter: every submission becomes
// one glDrawElementsInstanced call over a tile mesh.
type TerrainRenderer struct {
	log     *zap.Logger
	program *shader.Program

	// Uniform locations
	locViewProj  int32
	locCameraPos int32
	locAmplitude int32
	locFrequency int32
	locTime      int32
	locLowColor  int32
	locHighColor int32
	locFogColor  int32
	locFogFar    int32

	meshes   []gpuMesh
	capacity int

	// Per-frame counters
	draws     int
	instances int
}

// NewTerrainRenderer compiles the terrain program.
func NewTerrainRenderer(log *zap.Logger) (*TerrainRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	program, err := shader.New(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	tr := &TerrainRenderer{log: log, program: program}
	tr.locViewProj = program.Uniform("uViewProj")
	tr.locCameraPos = program.Uniform("uCameraPos")
	tr.locAmplitude = program.Uniform("uAmplitude")
	tr.locFrequency = program.Uniform("uFrequency")
	tr.locTime = program.Uniform("uTime")
	tr.locLowColor = program.Uniform("uLowColor")
	tr.locHighColor = program.Uniform("uHighColor")
	tr.locFogColor = program.Uniform("uFogColor")
	tr.locFogFar = program.Uniform("uFogFar")

	return tr, nil
}

// Load uploads every mesh of lib, replacing any previous upload. capacity
// is the largest instance count a single submission may carry.
func (tr *TerrainRenderer) Load(lib *terrain.Library, capacity int) {
	tr.clearMeshes()

	tr.capacity = capacity
	tr.meshes = make([]gpuMesh, lib.MeshCount())

	var vertices, triangles int
	for _, m := range lib.Meshes() {
		tr.meshes[m.ID] = tr.uploadMesh(m)
		vertices += len(m.Vertices)
		triangles += m.TriangleCount()
	}

	tr.log.Info("tile meshes uploaded",
		zap.Int("meshes", len(tr.meshes)),
		zap.Int("vertices", vertices),
		zap.Int("triangles", triangles),
		zap.Int("instance_cap", capacity),
	)
}

func (tr *TerrainRenderer) uploadMesh(m *terrain.Mesh) gpuMesh {
	var g gpuMesh
	g.indexCount = int32(len(m.Indices))

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Instance matrices, one column per location 2-5
	gl.GenBuffers(1, &g.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, tr.capacity*mat4Size, nil, gl.DYNAMIC_DRAW)
	for i := uint32(0); i < 4; i++ {
		gl.EnableVertexAttribArray(2 + i)
		gl.VertexAttribPointerWithOffset(2+i, 4, gl.FLOAT, false, int32(mat4Size), uintptr(i*16))
		gl.VertexAttribDivisor(2+i, 1)
	}

	gl.BindVertexArray(0)
	return g
}

// BeginFrame binds the program and sets the per-frame uniforms.
func (tr *TerrainRenderer) BeginFrame(viewProj math.Mat4, camera math.Vec3, time float32) {
	tr.draws = 0
	tr.instances = 0

	tr.program.Use()
	gl.UniformMatrix4fv(tr.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(tr.locCameraPos, camera.X, camera.Y, camera.Z)
	gl.Uniform1f(tr.locTime, time)
}

// Submit draws count instances of mesh.
func (tr *TerrainRenderer) Submit(mesh terrain.MeshID, material terrain.Material, transforms []math.Mat4, count int) {
	if int(mesh) >= len(tr.meshes) || count == 0 {
		return
	}
	if count > tr.capacity {
		tr.log.Warn("submission over instance capacity",
			zap.Int("mesh", int(mesh)), zap.Int("count", count), zap.Int("cap", tr.capacity))
		count = tr.capacity
	}

	tr.applyMaterial(material)

	g := &tr.meshes[mesh]
	gl.BindBuffer(gl.ARRAY_BUFFER, g.instanceVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*mat4Size, unsafe.Pointer(&transforms[0]))

	gl.BindVertexArray(g.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil, int32(count))
	gl.BindVertexArray(0)

	tr.draws++
	tr.instances += count
}

func (tr *TerrainRenderer) applyMaterial(material terrain.Material) {
	m, ok := material.(*HeightMaterial)
	if !ok || m == nil {
		m = &defaultMaterial
	}

	gl.Uniform1f(tr.locAmplitude, m.Amplitude)
	gl.Uniform1f(tr.locFrequency, m.Frequency)
	gl.Uniform3f(tr.locLowColor, m.LowColor[0], m.LowColor[1], m.LowColor[2])
	gl.Uniform3f(tr.locHighColor, m.HighColor[0], m.HighColor[1], m.HighColor[2])
	gl.Uniform3f(tr.locFogColor, m.FogColor[0], m.FogColor[1], m.FogColor[2])
	gl.Uniform1f(tr.locFogFar, m.FogFar)

	if m.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// DrawStats returns the draw calls and instances issued since BeginFrame.
func (tr *TerrainRenderer) DrawStats() (draws, instances int) {
	return tr.draws, tr.instances
}

func (tr *TerrainRenderer) clearMeshes() {
	for i := range tr.meshes {
		g := &tr.meshes[i]
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		gl.DeleteBuffers(1, &g.instanceVBO)
	}
	tr.meshes = nil
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearMeshes()
	if tr.program != nil {
		tr.program.Delete()
		tr.program = nil
	}
}

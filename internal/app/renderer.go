package app

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// raylib's fixed clip planes for BeginMode3D
const (
	clipNear = 0.01
	clipFar  = 1000.0
)

// gpuMesh keeps the Go-side buffers alive for as long as the uploaded mesh
type gpuMesh struct {
	mesh      rl.Mesh
	vertices  []float32
	normals   []float32
	texcoords []float32
	seen      bool
}

// Renderer draws a scene.Scene with raylib: a depth pass from the directional
// light followed by a lit pass sampling the shadow map
type Renderer struct {
	lit      rl.Shader
	depth    rl.Shader
	litMat   rl.Material
	depthMat rl.Material

	shadow     rl.RenderTexture2D
	shadowSize int32

	locs   map[string]int32
	meshes map[*scene.Geometry]*gpuMesh
}

// NewRenderer compiles the shaders and allocates the shadow map. It must run
// after the window exists.
func NewRenderer(shadowSize int) *Renderer {
	if shadowSize <= 0 {
		shadowSize = scene.DefaultShadowMapSize
	}
	r := &Renderer{
		lit:        rl.LoadShaderFromMemory(litVertexShader, litFragmentShader),
		depth:      rl.LoadShaderFromMemory(depthVertexShader, depthFragmentShader),
		shadowSize: int32(shadowSize),
		locs:       make(map[string]int32),
		meshes:     make(map[*scene.Geometry]*gpuMesh),
	}
	r.shadow = rl.LoadRenderTexture(r.shadowSize, r.shadowSize)

	r.litMat = rl.LoadMaterialDefault()
	r.litMat.Shader = r.lit
	rl.SetMaterialTexture(&r.litMat, rl.MapMetalness, r.shadow.Texture)

	r.depthMat = rl.LoadMaterialDefault()
	r.depthMat.Shader = r.depth
	return r
}

// Close releases GPU resources
func (r *Renderer) Close() {
	for g, m := range r.meshes {
		rl.UnloadMesh(&m.mesh)
		delete(r.meshes, g)
	}
	rl.UnloadRenderTexture(r.shadow)
	rl.UnloadShader(r.lit)
	rl.UnloadShader(r.depth)
}

// MeshCount returns the number of geometries currently uploaded
func (r *Renderer) MeshCount() int {
	return len(r.meshes)
}

// Draw renders one frame of sc into the current framebuffer
func (r *Renderer) Draw(sc *scene.Scene) {
	for _, m := range r.meshes {
		m.seen = false
	}

	light := sc.Directional
	shadows := light.CastShadow && light.Intensity > 0
	lightVP := mgl64.Ident4()
	if shadows {
		lightVP = r.drawShadowMap(sc)
	}

	rl.ClearBackground(toRLColor(sc.Background))
	rl.BeginMode3D(toRLCamera(sc.Camera))

	r.setLighting(sc, lightVP, shadows)
	sc.Root.WalkVisibleMeshes(func(n *scene.Node, world mgl64.Mat4) {
		gm := r.upload(n.Mesh.Geometry)
		r.setMaterial(n.Mesh)
		rl.DrawMesh(gm.mesh, r.litMat, toRLMatrix(world))
	})

	if sc.Grid.Visible {
		drawGrid(sc.Grid, sc.Ground.Position.Y)
	}
	if sc.Axes.Visible {
		drawAxes(sc.Axes.Size)
	}
	if sc.Wireframe {
		sc.Models.WalkVisibleMeshes(func(n *scene.Node, world mgl64.Mat4) {
			drawWireframe(n.Mesh.Geometry, world)
		})
	}

	rl.EndMode3D()
	r.evict()
}

// drawShadowMap renders light-space depth and returns the matching
// view-projection matrix
func (r *Renderer) drawShadowMap(sc *scene.Scene) mgl64.Mat4 {
	light := sc.Directional
	extent := light.ShadowExtent
	if extent <= 0 {
		extent = scene.GroundSize / 2
	}

	dir := light.Position.Sub(light.Target).Normalize()
	if dir.Length() == 0 {
		dir = geometry.NewVector3(0, 1, 0)
	}
	eye := light.Target.Add(dir.Mul(extent * 2))
	up := geometry.NewVector3(0, 1, 0)
	if math.Abs(dir.Dot(up)) > 0.999 {
		up = geometry.NewVector3(0, 0, 1)
	}

	cam := rl.Camera3D{
		Position:   toRLVector(eye),
		Target:     toRLVector(light.Target),
		Up:         toRLVector(up),
		Fovy:       float32(extent * 2),
		Projection: rl.CameraOrthographic,
	}

	rl.BeginTextureMode(r.shadow)
	rl.ClearBackground(rl.White)
	rl.BeginMode3D(cam)
	sc.Root.WalkVisibleMeshes(func(n *scene.Node, world mgl64.Mat4) {
		if !n.Mesh.CastShadow {
			return
		}
		gm := r.upload(n.Mesh.Geometry)
		rl.DrawMesh(gm.mesh, r.depthMat, toRLMatrix(world))
	})
	rl.EndMode3D()
	rl.EndTextureMode()

	proj := mgl64.Ortho(-extent, extent, -extent, extent, clipNear, clipFar)
	view := mgl64.LookAtV(eye.Vec3(), light.Target.Vec3(), up.Vec3())
	return proj.Mul4(view)
}

func (r *Renderer) setLighting(sc *scene.Scene, lightVP mgl64.Mat4, shadows bool) {
	r.setVec3("viewPos", sc.Camera.Position.Vec3())
	r.setColor("ambientColor", sc.Ambient.Color.Scale(sc.Ambient.Intensity))

	d := sc.Directional
	r.setColor("dirColor", d.Color.Scale(d.Intensity))
	r.setVec3("dirDirection", d.Direction().Vec3())
	rl.SetShaderValueMatrix(r.lit, r.loc("lightVP"), toRLMatrix(lightVP))
	r.setFloat("shadowEnabled", boolFloat(shadows))
	r.setFloat("shadowTexel", 1/float64(r.shadowSize))

	p := sc.Point
	r.setColor("pointColor", p.Color.Scale(p.Intensity))
	r.setVec3("pointPosition", p.Position.Vec3())
	r.setFloat("pointDistance", p.Distance)
	r.setFloat("pointDecay", p.Decay)
}

func (r *Renderer) setMaterial(m *scene.Mesh) {
	r.setFloat("receiveShadow", boolFloat(m.ReceiveShadow))
	switch mat := m.Material.(type) {
	case *scene.StandardMaterial:
		r.setColor("baseColor", mat.Color)
		r.setFloat("roughness", mat.Roughness)
		r.setFloat("metalness", mat.Metalness)
		r.setColor("emissive", mat.Emissive.Scale(mat.EmissiveIntensity))
		r.setFloat("unlit", 0)
	case *scene.BasicMaterial:
		r.setColor("baseColor", mat.Color)
		r.setFloat("unlit", 1)
	default:
		r.setColor("baseColor", scene.White)
		r.setFloat("roughness", 1)
		r.setFloat("metalness", 0)
		r.setColor("emissive", scene.Black)
		r.setFloat("unlit", 0)
	}
}

// upload converts a geometry into a non-indexed raylib mesh on first use.
// raylib indices are 16 bit so indexed geometry is always expanded.
func (r *Renderer) upload(g *scene.Geometry) *gpuMesh {
	if m, ok := r.meshes[g]; ok {
		m.seen = true
		return m
	}

	triangleCount := g.TriangleCount()
	vertexCount := triangleCount * 3
	m := &gpuMesh{
		vertices:  make([]float32, vertexCount*3),
		normals:   make([]float32, vertexCount*3),
		texcoords: make([]float32, vertexCount*2),
		seen:      true,
	}

	idx := 0
	for i := 0; i < triangleCount; i++ {
		tri := g.Triangle(i)
		normals := g.VertexNormals(i)
		for k, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			n := normals[k]
			m.vertices[idx*3+0] = float32(v.X)
			m.vertices[idx*3+1] = float32(v.Y)
			m.vertices[idx*3+2] = float32(v.Z)
			m.normals[idx*3+0] = float32(n.X)
			m.normals[idx*3+1] = float32(n.Y)
			m.normals[idx*3+2] = float32(n.Z)
			idx++
		}
	}

	m.mesh = rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}
	if vertexCount > 0 {
		m.mesh.Vertices = &m.vertices[0]
		m.mesh.Normals = &m.normals[0]
		m.mesh.Texcoords = &m.texcoords[0]
	}
	rl.UploadMesh(&m.mesh, false)

	r.meshes[g] = m
	return m
}

// evict unloads meshes whose geometry was not drawn this frame, so removed
// or reloaded models release their buffers
func (r *Renderer) evict() {
	for g, m := range r.meshes {
		if !m.seen {
			rl.UnloadMesh(&m.mesh)
			delete(r.meshes, g)
		}
	}
}

func (r *Renderer) loc(name string) int32 {
	if l, ok := r.locs[name]; ok {
		return l
	}
	l := rl.GetShaderLocation(r.lit, name)
	r.locs[name] = l
	return l
}

func (r *Renderer) setFloat(name string, v float64) {
	rl.SetShaderValue(r.lit, r.loc(name), []float32{float32(v)}, rl.ShaderUniformFloat)
}

func (r *Renderer) setVec3(name string, v mgl64.Vec3) {
	rl.SetShaderValue(r.lit, r.loc(name), []float32{float32(v[0]), float32(v[1]), float32(v[2])}, rl.ShaderUniformVec3)
}

func (r *Renderer) setColor(name string, c scene.Color) {
	rl.SetShaderValue(r.lit, r.loc(name), c.Floats(), rl.ShaderUniformVec3)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

package viewer

import (
	"math"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// lighting is a per-frame snapshot of the scene lights
type lighting struct {
	ambient  scene.Color
	dirColor scene.Color
	toLight  geometry.Vector3
	point    scene.PointLight
	eye      geometry.Vector3
}

func newLighting(sc *scene.Scene) lighting {
	return lighting{
		ambient:  sc.Ambient.Color.Scale(sc.Ambient.Intensity),
		dirColor: sc.Directional.Color.Scale(sc.Directional.Intensity),
		toLight:  sc.Directional.Direction().Mul(-1),
		point:    *sc.Point,
		eye:      sc.Camera.Position,
	}
}

// shade returns the flat color of a face with normal n centered at p
func (l lighting) shade(m scene.Material, n, p geometry.Vector3) scene.Color {
	base, roughness, metalness, emissive := surface(m)
	if basic, ok := m.(*scene.BasicMaterial); ok {
		return basic.Color
	}

	v := l.eye.Sub(p).Normalize()
	if n.Dot(v) < 0 {
		n = n.Mul(-1)
	}

	color := base.Modulate(l.ambient)
	color = color.Add(l.direct(n, v, l.toLight, l.dirColor, base, roughness, metalness))

	toPoint := l.point.Position.Sub(p)
	dist := toPoint.Length()
	if dist > 0 {
		radiance := l.point.Color.Scale(l.point.Intensity * l.point.Attenuation(dist))
		color = color.Add(l.direct(n, v, toPoint.Mul(1/dist), radiance, base, roughness, metalness))
	}
	return color.Add(emissive)
}

// direct is a Blinn-Phong term whose shininess follows roughness and whose
// specular tint follows metalness
func (l lighting) direct(n, v, dir geometry.Vector3, radiance, base scene.Color, roughness, metalness float64) scene.Color {
	ndl := math.Max(n.Dot(dir), 0)
	if ndl == 0 {
		return scene.Black
	}
	h := dir.Add(v).Normalize()
	shininess := 128 + (2-128)*roughness
	specular := math.Pow(math.Max(n.Dot(h), 0), shininess) * (1 - roughness*0.9)

	diffuse := base.Scale(1 - metalness)
	specColor := scene.Color{R: 0.04, G: 0.04, B: 0.04}.Scale(1 - metalness).Add(base.Scale(metalness))
	return diffuse.Add(specColor.Scale(specular)).Modulate(radiance).Scale(ndl)
}

func surface(m scene.Material) (base scene.Color, roughness, metalness float64, emissive scene.Color) {
	switch mat := m.(type) {
	case *scene.StandardMaterial:
		return mat.Color, mat.Roughness, mat.Metalness, mat.Emissive.Scale(mat.EmissiveIntensity)
	case *scene.BasicMaterial:
		return mat.Color, 1, 0, scene.Black
	}
	return scene.White, 1, 0, scene.Black
}

package scene

import "github.com/philipparndt/modelview/pkg/geometry"

// DefaultShadowMapSize is the directional light's shadow map resolution
const DefaultShadowMapSize = 2048

// AmbientLight lights every surface uniformly
type AmbientLight struct {
	Color     Color
	Intensity float64
}

// DirectionalLight shines from Position towards Target with parallel rays
type DirectionalLight struct {
	Color         Color
	Intensity     float64
	Position      geometry.Vector3
	Target        geometry.Vector3
	CastShadow    bool
	ShadowMapSize int
	// ShadowExtent is the half-size of the orthographic shadow frustum
	ShadowExtent float64
}

// Direction returns the unit vector the light travels along
func (l *DirectionalLight) Direction() geometry.Vector3 {
	return l.Target.Sub(l.Position).Normalize()
}

// PointLight radiates from Position and fades to zero at Distance
type PointLight struct {
	Color     Color
	Intensity float64
	Position  geometry.Vector3
	Distance  float64
	Decay     float64
}

// Attenuation returns the light falloff factor at distance d
func (l *PointLight) Attenuation(d float64) float64 {
	if l.Distance <= 0 {
		return 1
	}
	ratio := d / l.Distance
	cutoff := 1 - ratio*ratio*ratio*ratio
	if cutoff <= 0 {
		return 0
	}
	falloff := cutoff * cutoff
	if l.Decay > 0 {
		denom := d * d
		if denom < 1e-4 {
			denom = 1e-4
		}
		falloff /= denom
	}
	return falloff
}

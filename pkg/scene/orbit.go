package scene

import (
	"math"

	"github.com/philipparndt/modelview/pkg/geometry"
)

const (
	minPolar    = 1e-3
	minDistance = 0.5
	maxDistance = 200
)

// Orbit is a damped orbit controller. Input accumulates deltas which Update
// bleeds into the camera a fraction at a time.
type Orbit struct {
	Target        geometry.Vector3
	DampingFactor float64
	Enabled       bool

	deltaTheta float64
	deltaPhi   float64
	zoom       float64
	pan        geometry.Vector3
}

// NewOrbit creates an enabled controller with three.js-like damping
func NewOrbit() *Orbit {
	return &Orbit{DampingFactor: 0.05, Enabled: true, zoom: 1}
}

// Rotate queues an orbit by the given horizontal and vertical angles
func (o *Orbit) Rotate(left, up float64) {
	if !o.Enabled {
		return
	}
	o.deltaTheta -= left
	o.deltaPhi -= up
}

// Zoom queues a dolly; factors below 1 move the camera closer
func (o *Orbit) Zoom(factor float64) {
	if !o.Enabled || factor <= 0 {
		return
	}
	o.zoom *= factor
}

// Pan queues a target move in camera-relative screen units
func (o *Orbit) Pan(cam *Camera, dx, dy float64) {
	if !o.Enabled {
		return
	}
	offset := cam.Position.Sub(o.Target)
	scale := offset.Length() * math.Tan(cam.FOV/2*math.Pi/180)

	forward := o.Target.Sub(cam.Position).Normalize()
	right := forward.Cross(cam.Up).Normalize()
	up := right.Cross(forward).Normalize()

	o.pan = o.pan.Add(right.Mul(-dx * scale)).Add(up.Mul(dy * scale))
}

// Settled reports whether no queued motion remains
func (o *Orbit) Settled() bool {
	const eps = 1e-6
	return math.Abs(o.deltaTheta) < eps && math.Abs(o.deltaPhi) < eps &&
		math.Abs(o.zoom-1) < eps && o.pan.Length() < eps
}

// Update moves cam towards the queued state and returns true if it moved
func (o *Orbit) Update(cam *Camera) bool {
	offset := cam.Position.Sub(o.Target)
	radius := offset.Length()
	if radius == 0 {
		radius = minDistance
	}
	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))

	damping := o.DampingFactor
	if damping <= 0 || damping > 1 {
		damping = 1
	}

	theta += o.deltaTheta * damping
	phi += o.deltaPhi * damping
	phi = math.Max(minPolar, math.Min(math.Pi-minPolar, phi))

	zoomStep := math.Pow(o.zoom, damping)
	radius = math.Max(minDistance, math.Min(maxDistance, radius*zoomStep))

	o.Target = o.Target.Add(o.pan.Mul(damping))

	moved := !o.Settled()

	o.deltaTheta *= 1 - damping
	o.deltaPhi *= 1 - damping
	o.zoom = math.Pow(o.zoom, 1-damping)
	o.pan = o.pan.Mul(1 - damping)

	sinPhi := math.Sin(phi)
	cam.Position = o.Target.Add(geometry.NewVector3(
		radius*sinPhi*math.Sin(theta),
		radius*math.Cos(phi),
		radius*sinPhi*math.Cos(theta),
	))
	cam.Target = o.Target
	return moved
}

// Reset drops all queued motion and retargets the controller
func (o *Orbit) Reset(target geometry.Vector3) {
	o.Target = target
	o.deltaTheta, o.deltaPhi = 0, 0
	o.zoom = 1
	o.pan = geometry.Vector3{}
}

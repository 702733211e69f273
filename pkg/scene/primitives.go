package scene

import "github.com/philipparndt/modelview/pkg/geometry"

// PlaneGeometry builds a horizontal width x depth plane centered at the origin,
// facing +Y
func PlaneGeometry(width, depth float64) *Geometry {
	hw, hd := width/2, depth/2
	up := geometry.NewVector3(0, 1, 0)
	positions := []geometry.Vector3{
		{X: -hw, Y: 0, Z: -hd},
		{X: -hw, Y: 0, Z: hd},
		{X: hw, Y: 0, Z: hd},
		{X: hw, Y: 0, Z: -hd},
	}
	normals := []geometry.Vector3{up, up, up, up}
	return NewGeometry(positions, normals, []uint32{0, 1, 2, 0, 2, 3})
}

// BoxGeometry builds an axis-aligned box with the given extents, centered at
// the origin
func BoxGeometry(width, height, depth float64) *Geometry {
	hw, hh, hd := width/2, height/2, depth/2
	faces := []struct {
		normal  geometry.Vector3
		corners [4]geometry.Vector3
	}{
		{geometry.NewVector3(1, 0, 0), [4]geometry.Vector3{{X: hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: -hd}, {X: hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: hd}}},
		{geometry.NewVector3(-1, 0, 0), [4]geometry.Vector3{{X: -hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: hd}, {X: -hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: -hd}}},
		{geometry.NewVector3(0, 1, 0), [4]geometry.Vector3{{X: -hw, Y: hh, Z: hd}, {X: hw, Y: hh, Z: hd}, {X: hw, Y: hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd}}},
		{geometry.NewVector3(0, -1, 0), [4]geometry.Vector3{{X: -hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: hd}, {X: -hw, Y: -hh, Z: hd}}},
		{geometry.NewVector3(0, 0, 1), [4]geometry.Vector3{{X: -hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: hd}, {X: hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: hd}}},
		{geometry.NewVector3(0, 0, -1), [4]geometry.Vector3{{X: hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: -hd}}},
	}

	var positions, normals []geometry.Vector3
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(positions))
		for _, c := range f.corners {
			positions = append(positions, c)
			normals = append(normals, f.normal)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewGeometry(positions, normals, indices)
}

package loader

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

// DecodeSTL parses ASCII or binary STL data into a single mesh node
func DecodeSTL(data []byte, name string) (*scene.Node, error) {
	var (
		triangles []geometry.Triangle
		solid     string
		err       error
	)

	if isASCIISTL(data) {
		triangles, solid, err = parseASCIISTL(bytes.NewReader(data))
	} else {
		triangles, solid, err = parseBinarySTL(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("stl contains no facets")
	}

	if name == "" {
		name = solid
	}
	mesh := scene.NewMesh(scene.GeometryFromTriangles(triangles), scene.NewStandardMaterial())
	root := scene.NewNode(name)
	root.Add(scene.NewMeshNode(name, mesh))
	return root, nil
}

// isASCIISTL checks for the "solid" keyword. Some exporters write binary
// files whose header also starts with "solid", so a header whose facet count
// matches the data length wins.
func isASCIISTL(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return false
	}
	if len(data) >= stlHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if int64(len(data)) == stlHeaderSize+4+int64(count)*stlFacetSize {
			return false
		}
	}
	return true
}

func parseASCIISTL(reader io.Reader) ([]geometry.Triangle, string, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		triangles []geometry.Triangle
		name      string
		normal    geometry.Vector3
		vertices  []geometry.Vector3
	)

	parse3 := func(fields []string) (geometry.Vector3, error) {
		var v [3]float64
		for i := range v {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return geometry.Vector3{}, fmt.Errorf("invalid number %q: %w", fields[i], err)
			}
			v[i] = f
		}
		return geometry.NewVector3(v[0], v[1], v[2]), nil
	}

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parse3(fields[2:5])
				if err != nil {
					return nil, "", err
				}
				normal = n
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, "", fmt.Errorf("malformed vertex line")
			}
			v, err := parse3(fields[1:4])
			if err != nil {
				return nil, "", err
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) == 3 {
				triangles = append(triangles, geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return triangles, name, nil
}

func parseBinarySTL(reader io.Reader) ([]geometry.Triangle, string, error) {
	header := make([]byte, stlHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, "", fmt.Errorf("failed to read header: %w", err)
	}
	name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, "", fmt.Errorf("failed to read triangle count: %w", err)
	}

	// Each facet is normal, three vertices and a 2-byte attribute count
	var facet struct {
		Normal, V1, V2, V3 [3]float32
		Attribute          uint16
	}
	vec := func(v [3]float32) geometry.Vector3 {
		return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
	}

	triangles := make([]geometry.Triangle, 0, min(count, 1<<20))
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, "", fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		triangles = append(triangles, geometry.NewTriangle(vec(facet.Normal), vec(facet.V1), vec(facet.V2), vec(facet.V3)))
	}
	return triangles, name, nil
}

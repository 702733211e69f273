package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		raw    string
		remote bool
		path   string
		ext    string
		base   string
	}{
		{"https://example.com/models/Soldier.glb", true, "/models/Soldier.glb", ".glb", "Soldier"},
		{"http://example.com/a/b/part.STL?x=1", true, "/a/b/part.STL", ".stl", "part"},
		{"file:///tmp/model.gltf", false, filepath.FromSlash("/tmp/model.gltf"), ".gltf", "model"},
		{"models/bracket.scad", false, "models/bracket.scad", ".scad", "bracket"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			src, err := ParseSource(tt.raw)
			if err != nil {
				t.Fatalf("ParseSource failed: %v", err)
			}
			if src.Remote != tt.remote {
				t.Errorf("Remote failed: expected %v, got %v", tt.remote, src.Remote)
			}
			if src.Path != tt.path {
				t.Errorf("Path failed: expected %s, got %s", tt.path, src.Path)
			}
			if src.Ext() != tt.ext {
				t.Errorf("Ext failed: expected %s, got %s", tt.ext, src.Ext())
			}
			if src.BaseName() != tt.base {
				t.Errorf("BaseName failed: expected %s, got %s", tt.base, src.BaseName())
			}
		})
	}

	for _, bad := range []string{"", "   ", "https://"} {
		if _, err := ParseSource(bad); err == nil {
			t.Errorf("ParseSource(%q): expected error", bad)
		}
	}
}

func TestLoadRemote(t *testing.T) {
	tris := boxTriangles(geometry.NewVector3(0, 0, 0), geometry.NewVector3(2, 2, 2))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cube.stl":
			_, _ = w.Write(asciiSTL("cube", tris))
		case "/tri.gltf":
			_, _ = w.Write(triangleGLTF(0))
		case "/noext":
			_, _ = w.Write(binarySTL("", tris))
		case "/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New(WithHTTPClient(srv.Client()))
	ctx := context.Background()

	for _, p := range []string{"/cube.stl", "/tri.gltf", "/noext"} {
		m, err := l.Load(ctx, srv.URL+p)
		if err != nil {
			t.Errorf("Load(%s) failed: %v", p, err)
			continue
		}
		if m.Root == nil || !m.Source.Remote {
			t.Errorf("Load(%s) returned incomplete model", p)
		}
	}

	_, err := l.Load(ctx, srv.URL+"/missing.glb")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Op != "fetch" {
		t.Errorf("expected fetch LoadError, got %#v", err)
	}

	if _, err := l.Load(ctx, srv.URL+"/broken"); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestLoadCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithHTTPClient(srv.Client())).Load(ctx, srv.URL+"/slow.stl")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.stl")
	tris := boxTriangles(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1))
	if err := os.WriteFile(path, binarySTL("", tris), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := New().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Name != "box" {
		t.Errorf("Name failed: expected box, got %s", m.Name)
	}
	if m.Source.Remote {
		t.Error("local source reported as remote")
	}

	gltfPath := filepath.Join(dir, "tri.gltf")
	if err := os.WriteFile(gltfPath, triangleGLTF(1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New().Load(context.Background(), "file://"+filepath.ToSlash(gltfPath)); err != nil {
		t.Errorf("Load gltf failed: %v", err)
	}

	_, err = New().Load(context.Background(), filepath.Join(dir, "nope.stl"))
	if !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	_, err = New().Load(context.Background(), filepath.Join(dir, "nope.gltf"))
	if !IsNotFound(err) {
		t.Errorf("expected not found for gltf, got %v", err)
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just text"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New().Load(context.Background(), path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tris := boxTriangles(geometry.NewVector3(-1, 0, 0), geometry.NewVector3(3, 2, 1))
	root, err := DecodeSTL(asciiSTL("b", tris), "")
	if err != nil {
		t.Fatal(err)
	}

	n, err := Normalize(root, 3)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if n.Scale != 0.5 {
		t.Errorf("Scale failed: expected 0.5, got %v", n.Scale)
	}
	expected := geometry.NewVector3(-1*0.5+3, -1*0.5, -0.5*0.5)
	if !root.Position.ApproxEqual(expected, 1e-10) {
		t.Errorf("Position failed: expected %v, got %v", expected, root.Position)
	}

	box := scene.BoundsOf(root)
	if d := box.MaxDimension(); d < 2-1e-10 || d > 2+1e-10 {
		t.Errorf("normalized max dimension failed: expected 2, got %v", d)
	}
	if c := box.Center(); !c.ApproxEqual(geometry.NewVector3(3, 0, 0), 1e-10) {
		t.Errorf("normalized center failed: expected (3,0,0), got %v", c)
	}

	root.WalkMeshes(func(node *scene.Node, _ mgl64.Mat4) {
		if !node.Mesh.CastShadow || !node.Mesh.ReceiveShadow {
			t.Errorf("mesh %s: expected shadows enabled", node.Name)
		}
	})
}

func TestNormalizeDegenerate(t *testing.T) {
	p := geometry.NewVector3(1, 1, 1)
	g := scene.GeometryFromTriangles([]geometry.Triangle{geometry.NewTriangle(geometry.Vector3{}, p, p, p)})
	root := scene.NewNode("point")
	root.Add(scene.NewMeshNode("point", scene.NewMesh(g, scene.NewStandardMaterial())))

	_, err := Normalize(root, 0)
	if !errors.Is(err, ErrDegenerateBounds) {
		t.Errorf("expected ErrDegenerateBounds, got %v", err)
	}

	_, err = Normalize(scene.NewNode("empty"), 0)
	if !errors.Is(err, ErrDegenerateBounds) {
		t.Errorf("expected ErrDegenerateBounds for empty node, got %v", err)
	}
}

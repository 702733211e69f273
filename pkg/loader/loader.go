// Package loader fetches and decodes model files into scene graphs.
//
// Supported formats are glTF 2.0 (.gltf, .glb), STL (ASCII and binary) and
// OpenSCAD sources, which are rendered to STL first. Sources may be http(s)
// URLs, file:// URLs or plain paths.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/philipparndt/modelview/pkg/openscad"
	"github.com/philipparndt/modelview/pkg/scene"
)

// Model is a decoded source ready to be normalized and attached
type Model struct {
	Name   string
	Source Source
	Root   *scene.Node
}

// Loader turns sources into scene graphs
type Loader struct {
	client *http.Client
	scad   *openscad.Renderer
}

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient replaces the default client used for remote sources
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// WithOpenSCAD sets the renderer used for .scad sources
func WithOpenSCAD(r *openscad.Renderer) Option {
	return func(l *Loader) {
		l.scad = r
	}
}

// New creates a loader with a 60s HTTP timeout
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: 60 * time.Second},
		scad:   openscad.NewRenderer("."),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes raw. The returned model is not yet normalized.
func (l *Loader) Load(ctx context.Context, raw string) (*Model, error) {
	src, err := ParseSource(raw)
	if err != nil {
		return nil, &LoadError{Source: raw, Op: "parse", Err: err}
	}

	root, err := l.decodeSource(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Source: raw, Op: "load", Err: err}
	}
	return &Model{Name: src.BaseName(), Source: src, Root: root}, nil
}

func (l *Loader) decodeSource(ctx context.Context, src Source) (*scene.Node, error) {
	name := src.BaseName()

	switch {
	case src.Ext() == ".scad":
		if src.Remote {
			return nil, &LoadError{Source: src.Raw, Op: "render", Err: fmt.Errorf("remote scad sources: %w", ErrUnsupportedFormat)}
		}
		data, err := l.scad.Render(ctx, src.Path)
		if err != nil {
			return nil, &LoadError{Source: src.Raw, Op: "render", Err: err}
		}
		root, err := DecodeSTL(data, name)
		if err != nil {
			return nil, &LoadError{Source: src.Raw, Op: "decode", Err: err}
		}
		return root, nil

	case !src.Remote && (src.Ext() == ".gltf" || src.Ext() == ".glb"):
		// Local glTF may reference sibling .bin and image files
		if err := checkLocal(src.Path); err != nil {
			return nil, &LoadError{Source: src.Raw, Op: "fetch", Err: err}
		}
		root, err := OpenGLTF(src.Path, name)
		if err != nil {
			return nil, &LoadError{Source: src.Raw, Op: "decode", Err: err}
		}
		return root, nil
	}

	data, err := l.Fetch(ctx, src)
	if err != nil {
		return nil, &LoadError{Source: src.Raw, Op: "fetch", Err: err}
	}
	root, err := Decode(data, src.Ext(), name)
	if err != nil {
		return nil, &LoadError{Source: src.Raw, Op: "decode", Err: err}
	}
	return root, nil
}

// Decode picks a decoder by extension, falling back to sniffing the content
func Decode(data []byte, ext, name string) (*scene.Node, error) {
	switch ext {
	case ".stl":
		return DecodeSTL(data, name)
	case ".gltf", ".glb":
		return DecodeGLTF(data, name)
	}

	switch Sniff(data) {
	case FormatGLB, FormatGLTF:
		return DecodeGLTF(data, name)
	case FormatSTL:
		return DecodeSTL(data, name)
	}
	return nil, ErrUnsupportedFormat
}

// Format is a detected container type
type Format int

const (
	FormatUnknown Format = iota
	FormatSTL
	FormatGLTF
	FormatGLB
)

// Sniff guesses the container from the first bytes of data
func Sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	switch {
	case bytes.HasPrefix(data, []byte("glTF")):
		return FormatGLB
	case bytes.HasPrefix(trimmed, []byte("{")) && bytes.Contains(trimmed[:min(len(trimmed), 4096)], []byte(`"asset"`)):
		return FormatGLTF
	case bytes.HasPrefix(trimmed, []byte("solid")):
		return FormatSTL
	case len(data) >= stlHeaderSize+4:
		count := uint32(data[80]) | uint32(data[81])<<8 | uint32(data[82])<<16 | uint32(data[83])<<24
		if int64(len(data)) == stlHeaderSize+4+int64(count)*stlFacetSize {
			return FormatSTL
		}
	}
	return FormatUnknown
}

// IsNotFound reports whether err means the source does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func checkLocal(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

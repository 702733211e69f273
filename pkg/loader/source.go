package loader

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source is a parsed model location
type Source struct {
	Raw    string
	Remote bool
	// Path is the local file path for local sources, the URL path otherwise
	Path string
}

// ParseSource accepts http(s) URLs, file:// URLs and plain paths
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, fmt.Errorf("empty source")
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, fmt.Errorf("invalid url %q: %w", raw, err)
		}
		if u.Host == "" {
			return Source{}, fmt.Errorf("invalid url %q: missing host", raw)
		}
		return Source{Raw: raw, Remote: true, Path: u.Path}, nil

	case strings.HasPrefix(lower, "file://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, fmt.Errorf("invalid url %q: %w", raw, err)
		}
		p := u.Path
		if u.Host != "" && u.Host != "localhost" {
			p = "//" + u.Host + p
		}
		return Source{Raw: raw, Path: filepath.FromSlash(p)}, nil
	}

	return Source{Raw: raw, Path: raw}, nil
}

// Ext returns the lower-cased file extension including the dot
func (s Source) Ext() string {
	if s.Remote {
		return strings.ToLower(path.Ext(s.Path))
	}
	return strings.ToLower(filepath.Ext(s.Path))
}

// BaseName returns the file name without its extension
func (s Source) BaseName() string {
	var base string
	if s.Remote {
		base = path.Base(s.Path)
	} else {
		base = filepath.Base(s.Path)
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "Model"
	}
	return base
}

// Watchable reports whether the source is a local file that can be watched
func (s Source) Watchable() bool {
	return !s.Remote
}

package session

import (
	"path/filepath"

	"github.com/philipparndt/modelview/pkg/loader"
	"github.com/philipparndt/modelview/pkg/openscad"
)

// watch subscribes the entry's local source files to the file watcher
func (s *Session) watch(e *Entry) {
	if s.watcher == nil || !e.Source.Watchable() {
		return
	}

	files := []string{e.Source.Path}
	if e.Source.Ext() == ".scad" {
		deps, err := openscad.NewRenderer(filepath.Dir(e.Source.Path)).ResolveDependencies(e.Source.Path)
		if err != nil {
			s.log.Printf("Failed to resolve dependencies of %s: %v", e.Source.Path, err)
		} else {
			files = deps
		}
	}

	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			files[i] = abs
		}
	}

	if err := s.watcher.Watch(files, s.requestReload); err != nil {
		s.log.Printf("Failed to watch %s: %v", e.Source.Path, err)
		return
	}
	e.watchFiles = files
}

// unwatch drops the entry's files unless another entry still uses them
func (s *Session) unwatch(e *Entry) {
	if s.watcher == nil || len(e.watchFiles) == 0 {
		return
	}

	inUse := make(map[string]bool)
	for _, other := range s.entries {
		if other == e {
			continue
		}
		for _, f := range other.watchFiles {
			inUse[f] = true
		}
	}

	var unused []string
	for _, f := range e.watchFiles {
		if !inUse[f] {
			unused = append(unused, f)
		}
	}
	s.watcher.Unwatch(unused)
	e.watchFiles = nil
}

// requestReload is called from the watcher goroutine
func (s *Session) requestReload(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.reloads {
		if p == path {
			return
		}
	}
	s.reloads = append(s.reloads, path)
}

// Reload reloads the entry with id from its source, keeping its id and
// parameters
func (s *Session) Reload(id int) bool {
	e := s.Entry(id)
	if e == nil || s.disposed {
		return false
	}
	s.pending++
	s.log.Printf("Reloading %s", e.Source.Raw)
	s.start(completion{raw: e.Source.Raw, name: e.label, offset: e.Offset, reload: true, reloadID: e.ID})
	return true
}

func (s *Session) processReloads() {
	s.mu.Lock()
	paths := s.reloads
	s.reloads = nil
	s.mu.Unlock()

	for _, path := range paths {
		for _, e := range s.entries {
			if containsPath(e.watchFiles, path) {
				s.Reload(e.ID)
			}
		}
	}
}

func containsPath(files []string, path string) bool {
	for _, f := range files {
		if f == path {
			return true
		}
	}
	return false
}

// applyReload swaps the entry's graph for the freshly loaded one and
// re-applies its parameters. The new graph keeps its normalization with the
// entry's multiplier on top; re-deriving scale from the live box would undo
// the normalization of the new geometry.
func (s *Session) applyReload(c completion, norm loader.Normalization) {
	e := s.Entry(c.reloadID)
	if e == nil {
		return
	}

	root := c.model.Root
	e.Node.Detach()
	s.Scene.Models.Add(root)
	e.Node = root
	e.Norm = norm

	root.Visible = e.Params.Visible
	root.Position = e.Params.Position
	root.Rotation = e.Params.Rotation
	root.SetUniformScale(norm.Scale * e.Params.Scale)
	s.applyMaterial(e)

	s.log.Printf("Reloaded %q", e.Name)
}

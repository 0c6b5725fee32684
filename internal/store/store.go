// Package store persists the active area between runs as a small TOML file.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"touchbridge/internal/area"
)

// FileName is the area file inside the settings directory.
const FileName = "area.toml"

type document struct {
	Area rectDoc `toml:"area"`
}

type rectDoc struct {
	Left   float64 `toml:"left"`
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
}

// Store reads and writes one area file.
type Store struct {
	path string
}

func New(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// Load returns the saved area. ok is false when no file exists or when it
// lacks any of the four edges.
func (s *Store) Load() (r area.Rect, ok bool, err error) {
	var doc document
	md, err := toml.DecodeFile(s.path, &doc)
	if errors.Is(err, os.ErrNotExist) {
		return area.Rect{}, false, nil
	}
	if err != nil {
		return area.Rect{}, false, fmt.Errorf("couldn't read %s: %w", s.path, err)
	}
	for _, k := range []string{"left", "top", "right", "bottom"} {
		if !md.IsDefined("area", k) {
			return area.Rect{}, false, nil
		}
	}
	r = area.Rect{Left: doc.Area.Left, Top: doc.Area.Top, Right: doc.Area.Right, Bottom: doc.Area.Bottom}
	return r, true, nil
}

// Save replaces the file with r. The file is written next to its final
// location and renamed into place.
func (s *Store) Save(r area.Rect) error {
	doc := document{Area: rectDoc{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}}
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(doc); err != nil {
		return fmt.Errorf("couldn't encode area: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("couldn't create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("couldn't save area: %w", err)
	}
	if _, err := tmp.Write(buffer.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("couldn't save area: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("couldn't save area: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("couldn't save area: %w", err)
	}
	return nil
}

package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/vpxglb/pkg/encoding"
)

// ErrEmpty is returned for a description with no content.
var ErrEmpty = errors.New("table: empty description")

// Load reads a table description and every image it references. Image paths
// are relative to the description file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	t, err := Decode(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return t, nil
}

// Decode parses a table description from r. Image paths are resolved against
// baseDir; an empty baseDir leaves image data unloaded.
func Decode(r io.Reader, baseDir string) (*Table, error) {
	t := Default()
	if err := yaml.NewDecoder(r).Decode(t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	t.Name = encoding.FixName(t.Name)
	for i := range t.Materials {
		t.Materials[i].Name = encoding.FixName(t.Materials[i].Name)
	}

	if baseDir == "" {
		return t, nil
	}
	for i := range t.Images {
		img := &t.Images[i]
		img.Name = encoding.FixName(img.Name)
		if img.Path == "" {
			continue
		}
		p := img.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			// A missing image is an asset defect; the mapper reports it.
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("image %q: %w", img.Name, err)
		}
		img.Data = data
	}
	return t, nil
}

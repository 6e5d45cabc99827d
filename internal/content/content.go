// Package content loads event catalogs from YAML.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/DaanHessen/daybreak/internal/engine"
)

// BootstrapEventID is the first-morning event of the built-in catalog.
const BootstrapEventID = "first_morning"

//go:embed events/*.yaml
var embeddedEventsFS embed.FS

type catalogFile struct {
	Events []engine.EventDefinition `yaml:"events"`
}

// Default loads the catalog shipped with the binary.
func Default() (*engine.Catalog, error) {
	sub, err := fs.Sub(embeddedEventsFS, "events")
	if err != nil {
		return nil, fmt.Errorf("open embedded events: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads every *.yaml file in dir.
func LoadDir(dir string) (*engine.Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every *.yaml file at the root of fsys, in name order, and
// validates the combined event list as one catalog.
func LoadFS(fsys fs.FS) (*engine.Catalog, error) {
	paths, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob event files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no event files found")
	}
	sort.Strings(paths)

	var events []engine.EventDefinition
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read events %s: %w", path, err)
		}
		parsed, err := parseEvents(data)
		if err != nil {
			return nil, fmt.Errorf("parse events %s: %w", path, err)
		}
		events = append(events, parsed...)
	}
	catalog, err := engine.NewCatalog(events)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return catalog, nil
}

func parseEvents(data []byte) ([]engine.EventDefinition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return file.Events, nil
}

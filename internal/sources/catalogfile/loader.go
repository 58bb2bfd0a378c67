package catalogfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

const (
	// SourceEmbedded names the catalog compiled into the binary.
	SourceEmbedded = "embedded"
)

// Loader handles loading and parsing of a catalog YAML file.
// An empty path selects the embedded default catalog.
type Loader struct {
	filePath string
}

// NewLoader creates a new catalog loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the watched file, empty for the embedded catalog.
func (l *Loader) Path() string {
	return l.filePath
}

// Source describes where Load reads from.
func (l *Loader) Source() string {
	if l.filePath == "" {
		return SourceEmbedded
	}
	return l.filePath
}

// Load reads and parses the catalog file
func (l *Loader) Load() (CatalogConfig, error) {
	data := defaultCatalog
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes catalog YAML. Unknown fields are rejected so a typo in a
// field name does not silently drop data.
func Parse(data []byte) (CatalogConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var config CatalogConfig
	if err := dec.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return CatalogConfig{}, nil
		}
		return nil, &domain.CatalogLoadError{Index: -1, Reason: fmt.Sprintf("failed to parse catalog yaml: %v", err)}
	}

	return config, nil
}

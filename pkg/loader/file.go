package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// ErrUnknownFormat is returned for files whose extension is not a supported
// snapshot format.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format identifies a snapshot document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor returns the document format implied by a file name.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// LoadFile reads a JSON or YAML snapshot document.
func LoadFile(path string) (model.Hierarchy, error) {
	return LoadFileAs(path, "")
}

// LoadFileAs reads a snapshot document in the given format. An empty format
// is taken from the file extension.
func LoadFileAs(path string, format Format) (model.Hierarchy, error) {
	if format == "" {
		f, err := FormatFor(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	h, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return h, nil
}

// Parse decodes a snapshot document. Stored group and node statuses are
// ignored; the hierarchy is re-aggregated from its contents.
func Parse(data []byte, format Format) (model.Hierarchy, error) {
	data = stripBOM(data)

	var doc model.Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	stale := doc.StaleStatuses()
	debug.LogIf(stale > 0, "snapshot carried %d stale group/node statuses; re-aggregated", stale)
	return doc.Hierarchy(), nil
}

// Encode writes a hierarchy as a snapshot document, including the derived
// statuses for readers that want them.
func Encode(h model.Hierarchy, format Format) ([]byte, error) {
	doc := model.NewDocument(h)
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
}

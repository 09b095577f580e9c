package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// MaxDocumentSize bounds an uploaded bookmarks document.
const MaxDocumentSize = 1 << 20

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// ErrTooLarge is returned for documents above MaxDocumentSize.
var ErrTooLarge = errors.New("bookmarks document too large")

// Parse decodes a bookmarks.yaml document.
func Parse(data []byte) (BookmarksConfig, error) {
	// Template variables ({{HOMEPAGE_VAR_...}}) carry no value outside the
	// dashboard that defined them
	data = stripTemplateVariables(data)

	var config BookmarksConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}

	return config, nil
}

// Read parses a document from r, rejecting anything over MaxDocumentSize.
func Read(r io.Reader) (BookmarksConfig, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrTooLarge
	}

	return Parse(data)
}

// LoadFile reads and parses a bookmarks.yaml file.
func LoadFile(path string) (BookmarksConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// stripTemplateVariables replaces {{...}} placeholders with an empty string.
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}

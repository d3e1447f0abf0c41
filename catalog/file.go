package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoPath is returned by a FileProvider without a path.
	ErrNoPath = errors.New("catalog: no file path")
	// ErrUnsupportedFormat is returned for file extensions other than
	// .yaml, .yml and .json.
	ErrUnsupportedFormat = errors.New("catalog: unsupported file format")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// shelfFile is the document form: a top-level "books" list.
type shelfFile struct {
	Books Collection `json:"books" yaml:"books"`
}

// FileProvider reads books from a yaml or json file on every fetch.
// The file holds either a list of books or an object with a "books" list.
type FileProvider struct {
	Path string
}

// NewFileProvider creates a provider for path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// FetchItems reads and parses the file.
func (p *FileProvider) FetchItems(ctx context.Context) (Collection, error) {
	if p == nil || p.Path == "" {
		return nil, ErrNoPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decode, err := decoderFor(p.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read books: %w", err)
	}
	books, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(p.Path), err)
	}
	if books == nil {
		books = Collection{}
	}
	return books, nil
}

// Parse decodes books in the given format ("yaml" or "json").
func Parse(format string, data []byte) (Collection, error) {
	decode, err := decoderFor("." + format)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decoderFor(path string) (func([]byte) (Collection, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML, nil
	case ".json":
		return decodeJSON, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func decodeYAML(data []byte) (Collection, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var books Collection
		if err := root.Decode(&books); err != nil {
			return nil, err
		}
		return books, nil
	}
	var doc shelfFile
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Books, nil
}

func decodeJSON(data []byte) (Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var books Collection
		if err := json.Unmarshal(trimmed, &books); err != nil {
			return nil, err
		}
		return books, nil
	}
	var doc shelfFile
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Books, nil
}

// Package export writes contact snapshots to the filesystem.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/phonebook/internal/contacts"
)

// ErrWrite indicates the snapshot could not be written to its destination.
var ErrWrite = errors.New("export: writing")

// ErrRead indicates a snapshot file could not be read or decoded.
var ErrRead = errors.New("export: reading")

// Document is the top-level shape of an export file.
type Document struct {
	Contacts []contacts.Person `json:"contacts" yaml:"contacts"`
}

// Format selects the encoding of an export file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the path extension. Anything that is not
// .yaml or .yml is written as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Writer encodes snapshots and writes them atomically.
type Writer struct {
	indent bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithIndent enables or disables pretty-printed JSON.
func WithIndent(indent bool) Option {
	return func(w *Writer) { w.indent = indent }
}

// NewWriter creates a Writer. JSON is indented unless disabled.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{indent: true}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Write encodes people and replaces the file at path with the result.
// A leading ~ expands to the home directory. The data is written to a
// temporary file beside the destination and renamed into place, so a
// failed write leaves any existing file untouched. An existing file keeps
// its permission bits; a new one is created 0644.
// Returns the expanded path that was written.
func (w *Writer) Write(path string, people []contacts.Person) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}

	data, err := w.encode(FormatFor(p), people)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrWrite, p, err)
	}

	if err := writeAtomic(p, data); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrWrite, p, err)
	}
	return p, nil
}

func (w *Writer) encode(format Format, people []contacts.Person) ([]byte, error) {
	if people == nil {
		people = []contacts.Person{}
	}
	doc := Document{Contacts: people}

	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		if w.indent {
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return nil, err
			}
			return append(data, '\n'), nil
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".phonebook-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Read decodes an export file written by Writer.
func Read(path string) ([]contacts.Person, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, p, err)
	}

	var doc Document
	switch FormatFor(p) {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, p, err)
	}
	return doc.Contacts, nil
}

// Package loader reads Luca documents from JSON or YAML files.
//
// Loading runs in stages. The source is first decoded into generic maps and
// slices, which are checked against the shape of model.Document so that a
// fractional amount or a quoted boolean is reported with its path instead of
// aborting the decode. The checked data is then decoded into model types,
// slash-form dates are optionally rewritten, and the document is optionally
// validated against the schema rules.
//
// Example usage:
//
//	ldr := loader.New(
//		loader.WithSchemaValidation(schema.New()),
//		loader.WithDateNormalization(),
//	)
//	result, err := ldr.Load(ctx, "ledger.json")
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/lucaschema/model"
	"github.com/robinvdvleuten/lucaschema/schema"
	"github.com/robinvdvleuten/lucaschema/telemetry"
)

// Format is the encoding of a Luca document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions other than .json,
// .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DetectFormat picks the format from the file extension. Files without an
// extension, such as stdin, are sniffed: a leading '{' or '[' means JSON,
// anything else YAML.
func DetectFormat(filename string, data []byte) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case "":
		trimmed := bytes.TrimLeft(data, " \t\r\n")
		if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
			return FormatJSON, nil
		}
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

// Loader reads and checks Luca documents.
//
// Configure the loader using functional options passed to New:
//
//	ldr := New(WithSchemaValidation(schema.New()))
type Loader struct {
	// Validator, when set, validates every loaded document.
	Validator *schema.Validator

	// NormalizeDates rewrites YYYY/MM/DD dates to YYYY-MM-DD before
	// validation.
	NormalizeDates bool
}

// Option configures how documents are loaded.
type Option func(*Loader)

// WithSchemaValidation validates loaded documents with v.
func WithSchemaValidation(v *schema.Validator) Option {
	return func(l *Loader) {
		l.Validator = v
	}
}

// WithDateNormalization rewrites fixable slash-form dates in the loaded
// document. The fixes are still listed on the Result.
func WithDateNormalization() Option {
	return func(l *Loader) {
		l.NormalizeDates = true
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is a loaded document.
type Result struct {
	Filename string
	Format   Format
	Document *model.Document

	// Fixes lists the slash-form dates found in the source, in document order.
	Fixes []Fix
}

// Load reads filename and loads it.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes loads a document from data. The filename selects the format and
// names the source in errors.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("loader.load %s", filepath.Base(filename)))
	defer timer.End()
	ctx = telemetry.WithRootTimer(ctx, timer)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := DetectFormat(filename, data)
	if err != nil {
		return nil, err
	}

	raw, err := decodeRaw(ctx, filename, format, data)
	if err != nil {
		return nil, err
	}

	checkTimer := telemetry.StartTimer(ctx, "loader.typecheck")
	err = schema.CheckTypes(model.SchemaLucaSchema, raw, model.Document{})
	checkTimer.End()
	if err != nil {
		return nil, err
	}

	doc, err := decodeDocument(ctx, filename, format, data)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Filename: filename,
		Format:   format,
		Document: doc,
		Fixes:    collectFixes(doc),
	}
	if l.NormalizeDates {
		for _, fix := range result.Fixes {
			fix.apply()
		}
	}

	if l.Validator != nil {
		if err := l.Validator.ValidateContext(ctx, doc); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func decodeRaw(ctx context.Context, filename string, format Format, data []byte) (any, error) {
	timer := telemetry.StartTimer(ctx, "loader.decode")
	defer timer.End()

	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, newDecodeError(filename, format, data, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, &DecodeError{
				Filename: filename,
				Format:   format,
				Line:     lineAt(data, dec.InputOffset()),
				Err:      errors.New("unexpected data after top-level value"),
			}
		}
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, newDecodeError(filename, format, data, err)
		}
		v, err := yamlValue(&root)
		if err != nil {
			return nil, newDecodeError(filename, format, data, err)
		}
		raw = v
	}
	return raw, nil
}

// yamlValue converts a node tree into maps, slices and scalars like decoding
// into an interface does, except that timestamps keep their source text:
// dates and timestamps are strings in a Luca document.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		arr := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case yaml.MappingNode:
		obj := make(map[string]any, len(n.Content)/2)
		var merged []map[string]any
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if n.Content[i].ShortTag() == "!!merge" {
				merged = append(merged, mergeSources(v)...)
				continue
			}
			obj[n.Content[i].Value] = v
		}
		// Explicit keys win over merged ones.
		for _, m := range merged {
			for k, v := range m {
				if _, ok := obj[k]; !ok {
					obj[k] = v
				}
			}
		}
		return obj, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, nil
	}
}

func mergeSources(v any) []map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return []map[string]any{m}
	case []any:
		var out []map[string]any
		for _, item := range m {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	default:
		return nil
	}
}

func decodeDocument(ctx context.Context, filename string, format Format, data []byte) (*model.Document, error) {
	timer := telemetry.StartTimer(ctx, "loader.unmarshal")
	defer timer.End()

	doc := &model.Document{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, newDecodeError(filename, format, data, err)
	}
	return doc, nil
}

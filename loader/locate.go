package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Position is a 1-based location in a source file. Column counts characters.
type Position struct {
	Line   int
	Column int
}

// Locate finds the source position of the value at a field path such as
// transactions[2].amount. When the field itself is absent, the closest
// enclosing value that exists is located instead, so a missing required
// field points at its record.
func Locate(format Format, data []byte, field string) (Position, bool) {
	positions, err := positions(format, data)
	if err != nil {
		return Position{}, false
	}
	for {
		if pos, ok := positions[field]; ok {
			return pos, true
		}
		if field == "" {
			return Position{}, false
		}
		field = parentPath(field)
	}
}

func parentPath(path string) string {
	i := strings.LastIndexAny(path, ".[")
	if i < 0 {
		return ""
	}
	return path[:i]
}

func positions(format Format, data []byte) (map[string]Position, error) {
	out := make(map[string]Position)
	switch format {
	case FormatJSON:
		err := walkJSON(data, func(path string, _ json.Token, start, _ int) {
			if _, seen := out[path]; !seen {
				out[path] = offsetPosition(data, start)
			}
		})
		return out, err
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
		walkYAML(&root, "", func(path string, n *yaml.Node) {
			if _, seen := out[path]; !seen && n.Line > 0 {
				out[path] = Position{Line: n.Line, Column: n.Column}
			}
		})
		return out, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

func offsetPosition(data []byte, offset int) Position {
	lineStart := bytes.LastIndexByte(data[:offset], '\n') + 1
	return Position{
		Line:   bytes.Count(data[:offset], []byte("\n")) + 1,
		Column: utf8.RuneCount(data[lineStart:offset]) + 1,
	}
}

type jsonFrame struct {
	path      string
	object    bool
	key       string
	expectKey bool
	index     int
}

// walkJSON streams the tokens of data and calls fn for every value with its
// path and byte span. Containers are reported with the span of their opening
// delimiter.
func walkJSON(data []byte, fn func(path string, tok json.Token, start, end int)) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []*jsonFrame
	valuePath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.object {
			if top.path == "" {
				return top.key
			}
			return top.path + "." + top.key
		}
		return fmt.Sprintf("%s[%d]", top.path, top.index)
	}
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return err
		}

		if len(stack) > 0 {
			if top := stack[len(stack)-1]; top.object && top.expectKey {
				if key, ok := tok.(string); ok {
					top.key = key
					top.expectKey = false
					continue
				}
			}
		}

		end := int(dec.InputOffset())
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				path := valuePath()
				fn(path, tok, end-1, end)
				stack = append(stack, &jsonFrame{path: path, object: t == '{', expectKey: t == '{'})
			default:
				stack = stack[:len(stack)-1]
				valueDone()
			}
		case string:
			// The raw string may hold escapes, so search back for its quote.
			fn(valuePath(), tok, bytes.LastIndexByte(data[:end-1], '"'), end)
			valueDone()
		default:
			fn(valuePath(), tok, end-len(rawScalar(tok)), end)
			valueDone()
		}
	}
}

func rawScalar(tok json.Token) string {
	switch t := tok.(type) {
	case json.Number:
		return string(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// walkYAML calls fn for every node below n with its field path.
func walkYAML(n *yaml.Node, path string, fn func(string, *yaml.Node)) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			walkYAML(c, path, fn)
		}
	case yaml.MappingNode:
		fn(path, n)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if path != "" {
				key = path + "." + key
			}
			walkYAML(n.Content[i+1], key, fn)
		}
	case yaml.SequenceNode:
		fn(path, n)
		for i, c := range n.Content {
			walkYAML(c, fmt.Sprintf("%s[%d]", path, i), fn)
		}
	case yaml.ScalarNode:
		fn(path, n)
	}
}

// byteColumn converts a 1-based character column into a byte offset within
// line.
func byteColumn(line []byte, column int) int {
	offset := 0
	for i := 1; i < column && offset < len(line); i++ {
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}
	return offset
}

package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/lucaschema/model"
)

// Fix is a slash-form date that can be rewritten to canonical form.
type Fix struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`

	target *string
}

func (f Fix) apply() {
	if f.target != nil {
		*f.target = f.To
	}
}

func collectFixes(doc *model.Document) []Fix {
	var fixes []Fix
	add := func(field string, value *string) {
		if value == nil || !model.IsDateFixable(*value) {
			return
		}
		to, _ := model.NormalizeDate(*value)
		fixes = append(fixes, Fix{Field: field, From: *value, To: to, target: value})
	}

	for i := range doc.Transactions {
		add(fmt.Sprintf("transactions[%d].date", i), &doc.Transactions[i].Date)
	}
	for i := range doc.RecurringTransactions {
		rt := &doc.RecurringTransactions[i]
		add(fmt.Sprintf("recurringTransactions[%d].startOn", i), &rt.StartOn)
		add(fmt.Sprintf("recurringTransactions[%d].endOn", i), rt.EndOn)
	}
	for i := range doc.RecurringTransactionEvents {
		add(fmt.Sprintf("recurringTransactionEvents[%d].expectedDate", i), &doc.RecurringTransactionEvents[i].ExpectedDate)
	}
	return fixes
}

type edit struct {
	field      string
	start, end int
	text       string
}

// Rewrite returns a copy of data with every fix applied in the source text.
// Only the date values change; layout, key order and comments are kept.
func Rewrite(format Format, data []byte, fixes []Fix) ([]byte, error) {
	if len(fixes) == 0 {
		return data, nil
	}

	wanted := make(map[string]Fix, len(fixes))
	for _, f := range fixes {
		wanted[f.Field] = f
	}

	var edits []edit
	var err error
	switch format {
	case FormatJSON:
		edits, err = jsonEdits(data, wanted)
	case FormatYAML:
		edits, err = yamlEdits(data, wanted)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(edits))
	for _, e := range edits {
		found[e.field] = true
	}
	for _, f := range fixes {
		if !found[f.Field] {
			return nil, fmt.Errorf("%s: %q not found in source", f.Field, f.From)
		}
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	var out bytes.Buffer
	out.Grow(len(data))
	last := 0
	for _, e := range edits {
		out.Write(data[last:e.start])
		out.WriteString(e.text)
		last = e.end
	}
	out.Write(data[last:])
	return out.Bytes(), nil
}

// jsonEdits returns the byte span of each wanted date string.
func jsonEdits(data []byte, wanted map[string]Fix) ([]edit, error) {
	var edits []edit
	err := walkJSON(data, func(path string, tok json.Token, start, end int) {
		fix, ok := wanted[path]
		if s, isString := tok.(string); ok && isString && s == fix.From {
			edits = append(edits, edit{field: fix.Field, start: start, end: end, text: `"` + fix.To + `"`})
		}
	})
	return edits, err
}

// yamlEdits walks the node tree of data and returns the span of each wanted
// date scalar.
func yamlEdits(data []byte, wanted map[string]Fix) ([]edit, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	lines := bytes.SplitAfter(data, []byte("\n"))
	offsets := make([]int, len(lines))
	for i := 1; i < len(lines); i++ {
		offsets[i] = offsets[i-1] + len(lines[i-1])
	}

	var edits []edit
	var walkErr error
	walkYAML(&root, "", func(path string, n *yaml.Node) {
		fix, ok := wanted[path]
		if !ok || n.Value != fix.From || walkErr != nil {
			return
		}
		if n.Line < 1 || n.Line > len(lines) {
			walkErr = fmt.Errorf("%s: no source position", path)
			return
		}

		start := offsets[n.Line-1] + byteColumn(lines[n.Line-1], n.Column)
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			start++
		}
		end := start + len(fix.From)
		if end > len(data) || string(data[start:end]) != fix.From {
			walkErr = fmt.Errorf("%s: %q not found at line %d", path, fix.From, n.Line)
			return
		}
		edits = append(edits, edit{field: fix.Field, start: start, end: end, text: fix.To})
	})
	return edits, walkErr
}

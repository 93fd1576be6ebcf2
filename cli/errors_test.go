package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/lucaschema/schema"
)

func TestErrorRenderer_RenderWithSourceContext(t *testing.T) {
	source := `schemaVersion: 2.2.0
transactions:
  - id: 00000000-0000-0000-0000-000000000010
    amount: 10
    date: 2024/01/15
    entryType: DEBIT
`
	problem := schema.FieldError{
		Type:       schema.ValidationErrorType,
		Severity:   schema.SeverityHigh,
		Code:       "INVALID_DATE",
		Field:      "transactions[0].date",
		Message:    "must be a date in YYYY-MM-DD format",
		Suggestion: `Rewrite the date as "2024-01-15" (luca fix does this)`,
	}

	var buf bytes.Buffer
	output := NewErrorRenderer(&buf, "ledger.yaml", []byte(source)).Render(problem)

	lines := strings.Split(output, "\n")
	assert.Equal(t, "ledger.yaml:5:11: transactions[0].date: must be a date in YYYY-MM-DD format [INVALID_DATE]", lines[0])
	assert.Equal(t, `   hint: Rewrite the date as "2024-01-15" (luca fix does this)`, lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, []string{
		"     - id: 00000000-0000-0000-0000-000000000010",
		"       amount: 10",
		"       date: 2024/01/15",
		"             ^",
		"       entryType: DEBIT",
	}, lines[3:8])
}

func TestErrorRenderer_RenderWithoutField(t *testing.T) {
	problem := schema.FieldError{
		Type:     schema.SchemaErrorType,
		Severity: schema.SeverityCritical,
		Code:     "INVALID_SYNTAX",
		Message:  "ledger.json:3: invalid json: unexpected end of JSON input",
	}

	var buf bytes.Buffer
	output := NewErrorRenderer(&buf, "ledger.json", []byte("{")).Render(problem)
	assert.Equal(t, "ledger.json:3: invalid json: unexpected end of JSON input [INVALID_SYNTAX]", output)
}

func TestErrorRenderer_RenderUnlocatedField(t *testing.T) {
	problem := schema.FieldError{Code: "REQUIRED", Field: "accounts[0].name", Message: "is required"}

	var buf bytes.Buffer
	output := NewErrorRenderer(&buf, "ledger.json", []byte(`{"accounts": `)).Render(problem)
	assert.Equal(t, "accounts[0].name: is required [REQUIRED]", output)
}

func TestErrorRenderer_RenderAll(t *testing.T) {
	source := "{\n  \"accounts\": [\n    {\"name\": \"\"}\n  ]\n}\n"
	problems := []schema.FieldError{
		{Code: "REQUIRED", Field: "accounts[0].id", Message: "is required"},
		{Code: "REQUIRED", Field: "accounts[0].name", Message: "is required"},
	}

	var buf bytes.Buffer
	output := NewErrorRenderer(&buf, "ledger.json", []byte(source)).RenderAll(problems)

	assert.True(t, strings.HasPrefix(output, "ledger.json:3:5: accounts[0].id: is required"), output)
	assert.Contains(t, output, "\n\nledger.json:3:14: accounts[0].name: is required")
	assert.False(t, strings.HasSuffix(output, "\n"))

	assert.Equal(t, "", NewErrorRenderer(&buf, "ledger.json", nil).RenderAll(nil))
}

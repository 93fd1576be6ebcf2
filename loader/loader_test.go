package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/lucaschema/model"
	"github.com/robinvdvleuten/lucaschema/schema"
	"github.com/robinvdvleuten/lucaschema/telemetry"
)

const ledgerJSON = `{
  "schemaVersion": "2.2.0",
  "accounts": [
    {"id": "00000000-0000-0000-0000-000000000001", "name": "Checking", "accountType": "ASSET", "isActive": true, "createdAt": "2024-01-01T00:00:00Z"}
  ],
  "transactions": [
    {
      "id": "00000000-0000-0000-0000-000000000010",
      "payorId": "00000000-0000-0000-0000-000000000001",
      "payeeId": "00000000-0000-0000-0000-000000000002",
      "amount": 10050,
      "date": "2024/01/15",
      "description": "Paid on 2024/01/15",
      "transactionState": "COMPLETED",
      "entryType": "DEBIT",
      "journalEntryId": "00000000-0000-0000-0000-000000000099",
      "createdAt": "2024-01-15T10:00:00Z"
    },
    {
      "id": "00000000-0000-0000-0000-000000000011",
      "payorId": "00000000-0000-0000-0000-000000000002",
      "payeeId": "00000000-0000-0000-0000-000000000001",
      "amount": 10050,
      "date": "2024-01-15",
      "transactionState": "COMPLETED",
      "entryType": "CREDIT",
      "journalEntryId": "00000000-0000-0000-0000-000000000099",
      "createdAt": "2024-01-15T10:00:00Z"
    }
  ]
}
`

const ledgerYAML = `# household ledger
schemaVersion: 2.2.0
transactions:
  - id: 00000000-0000-0000-0000-000000000010
    payorId: 00000000-0000-0000-0000-000000000001
    payeeId: 00000000-0000-0000-0000-000000000002
    amount: 2500
    date: 2024/03/01
    transactionState: PENDING
    entryType: DEBIT
    createdAt: 2024-03-01T08:00:00Z
recurringTransactions:
  - id: 00000000-0000-0000-0000-000000000020
    payorId: 00000000-0000-0000-0000-000000000001
    payeeId: 00000000-0000-0000-0000-000000000002
    amount: 5000
    frequency: MONTH
    interval: 1
    startOn: "2024/01/31" # quoted
    endOn: '2024/12/31'
    recurringTransactionState: ACTIVE
    createdAt: 2024-01-01T00:00:00Z
`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		data     string
		want     Format
		wantErr  bool
	}{
		{filename: "ledger.json", want: FormatJSON},
		{filename: "ledger.JSON", want: FormatJSON},
		{filename: "ledger.yaml", want: FormatYAML},
		{filename: "ledger.yml", want: FormatYAML},
		{filename: "<stdin>", data: "  \n{\"schemaVersion\": \"2.2.0\"}", want: FormatJSON},
		{filename: "<stdin>", data: "schemaVersion: 2.2.0", want: FormatYAML},
		{filename: "ledger.csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename, []byte(tt.data))
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "ledger.json", ledgerJSON)

	result, err := New().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, FormatJSON, result.Format)
	assert.Equal(t, path, result.Filename)
	assert.Equal(t, 1, len(result.Document.Accounts))
	assert.Equal(t, 2, len(result.Document.Transactions))
	assert.Equal(t, int64(10050), result.Document.Transactions[0].Amount)
	assert.Equal(t, model.Credit, result.Document.Transactions[1].EntryType)

	// Without normalization the source date is kept.
	assert.Equal(t, "2024/01/15", result.Document.Transactions[0].Date)
	assert.Equal(t, []Fix{{Field: "transactions[0].date", From: "2024/01/15", To: "2024-01-15"}}, stripTargets(result.Fixes))
}

func TestLoadYAML(t *testing.T) {
	result, err := New(WithDateNormalization()).LoadBytes(context.Background(), "ledger.yaml", []byte(ledgerYAML))
	assert.NoError(t, err)
	assert.Equal(t, FormatYAML, result.Format)

	doc := result.Document
	assert.Equal(t, "2.2.0", doc.SchemaVersion)
	assert.Equal(t, "2024-03-01", doc.Transactions[0].Date)
	assert.Equal(t, "2024-03-01T08:00:00Z", doc.Transactions[0].CreatedAt)
	assert.Equal(t, "2024-01-31", doc.RecurringTransactions[0].StartOn)
	assert.Equal(t, "2024-12-31", *doc.RecurringTransactions[0].EndOn)
	assert.Equal(t, 3, len(result.Fixes))
}

func TestLoadWithSchemaValidation(t *testing.T) {
	v := schema.New()

	t.Run("NormalizedDatesPass", func(t *testing.T) {
		ldr := New(WithSchemaValidation(v), WithDateNormalization())
		result, err := ldr.LoadBytes(context.Background(), "ledger.json", []byte(ledgerJSON))
		assert.NoError(t, err)
		assert.Equal(t, "2024-01-15", result.Document.Transactions[0].Date)
	})

	t.Run("SlashDatesFail", func(t *testing.T) {
		ldr := New(WithSchemaValidation(v))
		_, err := ldr.LoadBytes(context.Background(), "ledger.json", []byte(ledgerJSON))
		var verr *schema.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"transactions[0].date"}, verr.Fields())
		assert.Equal(t, `Rewrite the date as "2024-01-15" (luca fix does this)`, verr.Errors[0].Suggestion)
	})
}

func TestLoadYAMLUnquotedTimestamps(t *testing.T) {
	src := `schemaVersion: 2.2.0
defaults: &posting
  payorId: 00000000-0000-0000-0000-000000000001
  payeeId: 00000000-0000-0000-0000-000000000002
  transactionState: COMPLETED
  date: 2023-12-31
transactions:
  - <<: *posting
    id: 00000000-0000-0000-0000-000000000010
    amount: 2500
    date: 2024-01-15
    entryType: DEBIT
    createdAt: 2024-01-15T10:00:00Z
    updatedAt: 2024-01-16T09:30:00+01:00
  - <<: *posting
    id: 00000000-0000-0000-0000-000000000011
    amount: 2500
    entryType: CREDIT
    createdAt: 2024-01-15T10:05:00Z
`
	result, err := New(WithSchemaValidation(schema.New())).LoadBytes(context.Background(), "ledger.yaml", []byte(src))
	assert.NoError(t, err)

	txs := result.Document.Transactions
	assert.Equal(t, 2, len(txs))
	assert.Equal(t, "2024-01-15", txs[0].Date)
	assert.Equal(t, "2024-01-15T10:00:00Z", txs[0].CreatedAt)
	assert.Equal(t, "2024-01-16T09:30:00+01:00", *txs[0].UpdatedAt)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", txs[0].PayorID)

	// Merged keys fill in what the posting leaves out.
	assert.Equal(t, "2023-12-31", txs[1].Date)
	assert.Equal(t, model.StateCompleted, txs[1].TransactionState)
	assert.Equal(t, "2024-01-15T10:05:00Z", txs[1].CreatedAt)
}

func TestLoadTypeErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		src      string
		fields   []string
	}{
		{
			name:     "DecimalAmountJSON",
			filename: "ledger.json",
			src:      `{"schemaVersion": "2.2.0", "transactions": [{"amount": 100.50}]}`,
			fields:   []string{"transactions[0].amount"},
		},
		{
			name:     "DecimalAmountYAML",
			filename: "ledger.yaml",
			src:      "schemaVersion: 2.2.0\ntransactions:\n  - amount: 100.50\n",
			fields:   []string{"transactions[0].amount"},
		},
		{
			name:     "QuotedBoolean",
			filename: "ledger.json",
			src:      `{"accounts": [{"isActive": "yes"}]}`,
			fields:   []string{"accounts[0].isActive"},
		},
		{
			name:     "NotAnObject",
			filename: "ledger.json",
			src:      `[]`,
			fields:   []string{""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().LoadBytes(context.Background(), tt.filename, []byte(tt.src))
			var verr *schema.ValidationError
			assert.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.fields, verr.Fields())
			assert.Equal(t, schema.TypeErrorType, verr.Errors[0].Type)
		})
	}
}

func TestLoadDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		src      string
		line     int
		message  string
	}{
		{
			name:     "JSONSyntax",
			filename: "ledger.json",
			src:      "{\n  \"schemaVersion\": \"2.2.0\",\n}",
			line:     3,
			message:  `ledger.json:3: invalid json: invalid character '}' looking for beginning of object key string`,
		},
		{
			name:     "TrailingData",
			filename: "ledger.json",
			src:      "{}\n{}",
			line:     2,
			message:  "ledger.json:2: invalid json: unexpected data after top-level value",
		},
		{
			name:     "Empty",
			filename: "ledger.json",
			src:      "",
			message:  "ledger.json: invalid json: EOF",
		},
		{
			name:     "YAMLSyntax",
			filename: "ledger.yaml",
			src:      "schemaVersion: [2.2.0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().LoadBytes(context.Background(), tt.filename, []byte(tt.src))
			var derr *DecodeError
			assert.True(t, errors.As(err, &derr), "got %v", err)
			assert.Equal(t, tt.line, derr.Line)
			if tt.message != "" {
				assert.EqualError(t, err, tt.message)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		path := writeFile(t, "ledger.txt", ledgerJSON)
		_, err := New().Load(context.Background(), path)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New().LoadBytes(ctx, "ledger.json", []byte(ledgerJSON))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestLoadTelemetry(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	ldr := New(WithSchemaValidation(schema.New()), WithDateNormalization())
	_, err := ldr.LoadBytes(ctx, "/tmp/ledger.json", []byte(ledgerJSON))
	assert.NoError(t, err)

	var names []string
	for _, span := range collector.Spans() {
		names = append(names, span.Name)
	}
	assert.Equal(t, []string{
		"loader.load ledger.json",
		"loader.decode",
		"loader.typecheck",
		"loader.unmarshal",
		"schema.validate",
	}, names)
}

func stripTargets(fixes []Fix) []Fix {
	out := make([]Fix, len(fixes))
	for i, f := range fixes {
		out[i] = Fix{Field: f.Field, From: f.From, To: f.To}
	}
	return out
}

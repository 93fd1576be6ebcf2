package model

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"Canonical", "2024-01-15", "2024-01-15", true},
		{"Slash", "2024/01/15", "2024-01-15", true},
		{"LeapDay", "2024/02/29", "2024-02-29", true},
		{"NotLeapYear", "2023-02-29", "", false},
		{"ImpossibleDay", "2024-02-30", "", false},
		{"MonthOutOfRange", "2024/13/01", "", false},
		{"DayZero", "2024-01-00", "", false},
		{"DayFirst", "15/01/2024", "", false},
		{"MixedSeparators", "2024-01/15", "", false},
		{"Empty", "", "", false},
		{"WithTime", "2024-01-15T00:00:00Z", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsDateFixable(t *testing.T) {
	assert.True(t, IsDateFixable("2024/03/01"))
	assert.False(t, IsDateFixable("2024-03-01"))
	assert.False(t, IsDateFixable("2024/02/31"))
	assert.False(t, IsDateFixable("yesterday"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-17")
	assert.NoError(t, err)
	assert.Equal(t, time.December, d.Month())

	_, err = ParseDate("2024/12/17")
	assert.Error(t, err)
}

func TestMinorUnits(t *testing.T) {
	t.Run("ToMinorUnits", func(t *testing.T) {
		tests := []struct {
			input string
			want  int64
		}{
			{"100.50", 10050},
			{"0.99", 99},
			{"1.234", 123},
			{"1.235", 124},
			{"-0.005", -1},
			{"-12.5", -1250},
			{"0", 0},
		}
		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				assert.Equal(t, tt.want, ToMinorUnits(decimal.RequireFromString(tt.input)))
			})
		}
	})

	t.Run("FromMinorUnits", func(t *testing.T) {
		assert.True(t, FromMinorUnits(10050).Equal(decimal.RequireFromString("100.5")))
		assert.True(t, FromMinorUnits(1).Equal(decimal.RequireFromString("0.01")))
		assert.True(t, FromMinorUnits(-99).Equal(decimal.RequireFromString("-0.99")))
	})

	t.Run("Format", func(t *testing.T) {
		assert.Equal(t, "100.50", FormatMinorUnits(10050))
		assert.Equal(t, "-0.07", FormatMinorUnits(-7))
	})
}

func TestEnums(t *testing.T) {
	assert.True(t, Debit.IsValid())
	assert.False(t, EntryType("debit").IsValid())
	assert.Equal(t, Credit, Debit.Opposite())
	assert.Equal(t, EntryType("X"), EntryType("X").Opposite())

	assert.Equal(t, 11, len(TransactionStates()))
	assert.True(t, StateUpcoming.IsValid())

	assert.Equal(t, Debit, AccountAsset.NormalBalance())
	assert.Equal(t, Debit, AccountExpense.NormalBalance())
	assert.Equal(t, Credit, AccountLiability.NormalBalance())
	assert.Equal(t, Credit, AccountEquity.NormalBalance())
	assert.Equal(t, Credit, AccountRevenue.NormalBalance())

	assert.Equal(t, []string{"DAY", "WEEK", "MONTH", "YEAR"}, EnumValues("frequency"))
	assert.Zero(t, EnumValues("nope"))

	// Mutating the returned slice must not leak into the package.
	types := EntryTypes()
	types[0] = "BOGUS"
	assert.Equal(t, Debit, EntryTypes()[0])
}

func TestParseSchemaType(t *testing.T) {
	st, err := ParseSchemaType("LUCASCHEMA")
	assert.NoError(t, err)
	assert.Equal(t, SchemaLucaSchema, st)

	_, err = ParseSchemaType("statement")
	assert.EqualError(t, err, `unknown schema type "statement"`)
}

func TestBuilders(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tx := NewTransaction("tx-1", 500, Debit,
		WithJournalEntry("je-1"),
		WithDate(day),
		WithDescription("Rent"),
		WithCategory("cat-1"),
	)
	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, int64(500), tx.Amount)
	assert.True(t, tx.IsDebit())
	assert.False(t, tx.IsCredit())
	assert.Equal(t, "je-1", tx.JournalEntryID)
	assert.Equal(t, "2024-05-01", tx.Date)
	assert.Equal(t, "cat-1", *tx.CategoryID)
	assert.Equal(t, StateCompleted, tx.TransactionState)

	credit := NewCredit(500, "je-1")
	assert.True(t, credit.IsCredit())
	assert.NotEqual(t, "", credit.ID)
	assert.Equal(t, "je-1", credit.JournalEntryID)

	debit := NewDebit(500, "je-1", WithDescription("rent"))
	assert.True(t, debit.IsDebit())
	assert.Equal(t, "je-1", debit.JournalEntryID)
	assert.Equal(t, "rent", debit.Description)

	acct := NewAccount("a-1", "Cash", WithParent("root"), WithAccountType(AccountLiability), Inactive())
	assert.Equal(t, "root", acct.ParentAccountID)
	assert.False(t, acct.IsRoot())
	assert.False(t, acct.IsActive)
	assert.Equal(t, Credit, acct.NormalBalance())
}

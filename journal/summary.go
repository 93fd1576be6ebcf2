package journal

// EntrySummary is the serializable form of an Entry.
type EntrySummary struct {
	Key      string `json:"journalEntryId"`
	Postings int    `json:"postings"`
	Result
	Error string `json:"error,omitempty"`
}

// Summary is the serializable form of a Report.
type Summary struct {
	Valid        bool           `json:"isValid"`
	EntryCount   int            `json:"entryCount"`
	InvalidCount int            `json:"invalidCount"`
	Entries      []EntrySummary `json:"entries"`
}

// Summary flattens the report for JSON output.
func (r *Report) Summary() Summary {
	s := Summary{
		Valid:      true,
		EntryCount: len(r.entries),
		Entries:    make([]EntrySummary, len(r.entries)),
	}
	for i, e := range r.entries {
		s.Entries[i] = EntrySummary{
			Key:      e.Key,
			Postings: len(e.Postings),
			Result:   e.Result,
			Error:    e.Result.Message(),
		}
		if !e.Result.Valid {
			s.Valid = false
			s.InvalidCount++
		}
	}
	return s
}

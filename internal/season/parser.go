package season

import (
	"encoding/csv"
	"io"
	"strings"
)

// Record is one CSV row keyed by column name, exactly as the header spelled
// it. Snapshots from different eras disagree on naming, so lookups go through
// the field-candidate chains in normalize.go rather than fixed keys.
type Record map[string]string

// ParseCSV turns raw delimited text into header-keyed records. The first row
// is the header; rows that are entirely blank are skipped; missing trailing
// fields map to empty strings. Parsing is best-effort: malformed rows are
// dropped and empty input yields no records, never an error.
func ParseCSV(text string) []Record {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}
	for i := range header {
		header[i] = cleanCell(header[i])
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Best-effort: skip the offending row and keep going.
			continue
		}

		rec := make(Record, len(header))
		blank := true
		for i, name := range header {
			value := ""
			if i < len(fields) {
				value = strings.TrimSpace(fields[i])
			}
			if value != "" {
				blank = false
			}
			rec[name] = value
		}
		if blank {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// cleanCell strips a UTF-8 BOM and surrounding whitespace. Some exports carry
// a BOM on the first header cell.
func cleanCell(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
}

package csvcodec

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/octobees/battlecards/internal/entity"
)

// Row is one parsed data line keyed by header column.
type Row map[string]string

// FormatError indicates that the file as a whole cannot be imported.
type FormatError struct {
	Missing    []string
	Unexpected []string
	Reason     string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing columns: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "unexpected columns: "+strings.Join(e.Unexpected, ", "))
	}
	return "csv header mismatch: " + strings.Join(parts, "; ")
}

const byteOrderMark = "\uFEFF"

// Parse splits text into rows keyed by the header line. The header must hold
// exactly the Manifest columns in any order. Lines whose field count differs
// from the header are skipped without error.
func Parse(text string) ([]Row, error) {
	lines := nonBlankLines(strings.TrimPrefix(text, byteOrderMark))
	if len(lines) == 0 {
		return nil, &FormatError{Reason: "csv file is empty"}
	}

	header := SplitLine(lines[0])
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := SplitLine(line)
		if len(values) != len(header) {
			continue
		}
		row := make(Row, len(header))
		for i, column := range header {
			row[column] = values[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func validateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[column] = true
	}
	expected := make(map[string]bool, len(Manifest))
	for _, column := range Manifest {
		expected[column] = true
	}

	var missing, unexpected []string
	for _, column := range Manifest {
		if !present[column] {
			missing = append(missing, column)
		}
	}
	for _, column := range header {
		if !expected[column] {
			unexpected = append(unexpected, column)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return &FormatError{Missing: missing, Unexpected: unexpected}
	}
	return nil
}

// SplitLine tokenizes a single line. Fields may be wrapped in double quotes, a
// doubled quote inside a quoted field is a literal quote and commas inside
// quotes do not separate fields. Whitespace outside quotes is trimmed.
func SplitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
		quoted   bool
		// quoted text spans current[open:keep] and is kept verbatim
		open, keep int
	)

	flush := func() {
		value := current.String()
		if inQuotes {
			keep = len(value)
		}
		if quoted {
			value = strings.TrimLeftFunc(value[:open], unicode.IsSpace) +
				value[open:keep] +
				strings.TrimRightFunc(value[keep:], unicode.IsSpace)
		} else {
			value = strings.TrimSpace(value)
		}
		fields = append(fields, value)
		current.Reset()
		quoted, open, keep = false, 0, 0
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes:
			if i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
			keep = current.Len()
		case c == '"':
			if !quoted {
				if strings.TrimSpace(current.String()) == "" {
					current.Reset()
				}
				open = current.Len()
			}
			inQuotes, quoted = true, true
		case c == ',' && !inQuotes:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return fields
}

// Convert builds a Battlecard from a parsed row. Missing columns read as
// empty, structured columns are decoded best-effort and the ID is left empty.
func Convert(row Row) (entity.Battlecard, error) {
	if row == nil {
		return entity.Battlecard{}, fmt.Errorf("row has no values")
	}
	var card entity.Battlecard
	for _, f := range entity.Fields {
		f.SetFlat(&card, row[f.Column])
	}
	card.ID = ""
	card.EnsureDefaults()
	return card, nil
}

// Serialize renders a header followed by rows with every field quote-wrapped
// and inner quotes doubled.
func Serialize(columns []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, quoteAll(columns))
	for _, row := range rows {
		lines = append(lines, quoteAll(row))
	}
	return strings.Join(lines, "\n")
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"etfgeo/internal/errors"
	"etfgeo/pkg/contracts/domain"
)

const (
	encodingUTF8   = "utf-8"
	encodingLatin1 = "latin-1"

	// maxMetadataLines bounds how many leading non-delimited lines the
	// manual fallback strips (fund name, export date and similar noise
	// that providers put above the header).
	maxMetadataLines = 10

	// sampleLines bounds separator-consistency sampling in the manual
	// fallback.
	sampleLines = 20
)

// Attempt order: all separators against UTF-8 before falling back to
// Latin-1. The first combination that validates wins.
var (
	candidateSeparators = []rune{',', ';', '\t'}
	candidateEncodings  = []string{encodingUTF8, encodingLatin1}
)

// Parser reads a delimited holdings file and produces a RawTable.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new holdings file parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse reads the file at path, trying each (encoding, separator)
// combination in priority order and falling back to manual line splitting.
// It fails with a ParseError carrying every attempt tried when nothing
// yields a table with at least two columns and one data row.
func (p *Parser) Parse(ctx context.Context, path string) (*domain.RawTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to read input file", err)
	}

	var attempts []errors.ParseAttempt
	for _, enc := range candidateEncodings {
		text, decErr := decode(raw, enc)
		if decErr != nil {
			attempts = append(attempts, errors.ParseAttempt{
				Separator: "*", Encoding: enc, Reason: decErr.Error(),
			})
			continue
		}
		for _, sep := range candidateSeparators {
			table, reason := p.tryStructured(text, sep)
			if table != nil {
				table.Separator = sep
				table.Encoding = enc
				p.logger.InfoContext(ctx, "parsed holdings file",
					slog.String("path", path),
					slog.String("separator", string(sep)),
					slog.String("encoding", enc),
					slog.Int("columns", len(table.Columns)),
					slog.Int("rows", len(table.Rows)))
				return table, nil
			}
			attempts = append(attempts, errors.ParseAttempt{
				Separator: string(sep), Encoding: enc, Reason: reason,
			})
		}
	}

	p.logger.WarnContext(ctx, "structured parsing failed, trying manual fallback",
		slog.String("path", path),
		slog.Int("attempts", len(attempts)))

	table, reason := p.manualFallback(raw)
	if table == nil {
		attempts = append(attempts, errors.ParseAttempt{
			Separator: "guessed", Encoding: "auto", Reason: reason,
		})
		return nil, errors.NewParseError(path, attempts)
	}

	p.logger.InfoContext(ctx, "manual fallback produced a table",
		slog.String("path", path),
		slog.String("separator", string(table.Separator)),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)),
		slog.Int("unaligned_rows", table.UnalignedRows))
	return table, nil
}

// tryStructured parses text with encoding/csv using the given separator.
// The second return value explains the failure when the table is nil.
func (p *Parser) tryStructured(text string, sep rune) (*domain.RawTable, string) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err.Error()
	}
	if len(records) == 0 {
		return nil, "empty file"
	}

	header := trimFields(records[0])
	if len(header) < 2 {
		return nil, fmt.Sprintf("only %d column(s)", len(header))
	}
	table := buildTable(header, records[1:])
	if len(table.Rows) == 0 {
		return nil, "no data rows"
	}
	return table, ""
}

// manualFallback splits raw lines by hand: it strips a bounded number of
// leading lines that contain no candidate separator, guesses the separator
// with the most consistent per-line count, and pads or truncates each row
// to the header width.
func (p *Parser) manualFallback(raw []byte) (*domain.RawTable, string) {
	enc := encodingUTF8
	text, err := decode(raw, encodingUTF8)
	if err != nil {
		enc = encodingLatin1
		text, _ = decode(raw, encodingLatin1)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, "empty file"
	}

	skipped := 0
	for len(lines) > 0 && skipped < maxMetadataLines && !containsAnySeparator(lines[0]) {
		lines = lines[1:]
		skipped++
	}
	if len(lines) == 0 {
		return nil, "no delimited lines found"
	}

	sep, ok := guessSeparator(lines)
	if !ok {
		return nil, "no consistent separator"
	}

	header := trimFields(strings.Split(lines[0], string(sep)))
	if len(header) < 2 {
		return nil, fmt.Sprintf("only %d column(s) with guessed separator %q", len(header), string(sep))
	}

	records := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		records = append(records, strings.Split(line, string(sep)))
	}
	table := buildTable(header, records)
	if len(table.Rows) == 0 {
		return nil, "no data rows"
	}
	table.Separator = sep
	table.Encoding = enc
	return table, ""
}

// buildTable maps records onto the header, padding or truncating rows whose
// field count does not match. Fully empty rows are skipped.
func buildTable(header []string, records [][]string) *domain.RawTable {
	columns := uniqueColumns(header)
	table := &domain.RawTable{Columns: columns}

	for _, record := range records {
		empty := true
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		if len(record) != len(columns) {
			table.UnalignedRows++
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// uniqueColumns trims header cells and disambiguates duplicates or blanks
// so every column has a distinct non-empty name.
func uniqueColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name] = 1
		columns = append(columns, name)
	}
	return columns
}

// decode converts raw bytes to a string in the named encoding. For UTF-8
// the bytes are validated and a leading BOM stripped; Latin-1 decoding
// cannot fail.
func decode(raw []byte, encoding string) (string, error) {
	switch encoding {
	case encodingUTF8:
		raw = trimBOM(raw)
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("input is not valid UTF-8")
		}
		return string(raw), nil
	case encodingLatin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", encoding)
	}
}

func trimBOM(raw []byte) []byte {
	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		return raw[3:]
	}
	return raw
}

func trimFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func containsAnySeparator(line string) bool {
	for _, sep := range candidateSeparators {
		if strings.ContainsRune(line, sep) {
			return true
		}
	}
	return false
}

// guessSeparator picks the candidate whose occurrence count is most
// consistent across a sample of lines. Ties keep the higher-priority
// candidate.
func guessSeparator(lines []string) (rune, bool) {
	sample := lines
	if len(sample) > sampleLines {
		sample = sample[:sampleLines]
	}

	bestScore := 0
	var best rune
	for _, sep := range candidateSeparators {
		counts := make(map[int]int)
		for _, line := range sample {
			counts[strings.Count(line, string(sep))]++
		}
		// Score is the number of sample lines sharing the most common
		// non-zero occurrence count.
		score := 0
		for count, freq := range counts {
			if count > 0 && freq > score {
				score = freq
			}
		}
		if score > bestScore {
			bestScore = score
			best = sep
		}
	}
	if bestScore == 0 {
		return 0, false
	}
	return best, true
}

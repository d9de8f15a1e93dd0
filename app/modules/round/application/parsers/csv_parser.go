package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVParser parses CSV scorecard files
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV data and returns a ParsedScorecard
func (p *CSVParser) Parse(data []byte) (*ParsedScorecard, error) {
	cleaned, delimiter, err := preprocessCSVData(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, record)
	}

	card, err := parseRows(records)
	if err != nil {
		return nil, fmt.Errorf("csv scorecard: %w", err)
	}
	return card, nil
}

// preprocessCSVData strips a UTF-8 BOM, normalizes line endings and picks
// comma or tab as the delimiter by counting them in the first lines.
func preprocessCSVData(data []byte) (string, rune, error) {
	if len(data) == 0 {
		return "", ',', errors.New("empty CSV data")
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	cleaned := strings.ReplaceAll(string(data), "\r\n", "\n")

	lines := strings.SplitN(cleaned, "\n", 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}
	commaCount, tabCount := 0, 0
	for _, line := range lines {
		commaCount += strings.Count(line, ",")
		tabCount += strings.Count(line, "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}
	return cleaned, delimiter, nil
}

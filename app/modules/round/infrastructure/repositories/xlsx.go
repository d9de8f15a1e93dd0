package rounddb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// LedgerSheet is the worksheet holding the ledger rows.
const LedgerSheet = "Ledger"

// LedgerHeader is the header row of the ledger sheet. Column order is fixed.
var LedgerHeader = []string{
	"Week", "Player", "Pars", "Birdies", "Eagles",
	"Gross_Score", "Handicap", "Net_Score", "DNF", "PIN", "Submitted_At",
}

const (
	colWeek = iota
	colPlayer
	colPars
	colBirdies
	colEagles
	colGross
	colHandicap
	colNet
	colDNF
	colPIN
	colSubmittedAt
)

// XLSXLedger stores the ledger in a single spreadsheet file.
// A missing file reads as an empty ledger and is created on first write.
type XLSXLedger struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewXLSXLedger returns a ledger backed by the workbook at path.
func NewXLSXLedger(path string, logger *slog.Logger) *XLSXLedger {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXLedger{path: path, logger: logger}
}

func (l *XLSXLedger) ReadAll(ctx context.Context) ([]rounddomain.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load()
	if err != nil {
		return nil, err
	}
	sortRecords(records)
	return records, nil
}

func (l *XLSXLedger) Upsert(ctx context.Context, record rounddomain.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].Key() == record.Key() {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	sortRecords(records)

	if err := l.save(records); err != nil {
		return err
	}
	l.logger.DebugContext(ctx, "ledger row written",
		slog.String("path", l.path),
		slog.Int("week", record.Week),
		slog.String("player", record.Player),
		slog.Bool("replaced", replaced),
	)
	return nil
}

func (l *XLSXLedger) load() ([]rounddomain.RoundRecord, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("rounddb.xlsx open %s: %w: %w", l.path, ErrLedgerUnavailable, err)
	}
	defer f.Close()

	rows, err := f.GetRows(LedgerSheet)
	if err != nil {
		return nil, fmt.Errorf("rounddb.xlsx read sheet %s: %w: %w", LedgerSheet, ErrLedgerUnavailable, err)
	}
	return parseRows(rows)
}

// parseRows types the sheet rows once. The first row is the header.
func parseRows(rows [][]string) ([]rounddomain.RoundRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	records := make([]rounddomain.RoundRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			// i+2: one for the header, one for 1-based sheet rows.
			return nil, fmt.Errorf("rounddb.xlsx row %d: %w: %w", i+2, ErrCorruptRow, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (rounddomain.RoundRecord, error) {
	cell := func(col int) string {
		if col < len(row) {
			return strings.TrimSpace(row[col])
		}
		return ""
	}
	var err error
	intCell := func(col int) int {
		v := cell(col)
		if v == "" || err != nil {
			return 0
		}
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("column %s: %w", LedgerHeader[col], perr)
		}
		return n
	}
	decCell := func(col int) decimal.Decimal {
		v := cell(col)
		if v == "" || err != nil {
			return decimal.Zero
		}
		d, derr := decimal.NewFromString(v)
		if derr != nil {
			err = fmt.Errorf("column %s: %w", LedgerHeader[col], derr)
		}
		return d
	}

	rec := rounddomain.RoundRecord{
		Week:     intCell(colWeek),
		Player:   rounddomain.NormalizePlayer(cell(colPlayer)),
		Pars:     intCell(colPars),
		Birdies:  intCell(colBirdies),
		Eagles:   intCell(colEagles),
		Gross:    intCell(colGross),
		Handicap: decCell(colHandicap),
		Net:      decCell(colNet),
		PIN:      cell(colPIN),
	}
	if err != nil {
		return rounddomain.RoundRecord{}, err
	}
	if rec.Player == "" {
		return rounddomain.RoundRecord{}, errors.New("column Player: empty")
	}

	if v := cell(colDNF); v != "" {
		dnf, perr := strconv.ParseBool(v)
		if perr != nil {
			return rounddomain.RoundRecord{}, fmt.Errorf("column DNF: %w", perr)
		}
		rec.DNF = dnf
	}
	if v := cell(colSubmittedAt); v != "" {
		ts, perr := time.Parse(time.RFC3339Nano, v)
		if perr != nil {
			return rounddomain.RoundRecord{}, fmt.Errorf("column Submitted_At: %w", perr)
		}
		rec.SubmittedAt = ts
	}
	return rec, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// save rewrites the whole workbook into a temp file next to path and renames
// it over the original.
func (l *XLSXLedger) save(records []rounddomain.RoundRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LedgerSheet); err != nil {
		return fmt.Errorf("rounddb.xlsx rename sheet: %w: %w", ErrLedgerUnavailable, err)
	}
	header := make([]interface{}, len(LedgerHeader))
	for i, h := range LedgerHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(LedgerSheet, "A1", &header); err != nil {
		return fmt.Errorf("rounddb.xlsx header: %w: %w", ErrLedgerUnavailable, err)
	}
	for i, rec := range records {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("rounddb.xlsx cell: %w: %w", ErrLedgerUnavailable, err)
		}
		row := recordRow(rec)
		if err := f.SetSheetRow(LedgerSheet, cellRef, &row); err != nil {
			return fmt.Errorf("rounddb.xlsx row %d: %w: %w", i+2, ErrLedgerUnavailable, err)
		}
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.xlsx")
	if err != nil {
		return fmt.Errorf("rounddb.xlsx temp file: %w: %w", ErrLedgerUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("rounddb.xlsx write: %w: %w", ErrLedgerUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("rounddb.xlsx close: %w: %w", ErrLedgerUnavailable, err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		return fmt.Errorf("rounddb.xlsx rename: %w: %w", ErrLedgerUnavailable, err)
	}
	return nil
}

func recordRow(rec rounddomain.RoundRecord) []interface{} {
	submitted := ""
	if !rec.SubmittedAt.IsZero() {
		submitted = rec.SubmittedAt.UTC().Format(time.RFC3339Nano)
	}
	return []interface{}{
		rec.Week,
		rec.Player,
		rec.Pars,
		rec.Birdies,
		rec.Eagles,
		rec.Gross,
		rec.Handicap.String(),
		rec.Net.String(),
		strings.ToUpper(strconv.FormatBool(rec.DNF)),
		rec.PIN,
		submitted,
	}
}

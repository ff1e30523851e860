package dataprocessing

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"littercli/internal/errors"
	"littercli/pkg/contracts/domain"
)

// Raw column names of the field sheet. Header matching is case-insensitive
// and tolerant of surrounding whitespace, but the names themselves are a
// fixed contract: a sheet missing any of them fails loudly before any
// processing.
const (
	ColPlot     = "plot_code"
	ColYear     = "year"
	ColMonth    = "month"
	ColDay      = "day"
	ColTrap     = "trap_num"
	ColTrapSize = "trap_size_m2"
	ColTotal    = "total_weight_g"
	ColQuality  = "quality_code"
	ColComments = "comments"
)

// massColumns maps raw mass column names to their internal fraction names.
var massColumns = []struct {
	Name     string
	Category domain.Category
}{
	{"leaves_g", domain.CategoryLeaves},
	{"twigs_g", domain.CategoryTwigs},
	{"flowers_g", domain.CategoryFlowers},
	{"fruits_g", domain.CategoryFruits},
	{"seeds_g", domain.CategorySeeds},
	{"bromeliads_g", domain.CategoryBromeliads},
	{"epiphytes_g", domain.CategoryEpiphytes},
	{"other_g", domain.CategoryOther},
	{"palm_leaves_g", domain.CategoryPalmLeaves},
	{"palm_flowers_g", domain.CategoryPalmFlowers},
	{"palm_fruits_g", domain.CategoryPalmFruits},
}

// requiredColumns returns every column the schema demands, in sheet order.
func requiredColumns() []string {
	cols := []string{ColPlot, ColYear, ColMonth, ColDay, ColTrap, ColTrapSize}
	for _, mc := range massColumns {
		cols = append(cols, mc.Name)
	}
	return append(cols, ColTotal, ColQuality, ColComments)
}

// Loader reads litterfall field sheets into observations. It accepts
// character-delimited files and xlsx workbooks; unexpected columns are
// ignored, missing expected columns are a SchemaError.
type Loader struct {
	logger    *slog.Logger
	delimiter rune
	sheet     string
}

// NewLoader creates a loader. A zero delimiter means comma; sheet names the
// xlsx worksheet to read, empty for auto-discovery.
func NewLoader(logger *slog.Logger, delimiter rune, sheet string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{logger: logger, delimiter: delimiter, sheet: sheet}
}

// Load reads observations from path, dispatching on the file extension.
func (l *Loader) Load(path string) ([]domain.Observation, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return l.LoadExcel(path)
	default:
		return l.LoadCSV(path)
	}
}

// LoadCSV reads a character-delimited field sheet.
func (l *Loader) LoadCSV(path string) ([]domain.Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open input file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read delimited input", err)
	}

	l.logger.Info("loaded delimited field sheet",
		slog.String("path", path),
		slog.Int("raw_rows", len(rows)))

	return l.parseRows(rows)
}

// LoadExcel reads an xlsx export of the field sheet. When no sheet name is
// configured it looks for the first sheet whose header carries the expected
// columns, the way field teams usually deliver workbooks with cover sheets.
func (l *Loader) LoadExcel(path string) ([]domain.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open xlsx input", err)
	}
	defer f.Close()

	var rows [][]string
	if l.sheet != "" {
		rows, err = f.GetRows(l.sheet)
		if err != nil {
			return nil, errors.NewParsingError("failed to read configured sheet", err)
		}
	} else {
		for _, name := range f.GetSheetList() {
			candidate, cErr := f.GetRows(name)
			if cErr != nil || len(candidate) == 0 {
				continue
			}
			if headerRowIndex(candidate) >= 0 {
				l.logger.Info("found field data sheet", slog.String("sheet_name", name))
				rows = candidate
				break
			}
		}
		if rows == nil {
			return nil, errors.NewMissingColumnsError(requiredColumns())
		}
	}

	l.logger.Info("loaded xlsx field sheet",
		slog.String("path", path),
		slog.Int("raw_rows", len(rows)))

	return l.parseRows(rows)
}

// headerRowIndex scans for the row that carries the column header, allowing
// preamble rows above it. Returns -1 when no row matches.
func headerRowIndex(rows [][]string) int {
	for i, row := range rows {
		if i > 10 {
			break
		}
		seen := make(map[string]bool)
		for _, cell := range row {
			seen[normalizeHeader(cell)] = true
		}
		if seen[ColPlot] && seen[ColTrap] && seen[ColYear] {
			return i
		}
	}
	return -1
}

// normalizeHeader canonicalizes a header cell for matching.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

// parseRows maps the header, verifies the schema and coerces every data row.
func (l *Loader) parseRows(rows [][]string) ([]domain.Observation, error) {
	headerRow := headerRowIndex(rows)
	if headerRow < 0 {
		return nil, errors.NewMissingColumnsError(requiredColumns())
	}

	columnMap := make(map[string]int)
	for j, cell := range rows[headerRow] {
		name := normalizeHeader(cell)
		if _, exists := columnMap[name]; !exists && name != "" {
			columnMap[name] = j
		}
	}

	var missing []string
	for _, col := range requiredColumns() {
		if _, ok := columnMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingColumnsError(missing)
	}

	observations := make([]domain.Observation, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		dataRow := i - headerRow // 1-based, header excluded

		obs, err := l.parseRow(row, columnMap, dataRow)
		if err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}

	l.logger.Info("parsed observations", slog.Int("count", len(observations)))
	return observations, nil
}

// parseRow coerces one data row into an Observation.
func (l *Loader) parseRow(row []string, columnMap map[string]int, dataRow int) (domain.Observation, error) {
	cell := func(col string) string {
		idx := columnMap[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	parseIntCol := func(col string) (int, error) {
		raw := cell(col)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.NewUncoercibleCellError(dataRow, col, raw)
		}
		return v, nil
	}

	parseNumericCol := func(col string) (float64, error) {
		raw := cell(col)
		if isMissingCell(raw) {
			return domain.Missing(), nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return 0, errors.NewUncoercibleCellError(dataRow, col, raw)
		}
		return v, nil
	}

	var obs domain.Observation
	var err error

	obs.Plot = cell(ColPlot)
	if obs.Plot == "" {
		return obs, errors.NewUncoercibleCellError(dataRow, ColPlot, "")
	}
	if obs.Year, err = parseIntCol(ColYear); err != nil {
		return obs, err
	}
	if obs.Month, err = parseIntCol(ColMonth); err != nil {
		return obs, err
	}
	if obs.Day, err = parseIntCol(ColDay); err != nil {
		return obs, err
	}
	if obs.Trap, err = parseIntCol(ColTrap); err != nil {
		return obs, err
	}
	if obs.TrapSize, err = parseNumericCol(ColTrapSize); err != nil {
		return obs, err
	}

	obs.Masses = make(map[domain.Category]float64, len(massColumns))
	for _, mc := range massColumns {
		v, mErr := parseNumericCol(mc.Name)
		if mErr != nil {
			return obs, mErr
		}
		obs.Masses[mc.Category] = v
	}

	if obs.RecordedTotal, err = parseNumericCol(ColTotal); err != nil {
		return obs, err
	}
	obs.Total = domain.Missing()
	obs.Quality = cell(ColQuality)
	obs.Comments = cell(ColComments)

	return obs, nil
}

// isEmptyRow reports whether every cell of the row is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isMissingCell reports whether a numeric cell encodes a missing value.
func isMissingCell(raw string) bool {
	switch strings.ToLower(raw) {
	case "", "na", "n/a", "nan", "-":
		return true
	}
	return false
}

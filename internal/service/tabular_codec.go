package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
)

// ── spreadsheet errors ──

var (
	ErrImportParseFailed  = errors.New("roster file could not be parsed")
	ErrExportGenerateFail = errors.New("failed to generate spreadsheet")
)

const (
	// ReportSheet sheet name of the daily export
	ReportSheet = "Time Logs"
	// RosterSheet sheet name of the roster download
	RosterSheet = "Employees"

	xlsMaxRows = 100000
)

// Report columns
const (
	colEmployeeNo   = "EmployeeNo"
	colEmployeeName = "EmployeeName"
	colDate         = "Date"
	colTimeIn       = "Time In"
	colTimeOut      = "Time Out"
	colJacketSize   = "JACKET SIZE"
	colDepartment   = "Department"
	colPosition     = "Position"
)

// rosterAliases accepted header spellings per field, highest priority first,
// compared after trimming
var rosterAliases = map[string][]string{
	colEmployeeNo:   {"EmployeeNo", "Employee No", "EmployeeID"},
	colEmployeeName: {"EmployeeName", "Employee Name"},
	colJacketSize:   {"JACKET SIZE", "Jacket Size", "JACKET", "Jacket"},
	colDepartment:   {"Department"},
	colPosition:     {"Position"},
}

// Table a single sheet of labeled string cells
type Table struct {
	Headers []string
	Widths  []float64
	Rows    [][]string
}

// ────────────────────── report export ──────────────────────

// ReportTable lays report rows out in export column order.
func ReportTable(rows []ReportRow, includeJacket bool) Table {
	t := Table{
		Headers: []string{colEmployeeNo, colEmployeeName, colDate, colTimeIn, colTimeOut},
		Widths:  []float64{15, 25, 12, 30, 30},
	}
	if includeJacket {
		t.Headers = append(t.Headers, colJacketSize)
		t.Widths = append(t.Widths, 12)
	}

	t.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := []string{r.EmployeeNo, r.EmployeeName, r.Date, r.TimeInText(), r.TimeOutText()}
		if includeJacket {
			cells = append(cells, r.JacketSize)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// ExportFilename deterministic download name of a day's report
func ExportFilename(day Day) string {
	return fmt.Sprintf("TimeLogs_%s.xlsx", day)
}

// WriteWorkbook renders t as a one-sheet xlsx. Every cell is written as text
// so employee numbers keep their leading zeros.
func WriteWorkbook(sheet string, t Table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
	}

	for i, w := range t.Widths {
		col := colName(i)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
		}
	}

	if err := setRow(f, sheet, 1, t.Headers); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
	}

	for i, cells := range t.Rows {
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportGenerateFail, err)
	}
	return buf, nil
}

// ────────────────────── roster import / export ──────────────────────

// ParseRoster reads the first sheet of an .xls or .xlsx file. The first row
// holds headers; unknown columns are ignored and rows without an employee
// number are dropped. Every failure wraps ErrImportParseFailed.
func ParseRoster(r io.Reader, filename string) ([]model.Employee, error) {
	rows, err := readFirstSheet(r, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportParseFailed, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet is empty", ErrImportParseFailed)
	}

	index := headerIndex(rows[0])
	if len(index[colEmployeeNo]) == 0 {
		return nil, fmt.Errorf("%w: no employee number column", ErrImportParseFailed)
	}

	records := make([]model.Employee, 0, len(rows)-1)
	for _, row := range rows[1:] {
		no := cellValue(row, index, colEmployeeNo)
		if no == "" {
			continue
		}
		records = append(records, model.Employee{
			EmployeeNo: no,
			Name:       cellValue(row, index, colEmployeeName),
			JacketSize: cellValue(row, index, colJacketSize),
			Department: cellValue(row, index, colDepartment),
			Position:   cellValue(row, index, colPosition),
		})
	}
	return records, nil
}

// EncodeRoster writes records with the canonical roster headers; the result
// parses back through ParseRoster.
func EncodeRoster(records []model.Employee) (*bytes.Buffer, error) {
	t := Table{
		Headers: []string{colEmployeeNo, colEmployeeName, colJacketSize, colDepartment, colPosition},
		Widths:  []float64{15, 30, 12, 20, 20},
		Rows:    make([][]string, 0, len(records)),
	}
	for _, e := range records {
		t.Rows = append(t.Rows, []string{e.EmployeeNo, e.Name, e.JacketSize, e.Department, e.Position})
	}
	return WriteWorkbook(RosterSheet, t)
}

// ── helpers ──

func readFirstSheet(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, errors.New("no worksheet found")
		}
		return file.GetRows(sheetName)
	}
}

func readXLS(data []byte) (rows [][]string, err error) {
	// extrame/xls panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("malformed xls: %v", r)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook == nil || workbook.NumSheets() == 0 {
		return nil, errors.New("no worksheet found")
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("no worksheet found")
	}

	for i := 0; i <= int(sheet.MaxRow) && i < xlsMaxRows; i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// xlsRow returns nil for a row the file never wrote; WorkSheet.Row
// dereferences it otherwise.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// headerIndex maps each roster field to the columns carrying one of its
// aliases, ordered by alias priority. A repeated header keeps its first column.
func headerIndex(headers []string) map[string][]int {
	position := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if _, seen := position[h]; !seen {
			position[h] = i
		}
	}

	index := make(map[string][]int, len(rosterAliases))
	for field, aliases := range rosterAliases {
		for _, alias := range aliases {
			if i, ok := position[alias]; ok {
				index[field] = append(index[field], i)
			}
		}
	}
	return index
}

// cellValue first non-blank value among the field's columns
func cellValue(row []string, index map[string][]int, field string) string {
	for _, idx := range index[field] {
		if idx >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[idx]); v != "" {
			return v
		}
	}
	return ""
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, start, &values)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

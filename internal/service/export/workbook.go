package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const pivotSheetName = "Pivot"

// The seven informational columns in front of the organization columns.
var pivotHeader = []string{
	"Section order",
	"Section",
	"Method",
	"Direct",
	"Indicator code",
	"Indicator",
	"Classification",
}

var indicatorSheetHeader = []string{
	"Indicator",
	"Organization",
	"Tax ID",
	"Contact",
	"Created",
	"Updated",
	"Classification",
	"Value",
}

const (
	infoColWidth = 20
	orgColWidth  = 35
)

// WritePivotWorkbook renders the matrix as a single pivoted sheet. The
// first four key columns stay in the file for traceability but are hidden;
// the organization column count is unbounded, so every organization column
// shares one wide width instead of per-column sizing.
func WritePivotWorkbook(m *Matrix) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(pivotSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, 0, len(pivotHeader)+len(m.Cols))
	for _, h := range pivotHeader {
		header = append(header, h)
	}
	for _, ck := range m.Cols {
		header = append(header, fmt.Sprintf("%s (%s)", ck.OrganizationName, ck.TaxID))
	}
	if err := f.SetSheetRow(pivotSheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(pivotHeader) + len(m.Cols))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("resolve last column: %w", err)
	}
	if err := f.SetCellStyle(pivotSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, rk := range m.Rows {
		rowNum := i + 2
		cells := make([]interface{}, 0, len(pivotHeader)+len(m.Cols))
		cells = append(cells, rk.PathOrder, rk.SectionTitle, rk.MethodName, rk.Direct,
			rk.IndicatorCode, rk.IndicatorName, rk.Classification)
		for _, ck := range m.Cols {
			if v, ok := m.Cell(rk, ck); ok {
				cells = append(cells, cellValue(v))
			} else {
				// no data: leave the cell truly empty, not zero
				cells = append(cells, nil)
			}
		}
		if err := f.SetSheetRow(pivotSheetName, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", rowNum, err)
		}
	}

	if err := f.SetColWidth(pivotSheetName, "A", "G", infoColWidth); err != nil {
		f.Close()
		return nil, fmt.Errorf("set info column width: %w", err)
	}
	if len(m.Cols) > 0 {
		if err := f.SetColWidth(pivotSheetName, "H", lastCol, orgColWidth); err != nil {
			f.Close()
			return nil, fmt.Errorf("set organization column width: %w", err)
		}
	}
	if err := f.SetColVisible(pivotSheetName, "A:D", false); err != nil {
		f.Close()
		return nil, fmt.Errorf("hide key columns: %w", err)
	}

	if err := freezeHeader(f, pivotSheetName); err != nil {
		f.Close()
		return nil, err
	}

	return finishWorkbook(f)
}

// WriteIndicatorWorkbook renders one flat sheet per indicator code: the
// unpivoted answer listing for manual review.
func WriteIndicatorWorkbook(decoded []*Answer) ([]byte, error) {
	byCode := make(map[string][]*Answer)
	codes := make([]string, 0)
	for _, a := range decoded {
		if _, ok := byCode[a.IndicatorCode]; !ok {
			codes = append(codes, a.IndicatorCode)
		}
		byCode[a.IndicatorCode] = append(byCode[a.IndicatorCode], a)
	}
	sort.Strings(codes)

	f := excelize.NewFile()

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	for _, code := range codes {
		sheet := sheetName(code)
		if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		header := make([]interface{}, 0, len(indicatorSheetHeader))
		for _, h := range indicatorSheetHeader {
			header = append(header, h)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header on %s: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("style header on %s: %w", sheet, err)
		}

		for i, a := range byCode[code] {
			cells := []interface{}{
				a.IndicatorName,
				a.OrganizationName,
				a.TaxID,
				a.Contact,
				a.CreatedAt.Format("2006-01-02 15:04:05"),
				a.UpdatedAt.Format("2006-01-02 15:04:05"),
				a.Classification,
				cellValue(a.Measurement),
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
				f.Close()
				return nil, fmt.Errorf("write row on %s: %w", sheet, err)
			}
		}

		if err := f.SetColWidth(sheet, "A", "H", infoColWidth); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width on %s: %w", sheet, err)
		}
		if err := freezeHeader(f, sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	if len(codes) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			f.Close()
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	return finishWorkbook(f)
}

// cellValue writes numeric measurements as numbers so spreadsheet sorting
// and formulas work; anything else stays text.
func cellValue(v string) interface{} {
	if d, err := decimal.NewFromString(v); err == nil {
		return d.InexactFloat64()
	}
	return v
}

func newHeaderStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return 0, fmt.Errorf("create header style: %w", err)
	}
	return style, nil
}

func freezeHeader(f *excelize.File, sheet string) error {
	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("freeze header on %s: %w", sheet, err)
	}
	return nil
}

func finishWorkbook(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName makes an indicator code safe as a worksheet name: the xlsx
// format forbids a handful of characters and caps names at 31 runes.
func sheetName(code string) string {
	replacer := strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")")
	name := replacer.Replace(code)
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

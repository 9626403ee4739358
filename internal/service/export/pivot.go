package export

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RowKey orders and identifies one pivot row. Field order matters: rows
// sort component by component, sections first by their path order.
type RowKey struct {
	PathOrder      float64
	SectionTitle   string
	MethodName     string
	Direct         bool
	IndicatorCode  string
	IndicatorName  string
	Classification string
}

// ColKey identifies one organization column.
type ColKey struct {
	TaxID            string
	OrganizationName string
}

// Matrix is the sparse indicator-by-organization pivot. Every organization
// seen anywhere in the input gets a column; cells with no contributing
// answer stay absent so the workbook can show "no data" rather than zero.
type Matrix struct {
	Rows  []RowKey
	Cols  []ColKey
	cells map[RowKey]map[ColKey]string
}

// BuildPivot folds decoded answers into the sparse matrix. When several
// answers land on one cell the minimum measurement wins (numeric-aware),
// which keeps the outcome deterministic regardless of input order.
func BuildPivot(decoded []*Answer) *Matrix {
	m := &Matrix{cells: make(map[RowKey]map[ColKey]string)}

	rowSeen := make(map[RowKey]struct{})
	colSeen := make(map[ColKey]struct{})

	for _, a := range decoded {
		rk := RowKey{
			PathOrder:      a.PathOrder,
			SectionTitle:   a.SectionTitle,
			MethodName:     a.MethodName,
			Direct:         a.Direct,
			IndicatorCode:  a.IndicatorCode,
			IndicatorName:  a.IndicatorName,
			Classification: a.Classification,
		}
		ck := ColKey{TaxID: a.TaxID, OrganizationName: a.OrganizationName}

		if _, ok := rowSeen[rk]; !ok {
			rowSeen[rk] = struct{}{}
			m.Rows = append(m.Rows, rk)
		}
		if _, ok := colSeen[ck]; !ok {
			colSeen[ck] = struct{}{}
			m.Cols = append(m.Cols, ck)
		}

		row, ok := m.cells[rk]
		if !ok {
			row = make(map[ColKey]string)
			m.cells[rk] = row
		}

		if current, ok := row[ck]; !ok || lessMeasurement(a.Measurement, current) {
			row[ck] = a.Measurement
		}
	}

	sort.Slice(m.Rows, func(i, j int) bool { return lessRowKey(m.Rows[i], m.Rows[j]) })
	sort.Slice(m.Cols, func(i, j int) bool {
		if m.Cols[i].TaxID != m.Cols[j].TaxID {
			return m.Cols[i].TaxID < m.Cols[j].TaxID
		}
		return m.Cols[i].OrganizationName < m.Cols[j].OrganizationName
	})

	return m
}

// Cell returns the measurement for (row, col) and whether any answer
// contributed to it.
func (m *Matrix) Cell(rk RowKey, ck ColKey) (string, bool) {
	row, ok := m.cells[rk]
	if !ok {
		return "", false
	}
	v, ok := row[ck]
	return v, ok
}

func lessRowKey(a, b RowKey) bool {
	if a.PathOrder != b.PathOrder {
		return a.PathOrder < b.PathOrder
	}
	if a.SectionTitle != b.SectionTitle {
		return a.SectionTitle < b.SectionTitle
	}
	if a.MethodName != b.MethodName {
		return a.MethodName < b.MethodName
	}
	if a.Direct != b.Direct {
		return !a.Direct
	}
	if a.IndicatorCode != b.IndicatorCode {
		return a.IndicatorCode < b.IndicatorCode
	}
	if a.IndicatorName != b.IndicatorName {
		return a.IndicatorName < b.IndicatorName
	}
	return a.Classification < b.Classification
}

// lessMeasurement compares decimals when both sides parse, so "9" does not
// beat "10"; textual measurements fall back to lexicographic order.
func lessMeasurement(a, b string) bool {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA == nil && errB == nil {
		return da.LessThan(db)
	}
	return a < b
}

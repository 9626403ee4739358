package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(org, taxID, code, classification, measurement string, pathOrder float64) *Answer {
	return &Answer{
		OrganizationName: org,
		TaxID:            taxID,
		MethodName:       "M1",
		SectionTitle:     "S",
		PathOrder:        pathOrder,
		IndicatorCode:    code,
		IndicatorName:    "Indicator " + code,
		Direct:           true,
		Classification:   classification,
		Measurement:      measurement,
	}
}

func TestBuildPivotSparseCells(t *testing.T) {
	m := BuildPivot([]*Answer{
		answer("Coop A", "F111", "A1", "total", "3", 1),
		answer("Coop B", "F222", "A1", "total", "5", 1),
		// organization C contributes to a different indicator only, so it
		// still earns a column everywhere
		answer("Coop C", "F333", "A2", "total", "8", 2),
	})

	require.Len(t, m.Cols, 3)

	var a1 RowKey
	for _, rk := range m.Rows {
		if rk.IndicatorCode == "A1" {
			a1 = rk
		}
	}
	require.Equal(t, "A1", a1.IndicatorCode)

	v, ok := m.Cell(a1, ColKey{TaxID: "F111", OrganizationName: "Coop A"})
	require.True(t, ok)
	assert.Equal(t, "3", v)

	v, ok = m.Cell(a1, ColKey{TaxID: "F222", OrganizationName: "Coop B"})
	require.True(t, ok)
	assert.Equal(t, "5", v)

	// no data is absence, not zero
	_, ok = m.Cell(a1, ColKey{TaxID: "F333", OrganizationName: "Coop C"})
	assert.False(t, ok)
}

func TestBuildPivotOneRowPerKey(t *testing.T) {
	m := BuildPivot([]*Answer{
		answer("Coop A", "F111", "A1", "total", "3", 1),
		answer("Coop B", "F222", "A1", "total", "5", 1),
	})

	assert.Len(t, m.Rows, 1)
}

func TestBuildPivotMinimumWins(t *testing.T) {
	m := BuildPivot([]*Answer{
		answer("Coop A", "F111", "A1", "total", "10", 1),
		answer("Coop A", "F111", "A1", "total", "9", 1),
	})

	v, ok := m.Cell(m.Rows[0], m.Cols[0])
	require.True(t, ok)
	// numeric comparison: 9 < 10 even though "10" < "9" as strings
	assert.Equal(t, "9", v)
}

func TestBuildPivotRowOrdering(t *testing.T) {
	m := BuildPivot([]*Answer{
		answer("Coop A", "F111", "B1", "total", "1", 2),
		answer("Coop A", "F111", "A2", "total", "1", 1),
		answer("Coop A", "F111", "A1", "total", "1", 1),
	})

	require.Len(t, m.Rows, 3)
	assert.Equal(t, "A1", m.Rows[0].IndicatorCode)
	assert.Equal(t, "A2", m.Rows[1].IndicatorCode)
	assert.Equal(t, "B1", m.Rows[2].IndicatorCode)
}

func TestBuildPivotColumnOrdering(t *testing.T) {
	m := BuildPivot([]*Answer{
		answer("Coop B", "F222", "A1", "total", "1", 1),
		answer("Coop A", "F111", "A1", "total", "1", 1),
	})

	require.Len(t, m.Cols, 2)
	assert.Equal(t, "F111", m.Cols[0].TaxID)
	assert.Equal(t, "F222", m.Cols[1].TaxID)
}

func TestBuildPivotClassificationSplitsRows(t *testing.T) {
	m := BuildPivot([]*Answer{
		answer("Coop A", "F111", "A1", "male", "4", 1),
		answer("Coop A", "F111", "A1", "female", "6", 1),
	})

	assert.Len(t, m.Rows, 2)
}

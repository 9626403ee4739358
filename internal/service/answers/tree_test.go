package answers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	campaignID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	surveyID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	methodID   = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	orgID      = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	sectionAID = uuid.MustParse("55555555-5555-5555-5555-555555555555")
	sectionBID = uuid.MustParse("66666666-6666-6666-6666-666666666666")
)

func numValue(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

type rowSpec struct {
	section   *uuid.UUID
	pathOrder float64
	indicator uuid.UUID
	code      string
	gender    string
	value     int64
}

func makeRow(spec rowSpec) *domain.AnswerRow {
	return &domain.AnswerRow{
		CampaignID:   campaignID,
		CampaignName: "C1",
		CampaignYear: 2024,

		SurveyID:         surveyID,
		SurveyCreatedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		SurveyUpdatedAt:  time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		SurveyStatus:     "closed",
		OrganizationID:   orgID,
		OrganizationName: "Coop Alfa",
		TaxID:            "F12345678",

		MethodID:          methodID,
		MethodActive:      true,
		MethodName:        "M1",
		MethodDescription: "first method",

		SectionID:        spec.section,
		SectionTitle:     "Section " + spec.code,
		SectionPathOrder: spec.pathOrder,
		MethodLevel:      1,

		IndicatorID:          spec.indicator,
		IndicatorCode:        spec.code,
		IndicatorName:        "Indicator " + spec.code,
		IndicatorDescription: "desc " + spec.code,
		DirectIndicator:      true,
		IndicatorCategory:    "social",
		IndicatorDataType:    "number",
		IndicatorUnit:        "people",

		Gender:      spec.gender,
		Value:       numValue(spec.value),
		GenderLabel: "label " + spec.gender,
	}
}

func TestBuildTreeEndToEnd(t *testing.T) {
	indA := uuid.MustParse("77777777-7777-7777-7777-777777777777")
	indB := uuid.MustParse("88888888-8888-8888-8888-888888888888")

	// deliberately out of order: section B (path order 2) first
	rows := []*domain.AnswerRow{
		makeRow(rowSpec{section: &sectionBID, pathOrder: 2, indicator: indB, code: "B1", gender: "M", value: 7}),
		makeRow(rowSpec{section: &sectionBID, pathOrder: 2, indicator: indB, code: "B1", gender: "F", value: 9}),
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: indA, code: "A1", gender: "M", value: 3}),
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: indA, code: "A1", gender: "F", value: 5}),
	}

	tree := BuildTree(rows, domain.LangDefault)

	require.Len(t, tree.Campaigns, 1)
	campaign := tree.Campaigns[0]
	assert.Equal(t, "C1", campaign.Name)
	assert.Equal(t, 2024, campaign.Year)

	require.Len(t, campaign.Surveys, 1)
	survey := campaign.Surveys[0]
	assert.Equal(t, "Coop Alfa", survey.OrganizationName)
	assert.Equal(t, "F12345678", survey.TaxID)

	require.Len(t, survey.Methods, 1)
	method := survey.Methods[0]
	assert.Equal(t, "M1", method.Name)

	require.Len(t, method.Sections, 2)
	assert.Equal(t, 1.0, method.Sections[0].PathOrder)
	assert.Equal(t, 2.0, method.Sections[1].PathOrder)

	for _, section := range method.Sections {
		require.Len(t, section.Indicators, 1)
		results := section.Indicators[0].Results
		require.Len(t, results, 2)
		// (gender, prev gender) ascending: F before M
		assert.Equal(t, "F", results[0].Gender)
		assert.Equal(t, "M", results[1].Gender)
	}
}

func TestBuildTreeEmptyInput(t *testing.T) {
	tree := BuildTree(nil, domain.LangDefault)

	require.NotNil(t, tree)
	require.NotNil(t, tree.Campaigns)
	assert.Len(t, tree.Campaigns, 0)
}

func TestBuildTreeNoChildOmission(t *testing.T) {
	ind := uuid.MustParse("77777777-7777-7777-7777-777777777777")
	tree := BuildTree([]*domain.AnswerRow{
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: ind, code: "A1", gender: "M", value: 1}),
	}, domain.LangDefault)

	method := tree.Campaigns[0].Surveys[0].Methods[0]
	require.NotNil(t, method.Sections)
	require.NotNil(t, method.Sections[0].Indicators)
	require.NotNil(t, method.Sections[0].Indicators[0].Results)
}

func TestBuildTreeSentinelSection(t *testing.T) {
	ind := uuid.MustParse("77777777-7777-7777-7777-777777777777")
	tree := BuildTree([]*domain.AnswerRow{
		makeRow(rowSpec{section: nil, pathOrder: 99, indicator: ind, code: "Z1", gender: "M", value: 1}),
	}, domain.LangDefault)

	sections := tree.Campaigns[0].Surveys[0].Methods[0].Sections
	require.Len(t, sections, 1)
	assert.Equal(t, constants.NoSectionID, sections[0].ID)
}

func TestBuildTreeIndicatorOrdering(t *testing.T) {
	indA := uuid.MustParse("77777777-7777-7777-7777-777777777777")
	indB := uuid.MustParse("88888888-8888-8888-8888-888888888888")
	indC := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	rows := []*domain.AnswerRow{
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: indC, code: "A30", gender: "M", value: 1}),
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: indA, code: "A10", gender: "M", value: 1}),
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: indB, code: "A20", gender: "M", value: 1}),
	}

	tree := BuildTree(rows, domain.LangDefault)

	indicators := tree.Campaigns[0].Surveys[0].Methods[0].Sections[0].Indicators
	require.Len(t, indicators, 3)
	for i := 1; i < len(indicators); i++ {
		assert.LessOrEqual(t, indicators[i-1].Code, indicators[i].Code)
	}
}

func TestBuildTreeDeduplicatesLevels(t *testing.T) {
	ind := uuid.MustParse("77777777-7777-7777-7777-777777777777")

	// same (campaign, survey, method, section, indicator) tuple, three
	// result rows: only the result level may multiply
	rows := []*domain.AnswerRow{
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: ind, code: "A1", gender: "M", value: 1}),
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: ind, code: "A1", gender: "F", value: 2}),
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: ind, code: "A1", gender: "X", value: 3}),
	}

	tree := BuildTree(rows, domain.LangDefault)

	require.Len(t, tree.Campaigns, 1)
	require.Len(t, tree.Campaigns[0].Surveys, 1)
	require.Len(t, tree.Campaigns[0].Surveys[0].Methods, 1)
	require.Len(t, tree.Campaigns[0].Surveys[0].Methods[0].Sections, 1)
	require.Len(t, tree.Campaigns[0].Surveys[0].Methods[0].Sections[0].Indicators, 1)
	assert.Len(t, tree.Campaigns[0].Surveys[0].Methods[0].Sections[0].Indicators[0].Results, 3)
}

func TestBuildTreeFlattenBack(t *testing.T) {
	indA := uuid.MustParse("77777777-7777-7777-7777-777777777777")
	indB := uuid.MustParse("88888888-8888-8888-8888-888888888888")

	rows := []*domain.AnswerRow{
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: indA, code: "A1", gender: "M", value: 3}),
		makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: indA, code: "A1", gender: "F", value: 5}),
		makeRow(rowSpec{section: &sectionBID, pathOrder: 2, indicator: indB, code: "B1", gender: "M", value: 7}),
	}

	tree := BuildTree(rows, domain.LangDefault)

	type flat struct {
		campaign  uuid.UUID
		survey    uuid.UUID
		method    uuid.UUID
		section   uuid.UUID
		indicator uuid.UUID
		gender    string
		value     string
	}

	got := make(map[flat]int)
	for _, c := range tree.Campaigns {
		for _, s := range c.Surveys {
			for _, m := range s.Methods {
				for _, sec := range m.Sections {
					for _, ind := range sec.Indicators {
						for _, r := range ind.Results {
							got[flat{c.ID, s.ID, m.ID, sec.ID, ind.ID, r.Gender, r.Value.Decimal.String()}]++
						}
					}
				}
			}
		}
	}

	want := make(map[flat]int)
	for _, r := range rows {
		want[flat{r.CampaignID, r.SurveyID, r.MethodID, *r.SectionID, r.IndicatorID, r.Gender, r.Value.Decimal.String()}]++
	}

	assert.Equal(t, want, got)
}

func TestBuildTreePreviousResult(t *testing.T) {
	ind := uuid.MustParse("77777777-7777-7777-7777-777777777777")

	prevGender := "M"
	prevLabel := "label M prev"
	prevValueLabel := "yes"

	row := makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: ind, code: "A1", gender: "M", value: 4})
	row.PrevGender = &prevGender
	row.PrevValue = numValue(2)
	row.PrevGenderLabel = &prevLabel
	row.PrevValueLabel = &prevValueLabel

	bare := makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: ind, code: "A1", gender: "F", value: 6})

	tree := BuildTree([]*domain.AnswerRow{row, bare}, domain.LangDefault)

	results := tree.Campaigns[0].Surveys[0].Methods[0].Sections[0].Indicators[0].Results
	require.Len(t, results, 2)

	// F sorts first and has no prior campaign result
	assert.Nil(t, results[0].Previous)

	require.NotNil(t, results[1].Previous)
	assert.Equal(t, "M", results[1].Previous.Gender)
	assert.True(t, results[1].Previous.Value.Valid)
	assert.Equal(t, "2", results[1].Previous.Value.Decimal.String())
}

func TestBuildTreeLocalization(t *testing.T) {
	ind := uuid.MustParse("77777777-7777-7777-7777-777777777777")

	row := makeRow(rowSpec{section: &sectionAID, pathOrder: 1, indicator: ind, code: "A1", gender: "M", value: 1})
	en := "Campaign one"
	row.CampaignNameEN = &en

	t.Run("requested language", func(t *testing.T) {
		tree := BuildTree([]*domain.AnswerRow{row}, domain.LangEN)
		assert.Equal(t, "Campaign one", tree.Campaigns[0].Name)
	})

	t.Run("default language", func(t *testing.T) {
		tree := BuildTree([]*domain.AnswerRow{row}, domain.LangDefault)
		assert.Equal(t, "C1", tree.Campaigns[0].Name)
	})
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lang is a requested response language. The aggregation views carry an
// unsuffixed default variant of every localizable column plus _es and _en
// variants; any other code falls back to the default.
type Lang string

const (
	LangDefault Lang = ""
	LangES      Lang = "es"
	LangEN      Lang = "en"
)

func ParseLang(code string) Lang {
	switch Lang(code) {
	case LangES, LangEN:
		return Lang(code)
	default:
		return LangDefault
	}
}

// Pick resolves one localizable field: the variant matching the requested
// language when it exists and is non-empty, else the unsuffixed default.
func (l Lang) Pick(def string, es, en *string) string {
	var variant *string
	switch l {
	case LangES:
		variant = es
	case LangEN:
		variant = en
	}

	if variant != nil && *variant != "" {
		return *variant
	}
	return def
}

// PickPtr is Pick over a nullable default, for columns that may be absent
// altogether (the prev_ result columns).
func (l Lang) PickPtr(def, es, en *string) *string {
	if def == nil && es == nil && en == nil {
		return nil
	}

	var d string
	if def != nil {
		d = *def
	}
	picked := l.Pick(d, es, en)
	return &picked
}

// AnswerRow is one flat row of the campaign answers view: one
// campaign/survey/method/section/indicator/gender combination, denormalized
// with every ancestor's attributes and the organization's previous-campaign
// result for the same indicator left-joined alongside.
type AnswerRow struct {
	CampaignID     uuid.UUID  `db:"campaign_id"`
	CampaignName   string     `db:"campaign_name"`
	CampaignNameES *string    `db:"campaign_name_es"`
	CampaignNameEN *string    `db:"campaign_name_en"`
	CampaignYear   int        `db:"campaign_year"`
	PrevCampaignID *uuid.UUID `db:"prev_campaign_id"`

	SurveyID         uuid.UUID `db:"survey_id"`
	SurveyCreatedAt  time.Time `db:"survey_created_at"`
	SurveyUpdatedAt  time.Time `db:"survey_updated_at"`
	SurveyStatus     string    `db:"survey_status"`
	OrganizationID   uuid.UUID `db:"organization_id"`
	OrganizationName string    `db:"organization_name"`
	TaxID            string    `db:"tax_id"`

	MethodID            uuid.UUID `db:"method_id"`
	MethodActive        bool      `db:"method_active"`
	MethodName          string    `db:"method_name"`
	MethodNameES        *string   `db:"method_name_es"`
	MethodNameEN        *string   `db:"method_name_en"`
	MethodDescription   string    `db:"method_description"`
	MethodDescriptionES *string   `db:"method_description_es"`
	MethodDescriptionEN *string   `db:"method_description_en"`

	SectionID        *uuid.UUID `db:"section_id"`
	SectionTitle     string     `db:"section_title"`
	SectionTitleES   *string    `db:"section_title_es"`
	SectionTitleEN   *string    `db:"section_title_en"`
	SectionPathOrder float64    `db:"section_path_order"`
	MethodLevel      int        `db:"method_level"`

	IndicatorID            uuid.UUID `db:"indicator_id"`
	IndicatorCode          string    `db:"indicator_code"`
	IndicatorName          string    `db:"indicator_name"`
	IndicatorNameES        *string   `db:"indicator_name_es"`
	IndicatorNameEN        *string   `db:"indicator_name_en"`
	IndicatorDescription   string    `db:"indicator_description"`
	IndicatorDescriptionES *string   `db:"indicator_description_es"`
	IndicatorDescriptionEN *string   `db:"indicator_description_en"`
	DirectIndicator        bool      `db:"direct_indicator"`
	IndicatorCategory      string    `db:"indicator_category"`
	IndicatorDataType      string    `db:"indicator_data_type"`
	IndicatorUnit          string    `db:"indicator_unit"`

	Gender       string              `db:"gender"`
	Value        decimal.NullDecimal `db:"value"`
	GenderLabel  string              `db:"gender_label"`
	ValueLabel   *string             `db:"value_label"`
	ValueLabelES *string             `db:"value_label_es"`
	ValueLabelEN *string             `db:"value_label_en"`

	PrevGender       *string             `db:"prev_gender"`
	PrevValue        decimal.NullDecimal `db:"prev_value"`
	PrevGenderLabel  *string             `db:"prev_gender_label"`
	PrevValueLabel   *string             `db:"prev_value_label"`
	PrevValueLabelES *string             `db:"prev_value_label_es"`
	PrevValueLabelEN *string             `db:"prev_value_label_en"`
}

// ExportRow is one flat row of the method export view. str_gender and
// str_value carry the upstream bracket-encoded array cells.
type ExportRow struct {
	CampaignName   string  `db:"campaign_name"`
	CampaignNameES *string `db:"campaign_name_es"`
	CampaignNameEN *string `db:"campaign_name_en"`

	OrganizationID   uuid.UUID `db:"organization_id"`
	OrganizationName string    `db:"organization_name"`
	TaxID            string    `db:"tax_id"`
	Contact          string    `db:"contact"`
	SurveyCreatedAt  time.Time `db:"survey_created_at"`
	SurveyUpdatedAt  time.Time `db:"survey_updated_at"`

	MethodName   string  `db:"method_name"`
	MethodNameES *string `db:"method_name_es"`
	MethodNameEN *string `db:"method_name_en"`

	SectionID        *uuid.UUID `db:"section_id"`
	SectionTitle     string     `db:"section_title"`
	SectionTitleES   *string    `db:"section_title_es"`
	SectionTitleEN   *string    `db:"section_title_en"`
	SectionPathOrder float64    `db:"section_path_order"`

	IndicatorCode   string  `db:"indicator_code"`
	IndicatorName   string  `db:"indicator_name"`
	IndicatorNameES *string `db:"indicator_name_es"`
	IndicatorNameEN *string `db:"indicator_name_en"`
	DirectIndicator bool    `db:"direct_indicator"`

	StrGender string `db:"str_gender"`
	StrValue  string `db:"str_value"`
}

// SectionKey returns the section id with NULL replaced by the no-section
// sentinel, so sectionless indicators group under an ordinary key.
func SectionKey(id *uuid.UUID, sentinel uuid.UUID) uuid.UUID {
	if id == nil {
		return sentinel
	}
	return *id
}

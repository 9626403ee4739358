package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnswersTree is the nested response of the answers endpoint. Child
// sequences are always present (empty, never null) so the schema is stable
// regardless of data volume.
type AnswersTree struct {
	Campaigns []*Campaign `json:"campaigns"`
}

type Campaign struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Year           int        `json:"year"`
	PrevCampaignID *uuid.UUID `json:"prev_campaign_id,omitempty"`
	Surveys        []*Survey  `json:"surveys"`
}

type Survey struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Status           string    `json:"status"`
	OrganizationID   uuid.UUID `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	TaxID            string    `json:"tax_id"`
	Methods          []*Method `json:"methods"`
}

type Method struct {
	ID          uuid.UUID  `json:"id"`
	Active      bool       `json:"active"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Sections    []*Section `json:"sections"`
}

type Section struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	PathOrder   float64      `json:"path_order"`
	MethodLevel int          `json:"method_level"`
	Indicators  []*Indicator `json:"indicators"`
}

type Indicator struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Direct      bool      `json:"direct"`
	Category    string    `json:"category"`
	DataType    string    `json:"data_type"`
	Unit        string    `json:"unit"`
	Results     []*Result `json:"results"`
}

type Result struct {
	Gender      string              `json:"gender"`
	GenderLabel string              `json:"gender_label"`
	Value       decimal.NullDecimal `json:"value"`
	ValueLabel  *string             `json:"value_label,omitempty"`
	// Previous carries the matching indicator's result from the
	// organization's previous campaign, when one exists.
	Previous *PreviousResult `json:"previous,omitempty"`
}

type PreviousResult struct {
	Gender      string              `json:"gender"`
	GenderLabel string              `json:"gender_label"`
	Value       decimal.NullDecimal `json:"value"`
	ValueLabel  *string             `json:"value_label,omitempty"`
}

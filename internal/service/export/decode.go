package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// presentMarker is the measurement recorded for each selected category of a
// multi-select indicator: the pivot reports presence, not a magnitude.
const presentMarker = "1"

// Answer is one decoded (classification, measurement) pair together with
// the display attributes the pivot and workbook layers key on. Display text
// is already localized.
type Answer struct {
	CampaignName string

	OrganizationName string
	TaxID            string
	Contact          string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	MethodName   string
	SectionID    uuid.UUID
	SectionTitle string
	PathOrder    float64

	IndicatorCode string
	IndicatorName string
	Direct        bool

	Classification string
	Measurement    string
}

// RowError identifies the single export row whose array cells could not be
// decoded. The row is skipped; the export continues.
type RowError struct {
	Organization  string
	IndicatorCode string
	SectionID     uuid.UUID
	cause         error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row organization=%s indicator=%s section=%s: %s",
		e.Organization, e.IndicatorCode, e.SectionID, e.cause)
}

func (e *RowError) Unwrap() error {
	return e.cause
}

// decodeArrays expands the bracket-encoded str_gender/str_value cells into
// positional (classification, measurement) pairs.
//
// str_gender is always a bracketed list. str_value is either a bracketed
// list — the multi-select case, where each listed category is reported as
// present — or a bare scalar, which is wrapped as a one-element list and
// must zip against exactly one classification. Mismatched lengths are a
// data-integrity error, never truncated or broadcast.
func decodeArrays(rawGender, rawValue string) (classifications, measurements []string, multi bool, err error) {
	classifications, err = parseBracketList(rawGender)
	if err != nil {
		return nil, nil, false, fmt.Errorf("str_gender: %w", err)
	}

	rawValue = strings.TrimSpace(rawValue)
	if strings.HasPrefix(rawValue, "[") {
		multi = true
		measurements, err = parseBracketList(rawValue)
		if err != nil {
			return nil, nil, false, fmt.Errorf("str_value: %w", err)
		}
	} else {
		// Scalar answers may contain commas; they are demoted to a
		// harmless separator before the value joins the list encoding.
		measurements = []string{strings.ReplaceAll(rawValue, ",", ";")}
	}

	if len(classifications) != len(measurements) {
		return nil, nil, false, fmt.Errorf("cardinality mismatch: %d classifications vs %d values",
			len(classifications), len(measurements))
	}

	if multi {
		// Multi-select: the categories themselves are the answer, one
		// presence marker per selected category.
		for i := range measurements {
			measurements[i] = presentMarker
		}
	}

	return classifications, measurements, multi, nil
}

func parseBracketList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") {
		return nil, fmt.Errorf("missing opening bracket in %q", raw)
	}
	if !strings.HasSuffix(raw, "]") {
		return nil, fmt.Errorf("missing closing bracket in %q", raw)
	}

	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return []string{}, nil
	}

	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts, nil
}

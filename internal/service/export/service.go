package export

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/constants"
	"github.com/showyourheart/data-api/internal/pkg/logger"
	"github.com/showyourheart/data-api/internal/pkg/store"
)

type Mode string

const (
	// ModePivot produces the single pivoted matrix sheet.
	ModePivot Mode = "pivot"
	// ModeSheets produces one flat answer listing per indicator code.
	ModeSheets Mode = "sheets"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModePivot, "":
		return ModePivot, nil
	case ModeSheets:
		return ModeSheets, nil
	default:
		return "", constants.ErrInvalidExportMode
	}
}

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

type Opts struct {
	CampaignID uuid.UUID
	MethodID   uuid.UUID
	Lang       domain.Lang
	// DirectOnly selects which half of the indicators participates:
	// true keeps only direct indicators, false only derived ones.
	DirectOnly bool
	Mode       Mode
}

// File is a rendered workbook plus the name it should be served under.
type File struct {
	Name    string
	Content []byte
}

// Export fetches the flat export rows for one campaign and method, decodes
// their array cells, and renders the requested workbook. Rows that fail to
// decode are skipped and reported; zero usable rows still produce a valid
// (header-only) workbook.
func (s *Service) Export(ctx context.Context, opts Opts) (*File, error) {
	rows, err := s.store.SelectExportRows(ctx, store.ExportRowsOpts{
		CampaignID: opts.CampaignID,
		MethodID:   opts.MethodID,
	})
	if err != nil {
		return nil, fmt.Errorf("SelectExportRows: %w", err)
	}

	decoded, name := s.decodeRows(ctx, rows, opts)

	var content []byte
	switch opts.Mode {
	case ModeSheets:
		content, err = WriteIndicatorWorkbook(decoded)
	default:
		content, err = WritePivotWorkbook(BuildPivot(decoded))
	}
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return &File{Name: name, Content: content}, nil
}

// decodeRows expands every usable row into its (classification, measurement)
// pairs and derives the export filename from the campaign and method display
// names. Decode failures are row-scoped: logged with the row's identity and
// skipped.
func (s *Service) decodeRows(ctx context.Context, rows []*domain.ExportRow, opts Opts) ([]*Answer, string) {
	decoded := make([]*Answer, 0, len(rows))

	campaignName := opts.CampaignID.String()
	methodName := opts.MethodID.String()

	// leading-bracket format seen per indicator code, for the
	// mixed-format data quality warning
	formats := make(map[string]map[bool]struct{})
	warned := make(map[string]struct{})

	for _, row := range rows {
		if row.DirectIndicator != opts.DirectOnly {
			continue
		}

		campaignName = opts.Lang.Pick(row.CampaignName, row.CampaignNameES, row.CampaignNameEN)
		methodName = opts.Lang.Pick(row.MethodName, row.MethodNameES, row.MethodNameEN)
		sectionID := domain.SectionKey(row.SectionID, constants.NoSectionID)

		classifications, measurements, multi, err := decodeArrays(row.StrGender, row.StrValue)
		if err != nil {
			rowErr := &RowError{
				Organization:  row.OrganizationName,
				IndicatorCode: row.IndicatorCode,
				SectionID:     sectionID,
				cause:         err,
			}
			logger.Warnf(ctx, "skipping undecodable export row: %s", rowErr.Error())
			continue
		}

		seen, ok := formats[row.IndicatorCode]
		if !ok {
			seen = make(map[bool]struct{})
			formats[row.IndicatorCode] = seen
		}
		seen[multi] = struct{}{}
		if _, already := warned[row.IndicatorCode]; len(seen) > 1 && !already {
			warned[row.IndicatorCode] = struct{}{}
			logger.Warnf(ctx, "data quality: indicator %s mixes scalar and array str_value formats", row.IndicatorCode)
		}

		for i := range classifications {
			decoded = append(decoded, &Answer{
				CampaignName:     campaignName,
				OrganizationName: row.OrganizationName,
				TaxID:            row.TaxID,
				Contact:          row.Contact,
				CreatedAt:        row.SurveyCreatedAt,
				UpdatedAt:        row.SurveyUpdatedAt,
				MethodName:       methodName,
				SectionID:        sectionID,
				SectionTitle:     opts.Lang.Pick(row.SectionTitle, row.SectionTitleES, row.SectionTitleEN),
				PathOrder:        row.SectionPathOrder,
				IndicatorCode:    row.IndicatorCode,
				IndicatorName:    opts.Lang.Pick(row.IndicatorName, row.IndicatorNameES, row.IndicatorNameEN),
				Direct:           row.DirectIndicator,
				Classification:   classifications[i],
				Measurement:      measurements[i],
			})
		}
	}

	return decoded, Filename(campaignName, methodName)
}

// Filename derives the workbook filename from the campaign and method
// display names. Two methods sharing a display name within one run collide;
// that is a documented limitation, last writer wins.
func Filename(campaignName, methodName string) string {
	return fmt.Sprintf("%s-%s.xlsx", slug(campaignName), slug(methodName))
}

func slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

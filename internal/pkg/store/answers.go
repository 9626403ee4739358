package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/logger"
)

type AnswerRowsOpts struct {
	OrganizationID uuid.UUID
	CampaignID     uuid.UUID
}

type ExportRowsOpts struct {
	CampaignID uuid.UUID
	MethodID   uuid.UUID
}

var answerColumns = []string{
	"campaign_id", "campaign_name", "campaign_name_es", "campaign_name_en",
	"campaign_year", "prev_campaign_id",
	"survey_id", "survey_created_at", "survey_updated_at", "survey_status",
	"organization_id", "organization_name", "tax_id",
	"method_id", "method_active",
	"method_name", "method_name_es", "method_name_en",
	"method_description", "method_description_es", "method_description_en",
	"section_id", "section_title", "section_title_es", "section_title_en",
	"section_path_order", "method_level",
	"indicator_id", "indicator_code",
	"indicator_name", "indicator_name_es", "indicator_name_en",
	"indicator_description", "indicator_description_es", "indicator_description_en",
	"direct_indicator", "indicator_category", "indicator_data_type", "indicator_unit",
	"gender", "value", "gender_label",
	"value_label", "value_label_es", "value_label_en",
	"prev_gender", "prev_value", "prev_gender_label",
	"prev_value_label", "prev_value_label_es", "prev_value_label_en",
}

var exportColumns = []string{
	"campaign_name", "campaign_name_es", "campaign_name_en",
	"organization_id", "organization_name", "tax_id", "contact",
	"survey_created_at", "survey_updated_at",
	"method_name", "method_name_es", "method_name_en",
	"section_id", "section_title", "section_title_es", "section_title_en",
	"section_path_order",
	"indicator_code", "indicator_name", "indicator_name_es", "indicator_name_en",
	"direct_indicator",
	"str_gender", "str_value",
}

func (s *store) SelectAnswerRows(ctx context.Context, opts AnswerRowsOpts) ([]*domain.AnswerRow, error) {
	query := builder().Select(answerColumns...).
		From(viewCampaignAnswers).
		Where(sq.And{
			sq.Eq{"organization_id": opts.OrganizationID},
			sq.Eq{"campaign_id": opts.CampaignID},
		}).
		OrderBy("survey_id", "method_id", "section_path_order", "indicator_code", "gender")

	var selected []*domain.AnswerRow
	err := s.pool.Selectx(ctx, &selected, query)
	if err != nil {
		logger.Errorf(ctx, "SelectAnswerRows: %s", err.Error())
		return nil, fmt.Errorf("select answer rows: %w", wrapErr(err))
	}

	return selected, nil
}

func (s *store) SelectExportRows(ctx context.Context, opts ExportRowsOpts) ([]*domain.ExportRow, error) {
	query := builder().Select(exportColumns...).
		From(viewMethodExport).
		Where(sq.And{
			sq.Eq{"campaign_id": opts.CampaignID},
			sq.Eq{"method_id": opts.MethodID},
		}).
		OrderBy("section_path_order", "indicator_code", "tax_id")

	var selected []*domain.ExportRow
	err := s.pool.Selectx(ctx, &selected, query)
	if err != nil {
		logger.Errorf(ctx, "SelectExportRows: %s", err.Error())
		return nil, fmt.Errorf("select export rows: %w", wrapErr(err))
	}

	return selected, nil
}

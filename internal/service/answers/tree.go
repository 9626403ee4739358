package answers

import (
	"sort"

	"github.com/google/uuid"
	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/constants"
)

// level keys scope every node by its whole ancestor chain, so two sections
// with one id under different methods never collapse into each other.
type surveyKey struct {
	campaign uuid.UUID
	survey   uuid.UUID
}

type methodKey struct {
	surveyKey
	method uuid.UUID
}

type sectionKey struct {
	methodKey
	section uuid.UUID
}

type indicatorKey struct {
	sectionKey
	indicator uuid.UUID
}

// BuildTree folds flat answer rows into the five-level campaign tree. Each
// level above Result is deduplicated by its natural key within its parent;
// every row contributes one Result under its indicator. Attributes are
// localized for lang as nodes are first seen. A nil or empty row set yields
// an empty tree, not an error.
func BuildTree(rows []*domain.AnswerRow, lang domain.Lang) *domain.AnswersTree {
	tree := &domain.AnswersTree{Campaigns: make([]*domain.Campaign, 0)}

	campaigns := make(map[uuid.UUID]*domain.Campaign)
	surveys := make(map[surveyKey]*domain.Survey)
	methods := make(map[methodKey]*domain.Method)
	sections := make(map[sectionKey]*domain.Section)
	indicators := make(map[indicatorKey]*domain.Indicator)

	for _, row := range rows {
		campaign, ok := campaigns[row.CampaignID]
		if !ok {
			campaign = &domain.Campaign{
				ID:             row.CampaignID,
				Name:           lang.Pick(row.CampaignName, row.CampaignNameES, row.CampaignNameEN),
				Year:           row.CampaignYear,
				PrevCampaignID: row.PrevCampaignID,
				Surveys:        make([]*domain.Survey, 0),
			}
			campaigns[row.CampaignID] = campaign
			tree.Campaigns = append(tree.Campaigns, campaign)
		}

		skey := surveyKey{campaign: row.CampaignID, survey: row.SurveyID}
		survey, ok := surveys[skey]
		if !ok {
			survey = &domain.Survey{
				ID:               row.SurveyID,
				CreatedAt:        row.SurveyCreatedAt,
				UpdatedAt:        row.SurveyUpdatedAt,
				Status:           row.SurveyStatus,
				OrganizationID:   row.OrganizationID,
				OrganizationName: row.OrganizationName,
				TaxID:            row.TaxID,
				Methods:          make([]*domain.Method, 0),
			}
			surveys[skey] = survey
			campaign.Surveys = append(campaign.Surveys, survey)
		}

		mkey := methodKey{surveyKey: skey, method: row.MethodID}
		method, ok := methods[mkey]
		if !ok {
			method = &domain.Method{
				ID:          row.MethodID,
				Active:      row.MethodActive,
				Name:        lang.Pick(row.MethodName, row.MethodNameES, row.MethodNameEN),
				Description: lang.Pick(row.MethodDescription, row.MethodDescriptionES, row.MethodDescriptionEN),
				Sections:    make([]*domain.Section, 0),
			}
			methods[mkey] = method
			survey.Methods = append(survey.Methods, method)
		}

		sectionID := domain.SectionKey(row.SectionID, constants.NoSectionID)
		seckey := sectionKey{methodKey: mkey, section: sectionID}
		section, ok := sections[seckey]
		if !ok {
			section = &domain.Section{
				ID:          sectionID,
				Title:       lang.Pick(row.SectionTitle, row.SectionTitleES, row.SectionTitleEN),
				PathOrder:   row.SectionPathOrder,
				MethodLevel: row.MethodLevel,
				Indicators:  make([]*domain.Indicator, 0),
			}
			sections[seckey] = section
			method.Sections = append(method.Sections, section)
		}

		ikey := indicatorKey{sectionKey: seckey, indicator: row.IndicatorID}
		indicator, ok := indicators[ikey]
		if !ok {
			indicator = &domain.Indicator{
				ID:          row.IndicatorID,
				Code:        row.IndicatorCode,
				Name:        lang.Pick(row.IndicatorName, row.IndicatorNameES, row.IndicatorNameEN),
				Description: lang.Pick(row.IndicatorDescription, row.IndicatorDescriptionES, row.IndicatorDescriptionEN),
				Direct:      row.DirectIndicator,
				Category:    row.IndicatorCategory,
				DataType:    row.IndicatorDataType,
				Unit:        row.IndicatorUnit,
				Results:     make([]*domain.Result, 0),
			}
			indicators[ikey] = indicator
			section.Indicators = append(section.Indicators, indicator)
		}

		indicator.Results = append(indicator.Results, buildResult(row, lang))
	}

	sortTree(tree)

	return tree
}

func buildResult(row *domain.AnswerRow, lang domain.Lang) *domain.Result {
	result := &domain.Result{
		Gender:      row.Gender,
		GenderLabel: row.GenderLabel,
		Value:       row.Value,
		ValueLabel:  lang.PickPtr(row.ValueLabel, row.ValueLabelES, row.ValueLabelEN),
	}

	// The previous-campaign columns come from a left join; gender is the
	// join's tell for whether a prior result exists at all.
	if row.PrevGender != nil {
		prev := &domain.PreviousResult{
			Gender: *row.PrevGender,
			Value:  row.PrevValue,
		}
		if row.PrevGenderLabel != nil {
			prev.GenderLabel = *row.PrevGenderLabel
		}
		prev.ValueLabel = lang.PickPtr(row.PrevValueLabel, row.PrevValueLabelES, row.PrevValueLabelEN)
		result.Previous = prev
	}

	return result
}

// sortTree applies the contractual child orderings: sections by path order,
// indicators by code, results by (gender, previous gender). Campaigns,
// surveys and methods keep first-seen order.
func sortTree(tree *domain.AnswersTree) {
	for _, campaign := range tree.Campaigns {
		for _, survey := range campaign.Surveys {
			for _, method := range survey.Methods {
				sort.SliceStable(method.Sections, func(i, j int) bool {
					return method.Sections[i].PathOrder < method.Sections[j].PathOrder
				})
				for _, section := range method.Sections {
					sort.SliceStable(section.Indicators, func(i, j int) bool {
						return section.Indicators[i].Code < section.Indicators[j].Code
					})
					for _, indicator := range section.Indicators {
						sort.SliceStable(indicator.Results, func(i, j int) bool {
							ri, rj := indicator.Results[i], indicator.Results[j]
							if ri.Gender != rj.Gender {
								return ri.Gender < rj.Gender
							}
							return prevGender(ri) < prevGender(rj)
						})
					}
				}
			}
		}
	}
}

func prevGender(r *domain.Result) string {
	if r.Previous == nil {
		return ""
	}
	return r.Previous.Gender
}

package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/constants"
	"github.com/showyourheart/data-api/internal/service/answers"
)

func (c *Controller) GetAnswers(ctx echo.Context) error {
	organization := ctx.QueryParams().Get("organization")
	campaign := ctx.QueryParams().Get("campaign")
	lang := ctx.QueryParams().Get("lang")

	if organization == "" {
		return constants.ErrMissingOrganization
	}
	if campaign == "" {
		return constants.ErrMissingCampaign
	}

	organizationID, err := uuid.Parse(organization)
	if err != nil {
		return constants.ErrInvalidUUID
	}
	campaignID, err := uuid.Parse(campaign)
	if err != nil {
		return constants.ErrInvalidUUID
	}

	payload, err := c.answersService.GetAnswersJSON(ctx.Request().Context(), answers.GetAnswersOpts{
		OrganizationID: organizationID,
		CampaignID:     campaignID,
		Lang:           domain.ParseLang(lang),
	})
	if err != nil {
		return err
	}

	return ctx.JSONBlob(http.StatusOK, payload)
}

func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

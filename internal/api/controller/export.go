package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/constants"
	"github.com/showyourheart/data-api/internal/service/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (c *Controller) ExportAnswers(ctx echo.Context) error {
	campaign := ctx.QueryParams().Get("campaign")
	method := ctx.QueryParams().Get("method")
	lang := ctx.QueryParams().Get("lang")

	if campaign == "" {
		return constants.ErrMissingCampaign
	}
	if method == "" {
		return constants.ErrMissingMethod
	}

	campaignID, err := uuid.Parse(campaign)
	if err != nil {
		return constants.ErrInvalidUUID
	}
	methodID, err := uuid.Parse(method)
	if err != nil {
		return constants.ErrInvalidUUID
	}

	// direct defaults to true: exports of answered indicators are the
	// common case, derived ones the review case.
	direct := true
	if raw := ctx.QueryParams().Get("direct"); raw != "" {
		direct, err = strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "direct must be a boolean")
		}
	}

	mode, err := export.ParseMode(ctx.QueryParams().Get("mode"))
	if err != nil {
		return err
	}

	file, err := c.exportService.Export(ctx.Request().Context(), export.Opts{
		CampaignID: campaignID,
		MethodID:   methodID,
		Lang:       domain.ParseLang(lang),
		DirectOnly: direct,
		Mode:       mode,
	})
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, file.Name))

	return ctx.Blob(http.StatusOK, xlsxContentType, file.Content)
}

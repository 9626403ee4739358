package controller

import (
	"github.com/showyourheart/data-api/internal/service/answers"
	"github.com/showyourheart/data-api/internal/service/export"
)

type Controller struct {
	answersService *answers.Service
	exportService  *export.Service
}

func NewController(answersService *answers.Service, exportService *export.Service) *Controller {
	return &Controller{
		answersService: answersService,
		exportService:  exportService,
	}
}

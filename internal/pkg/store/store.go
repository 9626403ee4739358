package store

import (
	"context"

	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/store/xpgx"
)

type Pool = *xpgx.Pool

// Store is the Row Source: it supplies the flat, already-materialized rows
// the engine folds into trees and workbooks. Nothing here mutates state.
type Store interface {
	SelectAnswerRows(ctx context.Context, opts AnswerRowsOpts) ([]*domain.AnswerRow, error)
	SelectExportRows(ctx context.Context, opts ExportRowsOpts) ([]*domain.ExportRow, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

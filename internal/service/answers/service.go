package answers

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/cache"
	"github.com/showyourheart/data-api/internal/pkg/logger"
	"github.com/showyourheart/data-api/internal/pkg/store"
)

type Service struct {
	store store.Store
	cache *cache.Cache
}

func NewService(store store.Store, cache *cache.Cache) *Service {
	return &Service{store: store, cache: cache}
}

type GetAnswersOpts struct {
	OrganizationID uuid.UUID
	CampaignID     uuid.UUID
	Lang           domain.Lang
}

// GetAnswers fetches the flat answer rows for one organization and campaign
// and folds them into the nested tree.
func (s *Service) GetAnswers(ctx context.Context, opts GetAnswersOpts) (*domain.AnswersTree, error) {
	rows, err := s.store.SelectAnswerRows(ctx, store.AnswerRowsOpts{
		OrganizationID: opts.OrganizationID,
		CampaignID:     opts.CampaignID,
	})
	if err != nil {
		return nil, fmt.Errorf("SelectAnswerRows: %w", err)
	}

	return BuildTree(rows, opts.Lang), nil
}

// GetAnswersJSON is GetAnswers rendered to a JSON payload, with an optional
// cache in front. Cache failures fall through to a live build.
func (s *Service) GetAnswersJSON(ctx context.Context, opts GetAnswersOpts) ([]byte, error) {
	key := fmt.Sprintf("answers:%s:%s:%s", opts.OrganizationID, opts.CampaignID, opts.Lang)
	if payload, ok := s.cache.Get(ctx, key); ok {
		return payload, nil
	}

	tree, err := s.GetAnswers(ctx, opts)
	if err != nil {
		return nil, err
	}

	payload, err := sonic.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal answers tree: %w", err)
	}

	if err := s.cache.Set(ctx, key, payload); err != nil {
		logger.Warnf(ctx, "cache set failed for %s: %s", key, err.Error())
	}

	return payload, nil
}

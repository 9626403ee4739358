package api

import (
	"context"
	"testing"
	"time"

	"github.com/showyourheart/data-api/internal/domain"
	"github.com/showyourheart/data-api/internal/pkg/store"
	"github.com/stretchr/testify/require"
)

type fakeStore struct{}

func (fakeStore) SelectAnswerRows(context.Context, store.AnswerRowsOpts) ([]*domain.AnswerRow, error) {
	return nil, nil
}

func (fakeStore) SelectExportRows(context.Context, store.ExportRowsOpts) ([]*domain.ExportRow, error) {
	return nil, nil
}

func TestServeReturnsAfterShutdown(t *testing.T) {
	svc, err := NewAPIService(fakeStore{}, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Serve("127.0.0.1:0")
	}()

	require.Eventually(t, func() bool {
		return svc.router.ListenerAddr() != nil
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

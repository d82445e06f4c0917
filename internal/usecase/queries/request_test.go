//go:build unit

package queries_test

import (
	"context"
	"testing"

	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/queries"
	"sponsorship-api/tests/common/builder"
	queriesmock "sponsorship-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRequestQueriesList(t *testing.T) {
	newSut := func(t *testing.T) (*queriesmock.MockRequestReadStore, queries.RequestQueries) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRequestReadStore(ctrl)
		return store, queries.NewRequestQueries(store)
	}

	t.Run("no filter lists everything", func(t *testing.T) {
		store, sut := newSut(t)
		views := []*queries.RequestView{builder.NewRequestBuilder().BuildReadModel()}
		store.EXPECT().List(gomock.Any(), nil).Return(views, nil)

		got, err := sut.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, views, got)
	})

	t.Run("valid status filter is forwarded", func(t *testing.T) {
		store, sut := newSut(t)
		status := "rejected"
		store.EXPECT().List(gomock.Any(), &status).Return([]*queries.RequestView{}, nil)

		_, err := sut.List(context.Background(), &status)
		require.NoError(t, err)
	})

	t.Run("unknown status filter rejected before hitting the store", func(t *testing.T) {
		_, sut := newSut(t)
		status := "archived"

		_, err := sut.List(context.Background(), &status)
		assert.ErrorIs(t, err, queries.ErrInvalidStatusFilter)
	})
}

func TestRequestQueriesGetByID(t *testing.T) {
	t.Run("missing request maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRequestReadStore(ctrl)
		sut := queries.NewRequestQueries(store)

		id := uuid.New()
		store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("request not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := sut.GetByID(context.Background(), id)
		assert.True(t, errs.Is(err, errs.ErrRequestNotFound))
	})
}

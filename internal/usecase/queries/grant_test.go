//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/pkg/clock"
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

func TestGrantQueriesCurrent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newSut := func(t *testing.T) (*queriesmock.MockGrantReadStore, queries.GrantQueries) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockGrantReadStore(ctrl)
		return store, queries.NewGrantQueries(store, clock.NewMockClock(now))
	}

	t.Run("occupied slot returns the grant", func(t *testing.T) {
		store, sut := newSut(t)
		view := builder.NewGrantBuilder().BuildReadModel()
		store.EXPECT().ActiveAt(gomock.Any(), placement.HomeTop, 0, now).Return(view, nil)

		got, err := sut.Current(context.Background(), "home_top", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("vacant slot returns nil without error", func(t *testing.T) {
		store, sut := newSut(t)
		store.EXPECT().ActiveAt(gomock.Any(), placement.HomeRight, 2, now).
			Return(nil, infra.WrapRepoErr("no active grant", pgx.ErrNoRows, infra.KindNotFound))

		got, err := sut.Current(context.Background(), "home_right", 2, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("explicit instant overrides the clock", func(t *testing.T) {
		store, sut := newSut(t)
		at := now.AddDate(0, 0, 5)
		store.EXPECT().ActiveAt(gomock.Any(), placement.HomeTop, 1, at).Return(nil,
			infra.WrapRepoErr("no active grant", pgx.ErrNoRows, infra.KindNotFound))

		_, err := sut.Current(context.Background(), "home_top", 1, &at)
		require.NoError(t, err)
	})

	t.Run("unknown placement rejected before hitting the store", func(t *testing.T) {
		_, sut := newSut(t)

		_, err := sut.Current(context.Background(), "footer", 0, nil)
		assert.True(t, errs.Is(err, errs.ErrInvalidSlot))
	})

	t.Run("slot outside placement rejected", func(t *testing.T) {
		_, sut := newSut(t)

		_, err := sut.Current(context.Background(), "home_top", 2, nil)
		assert.True(t, errs.Is(err, errs.ErrInvalidSlot))
	})
}

func TestGrantQueriesGetByID(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing grant maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockGrantReadStore(ctrl)
		sut := queries.NewGrantQueries(store, clock.NewMockClock(now))

		id := uuid.New()
		store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("grant not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := sut.GetByID(context.Background(), id)
		assert.True(t, errs.Is(err, errs.ErrGrantNotFound))
	})
}

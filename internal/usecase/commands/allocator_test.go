//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/clock"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/commands"
	commandsmock "sponsorship-api/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int { return &v }

func TestAllocateIn(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newAllocator := func(t *testing.T) (commands.Allocator, *commandsmock.MockGrantRepository) {
		ctrl := gomock.NewController(t)
		grants := commandsmock.NewMockGrantRepository(ctrl)
		return commands.NewAllocator(grants, nil, clock.NewMockClock(now), 3), grants
	}

	t.Run("empty slot starts immediately", func(t *testing.T) {
		t.Parallel()
		allocator, grants := newAllocator(t)

		grants.EXPECT().
			SlotTail(gomock.Any(), gomock.Any(), placement.HomeTop, 0).
			Return(nil, nil)

		var inserted *sponsorship.Grant
		grants.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, g *sponsorship.Grant) (uuid.UUID, error) {
				inserted = g
				return g.ID(), nil
			})

		grant, err := allocator.AllocateIn(context.Background(), nil, commands.AllocateParams{
			Placement:    "home_top",
			SlotIndex:    intPtr(0),
			DurationDays: 7,
			ProductID:    "prod-123",
			Source:       sponsorship.SourceManual,
		})
		require.NoError(t, err)
		require.NotNil(t, inserted)

		assert.Equal(t, now, grant.Window().Start())
		assert.Equal(t, now.AddDate(0, 0, 7), grant.Window().End())
		assert.Equal(t, 0, grant.SlotIndex())
		assert.Same(t, inserted, grant)
	})

	t.Run("busy slot defers to the tail", func(t *testing.T) {
		t.Parallel()
		allocator, grants := newAllocator(t)

		tail := now.AddDate(0, 0, 10)
		grants.EXPECT().
			SlotTail(gomock.Any(), gomock.Any(), placement.HomeRight, 1).
			Return(&tail, nil)
		grants.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.New(), nil)

		grant, err := allocator.AllocateIn(context.Background(), nil, commands.AllocateParams{
			Placement:    "home_right",
			SlotIndex:    intPtr(1),
			DurationDays: 5,
			ProductID:    "prod-123",
			Source:       sponsorship.SourceManual,
		})
		require.NoError(t, err)

		assert.Equal(t, tail, grant.Window().Start())
		assert.Equal(t, tail.AddDate(0, 0, 5), grant.Window().End())
	})

	t.Run("any-slot ask picks the earliest available slot", func(t *testing.T) {
		t.Parallel()
		allocator, grants := newAllocator(t)

		// Slot 0 busy for long, slot 2 busy for less, slot 1 free.
		grants.EXPECT().
			SlotTails(gomock.Any(), gomock.Any(), placement.HomeRight).
			Return(map[int]time.Time{
				0: now.AddDate(0, 0, 20),
				2: now.AddDate(0, 0, 15),
			}, nil)
		grants.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.New(), nil)

		grant, err := allocator.AllocateIn(context.Background(), nil, commands.AllocateParams{
			Placement:    "home_right",
			DurationDays: 7,
			ProductID:    "prod-123",
			Source:       sponsorship.SourceCheckout,
			AmountUSDCents: func() *int64 {
				v := int64(49900)
				return &v
			}(),
		})
		require.NoError(t, err)

		assert.Equal(t, 1, grant.SlotIndex())
		assert.Equal(t, now, grant.Window().Start())
		assert.Equal(t, sponsorship.SourceCheckout, grant.Source())
	})

	t.Run("exclusion conflict surfaces as an overlap violation", func(t *testing.T) {
		t.Parallel()
		allocator, grants := newAllocator(t)

		grants.EXPECT().
			SlotTail(gomock.Any(), gomock.Any(), placement.HomeTop, 0).
			Return(nil, nil)
		grants.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert grant", assert.AnError, infra.KindConflict))

		_, err := allocator.AllocateIn(context.Background(), nil, commands.AllocateParams{
			Placement:    "home_top",
			SlotIndex:    intPtr(0),
			DurationDays: 7,
			ProductID:    "prod-123",
			Source:       sponsorship.SourceManual,
		})
		assert.True(t, errs.Is(err, errs.ErrOverlapViolation))
	})

	t.Run("validation failures never touch the store", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name    string
			params  commands.AllocateParams
			wantErr error
		}{
			{
				name: "unknown placement",
				params: commands.AllocateParams{
					Placement: "sidebar", DurationDays: 7, ProductID: "prod-123",
					Source: sponsorship.SourceManual,
				},
				wantErr: errs.ErrInvalidSlot,
			},
			{
				name: "slot out of range",
				params: commands.AllocateParams{
					Placement: "home_top", SlotIndex: intPtr(2), DurationDays: 7,
					ProductID: "prod-123", Source: sponsorship.SourceManual,
				},
				wantErr: errs.ErrInvalidSlot,
			},
			{
				name: "non-positive duration",
				params: commands.AllocateParams{
					Placement: "home_top", SlotIndex: intPtr(0), DurationDays: 0,
					ProductID: "prod-123", Source: sponsorship.SourceManual,
				},
				wantErr: errs.ErrInvalidDuration,
			},
			{
				name: "missing product",
				params: commands.AllocateParams{
					Placement: "home_top", SlotIndex: intPtr(0), DurationDays: 7,
					Source: sponsorship.SourceManual,
				},
				wantErr: errs.ErrInvalidProduct,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				allocator, _ := newAllocator(t)

				_, err := allocator.AllocateIn(context.Background(), nil, tc.params)
				assert.True(t, errs.Is(err, tc.wantErr))
			})
		}
	})
}

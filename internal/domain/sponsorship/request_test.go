//go:build unit

package sponsorship_test

import (
	"testing"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	t.Run("valid request starts pending", func(t *testing.T) {
		req, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, req.ID())
		assert.Equal(t, sponsorship.StatusPending, req.Status())
		assert.True(t, req.IsPending())
		assert.Nil(t, req.ProcessedGrantID())
	})

	t.Run("empty requester email rejected", func(t *testing.T) {
		_, err := builder.NewRequestBuilder().
			With(func(b *builder.RequestBuilder) { b.RequesterEmail = "" }).
			BuildDomain()
		assert.ErrorIs(t, err, sponsorship.ErrInvalidEmail)
	})

	t.Run("slot index outside placement rejected", func(t *testing.T) {
		_, err := builder.NewRequestBuilder().
			With(func(b *builder.RequestBuilder) { b.Placement = "home_top" }).
			WithSlot(2).
			BuildDomain()
		assert.ErrorIs(t, err, placement.ErrSlotOutOfRange)
	})

	t.Run("nil slot index means any slot", func(t *testing.T) {
		req, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Nil(t, req.SlotIndex())
	})
}

func TestRequestStateMachine(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	grantID := uuid.New()

	t.Run("pending to processed", func(t *testing.T) {
		req, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.MarkProcessed(grantID, sponsorship.NewNote("front page push"), now))
		assert.Equal(t, sponsorship.StatusProcessed, req.Status())
		require.NotNil(t, req.ProcessedGrantID())
		assert.Equal(t, grantID, *req.ProcessedGrantID())
		assert.Equal(t, "front page push", req.Note().String(), "admin note is recorded")
		assert.Equal(t, now, req.UpdatedAt())
	})

	t.Run("processing without a note keeps the requester note", func(t *testing.T) {
		req, err := builder.NewRequestBuilder().
			With(func(b *builder.RequestBuilder) { b.Note = "please consider us" }).
			BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.MarkProcessed(grantID, sponsorship.NewNote(""), now))
		assert.Equal(t, "please consider us", req.Note().String())
	})

	t.Run("pending to rejected", func(t *testing.T) {
		req, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.MarkRejected(sponsorship.NewNote("slot unavailable"), now))
		assert.Equal(t, sponsorship.StatusRejected, req.Status())
		assert.Equal(t, "slot unavailable", req.Note().String())
		assert.Nil(t, req.ProcessedGrantID())
	})

	t.Run("processed request refuses further transitions", func(t *testing.T) {
		req, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, req.MarkProcessed(grantID, sponsorship.NewNote(""), now))

		assert.ErrorIs(t, req.MarkProcessed(uuid.New(), sponsorship.NewNote(""), now), sponsorship.ErrAlreadyProcessed)
		assert.ErrorIs(t, req.MarkRejected(sponsorship.NewNote("late"), now), sponsorship.ErrAlreadyProcessed)
		assert.Equal(t, grantID, *req.ProcessedGrantID(), "first outcome is preserved")
	})

	t.Run("rejected request refuses further transitions", func(t *testing.T) {
		req, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, req.MarkRejected(sponsorship.NewNote(""), now))

		assert.ErrorIs(t, req.MarkProcessed(grantID, sponsorship.NewNote(""), now), sponsorship.ErrAlreadyProcessed)
		assert.ErrorIs(t, req.MarkRejected(sponsorship.NewNote("again"), now), sponsorship.ErrAlreadyProcessed)
	})
}

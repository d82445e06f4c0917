//go:build unit

package sponsorship_test

import (
	"testing"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("end must be after start", func(t *testing.T) {
		_, err := sponsorship.NewWindow(base, base)
		assert.ErrorIs(t, err, sponsorship.ErrInvalidWindow)

		_, err = sponsorship.NewWindow(base, base.Add(-time.Hour))
		assert.ErrorIs(t, err, sponsorship.ErrInvalidWindow)
	})

	t.Run("contains is half-open", func(t *testing.T) {
		w, err := sponsorship.NewWindow(base, base.AddDate(0, 0, 7))
		require.NoError(t, err)

		assert.True(t, w.Contains(base), "start is included")
		assert.True(t, w.Contains(base.AddDate(0, 0, 3)))
		assert.False(t, w.Contains(w.End()), "end is excluded")
		assert.False(t, w.Contains(base.Add(-time.Nanosecond)))
	})

	t.Run("touching windows do not overlap", func(t *testing.T) {
		first, err := sponsorship.NewWindow(base, base.AddDate(0, 0, 7))
		require.NoError(t, err)
		second, err := sponsorship.NewWindow(first.End(), first.End().AddDate(0, 0, 7))
		require.NoError(t, err)

		assert.False(t, first.Overlaps(second))
		assert.False(t, second.Overlaps(first))
	})

	t.Run("intersecting windows overlap", func(t *testing.T) {
		first, _ := sponsorship.NewWindow(base, base.AddDate(0, 0, 7))
		second, _ := sponsorship.NewWindow(base.AddDate(0, 0, 6), base.AddDate(0, 0, 10))

		assert.True(t, first.Overlaps(second))
		assert.True(t, second.Overlaps(first))
	})
}

func TestDuration(t *testing.T) {
	t.Run("positive days OK", func(t *testing.T) {
		d, err := sponsorship.NewDuration(14)
		require.NoError(t, err)
		assert.Equal(t, 14, d.Days())
		assert.Equal(t, 14*24*time.Hour, d.AsTimeDuration())
	})

	t.Run("zero and negative rejected", func(t *testing.T) {
		_, err := sponsorship.NewDuration(0)
		assert.ErrorIs(t, err, sponsorship.ErrInvalidDuration)
		_, err = sponsorship.NewDuration(-3)
		assert.ErrorIs(t, err, sponsorship.ErrInvalidDuration)
	})
}

func TestProductRef(t *testing.T) {
	_, err := sponsorship.NewProductRef("")
	assert.ErrorIs(t, err, sponsorship.ErrInvalidProduct)

	p, err := sponsorship.NewProductRef("prod-42")
	require.NoError(t, err)
	assert.Equal(t, "prod-42", p.String())
}

func TestGrant(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("IsActiveAt follows the window", func(t *testing.T) {
		w, err := sponsorship.NewWindow(base, base.AddDate(0, 0, 7))
		require.NoError(t, err)
		product, err := sponsorship.NewProductRef("prod-42")
		require.NoError(t, err)

		g, err := sponsorship.NewGrant(placement.HomeTop, 0, w, product, sponsorship.SourceManual, nil)
		require.NoError(t, err)

		assert.True(t, g.IsActiveAt(base))
		assert.True(t, g.IsActiveAt(base.AddDate(0, 0, 6)))
		assert.False(t, g.IsActiveAt(w.End()))
	})

	t.Run("invalid source rejected", func(t *testing.T) {
		w, _ := sponsorship.NewWindow(base, base.AddDate(0, 0, 1))
		product, _ := sponsorship.NewProductRef("prod-42")

		_, err := sponsorship.NewGrant(placement.HomeTop, 0, w, product, sponsorship.GrantSource("paypal"), nil)
		assert.ErrorIs(t, err, sponsorship.ErrInvalidSource)
	})

	t.Run("slot outside placement rejected", func(t *testing.T) {
		w, _ := sponsorship.NewWindow(base, base.AddDate(0, 0, 1))
		product, _ := sponsorship.NewProductRef("prod-42")

		_, err := sponsorship.NewGrant(placement.HomeTop, 2, w, product, sponsorship.SourceManual, nil)
		assert.Error(t, err)
	})
}

package campaigns_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragavan2104/mailblaster/campaigns"
)

func TestNewRecord(t *testing.T) {
	t.Parallel()

	sentAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))

	t.Run("counts follow outcomes", func(t *testing.T) {
		t.Parallel()
		outcomes := []campaigns.Outcome{
			{Email: "a@x.com", Status: campaigns.StatusSuccess, MessageID: "1"},
			{Email: "bad", Status: campaigns.StatusFailed, Error: "invalid recipient"},
			{Email: "c@x.com", Status: campaigns.StatusSuccess, MessageID: "3"},
		}
		r, err := campaigns.NewRecord("Hi", "body", "root", outcomes, sentAt)
		require.NoError(t, err)

		assert.Equal(t, campaigns.Summary{Total: 3, Successful: 2, Failed: 1}, r.Summary())
		assert.Equal(t, r.TotalRecipients, r.SuccessfulSends+r.FailedSends)
		assert.Len(t, r.Recipients, r.TotalRecipients)
		assert.Equal(t, time.UTC, r.SentAt.Location())
		assert.Equal(t, "root", r.SentBy)
	})

	t.Run("default sender", func(t *testing.T) {
		t.Parallel()
		r, err := campaigns.NewRecord("Hi", "body", "", nil, sentAt)
		require.NoError(t, err)
		assert.Equal(t, "admin", r.SentBy)
		assert.Equal(t, campaigns.Summary{}, r.Summary())
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()
		_, err := campaigns.NewRecord("Hi", "body", "root",
			[]campaigns.Outcome{{Email: "a@x.com", Status: "pending"}}, sentAt)
		require.ErrorIs(t, err, campaigns.ErrCountMismatch)
	})
}

func TestSuccessRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s, f int64
		want int
	}{
		{0, 0, 0},
		{10, 0, 100},
		{0, 10, 0},
		{2, 1, 67},
		{1, 2, 33},
		{1, 1, 50},
		{1, 7, 13}, // 12.5 rounds up
		{7, 1, 88}, // 87.5 rounds up
		{199, 1, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, campaigns.SuccessRate(tt.s, tt.f), "s=%d f=%d", tt.s, tt.f)
	}
}

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 25, 2, 25},
		{1, 1000, 1, 100},
	}
	for _, tt := range tests {
		p, l := campaigns.NormalizePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantLimit, l)
	}
}

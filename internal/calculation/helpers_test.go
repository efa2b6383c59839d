package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertWon(t *testing.T, expected decimal.Decimal, actual decimal.Decimal, description string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", description, expected.String(), actual.String())
}

func fixClock(t *testing.T) time.Time {
	t.Helper()
	fixed := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	t.Cleanup(func() { SetNowFunc(time.Now) })
	return fixed
}

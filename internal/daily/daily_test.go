package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/sentences"
)

func TestDateKeyIsUTC(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	at := time.Date(2026, 3, 2, 5, 0, 0, 0, seoul)
	assert.Equal(t, "2026-03-01", DateKey(at))
}

func TestSeed(t *testing.T) {
	day := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	assert.Equal(t, Seed(day, "salt"), Seed(later, "salt"), "same day, same seed")
	assert.NotEqual(t, Seed(day, "salt"), Seed(day.AddDate(0, 0, 1), "salt"))
	assert.NotEqual(t, Seed(day, "salt"), Seed(day, "pepper"))
}

func TestOrder(t *testing.T) {
	bank, err := sentences.Load("")
	require.NoError(t, err)
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a := Order(day, "salt", bank)
	b := Order(day.Add(time.Hour), "salt", bank)
	assert.Equal(t, a, b)
	assert.ElementsMatch(t, bank.All(), a)
	assert.NotEqual(t, a, Order(day.AddDate(0, 0, 1), "salt", bank))
}

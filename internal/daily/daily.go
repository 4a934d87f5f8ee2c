package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/sentences"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic seed for a date using HMAC(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// Order returns the day's sentence order: the same for every player on a date.
func Order(date time.Time, salt string, bank *sentences.Bank) []string {
	seed := Seed(date, salt)
	return bank.Shuffled(rand.New(rand.NewPCG(seed, seed>>1)))
}

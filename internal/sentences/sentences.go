// apps/go-server/internal/sentences/sentences.go
//
// The practice sentence bank.
//
// Responsibilities:
//   - Load sentences from SENTENCES_FILE, or fall back to the embedded
//     assets/sentences.txt.
//   - Normalize every line to NFC: files saved in decomposed form would
//     otherwise hold no precomposed syllables to shoot at.
//   - Hand out copies in file order or shuffled with a caller-supplied source,
//     so daily mode can reproduce an order from a seed.
//
// Environment variables:
//   SENTENCES_FILE=/path/to/sentences.txt   (one sentence per line, # comments)
//
// Initialization is run once (sync.Once).

package sentences

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/jamo-archer/apps/go-server/assets"
	"github.com/robalobadob/jamo-archer/apps/go-server/internal/hangul"
)

// ErrEmpty is returned when a bank ends up with no sentences.
var ErrEmpty = errors.New("sentences: bank is empty")

// Bank is an immutable list of sentences.
type Bank struct {
	list []string
}

// Load reads a bank from path, or from the embedded list when path is empty.
func Load(path string) (*Bank, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = assets.SentenceList()
	} else {
		list, err = readFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("sentences: load %q: %w", path, err)
	}
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	for i, line := range list {
		list[i] = norm.NFC.String(line)
	}
	return &Bank{list: list}, nil
}

// FromList builds a bank from an in-memory list.
func FromList(list []string) (*Bank, error) {
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	out := make([]string, len(list))
	for i, line := range list {
		out[i] = norm.NFC.String(line)
	}
	return &Bank{list: out}, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// All returns the sentences in file order.
func (b *Bank) All() []string { return append([]string(nil), b.list...) }

// Count returns the number of sentences.
func (b *Bank) Count() int { return len(b.list) }

// Shuffled returns a permuted copy drawn from rng.
func (b *Bank) Shuffled(rng *rand.Rand) []string {
	out := b.All()
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Stats returns the sentence count and the total number of jamo to shoot.
func (b *Bank) Stats() (sentences int, jamo int) {
	for _, s := range b.list {
		jamo += len(hangul.TargetSequence(s))
	}
	return len(b.list), jamo
}

var (
	initOnce sync.Once
	bank     *Bank
	initErr  error
)

// Init loads the process-wide bank exactly once.
func Init() error {
	initOnce.Do(func() {
		bank, initErr = Load(os.Getenv("SENTENCES_FILE"))
	})
	return initErr
}

// Default returns the process-wide bank, loading it on first use.
// It returns nil if loading failed.
func Default() *Bank {
	_ = Init()
	return bank
}

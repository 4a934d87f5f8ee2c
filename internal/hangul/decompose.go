// apps/go-server/internal/hangul/decompose.go
//
// Decomposition of Korean sentences into the jamo a player has to shoot.
// Responsibilities:
//   - Split one precomposed syllable into initial/medial/(final) jamo.
//   - Flatten a sentence into an ordered symbol sequence, keeping punctuation.
//   - Derive the target sequence (punctuation and spaces removed).
//   - Mark which decomposed symbols are already matched, for display.
//
// Everything here is pure and deterministic.

package hangul

// DecomposeSyllable returns the jamo of a single character.
//
//   - Standalone jamo letters come back unchanged.
//   - Characters outside the precomposed range pass through unchanged.
//   - Syllables yield initial + medial, plus the final only when present.
func DecomposeSyllable(r rune) []string {
	if r >= CompatFirst && r <= CompatLast {
		return []string{string(r)}
	}
	if r < SyllableBase || r > SyllableLast {
		return []string{string(r)}
	}

	rel := int(r - SyllableBase)
	initial := rel / blockSize
	medial := (rel % blockSize) / FinalCount
	final := rel % FinalCount

	out := []string{Initials[initial], Medials[medial]}
	if final > 0 {
		out = append(out, Finals[final])
	}
	return out
}

// DecomposeSentence flattens a sentence into jamo and punctuation, in order.
// Spaces and . ? ! are kept as their own slots.
func DecomposeSentence(sentence string) []string {
	out := make([]string, 0, len(sentence))
	for _, r := range sentence {
		if isPunctRune(r) {
			out = append(out, string(r))
			continue
		}
		out = append(out, DecomposeSyllable(r)...)
	}
	return out
}

// TargetSequence is DecomposeSentence without punctuation and spaces:
// the symbols the player must hit, in order.
func TargetSequence(sentence string) []string {
	all := DecomposeSentence(sentence)
	out := make([]string, 0, len(all))
	for _, s := range all {
		if !IsPunctuation(s) {
			out = append(out, s)
		}
	}
	return out
}

// IsPunctuation reports whether sym is one of the literals excluded from matching.
func IsPunctuation(sym string) bool {
	switch sym {
	case " ", ".", "?", "!":
		return true
	}
	return false
}

func isPunctRune(r rune) bool {
	return r == ' ' || r == '.' || r == '?' || r == '!'
}

// Mark is one decomposed slot of a sentence, flagged for display.
type Mark struct {
	Symbol string `json:"symbol"`
	Punct  bool   `json:"punct,omitempty"`
	Done   bool   `json:"done,omitempty"`
}

// Marks walks the decomposed sentence and flags the slots covered by the
// completed prefix. Punctuation is never "done"; it is shown as-is.
func Marks(sentence string, completed []string) []Mark {
	all := DecomposeSentence(sentence)
	out := make([]Mark, len(all))
	next := 0
	for i, s := range all {
		out[i].Symbol = s
		if IsPunctuation(s) {
			out[i].Punct = true
			continue
		}
		if next < len(completed) && completed[next] == s {
			out[i].Done = true
			next++
		}
	}
	return out
}

// Compose is the inverse of the syllable formula. Indices are not range checked;
// a final of 0 means no trailing consonant.
func Compose(initial, medial, final int) rune {
	return rune(SyllableBase + initial*blockSize + medial*FinalCount + final)
}

// Index looks a jamo symbol up in the three alphabets. It returns the slot it
// occupies and its index there, or ok=false.
func Index(sym string) (slot Slot, idx int, ok bool) {
	for i, s := range Initials {
		if s == sym {
			return SlotInitial, i, true
		}
	}
	for i, s := range Medials {
		if s == sym {
			return SlotMedial, i, true
		}
	}
	for i := 1; i < FinalCount; i++ {
		if Finals[i] == sym {
			return SlotFinal, i, true
		}
	}
	return 0, 0, false
}

// Slot names the position a jamo occupies inside a syllable.
type Slot int

const (
	SlotInitial Slot = iota + 1
	SlotMedial
	SlotFinal
)

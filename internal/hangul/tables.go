// apps/go-server/internal/hangul/tables.go
//
// Fixed jamo alphabets used by the decomposition formula.
// Symbols are Unicode conjoining jamo (U+1100 block), in the index order the
// Hangul Syllables block is composed from:
//   - Initials: 19 leading consonants.
//   - Medials:  21 vowels.
//   - Finals:   28 slots, index 0 meaning "no trailing consonant".

package hangul

const (
	// SyllableBase is the first precomposed syllable (가).
	SyllableBase = 0xAC00
	// SyllableLast is the last precomposed syllable (힣).
	SyllableLast = 0xD7A3

	// CompatFirst..CompatLast is the standalone (compatibility) jamo range:
	// letters written on their own, not composed into a syllable.
	CompatFirst = 0x3131
	CompatLast  = 0x3163

	InitialCount = 19
	MedialCount  = 21
	FinalCount   = 28

	// blockSize is the number of syllables sharing one initial consonant.
	blockSize = MedialCount * FinalCount // 588
)

// Initials lists the leading consonants ᄀ..ᄒ.
var Initials = [InitialCount]string{
	"\u1100", "\u1101", "\u1102", "\u1103", "\u1104", "\u1105", "\u1106",
	"\u1107", "\u1108", "\u1109", "\u110A", "\u110B", "\u110C", "\u110D",
	"\u110E", "\u110F", "\u1110", "\u1111", "\u1112",
}

// Medials lists the vowels ᅡ..ᅵ.
var Medials = [MedialCount]string{
	"\u1161", "\u1162", "\u1163", "\u1164", "\u1165", "\u1166", "\u1167",
	"\u1168", "\u1169", "\u116A", "\u116B", "\u116C", "\u116D", "\u116E",
	"\u116F", "\u1170", "\u1171", "\u1172", "\u1173", "\u1174", "\u1175",
}

// Finals lists the trailing consonants; Finals[0] is the empty "no final" slot
// and is never emitted as a symbol.
var Finals = [FinalCount]string{
	"", "\u11A8", "\u11A9", "\u11AA", "\u11AB", "\u11AC", "\u11AD",
	"\u11AE", "\u11AF", "\u11B0", "\u11B1", "\u11B2", "\u11B3", "\u11B4",
	"\u11B5", "\u11B6", "\u11B7", "\u11B8", "\u11B9", "\u11BA", "\u11BB",
	"\u11BC", "\u11BD", "\u11BE", "\u11BF", "\u11C0", "\u11C1", "\u11C2",
}

var alphabet = buildAlphabet()

// Alphabet returns the full jamo alphabet used for distractor tiles:
// initials, then medials, then finals without the empty slot.
// The returned slice is a copy.
func Alphabet() []string {
	out := make([]string, len(alphabet))
	copy(out, alphabet)
	return out
}

func buildAlphabet() []string {
	out := make([]string, 0, InitialCount+MedialCount+FinalCount-1)
	seen := make(map[string]struct{}, cap(out))
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range Initials {
		add(s)
	}
	for _, s := range Medials {
		add(s)
	}
	for _, s := range Finals {
		add(s)
	}
	return out
}

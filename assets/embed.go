// apps/go-server/assets/embed.go
//
// Embedded sentence bank used when no SENTENCES_FILE is configured.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed sentences.txt
var FS embed.FS

// ReadLines returns the non-empty, non-comment lines of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// SentenceList returns the embedded sentences in file order.
func SentenceList() ([]string, error) {
	f, err := FS.Open("sentences.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

package search

import (
	"hash/fnv"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// foldASCII decomposes accented characters and drops anything that
// still falls outside ASCII, so "São Paulo" becomes "Sao Paulo".
func foldASCII(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeQuery prepares free text for the hybrid search: keep only
// letters, digits and spaces, lowercase, fold to ASCII.
func normalizeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return foldASCII(strings.ToLower(b.String()))
}

// normalizeLookup prepares text for title/URL lookup, which keeps
// punctuation so URL fragments still match.
func normalizeLookup(s string) string {
	return strings.ToLower(foldASCII(s))
}

// memoKey hashes the operation name and normalized arguments into one
// opaque cache key.
func memoKey(op, query string, generateSummary bool, systemPrompt string) uint64 {
	h := fnv.New64a()
	for _, part := range []string{op, query, strconv.FormatBool(generateSummary), systemPrompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

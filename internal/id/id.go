package id

import (
	"strings"

	"github.com/google/uuid"
)

// namespace scopes generated entry IDs to this engine.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://cleared.dev/compta/entries"))

// Kinds of entries the engine generates.
const (
	KindClosing = "cloture"
	KindOpening = "a-nouveau"
	// KindBankImport IDs are keyed by the statement line reference
	// rather than a period.
	KindBankImport = "releve"
)

// Generated returns a stable entry ID for an engine-generated entry.
// The same kind and period always produce the same ID.
func Generated(kind, periodID string) string {
	return uuid.NewSHA1(namespace, []byte(kind+"/"+periodID)).String()
}

// Letters returns the n-th label of the sequence a, b, ..., z, aa, ab, ...
// (bijective base 26). Negative n returns "".
func Letters(n int) string {
	if n < 0 {
		return ""
	}
	var b []byte
	for n >= 0 {
		b = append(b, byte('a'+n%26))
		n = n/26 - 1
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// LettersIndex is the inverse of Letters. It is case-insensitive and returns
// -1 for anything that is not a letter label.
func LettersIndex(s string) int {
	if s == "" {
		return -1
	}
	n := 0
	for _, r := range strings.ToLower(s) {
		if r < 'a' || r > 'z' {
			return -1
		}
		n = n*26 + int(r-'a') + 1
	}
	return n - 1
}

// FormatLineID returns a line ID like "<entry>a" (line 0='a', 1='b', etc.).
func FormatLineID(entryID string, line int) string {
	return entryID + Letters(line)
}

package lettrage

import (
	"strings"

	"github.com/cleared-dev/compta/internal/id"
	"github.com/cleared-dev/compta/internal/model"
)

// NextCode returns the first code of the sequence A, B, ..., Z, AA, AB, ...
// that is not in used. Comparison ignores case.
func NextCode(used []string) string {
	taken := make(map[int]bool, len(used))
	for _, u := range used {
		if n := id.LettersIndex(strings.TrimSpace(u)); n >= 0 {
			taken[n] = true
		}
	}
	n := 0
	for taken[n] {
		n++
	}
	return strings.ToUpper(id.Letters(n))
}

// UsedCodes lists the distinct lettrage codes on an account, in order of
// first appearance.
func UsedCodes(lines []model.Line, account string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lines {
		if l.AccountNumber != account || l.LettrageCode == "" || seen[l.LettrageCode] {
			continue
		}
		seen[l.LettrageCode] = true
		out = append(out, l.LettrageCode)
	}
	return out
}

package textutil

import (
	"regexp"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

type candidate struct {
	value      string
	similarity float64
}

// ClosestMatches returns up to `limit` candidates most similar to target (by Jaro-Winkler),
// ignoring anything below `threshold`. the most similar come first.
func ClosestMatches(target string, candidates []string, limit int, threshold float64) []string {
	normalizedTarget := NormalizeName(target)

	var scored []candidate
	for _, c := range candidates {
		normalized := NormalizeName(c)
		if normalized == "" {
			continue
		}
		similarity := matchr.JaroWinkler(normalizedTarget, normalized, false)
		if similarity < threshold {
			continue
		}
		scored = append(scored, candidate{value: c, similarity: similarity})
	}

	slices.SortStableFunc(scored, func(a, b candidate) int {
		if a.similarity > b.similarity {
			return -1
		}
		if a.similarity < b.similarity {
			return 1
		}
		return 0
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]string, len(scored))
	for i, c := range scored {
		out[i] = c.value
	}
	return out
}

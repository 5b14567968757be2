package nlp

import (
	"strings"

	"go-textlens/types"
)

// foundEntity is an entity a model reported without offsets.
type foundEntity struct {
	Text  string
	Label string
}

// locateEntities assigns code point offsets to entities by finding their text
// in the input. Matches are taken left to right and never overlap; an entity
// whose text does not occur in a free region is dropped.
func locateEntities(text string, found []foundEntity) []types.Entity {
	runes := []rune(text)
	taken := make([]bool, len(runes))
	cursor := 0

	entities := []types.Entity{}
	for _, f := range found {
		needle := []rune(strings.TrimSpace(f.Text))
		label := strings.ToUpper(strings.TrimSpace(f.Label))
		if len(needle) == 0 || label == "" {
			continue
		}

		start := findFree(runes, needle, taken, cursor)
		if start < 0 {
			// the model may list entities out of order
			start = findFree(runes, needle, taken, 0)
		}
		if start < 0 {
			continue
		}

		end := start + len(needle)
		for i := start; i < end; i++ {
			taken[i] = true
		}
		cursor = end

		entities = append(entities, types.Entity{
			Text:  string(needle),
			Label: label,
			Start: start,
			End:   end,
		})
	}
	return entities
}

// findFree returns the first index >= from where needle occurs in haystack
// without touching a taken position, or -1.
func findFree(haystack, needle []rune, taken []bool, from int) int {
outer:
	for i := from; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] || taken[i+j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

package team

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/riskibarqy/quiniela/internal/platform/textfold"
)

const fuzzyThreshold = 0.6

// Catalog resolves free-text team names to static logo paths.
type Catalog struct {
	logos      map[string]string
	folded     map[string]string
	keys       []string
	shortNames map[string]string
}

func NewCatalog(logos, shortNames map[string]string) *Catalog {
	c := &Catalog{
		logos:      make(map[string]string, len(logos)),
		folded:     make(map[string]string, len(logos)),
		keys:       make([]string, 0, len(logos)),
		shortNames: make(map[string]string, len(shortNames)),
	}
	for name, path := range logos {
		c.logos[name] = path
		key := textfold.Key(name)
		if _, exists := c.folded[key]; !exists {
			c.folded[key] = path
			c.keys = append(c.keys, key)
		}
	}
	// Longest names first so "Santos Laguna" wins over "Santos".
	sort.Slice(c.keys, func(i, j int) bool {
		if len(c.keys[i]) != len(c.keys[j]) {
			return len(c.keys[i]) > len(c.keys[j])
		}
		return c.keys[i] < c.keys[j]
	})
	for name, short := range shortNames {
		c.shortNames[name] = short
	}
	return c
}

// DefaultCatalog carries the Liga MX and Premier League clubs the pool usually lists.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultLogos, defaultShortNames)
}

// Logo tries, in order: exact name, case and accent insensitive name, a known
// name contained in the input, then the closest name by edit distance.
func (c *Catalog) Logo(name string) (string, bool) {
	if path, ok := c.logos[name]; ok {
		return path, true
	}

	key := textfold.Key(name)
	if key == "" {
		return "", false
	}
	if path, ok := c.folded[key]; ok {
		return path, true
	}

	for _, candidate := range c.keys {
		if strings.Contains(key, candidate) {
			return c.folded[candidate], true
		}
	}

	best := ""
	bestSimilarity := fuzzyThreshold
	for _, candidate := range c.keys {
		distance := fuzzy.LevenshteinDistance(key, candidate)
		maxLen := float64(max(len(key), len(candidate)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > bestSimilarity {
			best = candidate
			bestSimilarity = similarity
		}
	}
	if best == "" {
		return "", false
	}
	return c.folded[best], true
}

func (c *Catalog) ShortName(name string) string {
	if short, ok := c.shortNames[name]; ok {
		return short
	}
	return name
}

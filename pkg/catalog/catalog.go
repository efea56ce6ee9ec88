// Package catalog exposes the static list of instruments the dashboard can
// browse. The list is embedded and loaded once at startup.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed instruments.yaml
var instrumentsYAML []byte

const DefaultSuggestLimit = 5

var ErrUnknownCategory = errors.New("unknown category")

// Category groups instruments for browsing.
type Category string

const (
	Stocks      Category = "stocks"
	Indices     Category = "indices"
	Bonds       Category = "bonds"
	Crypto      Category = "crypto"
	Commodities Category = "commodities"
)

// Instrument is one catalog entry.
type Instrument struct {
	Symbol      string   `yaml:"symbol" json:"symbol"`
	Name        string   `yaml:"name" json:"name"`
	Category    Category `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
}

// CategoryInfo describes a category for listings.
type CategoryInfo struct {
	Key         Category `yaml:"key" json:"key"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
}

type document struct {
	Categories  []CategoryInfo `yaml:"categories"`
	Instruments []Instrument   `yaml:"instruments"`
}

// Catalog is immutable after Load.
type Catalog struct {
	categories  []CategoryInfo
	instruments []Instrument
	bySymbol    map[string]int
	byCategory  map[Category][]int
}

// Load parses the embedded instrument list.
func Load() (*Catalog, error) {
	return Parse(instrumentsYAML)
}

// MustLoad panics when the embedded catalog is invalid.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from YAML. Duplicate symbols keep the first entry.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	c := &Catalog{
		categories: doc.Categories,
		bySymbol:   make(map[string]int, len(doc.Instruments)),
		byCategory: make(map[Category][]int, len(doc.Categories)),
	}
	known := make(map[Category]bool, len(doc.Categories))
	for _, info := range doc.Categories {
		known[info.Key] = true
	}
	for _, inst := range doc.Instruments {
		inst.Symbol = strings.ToUpper(strings.TrimSpace(inst.Symbol))
		if inst.Symbol == "" {
			return nil, errors.New("catalog: instrument with empty symbol")
		}
		if !known[inst.Category] {
			return nil, fmt.Errorf("catalog: %s: %w %q", inst.Symbol, ErrUnknownCategory, inst.Category)
		}
		if _, dup := c.bySymbol[inst.Symbol]; dup {
			continue
		}
		idx := len(c.instruments)
		c.instruments = append(c.instruments, inst)
		c.bySymbol[inst.Symbol] = idx
		c.byCategory[inst.Category] = append(c.byCategory[inst.Category], idx)
	}
	return c, nil
}

// All returns every instrument in catalog order.
func (c *Catalog) All() []Instrument {
	out := make([]Instrument, len(c.instruments))
	copy(out, c.instruments)
	return out
}

// Categories returns the category list in display order.
func (c *Catalog) Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(c.categories))
	copy(out, c.categories)
	return out
}

// ParseCategory validates a category key.
func (c *Catalog) ParseCategory(raw string) (Category, error) {
	key := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, info := range c.categories {
		if info.Key == key {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCategory, raw)
}

func (c *Catalog) ByCategory(cat Category) []Instrument {
	idx := c.byCategory[cat]
	out := make([]Instrument, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.instruments[i])
	}
	return out
}

// Lookup finds an instrument by symbol, case-insensitively.
func (c *Catalog) Lookup(symbol string) (Instrument, bool) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return Instrument{}, false
	}
	return c.instruments[i], true
}

// Suggest returns up to limit instruments whose symbol contains the query,
// whose symbol is contained in the query, or whose name contains it. Exact and
// prefix symbol matches rank first.
func (c *Catalog) Suggest(query string, limit int) []Instrument {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return []Instrument{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	type scored struct {
		rank int
		idx  int
	}
	var hits []scored
	for i, inst := range c.instruments {
		rank := -1
		switch {
		case inst.Symbol == q:
			rank = 0
		case strings.HasPrefix(inst.Symbol, q):
			rank = 1
		case strings.Contains(inst.Symbol, q), strings.Contains(q, inst.Symbol) && len(inst.Symbol) > 1:
			rank = 2
		case strings.Contains(strings.ToUpper(inst.Name), q):
			rank = 3
		}
		if rank >= 0 {
			hits = append(hits, scored{rank: rank, idx: i})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].rank < hits[b].rank })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Instrument, 0, len(hits))
	for _, h := range hits {
		out = append(out, c.instruments[h.idx])
	}
	return out
}

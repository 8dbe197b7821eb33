// Package holiday generates the read-only public holiday overlay for a year.
package holiday

import "github.com/okian/agenda/internal/domain/model"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRegional toggles the Comunidad de Madrid entries.
func WithRegional(include bool) Option {
	return func(g *Generator) {
		g.regional = include
	}
}

// WithGoodFridayOverrides pins Good Friday to explicit dates for some years.
// Malformed keys and keys outside their year are ignored.
func WithGoodFridayOverrides(overrides map[int]model.DateKey) Option {
	return func(g *Generator) {
		g.overrides = make(map[int]model.DateKey, len(overrides))
		for year, key := range overrides {
			canon, err := model.ParseDateKey(string(key))
			if err != nil || canon.Date().Year != year {
				continue
			}
			g.overrides[year] = canon
		}
	}
}

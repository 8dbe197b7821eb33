package holiday

import (
	"sort"

	"github.com/google/uuid"

	"github.com/okian/agenda/internal/domain/model"
)

// fixedDate is a holiday that falls on the same day every year.
type fixedDate struct {
	month int // zero-indexed
	day   int
	title string
}

// Spanish national holidays on fixed dates.
var national = []fixedDate{
	{0, 1, "Año Nuevo"},
	{0, 6, "Epifanía del Señor"},
	{4, 1, "Fiesta del Trabajo"},
	{7, 15, "Asunción de la Virgen"},
	{9, 12, "Fiesta Nacional de España"},
	{10, 1, "Todos los Santos"},
	{11, 6, "Día de la Constitución Española"},
	{11, 8, "Inmaculada Concepción"},
	{11, 25, "Navidad"},
}

// Comunidad de Madrid additions.
var regional = []fixedDate{
	{4, 2, "Fiesta de la Comunidad de Madrid"},
	{4, 15, "San Isidro"},
}

const goodFriday = "Viernes Santo"

// idNamespace scopes holiday ids so they never collide with user event ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/okian/agenda/holidays"))

// ID returns the deterministic id of a holiday titled title on key.
func ID(key model.DateKey, title string) string {
	return uuid.NewSHA1(idNamespace, []byte(string(key)+"|"+title)).String()
}

// Generator builds holiday maps. The zero value is not usable; call New.
type Generator struct {
	regional  bool
	overrides map[int]model.DateKey
}

// New creates a Generator. Regional entries are included by default.
func New(opts ...Option) *Generator {
	g := &Generator{regional: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Regional reports whether regional entries are generated.
func (g *Generator) Regional() bool { return g.regional }

// Build returns the holidays of year. It is a pure function of year and the
// generator's options: equal inputs give deeply equal maps.
func (g *Generator) Build(year int) *Map {
	m := &Map{
		year:     year,
		regional: g.regional,
		entries:  make(map[model.DateKey][]model.HolidayEvent),
	}

	for _, f := range national {
		m.add(model.NewDateKey(year, f.month, f.day), f.title)
	}

	gf, ok := g.overrides[year]
	if !ok {
		gf = GoodFriday(year).Key()
	}
	m.add(gf, goodFriday)

	if g.regional {
		for _, f := range regional {
			m.add(model.NewDateKey(year, f.month, f.day), f.title)
		}
	}
	return m
}

// Map holds the holidays of a single year. It is immutable once built.
type Map struct {
	year     int
	regional bool
	entries  map[model.DateKey][]model.HolidayEvent
}

func (m *Map) add(key model.DateKey, title string) {
	m.entries[key] = append(m.entries[key], model.NewHolidayEvent(ID(key, title), title, key))
}

// Year returns the generation tag.
func (m *Map) Year() int { return m.year }

// Regional reports whether the map includes regional entries.
func (m *Map) Regional() bool { return m.regional }

// Get returns the holidays on key in table order. Safe on a nil map.
func (m *Map) Get(key model.DateKey) []model.HolidayEvent {
	if m == nil {
		return nil
	}
	src := m.entries[key]
	if len(src) == 0 {
		return nil
	}
	out := make([]model.HolidayEvent, len(src))
	copy(out, src)
	return out
}

// Keys returns every date carrying a holiday, ascending.
func (m *Map) Keys() []model.DateKey {
	if m == nil {
		return nil
	}
	keys := make([]model.DateKey, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of holiday entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, hs := range m.entries {
		n += len(hs)
	}
	return n
}

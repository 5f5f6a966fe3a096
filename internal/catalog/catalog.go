// Package catalog holds the static table of published videos. The catalog is
// code, not configuration: keys appear in cached public URLs and must never be
// renamed, and updates ship with a redeploy rather than through a runtime API.
package catalog

// Entry maps a public video key to its object in the media bucket, plus the
// display metadata the listing endpoint exposes.
type Entry struct {
	// Key is the stable public identifier used in /media/{key} URLs.
	Key string
	// ObjectName is the name of the backing object in the bucket. It may
	// differ from Key (display filenames can contain spaces).
	ObjectName string

	ID          string
	Title       string
	Category    string
	Description string
}

// Catalog is an immutable, ordered key→entry table.
type Catalog struct {
	entries []Entry
	byKey   map[string]Entry
}

// New builds a catalog from entries, preserving their order.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		byKey:   make(map[string]Entry, len(entries)),
	}
	copy(c.entries, entries)
	for _, e := range entries {
		c.byKey[e.Key] = e
	}
	return c
}

// Resolve looks up an entry by its public key. Matching is exact and
// case-sensitive; there is no fuzzy or prefix matching.
func (c *Catalog) Resolve(key string) (Entry, bool) {
	e, ok := c.byKey[key]
	return e, ok
}

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Keys returns all public keys in catalog order. Error responses include this
// list so API consumers can see what is actually published.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Default returns the published video catalog.
func Default() *Catalog {
	return New([]Entry{
		{
			Key:         "HERO_DEMO",
			ObjectName:  "Skillia Demo.mp4",
			ID:          "hero-vsl",
			Title:       "Ahorra tiempo, esfuerzo y dinero mientras aprendes trading con el curso más completo",
			Category:    "hero",
			Description: "Main hero video sales letter",
		},
		{
			Key:        "TESTIMONIAL_CHRISTIAN",
			ObjectName: "Christian.mp4",
			ID:         "testimonial-christian",
			Title:      "Christian - Operaciones Superiores al 11% Diario",
			Category:   "testimonial",
		},
		{
			Key:        "TESTIMONIAL_LEONARDO",
			ObjectName: "Leonardo.mp4",
			ID:         "testimonial-leonardo",
			Title:      "Leonardo - Operaciones de Hasta 7x",
			Category:   "testimonial",
		},
		{
			Key:        "TESTIMONIAL_MILLER",
			ObjectName: "Miller.mp4",
			ID:         "testimonial-miller",
			Title:      "Miller - Triplicó su Cuenta en 3 Meses",
			Category:   "testimonial",
		},
		{
			Key:        "TESTIMONIAL_SANTIAGO",
			ObjectName: "Santiago.mp4",
			ID:         "testimonial-santiago",
			Title:      "Santiago - Rentabilidad del 50% en 3 Meses",
			Category:   "testimonial",
		},
		{
			Key:        "TESTIMONIAL_ETHSON",
			ObjectName: "Ethson.mp4",
			ID:         "testimonial-ethson",
			Title:      "Ethson - Dejó su Oficio en la Banca para Vivir del Trading",
			Category:   "testimonial",
		},
	})
}

package domain

// AristaExpress is the promotional arista whose albums are the five express
// tiers scored by the express table instead of the per-type rules.
const AristaExpress = "actividades-express"

// Taxonomy maps each arista key to its album keys. It is static
// configuration loaded at startup and injected into the lifecycle manager,
// never a hidden global, so tests can substitute their own.
type Taxonomy map[string][]string

// DefaultTaxonomy returns the canonical six-arista catalogue.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"introspecciones": {"cartas-al-alma", "diarios", "confesiones"},
		"atmosferas":      {"paisajes", "estaciones", "nocturnos"},
		"personajes":      {"retratos", "vinculos", "antagonistas"},
		"mundos":          {"mitologias", "ciudades", "umbrales"},
		AristaExpress:     {"express-1", "express-2", "express-3", "express-4", "express-5"},
		"miscelanea":      {"encuestas", "collages", "poemas", "pinturas", "interpretaciones"},
	}
}

// HasArista reports whether the arista key exists.
func (t Taxonomy) HasArista(arista string) bool {
	_, ok := t[arista]
	return ok
}

// HasAlbum reports whether album is a valid sub-category of arista.
func (t Taxonomy) HasAlbum(arista, album string) bool {
	for _, a := range t[arista] {
		if a == album {
			return true
		}
	}
	return false
}

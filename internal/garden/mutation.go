package garden

// TODO(tatianab): let worlds define their own glyph sets instead of this fixed table.

// SeedGlyph is the glyph every freshly planted seed starts with.
const SeedGlyph = "🌱"

// growthNext maps a glyph to the glyph it grows into once the state is old
// enough. Glyphs absent from the map are fully grown.
var growthNext = map[string]string{
	"🌱": "🌿",
	"🌿": "🌳",
	"🌾": "🌿",
	"🌲": "🌳",
}

// growthThresholds are the ages at which plants advance one growth stage.
var growthThresholds = []float64{5.0, 15.0}

// mutationTable maps every recognized glyph to its possible mutated variants.
// Every entry has at least one variant, so a recognized glyph always mutates
// into something.
var mutationTable = map[string][]string{
	"🌱": {"🌸", "🍄"},
	"🌿": {"🌻", "🌾"},
	"🌳": {"🌲", "🌹"},
	"🌸": {"🌹", "🌻"},
	"🌻": {"🌸"},
	"🌹": {"🌺"},
	"🌺": {"🌹"},
	"🍄": {"🌵"},
	"🌵": {"🍄"},
	"🌾": {"🌻"},
	"🌲": {"🌵"},
}

// Recognized reports whether glyph belongs to the known symbol set.
func Recognized(glyph string) bool {
	_, ok := mutationTable[glyph]
	return ok
}

package tmplcat

import "github.com/wedsite/wedsite/pkg/wedmodel"

// fallbackCatalog is served when the backend's template listing cannot be
// reached. None of the entries carry a file, so none can be deleted.
var fallbackCatalog = []wedmodel.Template{
	{ID: "classic", Name: "classic", DisplayName: "Classic Elegance", Description: "Serif type on ivory with a gold border"},
	{ID: "floral", Name: "floral", DisplayName: "Floral Garden", Description: "Watercolor peonies framing the names"},
	{ID: "modern", Name: "modern", DisplayName: "Modern Minimal", Description: "Clean sans-serif layout with lots of white space"},
	{ID: "rustic", Name: "rustic", DisplayName: "Rustic Barn", Description: "Kraft paper texture and twine accents"},
	{ID: "vintage", Name: "vintage", DisplayName: "Vintage Lace", Description: "Lace pattern edges and sepia tones"},
	{ID: "romantic", Name: "romantic", DisplayName: "Romantic Blush", Description: "Soft blush gradient with script lettering"},
	{ID: "beach", Name: "beach", DisplayName: "Beach Breeze", Description: "Sea blues and sand with a shell motif"},
	{ID: "royal", Name: "royal", DisplayName: "Royal Navy", Description: "Deep navy card with gold foil lettering"},
	{ID: "bohemian", Name: "bohemian", DisplayName: "Bohemian Dream", Description: "Pampas grass and terracotta palette"},
	{ID: "winter", Name: "winter", DisplayName: "Winter Wonderland", Description: "Silver snowflakes on frosted white"},
	{ID: "art-deco", Name: "art_deco", DisplayName: "Art Deco", Description: "Geometric gold lines on black"},
}

// Fallback returns a copy of the hardcoded catalog.
func Fallback() []wedmodel.Template {
	out := make([]wedmodel.Template, len(fallbackCatalog))
	copy(out, fallbackCatalog)
	return out
}

package models

import (
	"math"
	"strings"
	"time"
)

const coverPlaceholderURL = "https://images.igdb.com/igdb/image/upload/t_cover_big/nocover.png"

// platformNames remaps the catalog API's platform names to the shorter
// display names the site shows.
var platformNames = map[string]string{
	"PC (Microsoft Windows)": "Windows",
}

// Game is a single catalog entry. Games are immutable once loaded; Name is
// the identity and the key every vote refers back to.
type Game struct {
	Name              string    `yaml:"name" json:"name"`
	Summary           string    `yaml:"summary,omitempty" json:"summary,omitempty"`
	Slug              string    `yaml:"slug" json:"slug"`
	Rating            float64   `yaml:"rating,omitempty" json:"rating,omitempty"`
	Genres            []string  `yaml:"genres,omitempty" json:"genres"`
	Platforms         []string  `yaml:"platforms,omitempty" json:"platforms"`
	FirstReleaseDate  time.Time `yaml:"first_release_date,omitempty" json:"first_release_date,omitempty"`
	Cover             string    `yaml:"cover,omitempty" json:"cover,omitempty"`
	InvolvedCompanies []string  `yaml:"involved_companies,omitempty" json:"involved_companies,omitempty"`
}

// Normalize applies the load-time fixups: platform display names and the
// 0-100 rating truncated to a whole number.
func (g *Game) Normalize() {
	for i, p := range g.Platforms {
		if name, ok := platformNames[p]; ok {
			g.Platforms[i] = name
		}
	}
	g.Rating = math.Trunc(g.Rating)
}

// CoverURL returns the big cover image URL, or a placeholder when the game
// has no cover art.
func (g Game) CoverURL() string {
	if g.Cover == "" {
		return coverPlaceholderURL
	}
	return "https:" + strings.Replace(g.Cover, "t_thumb", "t_cover_big", 1)
}

// IGDBURL links to the game's IGDB page.
func (g Game) IGDBURL() string {
	return "https://www.igdb.com/games/" + g.Slug
}

// GenreList is the comma-joined genre line used by the templates.
func (g Game) GenreList() string {
	return strings.Join(g.Genres, ", ")
}

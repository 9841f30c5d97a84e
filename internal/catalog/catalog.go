// Package catalog holds the read-only per-year game list. It is loaded
// once at startup; refreshing it means rerunning fetch-games and
// restarting.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"goty/backend/internal/models"
)

// ErrNotFound is returned by Lookup for names outside the catalog.
var ErrNotFound = errors.New("game not found in catalog")

// Catalog is an immutable name -> Game mapping.
type Catalog struct {
	byName map[string]models.Game
	names  []string
}

// New builds a catalog from a game list, applying the load-time
// normalization to each entry.
func New(games []models.Game) *Catalog {
	c := &Catalog{
		byName: make(map[string]models.Game, len(games)),
		names:  make([]string, 0, len(games)),
	}
	for _, g := range games {
		g.Normalize()
		if _, dup := c.byName[g.Name]; dup {
			continue
		}
		c.byName[g.Name] = g
		c.names = append(c.names, g.Name)
	}
	return c
}

// Load reads the year's games file. Unlike the mutable stores, a missing
// catalog is an error: the site cannot run without games to vote on.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var games []models.Game
	if err := yaml.Unmarshal(b, &games); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return New(games), nil
}

// Lookup returns the game with the given name.
func (c *Catalog) Lookup(name string) (models.Game, error) {
	g, ok := c.byName[name]
	if !ok {
		return models.Game{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return g, nil
}

// Len is the number of games in the catalog.
func (c *Catalog) Len() int {
	return len(c.byName)
}

// Search fuzzy-matches q against game names and returns up to limit games,
// best score first. An empty query matches nothing.
func (c *Catalog) Search(q string, limit int) []models.Game {
	if q == "" {
		return []models.Game{}
	}
	matches := fuzzy.Find(q, c.names)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]models.Game, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.byName[m.Str])
	}
	return out
}

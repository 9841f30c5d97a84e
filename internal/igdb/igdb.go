// Package igdb is a minimal client for the IGDB v4 API, used by the
// offline fetch-games job to build the per-year catalog.
package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"goty/backend/internal/models"
)

const (
	apiURL   = "https://api.igdb.com/v4"
	tokenURL = "https://id.twitch.tv/oauth2/token"
	pageSize = 500

	// IGDB game_type values.
	typeMainGame = 0
	typeExpanded = 10
)

var fields = []string{
	"name",
	"slug",
	"rating",
	"genres.name",
	"platforms.name",
	"first_release_date",
	"cover.url",
	"involved_companies.company.name",
}

// Client queries IGDB using Twitch client-credentials auth. The oauth2
// transport fetches and refreshes the app token on its own.
type Client struct {
	clientID string
	http     *http.Client
}

// NewClient builds a client for the given Twitch application credentials.
func NewClient(ctx context.Context, clientID, clientSecret string) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &Client{clientID: clientID, http: cc.Client(ctx)}
}

type named struct {
	Name string `json:"name"`
}

type gameRecord struct {
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	Rating            float64 `json:"rating"`
	Genres            []named `json:"genres"`
	Platforms         []named `json:"platforms"`
	FirstReleaseDate  int64   `json:"first_release_date"`
	Cover             *struct {
		URL string `json:"url"`
	} `json:"cover"`
	InvolvedCompanies []struct {
		Company named `json:"company"`
	} `json:"involved_companies"`
}

func (r gameRecord) toGame() models.Game {
	g := models.Game{
		Name:   r.Name,
		Slug:   r.Slug,
		Rating: r.Rating,
	}
	for _, genre := range r.Genres {
		g.Genres = append(g.Genres, genre.Name)
	}
	for _, platform := range r.Platforms {
		g.Platforms = append(g.Platforms, platform.Name)
	}
	for _, ic := range r.InvolvedCompanies {
		g.InvolvedCompanies = append(g.InvolvedCompanies, ic.Company.Name)
	}
	if r.FirstReleaseDate != 0 {
		g.FirstReleaseDate = time.Unix(r.FirstReleaseDate, 0).UTC()
	}
	if r.Cover != nil {
		g.Cover = r.Cover.URL
	}
	return g
}

// query POSTs an apicalypse body to an endpoint and decodes the response.
func (c *Client) query(ctx context.Context, endpoint, body string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/"+endpoint, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Client-ID", c.clientID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("igdb %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("igdb %s: status %d: %s", endpoint, resp.StatusCode, snippet)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GamesForYear pages through every main or expanded game released in the
// given year. stopAt caps the number fetched; negative means no cap.
func (c *Client) GamesForYear(ctx context.Context, year, stopAt int) ([]models.Game, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC).Unix()

	limit := pageSize
	if stopAt >= 0 && stopAt < limit {
		limit = stopAt
	}

	var games []models.Game
	for page := 0; ; page++ {
		body := fmt.Sprintf(
			"fields %s; where game_type = (%d, %d) & release_dates.date >= %d & release_dates.date <= %d & version_parent = null; limit %d; offset %d;",
			strings.Join(fields, ", "), typeMainGame, typeExpanded, start, end, limit, limit*page,
		)
		var batch []gameRecord
		if err := c.query(ctx, "games", body, &batch); err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		for _, rec := range batch {
			games = append(games, rec.toGame())
		}
		slog.Info("fetched games", "total", len(games), "page", page)
		if (stopAt >= 0 && len(games) >= stopAt) || len(batch) < limit {
			break
		}
		time.Sleep(time.Second)
	}
	return games, nil
}

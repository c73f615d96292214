// Package payload loads attorney profiles from a Payload CMS REST API.
package payload

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/source"
	"github.com/crimson-sun/practicematch/internal/source/httpclient"
)

const (
	defaultCollection = "attorneys"
	defaultPageSize   = 100
	maxPages          = 1000
)

func init() {
	source.Register("payload", func() source.Source {
		return &Source{}
	})
}

// Source pages through a Payload collection with depth=1 so that related
// practice areas arrive populated with their titles.
//
// Extra keys: "collection" (default "attorneys"), "auth_collection" (when
// set, APIKey is sent as a collection API key instead of a bearer token),
// "page_size".
type Source struct{}

type listResponse struct {
	Docs        []attorneyDoc `json:"docs"`
	HasNextPage bool          `json:"hasNextPage"`
	NextPage    *int          `json:"nextPage"`
}

type attorneyDoc struct {
	ID        json.RawMessage   `json:"id"`
	Slug      string            `json:"slug"`
	Name      string            `json:"name"`
	Practices []json.RawMessage `json:"practices"`
}

// practiceDoc is a populated practice-areas relation.
type practiceDoc struct {
	Title string `json:"title"`
	Name  string `json:"name"`
}

func (s *Source) Profiles(ctx context.Context, cfg source.Config) ([]model.Profile, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("payload source: endpoint is required")
	}

	auth := httpclient.WithBearer(cfg.APIKey)
	if coll := cfg.Extra["auth_collection"]; coll != "" {
		auth = httpclient.WithAPIKey(coll, cfg.APIKey)
	}
	client := httpclient.New(cfg.Endpoint, auth)

	collection := cfg.Extra["collection"]
	if collection == "" {
		collection = defaultCollection
	}
	pageSize := defaultPageSize
	if v, err := strconv.Atoi(cfg.Extra["page_size"]); err == nil && v > 0 {
		pageSize = v
	}

	var profiles []model.Profile
	page := 1
	for n := 0; n < maxPages; n++ {
		q := url.Values{
			"depth": {"1"},
			"limit": {strconv.Itoa(pageSize)},
			"page":  {strconv.Itoa(page)},
			"sort":  {"name"},
		}
		var resp listResponse
		if err := client.GetJSON(ctx, "/api/"+collection, q, &resp); err != nil {
			return nil, fmt.Errorf("payload source: page %d: %w", page, err)
		}
		for _, d := range resp.Docs {
			profiles = append(profiles, toProfile(d))
		}
		slog.Debug("payload page fetched", "collection", collection, "page", page, "docs", len(resp.Docs))

		if !resp.HasNextPage {
			return profiles, nil
		}
		if resp.NextPage != nil && *resp.NextPage > page {
			page = *resp.NextPage
		} else {
			page++
		}
	}
	return nil, fmt.Errorf("payload source: more than %d pages", maxPages)
}

func toProfile(d attorneyDoc) model.Profile {
	id := d.Slug
	if id == "" {
		id = rawID(d.ID)
	}
	return model.Profile{
		ID:     id,
		Name:   d.Name,
		Labels: practiceTitles(d.Practices),
		Source: "payload",
	}
}

// practiceTitles keeps the titles of populated relations. Unpopulated
// relations are bare ids and carry no label text.
func practiceTitles(raw []json.RawMessage) []string {
	titles := make([]string, 0, len(raw))
	for _, r := range raw {
		var p practiceDoc
		if err := json.Unmarshal(r, &p); err != nil {
			continue
		}
		switch {
		case p.Title != "":
			titles = append(titles, p.Title)
		case p.Name != "":
			titles = append(titles, p.Name)
		}
	}
	return titles
}

// rawID renders a Payload id, which is a string on MongoDB and a number on
// Postgres.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

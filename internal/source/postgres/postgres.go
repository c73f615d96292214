// Package postgres loads attorney profiles straight from the database
// behind a Payload CMS Postgres deployment.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/source"
)

func init() {
	source.Register("postgres", func() source.Source {
		return &Source{}
	})
}

// Source reads the attorneys collection and its practices relation.
//
// Extra keys: "slugs" restricts the result to a comma-separated list of
// attorney slugs.
type Source struct{}

// profileQuery joins Payload's relationship table. One row per
// (attorney, practice) pair, attorneys without practices yield a single row
// with a NULL title.
const profileQuery = `
SELECT a.id, COALESCE(a.slug, ''), COALESCE(a.name, ''), pa.title
FROM attorneys a
LEFT JOIN attorneys_rels r ON r.parent_id = a.id AND r.path = 'practices'
LEFT JOIN practice_areas pa ON pa.id = r.practice_areas_id
WHERE ($1::text[] IS NULL OR a.slug = ANY($1))
ORDER BY a.name, a.id, r."order"`

type row struct {
	id    int64
	slug  string
	name  string
	title sql.NullString
}

func (s *Source) Profiles(ctx context.Context, cfg source.Config) ([]model.Profile, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("postgres source: database url is required")
	}
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres source: open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres source: cannot connect: %w", err)
	}
	return Query(ctx, db, parseSlugs(cfg.Extra["slugs"]))
}

// Query runs the profile query on an open database. A nil slugs slice
// selects every attorney.
func Query(ctx context.Context, db *sql.DB, slugs []string) ([]model.Profile, error) {
	rows, err := db.QueryContext(ctx, profileQuery, pq.Array(slugs))
	if err != nil {
		return nil, fmt.Errorf("postgres source: query: %w", err)
	}
	defer rows.Close()

	var all []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.slug, &r.name, &r.title); err != nil {
			return nil, fmt.Errorf("postgres source: scan: %w", err)
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres source: rows: %w", err)
	}
	return group(all), nil
}

// group folds consecutive rows of the same attorney into one profile.
func group(rows []row) []model.Profile {
	var profiles []model.Profile
	for i, r := range rows {
		if i == 0 || rows[i-1].id != r.id {
			id := r.slug
			if id == "" {
				id = fmt.Sprint(r.id)
			}
			profiles = append(profiles, model.Profile{
				ID:     id,
				Name:   r.name,
				Labels: []string{},
				Source: "postgres",
			})
		}
		if r.title.Valid {
			p := &profiles[len(profiles)-1]
			p.Labels = append(p.Labels, r.title.String)
		}
	}
	return profiles
}

func parseSlugs(raw string) []string {
	var slugs []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Idempotent DDL applied at startup. Every child table cascades from
// profiles, so deleting a profile removes its whole tree at the database
// level. parent_experience_id self-references experience and is nulled if
// the parent row goes away.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id BIGSERIAL PRIMARY KEY,
		linkedin_url TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		headline TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		about TEXT NOT NULL DEFAULT '',
		profile_pic_url TEXT NOT NULL DEFAULT '',
		banner_pic_url TEXT NOT NULL DEFAULT '',
		followers TEXT NOT NULL DEFAULT '',
		connections TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS experience (
		id BIGSERIAL PRIMARY KEY,
		profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title TEXT NOT NULL DEFAULT '',
		company_name TEXT NOT NULL DEFAULT '',
		company_linkedin_url TEXT NOT NULL DEFAULT '',
		employment_type TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		is_multi_role BOOLEAN NOT NULL DEFAULT FALSE,
		parent_experience_id BIGINT REFERENCES experience(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS education (
		id BIGSERIAL PRIMARY KEY,
		profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		school_name TEXT NOT NULL DEFAULT '',
		school_linkedin_url TEXT NOT NULL DEFAULT '',
		degree_name TEXT NOT NULL DEFAULT '',
		field_of_study TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		grade TEXT NOT NULL DEFAULT '',
		activities TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id BIGSERIAL PRIMARY KEY,
		profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		skill_name TEXT NOT NULL,
		UNIQUE(profile_id, skill_name)
	)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id BIGSERIAL PRIMARY KEY,
		profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		recommender_name TEXT NOT NULL DEFAULT '',
		recommender_headline TEXT NOT NULL DEFAULT '',
		recommender_linkedin_url TEXT NOT NULL DEFAULT '',
		relationship TEXT NOT NULL DEFAULT '',
		recommendation_text TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS featured (
		id BIGSERIAL PRIMARY KEY,
		profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT ''
	)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement failed: %w", err)
		}
	}
	return nil
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
	"github.com/khoahotran/linkedin-crm/pkg/apperror"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var childTables = []string{"experience", "education", "skills", "recommendations", "featured"}

// Save is the whole upsert pipeline's storage side: one transaction that
// resolves-or-creates the profile row by linkedin_url, deletes every child
// collection and reinserts the given ones. The upsert is a single
// statement with RETURNING so two concurrent saves for the same URL can
// never race a lookup against an insert.
func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, apperror.NewStorage("failed to open save transaction", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO profiles (linkedin_url, name, headline, location, about, profile_pic_url, banner_pic_url, followers, connections, website, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (linkedin_url) DO UPDATE SET
			name = EXCLUDED.name,
			headline = EXCLUDED.headline,
			location = EXCLUDED.location,
			about = EXCLUDED.about,
			profile_pic_url = EXCLUDED.profile_pic_url,
			banner_pic_url = EXCLUDED.banner_pic_url,
			followers = EXCLUDED.followers,
			connections = EXCLUDED.connections,
			website = EXCLUDED.website,
			updated_at = NOW()
		RETURNING id
	`
	var profileID int64
	err = tx.QueryRow(ctx, query,
		p.LinkedinURL, p.Name, p.Headline, p.Location, p.About,
		p.ProfilePicURL, p.BannerPicURL, p.Followers, p.Connections, p.Website,
	).Scan(&profileID)
	if err != nil {
		return 0, apperror.NewStorage("failed to upsert profile", err)
	}

	for _, table := range childTables {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE profile_id = $1`, table), profileID); err != nil {
			return 0, apperror.NewStorage(fmt.Sprintf("failed to clear %s", table), err)
		}
	}

	if err := insertExperience(ctx, tx, profileID, p.Experience); err != nil {
		return 0, err
	}
	if err := insertEducation(ctx, tx, profileID, p.Education); err != nil {
		return 0, err
	}
	if err := insertSkills(ctx, tx, profileID, p.Skills); err != nil {
		return 0, err
	}
	if err := insertRecommendations(ctx, tx, profileID, p.Recommendations); err != nil {
		return 0, err
	}
	if err := insertFeatured(ctx, tx, profileID, p.Featured); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, apperror.NewStorage("failed to commit profile save", err)
	}

	r.logger.Info("Profile saved", zap.Int64("profile_id", profileID), zap.String("linkedin_url", p.LinkedinURL))
	return profileID, nil
}

// insertExperience is a two-pass insert: rows first, in payload order,
// then parent references resolved against the generated ids. A parent
// index outside the batch fails the save and rolls the whole thing back.
func insertExperience(ctx context.Context, tx pgx.Tx, profileID int64, entries []profile.Experience) error {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		err := tx.QueryRow(ctx, `
			INSERT INTO experience (profile_id, title, company_name, company_linkedin_url, employment_type, location, start_date, end_date, duration, description, is_multi_role)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id`,
			profileID, e.Title, e.CompanyName, e.CompanyLinkedinURL, e.EmploymentType,
			e.Location, e.StartDate, e.EndDate, e.Duration, e.Description, e.IsMultiRole,
		).Scan(&ids[i])
		if err != nil {
			return apperror.NewStorage("failed to insert experience entry", err)
		}
	}
	for i, e := range entries {
		if e.ParentIndex == nil {
			continue
		}
		idx := *e.ParentIndex
		if idx < 0 || idx >= len(entries) {
			return apperror.NewStorage("failed to link experience sub-role", fmt.Errorf("parent_index %d out of range for batch of %d", idx, len(entries)))
		}
		if _, err := tx.Exec(ctx, `UPDATE experience SET parent_experience_id = $1 WHERE id = $2`, ids[idx], ids[i]); err != nil {
			return apperror.NewStorage("failed to link experience sub-role", err)
		}
	}
	return nil
}

func insertEducation(ctx context.Context, tx pgx.Tx, profileID int64, entries []profile.Education) error {
	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO education (profile_id, school_name, school_linkedin_url, degree_name, field_of_study, start_date, end_date, grade, activities, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			profileID, e.SchoolName, e.SchoolLinkedinURL, e.DegreeName, e.FieldOfStudy,
			e.StartDate, e.EndDate, e.Grade, e.Activities, e.Description,
		)
		if err != nil {
			return apperror.NewStorage("failed to insert education entry", err)
		}
	}
	return nil
}

// Duplicate skill names for the same profile are absorbed by the unique
// constraint, mirroring the UNIQUE(profile_id, skill_name) contract.
func insertSkills(ctx context.Context, tx pgx.Tx, profileID int64, entries []profile.Skill) error {
	for _, s := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO skills (profile_id, skill_name) VALUES ($1, $2)
			ON CONFLICT (profile_id, skill_name) DO NOTHING`,
			profileID, s.Name,
		)
		if err != nil {
			return apperror.NewStorage("failed to insert skill entry", err)
		}
	}
	return nil
}

func insertRecommendations(ctx context.Context, tx pgx.Tx, profileID int64, entries []profile.Recommendation) error {
	for _, rec := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO recommendations (profile_id, recommender_name, recommender_headline, recommender_linkedin_url, relationship, recommendation_text)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			profileID, rec.RecommenderName, rec.RecommenderHeadline, rec.RecommenderLinkedinURL,
			rec.Relationship, rec.RecommendationText,
		)
		if err != nil {
			return apperror.NewStorage("failed to insert recommendation entry", err)
		}
	}
	return nil
}

func insertFeatured(ctx context.Context, tx pgx.Tx, profileID int64, entries []profile.FeaturedItem) error {
	for _, f := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO featured (profile_id, title, link, description, image_url, type)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			profileID, f.Title, f.Link, f.Description, f.ImageURL, f.Type,
		)
		if err != nil {
			return apperror.NewStorage("failed to insert featured entry", err)
		}
	}
	return nil
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id int64) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, linkedin_url, name, headline, location, about, profile_pic_url, banner_pic_url, followers, connections, website, updated_at
		FROM profiles WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.LinkedinURL, &p.Name, &p.Headline, &p.Location, &p.About,
		&p.ProfilePicURL, &p.BannerPicURL, &p.Followers, &p.Connections, &p.Website, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", fmt.Sprint(id))
		}
		return nil, apperror.NewStorage("failed to query profile", err)
	}

	if p.Experience, err = r.loadExperience(ctx, id); err != nil {
		return nil, err
	}
	if p.Education, err = r.loadEducation(ctx, id); err != nil {
		return nil, err
	}
	if p.Skills, err = r.loadSkills(ctx, id); err != nil {
		return nil, err
	}
	if p.Recommendations, err = r.loadRecommendations(ctx, id); err != nil {
		return nil, err
	}
	if p.Featured, err = r.loadFeatured(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) loadExperience(ctx context.Context, profileID int64) ([]profile.Experience, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, title, company_name, company_linkedin_url, employment_type, location, start_date, end_date, duration, description, is_multi_role, parent_experience_id
		FROM experience WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.NewStorage("failed to query experience", err)
	}
	defer rows.Close()

	entries := make([]profile.Experience, 0)
	for rows.Next() {
		var e profile.Experience
		if err := rows.Scan(
			&e.ID, &e.ProfileID, &e.Title, &e.CompanyName, &e.CompanyLinkedinURL, &e.EmploymentType,
			&e.Location, &e.StartDate, &e.EndDate, &e.Duration, &e.Description, &e.IsMultiRole, &e.ParentExperienceID,
		); err != nil {
			return nil, apperror.NewStorage("failed to scan experience row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorage("error iterating experience rows", err)
	}
	return entries, nil
}

func (r *postgresProfileRepo) loadEducation(ctx context.Context, profileID int64) ([]profile.Education, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, school_name, school_linkedin_url, degree_name, field_of_study, start_date, end_date, grade, activities, description
		FROM education WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.NewStorage("failed to query education", err)
	}
	defer rows.Close()

	entries := make([]profile.Education, 0)
	for rows.Next() {
		var e profile.Education
		if err := rows.Scan(
			&e.ID, &e.ProfileID, &e.SchoolName, &e.SchoolLinkedinURL, &e.DegreeName, &e.FieldOfStudy,
			&e.StartDate, &e.EndDate, &e.Grade, &e.Activities, &e.Description,
		); err != nil {
			return nil, apperror.NewStorage("failed to scan education row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorage("error iterating education rows", err)
	}
	return entries, nil
}

// Skills come back alphabetically; the other collections keep insertion
// order.
func (r *postgresProfileRepo) loadSkills(ctx context.Context, profileID int64) ([]profile.Skill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, skill_name
		FROM skills WHERE profile_id = $1 ORDER BY skill_name`, profileID)
	if err != nil {
		return nil, apperror.NewStorage("failed to query skills", err)
	}
	defer rows.Close()

	entries := make([]profile.Skill, 0)
	for rows.Next() {
		var s profile.Skill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Name); err != nil {
			return nil, apperror.NewStorage("failed to scan skill row", err)
		}
		entries = append(entries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorage("error iterating skill rows", err)
	}
	return entries, nil
}

func (r *postgresProfileRepo) loadRecommendations(ctx context.Context, profileID int64) ([]profile.Recommendation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, recommender_name, recommender_headline, recommender_linkedin_url, relationship, recommendation_text
		FROM recommendations WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.NewStorage("failed to query recommendations", err)
	}
	defer rows.Close()

	entries := make([]profile.Recommendation, 0)
	for rows.Next() {
		var rec profile.Recommendation
		if err := rows.Scan(
			&rec.ID, &rec.ProfileID, &rec.RecommenderName, &rec.RecommenderHeadline,
			&rec.RecommenderLinkedinURL, &rec.Relationship, &rec.RecommendationText,
		); err != nil {
			return nil, apperror.NewStorage("failed to scan recommendation row", err)
		}
		entries = append(entries, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorage("error iterating recommendation rows", err)
	}
	return entries, nil
}

func (r *postgresProfileRepo) loadFeatured(ctx context.Context, profileID int64) ([]profile.FeaturedItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, title, link, description, image_url, type
		FROM featured WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.NewStorage("failed to query featured items", err)
	}
	defer rows.Close()

	entries := make([]profile.FeaturedItem, 0)
	for rows.Next() {
		var f profile.FeaturedItem
		if err := rows.Scan(&f.ID, &f.ProfileID, &f.Title, &f.Link, &f.Description, &f.ImageURL, &f.Type); err != nil {
			return nil, apperror.NewStorage("failed to scan featured row", err)
		}
		entries = append(entries, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorage("error iterating featured rows", err)
	}
	return entries, nil
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]profile.Summary, error) {
	builder := psql.Select("id", "linkedin_url", "name", "headline", "location", "profile_pic_url", "banner_pic_url", "updated_at").
		From("profiles").
		OrderBy("updated_at DESC")

	sql, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewStorage("failed to query profile list", err)
	}
	defer rows.Close()

	summaries := make([]profile.Summary, 0)
	for rows.Next() {
		var s profile.Summary
		if err := rows.Scan(&s.ID, &s.LinkedinURL, &s.Name, &s.Headline, &s.Location, &s.ProfilePicURL, &s.BannerPicURL, &s.UpdatedAt); err != nil {
			return nil, apperror.NewStorage("failed to scan profile summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorage("error iterating profile summaries", err)
	}
	return summaries, nil
}

// Delete removes the profile row; children go with it via ON DELETE
// CASCADE.
func (r *postgresProfileRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return apperror.NewStorage("failed to delete profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", fmt.Sprint(id))
	}
	return nil
}

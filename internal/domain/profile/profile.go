package profile

import (
	"context"
	"time"
)

// Profile is the root aggregate for one scraped person. The LinkedIn URL
// is the business key; ID is assigned by the store.
type Profile struct {
	ID            int64     `json:"id"`
	LinkedinURL   string    `json:"linkedin_url"`
	Name          string    `json:"name"`
	Headline      string    `json:"headline"`
	Location      string    `json:"location"`
	About         string    `json:"about"`
	ProfilePicURL string    `json:"profile_pic_url"`
	BannerPicURL  string    `json:"banner_pic_url"`
	Followers     string    `json:"followers"`
	Connections   string    `json:"connections"`
	Website       string    `json:"website"`
	UpdatedAt     time.Time `json:"updated_at"`

	Experience      []Experience     `json:"experience"`
	Education       []Education      `json:"education"`
	Skills          []Skill          `json:"skills"`
	Recommendations []Recommendation `json:"recommendations"`
	Featured        []FeaturedItem   `json:"featured"`
}

// Summary is the listing projection (no child collections).
type Summary struct {
	ID            int64     `json:"id"`
	LinkedinURL   string    `json:"linkedin_url"`
	Name          string    `json:"name"`
	Headline      string    `json:"headline"`
	Location      string    `json:"location"`
	ProfilePicURL string    `json:"profile_pic_url"`
	BannerPicURL  string    `json:"banner_pic_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Experience struct {
	ID                 int64  `json:"id"`
	ProfileID          int64  `json:"profile_id"`
	Title              string `json:"title"`
	CompanyName        string `json:"company_name"`
	CompanyLinkedinURL string `json:"company_linkedin_url"`
	EmploymentType     string `json:"employment_type"`
	Location           string `json:"location"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	Duration           string `json:"duration"`
	Description        string `json:"description"`
	IsMultiRole        bool   `json:"is_multi_role"`

	// ParentIndex groups a sub-role under another entry of the same
	// submitted batch, by its position in that batch. The store resolves
	// it to ParentExperienceID after all rows are inserted, so forward
	// references are fine.
	ParentIndex        *int   `json:"parent_index,omitempty"`
	ParentExperienceID *int64 `json:"parent_experience_id,omitempty"`
}

type Education struct {
	ID                int64  `json:"id"`
	ProfileID         int64  `json:"profile_id"`
	SchoolName        string `json:"school_name"`
	SchoolLinkedinURL string `json:"school_linkedin_url"`
	DegreeName        string `json:"degree_name"`
	FieldOfStudy      string `json:"field_of_study"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	Grade             string `json:"grade"`
	Activities        string `json:"activities"`
	Description       string `json:"description"`
}

type Skill struct {
	ID        int64  `json:"id"`
	ProfileID int64  `json:"profile_id"`
	Name      string `json:"skill_name"`
}

type Recommendation struct {
	ID                     int64  `json:"id"`
	ProfileID              int64  `json:"profile_id"`
	RecommenderName        string `json:"recommender_name"`
	RecommenderHeadline    string `json:"recommender_headline"`
	RecommenderLinkedinURL string `json:"recommender_linkedin_url"`
	Relationship           string `json:"relationship"`
	RecommendationText     string `json:"recommendation_text"`
}

type FeaturedItem struct {
	ID          int64  `json:"id"`
	ProfileID   int64  `json:"profile_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Type        string `json:"type"`
}

// Structural validity rules for child records. Records failing these are
// silently dropped from the save, never rejected.

func (e Experience) Valid() bool {
	return e.Title != "" && e.CompanyName != ""
}

func (e Education) Valid() bool {
	return e.SchoolName != ""
}

func (s Skill) Valid() bool {
	return s.Name != ""
}

func (r Recommendation) Valid() bool {
	return r.RecommenderName != "" && r.RecommendationText != ""
}

func (f FeaturedItem) Valid() bool {
	return f.Title != "" || f.Description != ""
}

// Repository is the profile store. Save performs the whole upsert as one
// transaction it owns: resolve-or-create the profile row by LinkedinURL,
// replace all five child collections with the given ones, and return the
// internal id. Nothing is persisted if any step fails.
type Repository interface {
	Save(ctx context.Context, p *Profile) (int64, error)
	FindByID(ctx context.Context, id int64) (*Profile, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id int64) error
}

// DetailCache is an optional read-through cache for profile detail.
// A miss is (nil, nil); errors are for the caller to log, never to
// propagate.
type DetailCache interface {
	Get(ctx context.Context, id int64) (*Profile, error)
	Set(ctx context.Context, p *Profile) error
	Invalidate(ctx context.Context, id int64) error
}

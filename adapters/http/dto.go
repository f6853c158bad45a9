package http

import (
	"time"

	profileUC "github.com/khoahotran/linkedin-crm/internal/application/usecase/profile"
	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
)

// SaveProfileRequest is the document the extension posts. The three
// required fields bind to pointers so "missing or null" is detectable;
// everything else is opaque text. Skills arrive as a bare string array;
// non-string entries are dropped at this boundary.
type SaveProfileRequest struct {
	Name        *string `json:"name"`
	Headline    *string `json:"headline"`
	LinkedinURL *string `json:"linkedin_url"`

	Location      string `json:"location"`
	About         string `json:"about"`
	ProfilePicURL string `json:"profile_pic_url"`
	BannerPicURL  string `json:"banner_pic_url"`
	Followers     string `json:"followers"`
	Connections   string `json:"connections"`
	Website       string `json:"website"`

	Experience      []ExperienceRequest     `json:"experience"`
	Education       []EducationRequest      `json:"education"`
	Skills          []any                   `json:"skills"`
	Recommendations []RecommendationRequest `json:"recommendations"`
	Featured        []FeaturedRequest       `json:"featured"`
}

type ExperienceRequest struct {
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
	ParentIndex        *int   `json:"parent_index"`
}

type EducationRequest struct {
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

type RecommendationRequest struct {
	RecommenderName        string `json:"recommender_name"`
	RecommenderHeadline    string `json:"recommender_headline"`
	RecommenderLinkedinURL string `json:"recommender_linkedin_url"`
	Relationship           string `json:"relationship"`
	RecommendationText     string `json:"recommendation_text"`
}

type FeaturedRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Type        string `json:"type"`
}

func (req *SaveProfileRequest) ToInput() profileUC.SaveProfileInput {
	input := profileUC.SaveProfileInput{
		Name:          req.Name,
		Headline:      req.Headline,
		LinkedinURL:   req.LinkedinURL,
		Location:      req.Location,
		About:         req.About,
		ProfilePicURL: req.ProfilePicURL,
		BannerPicURL:  req.BannerPicURL,
		Followers:     req.Followers,
		Connections:   req.Connections,
		Website:       req.Website,
	}

	input.Experience = make([]profile.Experience, len(req.Experience))
	for i, e := range req.Experience {
		input.Experience[i] = profile.Experience{
			Title:              e.Title,
			CompanyName:        e.CompanyName,
			CompanyLinkedinURL: e.CompanyLinkedinURL,
			EmploymentType:     e.EmploymentType,
			Location:           e.Location,
			StartDate:          e.StartDate,
			EndDate:            e.EndDate,
			Duration:           e.Duration,
			Description:        e.Description,
			IsMultiRole:        e.IsMultiRole,
			ParentIndex:        e.ParentIndex,
		}
	}

	input.Education = make([]profile.Education, len(req.Education))
	for i, e := range req.Education {
		input.Education[i] = profile.Education{
			SchoolName:        e.SchoolName,
			SchoolLinkedinURL: e.SchoolLinkedinURL,
			DegreeName:        e.DegreeName,
			FieldOfStudy:      e.FieldOfStudy,
			StartDate:         e.StartDate,
			EndDate:           e.EndDate,
			Grade:             e.Grade,
			Activities:        e.Activities,
			Description:       e.Description,
		}
	}

	input.Skills = make([]profile.Skill, 0, len(req.Skills))
	for _, v := range req.Skills {
		if name, ok := v.(string); ok {
			input.Skills = append(input.Skills, profile.Skill{Name: name})
		}
	}

	input.Recommendations = make([]profile.Recommendation, len(req.Recommendations))
	for i, r := range req.Recommendations {
		input.Recommendations[i] = profile.Recommendation{
			RecommenderName:        r.RecommenderName,
			RecommenderHeadline:    r.RecommenderHeadline,
			RecommenderLinkedinURL: r.RecommenderLinkedinURL,
			Relationship:           r.Relationship,
			RecommendationText:     r.RecommendationText,
		}
	}

	input.Featured = make([]profile.FeaturedItem, len(req.Featured))
	for i, f := range req.Featured {
		input.Featured[i] = profile.FeaturedItem{
			Title:       f.Title,
			Link:        f.Link,
			Description: f.Description,
			ImageURL:    f.ImageURL,
			Type:        f.Type,
		}
	}

	return input
}

// Response DTOs

type SummaryDTO struct {
	ID            int64     `json:"id"`
	LinkedinURL   string    `json:"linkedin_url"`
	Name          string    `json:"name"`
	Headline      string    `json:"headline"`
	Location      string    `json:"location"`
	ProfilePicURL string    `json:"profile_pic_url"`
	BannerPicURL  string    `json:"banner_pic_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToSummaryDTO(s profile.Summary) SummaryDTO {
	return SummaryDTO{
		ID:            s.ID,
		LinkedinURL:   s.LinkedinURL,
		Name:          s.Name,
		Headline:      s.Headline,
		Location:      s.Location,
		ProfilePicURL: s.ProfilePicURL,
		BannerPicURL:  s.BannerPicURL,
		UpdatedAt:     s.UpdatedAt,
	}
}

// The detail response reuses the domain JSON shape; child collections
// are always arrays, never null.
type ProfileDTO struct {
	profile.Profile
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{Profile: *p}
	if dto.Experience == nil {
		dto.Experience = []profile.Experience{}
	}
	if dto.Education == nil {
		dto.Education = []profile.Education{}
	}
	if dto.Skills == nil {
		dto.Skills = []profile.Skill{}
	}
	if dto.Recommendations == nil {
		dto.Recommendations = []profile.Recommendation{}
	}
	if dto.Featured == nil {
		dto.Featured = []profile.FeaturedItem{}
	}
	return dto
}

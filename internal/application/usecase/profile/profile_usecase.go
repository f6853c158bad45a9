package profile

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
	"github.com/khoahotran/linkedin-crm/pkg/apperror"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

// EventPublisher notifies downstream consumers after storage has
// committed. Publish failures never fail the request.
type EventPublisher interface {
	ProfileSaved(ctx context.Context, profileID int64, linkedinURL string) error
	ProfileDeleted(ctx context.Context, profileID int64, linkedinURL string) error
}

type ProfileUseCase struct {
	repo   profile.Repository
	cache  profile.DetailCache
	events EventPublisher
	logger logger.Logger
}

// NewProfileUseCase wires the save pipeline. cache and events may be nil
// when the surrounding infrastructure is not deployed.
func NewProfileUseCase(repo profile.Repository, cache profile.DetailCache, events EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: log,
	}
}

// SaveProfileInput is one scraped profile document. The three required
// fields are pointers so a null/absent value can be told apart from an
// empty string; empty strings are accepted, as the extension sometimes
// sends them.
type SaveProfileInput struct {
	Name        *string
	Headline    *string
	LinkedinURL *string

	Location      string
	About         string
	ProfilePicURL string
	BannerPicURL  string
	Followers     string
	Connections   string
	Website       string

	Experience      []profile.Experience
	Education       []profile.Education
	Skills          []profile.Skill
	Recommendations []profile.Recommendation
	Featured        []profile.FeaturedItem
}

type SaveProfileOutput struct {
	ProfileID int64
}

func (in *SaveProfileInput) missingFields() []string {
	var missing []string
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.Headline == nil {
		missing = append(missing, "headline")
	}
	if in.LinkedinURL == nil {
		missing = append(missing, "linkedin_url")
	}
	return missing
}

// ExecuteSaveProfile is the upsert pipeline: validate, filter child
// records, hand the aggregate to the store as one transaction, then do
// the best-effort side work (event, cache invalidation).
func (uc *ProfileUseCase) ExecuteSaveProfile(ctx context.Context, input SaveProfileInput) (*SaveProfileOutput, error) {
	if missing := input.missingFields(); len(missing) > 0 {
		return nil, apperror.NewValidation(missing)
	}

	p := &profile.Profile{
		LinkedinURL:   *input.LinkedinURL,
		Name:          *input.Name,
		Headline:      *input.Headline,
		Location:      input.Location,
		About:         input.About,
		ProfilePicURL: input.ProfilePicURL,
		BannerPicURL:  input.BannerPicURL,
		Followers:     input.Followers,
		Connections:   input.Connections,
		Website:       input.Website,

		Experience:      filterValid(input.Experience),
		Education:       filterValid(input.Education),
		Skills:          filterValid(input.Skills),
		Recommendations: filterValid(input.Recommendations),
		Featured:        filterValid(input.Featured),
	}

	profileID, err := uc.repo.Save(ctx, p)
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			err = apperror.NewInternal("profile save failed", err)
		}
		return nil, err
	}

	if uc.events != nil {
		if err := uc.events.ProfileSaved(ctx, profileID, p.LinkedinURL); err != nil {
			uc.logger.Warn("Failed to publish profile.saved event", zap.Int64("profile_id", profileID), zap.Error(err))
		}
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, profileID); err != nil {
			uc.logger.Warn("Failed to invalidate profile cache", zap.Int64("profile_id", profileID), zap.Error(err))
		}
	}

	return &SaveProfileOutput{ProfileID: profileID}, nil
}

type validatable interface {
	Valid() bool
}

// filterValid drops structurally invalid child records; dropping is
// policy, not an error.
func filterValid[T validatable](entries []T) []T {
	kept := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.Valid() {
			kept = append(kept, e)
		}
	}
	return kept
}

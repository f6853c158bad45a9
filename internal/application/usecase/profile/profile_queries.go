package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/linkedin-crm/internal/domain/profile"
)

type GetProfileInput struct {
	ProfileID int64
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteGetProfile reads through the detail cache when one is wired;
// cache trouble falls back to the store.
func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, input.ProfileID)
		if err != nil {
			uc.logger.Warn("Profile cache read failed", zap.Int64("profile_id", input.ProfileID), zap.Error(err))
		} else if cached != nil {
			return &GetProfileOutput{Profile: cached}, nil
		}
	}

	p, err := uc.repo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, p); err != nil {
			uc.logger.Warn("Profile cache write failed", zap.Int64("profile_id", input.ProfileID), zap.Error(err))
		}
	}
	return &GetProfileOutput{Profile: p}, nil
}

type ListProfilesOutput struct {
	Profiles []profile.Summary
}

func (uc *ProfileUseCase) ExecuteListProfiles(ctx context.Context) (*ListProfilesOutput, error) {
	summaries, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProfilesOutput{Profiles: summaries}, nil
}

type DeleteProfileInput struct {
	ProfileID int64
}

// ExecuteDeleteProfile is the administrative removal path; the store's
// cascade takes the child collections with the profile row.
func (uc *ProfileUseCase) ExecuteDeleteProfile(ctx context.Context, input DeleteProfileInput) error {
	p, err := uc.repo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, input.ProfileID); err != nil {
		return err
	}

	if uc.events != nil {
		if err := uc.events.ProfileDeleted(ctx, p.ID, p.LinkedinURL); err != nil {
			uc.logger.Warn("Failed to publish profile.deleted event", zap.Int64("profile_id", p.ID), zap.Error(err))
		}
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, p.ID); err != nil {
			uc.logger.Warn("Failed to invalidate profile cache", zap.Int64("profile_id", p.ID), zap.Error(err))
		}
	}
	return nil
}

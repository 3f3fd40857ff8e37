package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/repository"
)

var (
	ErrProfileServiceNotConfigured = errors.New("profile service not configured")
	ErrProfileInvalid              = errors.New("profile invalid")
)

// ProfileService maneja el perfil público del usuario (uno por usuario, creado al primer acceso).
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	if s.profiles == nil {
		return domain.UserProfile{}, ErrProfileServiceNotConfigured
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}

	now := s.now()
	profile = domain.UserProfile{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("create profile: %w", err)
	}
	s.logger.Info("profile created", zap.String("user_id", userID))
	return profile, nil
}

type UpdateProfileInput struct {
	Headline string
	Bio      string
}

func (s *ProfileService) Update(ctx context.Context, userID string, input UpdateProfileInput) (domain.UserProfile, error) {
	headline := strings.TrimSpace(input.Headline)
	if utf8.RuneCountInString(headline) > domain.ProfileHeadlineMaxLen {
		return domain.UserProfile{}, fmt.Errorf("%w: headline exceeds %d characters", ErrProfileInvalid, domain.ProfileHeadlineMaxLen)
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	profile.Headline = headline
	profile.Bio = strings.TrimSpace(input.Bio)
	profile.UpdatedAt = s.now()

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

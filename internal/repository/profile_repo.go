package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerpath/internal/domain"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile domain.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (domain.UserProfile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// Upsert crea el perfil o actualiza headline/bio; hay un perfil por usuario.
func (r *PgProfileRepository) Upsert(ctx context.Context, profile domain.UserProfile) error {
	const query = `
		INSERT INTO user_profiles (id, user_id, headline, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET
			headline = EXCLUDED.headline,
			bio = EXCLUDED.bio,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Headline,
		profile.Bio,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.UserProfile, error) {
	const query = `
		SELECT id, user_id, headline, bio, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile domain.UserProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Headline,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserProfile{}, err
	}
	return profile, err
}

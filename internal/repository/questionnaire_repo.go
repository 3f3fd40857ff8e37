package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerpath/internal/domain"
)

type QuestionnaireRepository interface {
	// CreateWithRecommendations guarda el cuestionario y sus recomendaciones en una sola transacción.
	CreateWithRecommendations(ctx context.Context, q domain.Questionnaire, recs []domain.Recommendation) error
	GetForUser(ctx context.Context, userID, id string) (domain.Questionnaire, error)
}

type PgQuestionnaireRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionnaireRepository(pool *pgxpool.Pool) *PgQuestionnaireRepository {
	return &PgQuestionnaireRepository{pool: pool}
}

func (r *PgQuestionnaireRepository) CreateWithRecommendations(ctx context.Context, q domain.Questionnaire, recs []domain.Recommendation) error {
	const query = `
		INSERT INTO questionnaires (id, user_id, skills, interests, strengths, preferred_work_style, long_term_goal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	batch := &pgx.Batch{}
	if err := queueRecommendationInserts(batch, recs); err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query,
			q.ID,
			q.UserID,
			q.Skills,
			q.Interests,
			q.Strengths,
			q.PreferredWorkStyle,
			q.LongTermGoal,
			q.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert questionnaire: %w", err)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert recommendations: %w", err)
		}
		return nil
	})
}

func (r *PgQuestionnaireRepository) GetForUser(ctx context.Context, userID, id string) (domain.Questionnaire, error) {
	const query = `
		SELECT id, user_id, skills, interests, strengths, preferred_work_style, long_term_goal, created_at
		FROM questionnaires
		WHERE id = $1 AND user_id = $2
	`
	var q domain.Questionnaire
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&q.ID,
		&q.UserID,
		&q.Skills,
		&q.Interests,
		&q.Strengths,
		&q.PreferredWorkStyle,
		&q.LongTermGoal,
		&q.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Questionnaire{}, err
	}
	return q, err
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerpath/internal/domain"
)

// RecommendationRepository guarda recomendaciones con soft delete.
// Todas las lecturas por usuario pasan por el join con questionnaires (dueño).
type RecommendationRepository interface {
	GetForUser(ctx context.Context, userID, id string) (domain.Recommendation, error)
	ListActiveByUser(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error)
	ListDeletedByUser(ctx context.Context, userID string, since time.Time) ([]domain.Recommendation, error)
	SetDeletedAt(ctx context.Context, userID, id string, deletedAt *time.Time) error
	PurgeDeletedBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error)
}

type PgRecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewPgRecommendationRepository(pool *pgxpool.Pool) *PgRecommendationRepository {
	return &PgRecommendationRepository{pool: pool}
}

const recommendationColumns = `
	r.id, r.questionnaire_id, r.career_name, r.score, r.explanation,
	r.getting_started, r.resources, r.interview_prep, r.how_to_apply,
	r.generation_source, r.model_identifier, r.prompt_version, r.created_at, r.deleted_at
`

// queueRecommendationInserts encola un INSERT por recomendación; el llamador decide la transacción.
func queueRecommendationInserts(batch *pgx.Batch, recs []domain.Recommendation) error {
	const query = `
		INSERT INTO recommendations (
			id, questionnaire_id, career_name, score, explanation,
			getting_started, resources, interview_prep, how_to_apply,
			generation_source, model_identifier, prompt_version, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, rec := range recs {
		plan, err := marshalPlan(rec)
		if err != nil {
			return err
		}
		batch.Queue(query,
			rec.ID,
			rec.QuestionnaireID,
			rec.CareerName,
			rec.Score,
			rec.Explanation,
			plan.gettingStarted,
			plan.resources,
			plan.interviewPrep,
			plan.howToApply,
			rec.GenerationSource,
			rec.ModelIdentifier,
			rec.PromptVersion,
			rec.CreatedAt,
		)
	}
	return nil
}

func (r *PgRecommendationRepository) GetForUser(ctx context.Context, userID, id string) (domain.Recommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations r
		JOIN questionnaires q ON q.id = r.questionnaire_id
		WHERE r.id = $1 AND q.user_id = $2
	`
	rec, err := scanRecommendation(r.pool.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Recommendation{}, err
	}
	return rec, err
}

func (r *PgRecommendationRepository) ListActiveByUser(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations r
		JOIN questionnaires q ON q.id = r.questionnaire_id
		WHERE q.user_id = $1 AND r.deleted_at IS NULL
		ORDER BY r.created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectRecommendations(rows)
}

func (r *PgRecommendationRepository) ListDeletedByUser(ctx context.Context, userID string, since time.Time) ([]domain.Recommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations r
		JOIN questionnaires q ON q.id = r.questionnaire_id
		WHERE q.user_id = $1 AND r.deleted_at IS NOT NULL AND r.deleted_at >= $2
		ORDER BY r.deleted_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	return collectRecommendations(rows)
}

// SetDeletedAt marca (deletedAt != nil) o restaura (nil) una recomendación del usuario.
func (r *PgRecommendationRepository) SetDeletedAt(ctx context.Context, userID, id string, deletedAt *time.Time) error {
	const query = `
		UPDATE recommendations r
		SET deleted_at = $3
		FROM questionnaires q
		WHERE q.id = r.questionnaire_id AND r.id = $1 AND q.user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, userID, deletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PurgeDeletedBefore borra definitivamente lo que lleva en la papelera más que el período de retención.
func (r *PgRecommendationRepository) PurgeDeletedBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	const query = `
		DELETE FROM recommendations r
		USING questionnaires q
		WHERE q.id = r.questionnaire_id AND q.user_id = $1
			AND r.deleted_at IS NOT NULL AND r.deleted_at < $2
	`
	tag, err := r.pool.Exec(ctx, query, userID, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type encodedPlan struct {
	gettingStarted []byte
	resources      []byte
	interviewPrep  []byte
	howToApply     []byte
}

func marshalPlan(rec domain.Recommendation) (encodedPlan, error) {
	var (
		out encodedPlan
		err error
	)
	if out.gettingStarted, err = json.Marshal(domain.CloneStrings(rec.GettingStarted)); err != nil {
		return out, fmt.Errorf("marshal getting_started: %w", err)
	}
	resources := rec.Resources
	if resources == nil {
		resources = []domain.Resource{}
	}
	if out.resources, err = json.Marshal(resources); err != nil {
		return out, fmt.Errorf("marshal resources: %w", err)
	}
	if out.interviewPrep, err = json.Marshal(domain.CloneStrings(rec.InterviewPrep)); err != nil {
		return out, fmt.Errorf("marshal interview_prep: %w", err)
	}
	if out.howToApply, err = json.Marshal(domain.CloneStrings(rec.HowToApply)); err != nil {
		return out, fmt.Errorf("marshal how_to_apply: %w", err)
	}
	return out, nil
}

func scanRecommendation(row pgx.Row) (domain.Recommendation, error) {
	var (
		rec  domain.Recommendation
		plan encodedPlan
	)
	if err := row.Scan(
		&rec.ID,
		&rec.QuestionnaireID,
		&rec.CareerName,
		&rec.Score,
		&rec.Explanation,
		&plan.gettingStarted,
		&plan.resources,
		&plan.interviewPrep,
		&plan.howToApply,
		&rec.GenerationSource,
		&rec.ModelIdentifier,
		&rec.PromptVersion,
		&rec.CreatedAt,
		&rec.DeletedAt,
	); err != nil {
		return domain.Recommendation{}, err
	}
	if err := unmarshalPlan(plan, &rec); err != nil {
		return domain.Recommendation{}, err
	}
	return rec, nil
}

func unmarshalPlan(plan encodedPlan, rec *domain.Recommendation) error {
	rec.GettingStarted = []string{}
	rec.Resources = []domain.Resource{}
	rec.InterviewPrep = []string{}
	rec.HowToApply = []string{}

	fields := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"getting_started", plan.gettingStarted, &rec.GettingStarted},
		{"resources", plan.resources, &rec.Resources},
		{"interview_prep", plan.interviewPrep, &rec.InterviewPrep},
		{"how_to_apply", plan.howToApply, &rec.HowToApply},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return fmt.Errorf("unmarshal %s: %w", f.name, err)
		}
	}
	// jsonb 'null' deja los slices en nil.
	rec.GettingStarted = domain.CloneStrings(rec.GettingStarted)
	rec.InterviewPrep = domain.CloneStrings(rec.InterviewPrep)
	rec.HowToApply = domain.CloneStrings(rec.HowToApply)
	if rec.Resources == nil {
		rec.Resources = []domain.Resource{}
	}
	return nil
}

func collectRecommendations(rows pgx.Rows) ([]domain.Recommendation, error) {
	defer rows.Close()

	recs := []domain.Recommendation{}
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

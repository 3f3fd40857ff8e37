package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/repository"
)

var (
	ErrRecommendationServiceNotConfigured = errors.New("recommendation service not configured")
	ErrQuestionnaireInvalid               = errors.New("questionnaire invalid")
	ErrRecommendationNotFound             = errors.New("recommendation not found")
	ErrRecommendationDeleted              = errors.New("recommendation is in the recycle bin")
	ErrRateLimited                        = errors.New("rate limited")
)

// Recommender es el motor visto desde la capa de aplicación.
type Recommender interface {
	Recommend(ctx context.Context, input domain.QuestionnaireInput) EngineResult
}

type RecommendationOptions struct {
	// PerSubmission es cuántas recomendaciones se guardan por cuestionario (1..3).
	PerSubmission  int
	DashboardLimit int
	RecycleBinDays int
}

func (o RecommendationOptions) withDefaults() RecommendationOptions {
	if o.PerSubmission <= 0 {
		o.PerSubmission = 1
	}
	if o.PerSubmission > domain.MaxRecommendations {
		o.PerSubmission = domain.MaxRecommendations
	}
	if o.DashboardLimit <= 0 {
		o.DashboardLimit = 5
	}
	if o.RecycleBinDays <= 0 {
		o.RecycleBinDays = 30
	}
	return o
}

// RecommendationService persiste cuestionarios y recomendaciones y administra la papelera.
type RecommendationService struct {
	logger         *zap.Logger
	users          repository.UserRepository
	questionnaires repository.QuestionnaireRepository
	recs           repository.RecommendationRepository
	engine         Recommender
	limiter        SubmissionRateLimiter
	opts           RecommendationOptions
	now            func() time.Time
}

func NewRecommendationService(
	logger *zap.Logger,
	users repository.UserRepository,
	questionnaires repository.QuestionnaireRepository,
	recs repository.RecommendationRepository,
	engine Recommender,
	limiter SubmissionRateLimiter,
	opts RecommendationOptions,
) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{
		logger:         logger,
		users:          users,
		questionnaires: questionnaires,
		recs:           recs,
		engine:         engine,
		limiter:        limiter,
		opts:           opts.withDefaults(),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type SubmissionResult struct {
	Questionnaire   domain.Questionnaire    `json:"questionnaire"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Outcome         EngineOutcome           `json:"outcome"`
}

type RecommendationDetail struct {
	domain.Recommendation
	Parsed domain.Explanation `json:"parsed_explanation"`
}

// Submit corre el motor y persiste el cuestionario junto con las primeras recomendaciones.
func (s *RecommendationService) Submit(ctx context.Context, owner domain.User, input domain.QuestionnaireInput) (SubmissionResult, error) {
	if s.questionnaires == nil || s.recs == nil || s.engine == nil {
		return SubmissionResult{}, ErrRecommendationServiceNotConfigured
	}
	if err := s.admit(ctx, owner.ID, input); err != nil {
		return SubmissionResult{}, err
	}

	now := s.now()
	if s.users != nil {
		owner.CreatedAt = now
		if err := s.users.Ensure(ctx, owner); err != nil {
			return SubmissionResult{}, fmt.Errorf("ensure user: %w", err)
		}
	}

	res := s.engine.Recommend(ctx, input)
	generated := res.Recommendations
	if len(generated) > s.opts.PerSubmission {
		generated = generated[:s.opts.PerSubmission]
	}

	q := domain.Questionnaire{
		ID:                 uuid.NewString(),
		UserID:             owner.ID,
		QuestionnaireInput: input,
		CreatedAt:          now,
	}
	stored := make([]domain.Recommendation, 0, len(generated))
	for _, c := range generated {
		stored = append(stored, toStoredRecommendation(q.ID, c, now))
	}
	if err := s.questionnaires.CreateWithRecommendations(ctx, q, stored); err != nil {
		return SubmissionResult{}, fmt.Errorf("store submission: %w", err)
	}

	s.logger.Info("questionnaire processed",
		zap.String("user_id", owner.ID),
		zap.String("questionnaire_id", q.ID),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("stored", len(stored)),
	)
	return SubmissionResult{Questionnaire: q, Recommendations: stored, Outcome: res.Outcome}, nil
}

// Preview corre el motor sin persistir nada.
func (s *RecommendationService) Preview(ctx context.Context, userID string, input domain.QuestionnaireInput) (domain.RecommendationSet, error) {
	if s.engine == nil {
		return domain.RecommendationSet{}, ErrRecommendationServiceNotConfigured
	}
	if err := s.admit(ctx, userID, input); err != nil {
		return domain.RecommendationSet{}, err
	}
	res := s.engine.Recommend(ctx, input)
	return domain.RecommendationSet{Recommendations: res.Recommendations}, nil
}

func (s *RecommendationService) admit(ctx context.Context, userID string, input domain.QuestionnaireInput) error {
	if !domain.IsValidWorkStyle(input.PreferredWorkStyle) {
		return fmt.Errorf("%w: preferred_work_style must be Solo, Team or Mixed", ErrQuestionnaireInvalid)
	}
	if s.limiter != nil && !s.limiter.Allow(ctx, userID) {
		return ErrRateLimited
	}
	return nil
}

// Dashboard devuelve las activas más recientes y la papelera; antes purga lo vencido.
func (s *RecommendationService) Dashboard(ctx context.Context, userID string) (domain.Dashboard, error) {
	if s.recs == nil {
		return domain.Dashboard{}, ErrRecommendationServiceNotConfigured
	}

	cutoff := s.retentionCutoff()
	if purged, err := s.recs.PurgeDeletedBefore(ctx, userID, cutoff); err != nil {
		s.logger.Warn("recycle bin purge failed", zap.String("user_id", userID), zap.Error(err))
	} else if purged > 0 {
		s.logger.Info("recycle bin purged", zap.String("user_id", userID), zap.Int64("count", purged))
	}

	active, err := s.recs.ListActiveByUser(ctx, userID, s.opts.DashboardLimit)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("list recommendations: %w", err)
	}
	deleted, err := s.recs.ListDeletedByUser(ctx, userID, cutoff)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("list recycle bin: %w", err)
	}
	return domain.Dashboard{Recommendations: active, RecycleBin: deleted}, nil
}

// Get devuelve el detalle de una recomendación activa del usuario.
func (s *RecommendationService) Get(ctx context.Context, userID, id string) (RecommendationDetail, error) {
	rec, err := s.lookup(ctx, userID, id)
	if err != nil {
		return RecommendationDetail{}, err
	}
	if rec.IsDeleted() {
		return RecommendationDetail{}, ErrRecommendationDeleted
	}
	return RecommendationDetail{Recommendation: rec, Parsed: domain.ParseExplanation(rec.Explanation)}, nil
}

// SoftDelete manda la recomendación a la papelera; repetirla no cambia la fecha original.
func (s *RecommendationService) SoftDelete(ctx context.Context, userID, id string) error {
	rec, err := s.lookup(ctx, userID, id)
	if err != nil {
		return err
	}
	if rec.IsDeleted() {
		return nil
	}
	now := s.now()
	return s.setDeletedAt(ctx, userID, id, &now)
}

// Restore saca la recomendación de la papelera; sobre una activa no hace nada.
func (s *RecommendationService) Restore(ctx context.Context, userID, id string) error {
	rec, err := s.lookup(ctx, userID, id)
	if err != nil {
		return err
	}
	if !rec.IsDeleted() {
		return nil
	}
	return s.setDeletedAt(ctx, userID, id, nil)
}

func (s *RecommendationService) lookup(ctx context.Context, userID, id string) (domain.Recommendation, error) {
	if s.recs == nil {
		return domain.Recommendation{}, ErrRecommendationServiceNotConfigured
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.Recommendation{}, ErrRecommendationNotFound
	}
	rec, err := s.recs.GetForUser(ctx, userID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Recommendation{}, ErrRecommendationNotFound
	}
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("get recommendation: %w", err)
	}
	return rec, nil
}

func (s *RecommendationService) setDeletedAt(ctx context.Context, userID, id string, at *time.Time) error {
	err := s.recs.SetDeletedAt(ctx, userID, id, at)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRecommendationNotFound
	}
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	return nil
}

func (s *RecommendationService) retentionCutoff() time.Time {
	return s.now().AddDate(0, 0, -s.opts.RecycleBinDays)
}

func toStoredRecommendation(questionnaireID string, c domain.CareerRecommendation, now time.Time) domain.Recommendation {
	plan := domain.ActionPlan{
		GettingStarted: c.GettingStarted,
		Resources:      c.Resources,
		InterviewPrep:  c.InterviewPrep,
		HowToApply:     c.HowToApply,
	}.Clone()
	return domain.Recommendation{
		ID:               uuid.NewString(),
		QuestionnaireID:  questionnaireID,
		CareerName:       c.Career,
		Score:            domain.ClampScore(c.Score),
		Explanation:      domain.BuildExplanation(c),
		GettingStarted:   plan.GettingStarted,
		Resources:        plan.Resources,
		InterviewPrep:    plan.InterviewPrep,
		HowToApply:       plan.HowToApply,
		GenerationSource: string(c.GenerationSource),
		ModelIdentifier:  c.ModelIdentifier,
		PromptVersion:    c.PromptVersion,
		CreatedAt:        now,
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"careerpath/internal/config"
	"careerpath/internal/domain"
	"careerpath/internal/llm"
	"careerpath/internal/logger"
	"careerpath/internal/service"
)

type runOptions struct {
	input         domain.QuestionnaireInput
	interactive   bool
	heuristicOnly bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer the questionnaire and print the recommendations as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("skills", "", "skills, free text")
	runCmd.Flags().String("interests", "", "interests, free text")
	runCmd.Flags().String("strengths", "", "strengths, free text")
	runCmd.Flags().String("work-style", "", "preferred work style: Solo, Team or Mixed")
	runCmd.Flags().String("goal", "", "long-term goal, free text")
	runCmd.Flags().BoolP("interactive", "i", false, "ask for missing answers")
	runCmd.Flags().Bool("heuristic-only", false, "never call the external model")
}

func runRecommend(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts, err := readRunOptions(cmd)
	if err != nil {
		return err
	}
	if opts.interactive {
		if opts.input, err = askMissing(opts.input); err != nil {
			return err
		}
	}
	if !domain.IsValidWorkStyle(opts.input.PreferredWorkStyle) {
		return fmt.Errorf("work style must be Solo, Team or Mixed, got %q", opts.input.PreferredWorkStyle)
	}

	engine := buildEngine(ctx, cfg, opts.heuristicOnly, log)
	return recommend(ctx, engine, opts.input, cmd.OutOrStdout(), log)
}

func readRunOptions(cmd *cobra.Command) (runOptions, error) {
	flags := cmd.Flags()
	var opts runOptions
	var err error
	get := func(name string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = flags.GetString(name)
		return strings.TrimSpace(v)
	}
	opts.input = domain.QuestionnaireInput{
		Skills:             get("skills"),
		Interests:          get("interests"),
		Strengths:          get("strengths"),
		PreferredWorkStyle: normalizeWorkStyle(get("work-style")),
		LongTermGoal:       get("goal"),
	}
	if err != nil {
		return runOptions{}, err
	}
	if opts.interactive, err = flags.GetBool("interactive"); err != nil {
		return runOptions{}, err
	}
	if opts.heuristicOnly, err = flags.GetBool("heuristic-only"); err != nil {
		return runOptions{}, err
	}
	return opts, nil
}

// normalizeWorkStyle acepta "solo", "TEAM", etc.
func normalizeWorkStyle(s string) string {
	for _, style := range []string{domain.WorkStyleSolo, domain.WorkStyleTeam, domain.WorkStyleMixed} {
		if strings.EqualFold(s, style) {
			return style
		}
	}
	return s
}

func askMissing(in domain.QuestionnaireInput) (domain.QuestionnaireInput, error) {
	fields := []struct {
		label string
		dst   *string
	}{
		{"Skills", &in.Skills},
		{"Interests", &in.Interests},
		{"Strengths", &in.Strengths},
		{"Long-term goal", &in.LongTermGoal},
	}
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		prompt := promptui.Prompt{Label: f.label}
		answer, err := prompt.Run()
		if err != nil {
			return in, fmt.Errorf("reading %s: %w", strings.ToLower(f.label), err)
		}
		*f.dst = strings.TrimSpace(answer)
	}

	if !domain.IsValidWorkStyle(in.PreferredWorkStyle) {
		sel := promptui.Select{
			Label: "Preferred work style",
			Items: []string{domain.WorkStyleSolo, domain.WorkStyleTeam, domain.WorkStyleMixed},
		}
		_, style, err := sel.Run()
		if err != nil {
			return in, fmt.Errorf("reading work style: %w", err)
		}
		in.PreferredWorkStyle = style
	}
	return in, nil
}

func buildEngine(ctx context.Context, cfg *config.Config, heuristicOnly bool, log *zap.Logger) *service.RecommendationEngine {
	var client llm.LLMClient
	switch {
	case heuristicOnly:
		log.Debug("external model skipped by flag")
	case !cfg.ExternalEnabled():
		log.Debug("external model disabled: no credential configured")
	default:
		var err error
		client, err = llm.NewProvider(ctx, llm.ProviderConfig{
			Provider: cfg.LLMProvider,
			APIKey:   cfg.GenAIAPIKey,
			Model:    cfg.GenAIModel,
			Endpoint: cfg.GenAIEndpoint,
			BaseURL:  cfg.LLMBaseURL,
			Timeout:  cfg.LLMTimeout(),
		}, log)
		if err != nil {
			log.Warn("llm provider init failed", zap.Error(err))
			client = nil
		}
	}
	log.Debug("engine ready",
		zap.Bool("external_model", client != nil),
		zap.String("prompt_version", cfg.PromptVersion),
		zap.String("action_plan_catalog", service.ActionPlanCatalogVersion),
	)
	gateway := service.NewModelGateway(client, cfg.GenAIModel, cfg.LLMTimeout(), log)
	return service.NewRecommendationEngine(gateway, cfg.PromptVersion, log)
}

func recommend(ctx context.Context, engine *service.RecommendationEngine, in domain.QuestionnaireInput, out io.Writer, log *zap.Logger) error {
	if engine == nil {
		return errors.New("engine not configured")
	}
	res := engine.Recommend(ctx, in)
	log.Info("recommendations ready",
		zap.String("outcome", string(res.Outcome)),
		zap.String("fallback_reason", string(res.FallbackReason)),
		zap.Int("count", len(res.Recommendations)),
	)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(domain.RecommendationSet{Recommendations: res.Recommendations})
}

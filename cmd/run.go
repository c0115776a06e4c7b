package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recruitpipe/recruitpipe/internal/ai"
	"github.com/recruitpipe/recruitpipe/internal/ai/gemini"
	"github.com/recruitpipe/recruitpipe/internal/logger"
	"github.com/recruitpipe/recruitpipe/internal/pipeline"
	"github.com/recruitpipe/recruitpipe/internal/recruit"
	"github.com/recruitpipe/recruitpipe/internal/report"
	"github.com/recruitpipe/recruitpipe/internal/secrets"
)

const (
	PromptYes         = "Yes"
	PromptNo          = "No"
	PromptSummaryOnly = "Generate summary without deciding"

	defaultReportsDir = "reports"
)

var decidePrompt = promptui.Select{
	Label: "Proceed with hiring decisions?",
	Items: []string{PromptYes, PromptNo, PromptSummaryOnly},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full recruitment pipeline",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before hiring decisions")
	runCmd.Flags().StringP("reports-dir", "r", "", "directory for generated report artifacts")

	viper.BindPFlag("reports-dir", runCmd.Flags().Lookup("reports-dir"))
}

// run drives the whole pipeline for one recruitment process.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting recruitpipe", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}
	if config.EmployeesCSV == "" {
		logger.Fatal("employees-csv is required to detect job openings")
	}

	reportsDir := strings.TrimSpace(viper.GetString("reports-dir"))
	if reportsDir == "" {
		reportsDir = config.ReportsDir
	}
	if reportsDir == "" {
		reportsDir = defaultReportsDir
	}

	generator, pipelineCfg := prepareGeneration(ctx, config.AI, logger)

	orch := pipeline.New(pipelineCfg, pipeline.Deps{
		Gen:    generator,
		Logger: logger,
	})

	employees, err := recruit.LoadEmployees(config.EmployeesCSV)
	if err != nil {
		logger.Fatal("loading employee records", zap.Error(err))
	}
	logger.Info("loaded employee records", zap.Int("count", len(employees)))

	result, err := orch.RunStage(ctx, pipeline.StageAnalyze, "", pipeline.AnalyzePayload(employees))
	if err != nil {
		logger.Fatal("analyzing employee records", zap.Error(err))
	}
	logger.Info("analysis finished",
		zap.String("status", result.Status),
		zap.Int("openings", len(result.Snapshot.Openings)),
	)

	if path, err := report.SaveAnalysis(reportsDir, result.Snapshot.Openings); err != nil {
		logger.Warn("saving analysis report", zap.Error(err))
	} else {
		logger.Info("analysis report saved", zap.String("path", path))
	}

	if err := processApplications(ctx, orch, config, logger); err != nil {
		logger.Fatal("processing applications", zap.Error(err))
	}

	if err := conductInterviews(ctx, orch, config.Interviews, logger); err != nil {
		logger.Fatal("conducting interviews", zap.Error(err))
	}

	decide := PromptYes
	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, decide, err = decidePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	switch decide {
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return
	case PromptYes:
		if err := decideCandidates(ctx, orch, logger); err != nil {
			logger.Fatal("making hiring decisions", zap.Error(err))
		}
	}

	finish(ctx, orch, reportsDir, logger)
}

// prepareGeneration builds the Gemini generator when AI is enabled. Without
// it the pipeline still runs, degrading generation to documented fallbacks.
func prepareGeneration(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, *pipeline.Config) {
	pipelineCfg := pipeline.DefaultConfig()

	if cfg == nil || !cfg.Enabled {
		logger.Info("text generation disabled; descriptions and questions fall back to defaults")
		return nil, pipelineCfg
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("unsupported ai provider; running without text generation", zap.String("provider", cfg.Provider))
		return nil, pipelineCfg
	}
	if cfg.Gemini == nil {
		logger.Warn("gemini configuration missing; running without text generation")
		return nil, pipelineCfg
	}

	if cfg.Gemini.TimeoutSeconds > 0 {
		pipelineCfg.GenTimeout = time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Warn("loading gemini api key; running without text generation",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return nil, pipelineCfg
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger)
	if err != nil {
		logger.Warn("building gemini generator; running without text generation", zap.Error(err))
		return nil, pipelineCfg
	}

	logger.Info("text generation enabled", zap.String("model", generator.Model()))
	return generator, pipelineCfg
}

// processApplications screens every configured application and schedules
// interviews for the candidates that pass.
func processApplications(ctx context.Context, orch *pipeline.Orchestrator, config *Config, logger *zap.Logger) error {
	for _, cc := range config.Candidates {
		app, err := applicationFromConfig(cc)
		if err != nil {
			return err
		}

		result, err := orch.RunStage(ctx, pipeline.StageScreen, app.ID, pipeline.ApplicationPayload(app))
		if err != nil {
			return fmt.Errorf("screening candidate %s: %w", app.ID, err)
		}
		logger.Info("application processed",
			zap.String("candidate_id", app.ID),
			zap.String("status", result.Status),
		)

		result, err = orch.RunStage(ctx, pipeline.StageSchedule, app.ID, nil)
		if err != nil {
			return fmt.Errorf("scheduling candidate %s: %w", app.ID, err)
		}
		logger.Info("scheduling processed",
			zap.String("candidate_id", app.ID),
			zap.String("status", result.Status),
		)
	}
	return nil
}

func conductInterviews(ctx context.Context, orch *pipeline.Orchestrator, interviews []*InterviewConfig, logger *zap.Logger) error {
	for _, iv := range interviews {
		stage, ok := recruit.ParseInterviewStage(iv.Stage)
		if !ok {
			return fmt.Errorf("unknown interview stage %q for candidate %s", iv.Stage, iv.Candidate)
		}

		result, err := orch.RunStage(ctx, pipeline.StageInterview, iv.Candidate, pipeline.InterviewPayload(stage, iv.Feedback))
		if err != nil {
			return fmt.Errorf("interviewing candidate %s: %w", iv.Candidate, err)
		}
		logger.Info("interview processed",
			zap.String("candidate_id", iv.Candidate),
			zap.String("interview_stage", iv.Stage),
			zap.String("status", result.Status),
		)
	}
	return nil
}

// decideCandidates runs the decision stage for every candidate with a full
// interview record. Already decided candidates are skipped by the stage.
func decideCandidates(ctx context.Context, orch *pipeline.Orchestrator, logger *zap.Logger) error {
	snapshot := orch.Snapshot()
	for id, cand := range snapshot.Candidates {
		if cand.Decided() || cand.Screening == nil || !cand.InterviewsComplete() {
			continue
		}

		result, err := orch.RunStage(ctx, pipeline.StageDecide, id, nil)
		if err != nil {
			return fmt.Errorf("deciding candidate %s: %w", id, err)
		}
		logger.Info("decision processed",
			zap.String("candidate_id", id),
			zap.String("status", result.Status),
		)
	}
	return nil
}

// finish generates the summary report, persists it and prints the outcome.
func finish(ctx context.Context, orch *pipeline.Orchestrator, reportsDir string, logger *zap.Logger) {
	result, err := orch.RunStage(ctx, pipeline.StageReport, "", nil)
	if err != nil {
		logger.Fatal("generating summary", zap.Error(err))
	}

	summary := result.Summary
	if path, err := report.SaveSummary(reportsDir, summary); err != nil {
		logger.Warn("saving summary report", zap.Error(err))
	} else {
		logger.Info("summary report saved", zap.String("path", path))
	}

	logger.Info("recruitment run finished",
		zap.String("workflow_status", string(summary.WorkflowStatus)),
		zap.Int("openings", summary.TotalOpenings),
		zap.Int("candidates", summary.TotalCandidates),
		zap.Int("hired", summary.CandidatesByState[recruit.StatusHired]),
		zap.Int("rejected", summary.CandidatesByState[recruit.StatusRejected]),
	)

	for _, opening := range summary.Openings {
		if opening.HiredID != "" {
			fmt.Fprintf(os.Stdout, "%s: hired %s (%s)\n", opening.Title, opening.HiredName, opening.HiredID)
		}
	}
}

func applicationFromConfig(cc *CandidateConfig) (*recruit.Application, error) {
	if cc == nil || cc.ID == "" || cc.Position == "" {
		return nil, errors.New("candidate entries require id and position")
	}

	resume := cc.ResumeText
	if cc.ResumeFile != "" {
		data, err := os.ReadFile(cc.ResumeFile)
		if err != nil {
			return nil, fmt.Errorf("reading resume for candidate %s: %w", cc.ID, err)
		}
		resume = string(data)
	}

	cover := cc.CoverLetter
	if cc.CoverLetterFile != "" {
		data, err := os.ReadFile(cc.CoverLetterFile)
		if err != nil {
			return nil, fmt.Errorf("reading cover letter for candidate %s: %w", cc.ID, err)
		}
		cover = string(data)
	}

	return &recruit.Application{
		ID:              cc.ID,
		Name:            cc.Name,
		Email:           cc.Email,
		Phone:           cc.Phone,
		Position:        cc.Position,
		ExperienceYears: cc.ExperienceYears,
		ResumeText:      resume,
		CoverLetter:     cover,
	}, nil
}

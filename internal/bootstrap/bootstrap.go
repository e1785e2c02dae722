package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/resume-quality-checker/internal/config"
	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
	"github.com/kirillkom/resume-quality-checker/internal/core/ports"
	"github.com/kirillkom/resume-quality-checker/internal/core/usecase"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/extractor"
	pdfextractor "github.com/kirillkom/resume-quality-checker/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/extractor/word"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/resilience"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/spelling/dictionary"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/spelling/languagetool"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/spelling/none"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/staging"
	"github.com/kirillkom/resume-quality-checker/internal/observability/metrics"
)

type App struct {
	Config config.Config
	Rules  domain.Rules
	Logger *slog.Logger

	Metrics  *metrics.HTTPServerMetrics
	Speller  ports.SpellChecker
	Analyzer ports.ResumeAnalyzer
}

// New wires the analysis pipeline. service names the process in logs and metrics labels.
func New(cfg config.Config, service string, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	area, err := staging.New(cfg.StagingDir)
	if err != nil {
		return nil, fmt.Errorf("init staging area: %w", err)
	}

	httpMetrics := metrics.NewHTTPServerMetrics(service)
	analysisMetrics := metrics.NewAnalysisMetrics(service, httpMetrics.Registry())

	speller, err := newSpellChecker(cfg, analysisMetrics, logger)
	if err != nil {
		return nil, fmt.Errorf("init spell backend: %w", err)
	}

	textExtractor := extractor.NewRegistry().
		Register(plaintext.NewExtractor(), domain.FormatTXT).
		Register(pdfextractor.NewExtractor(area, logger), domain.FormatPDF).
		Register(word.NewExtractor(), domain.FormatDOC, domain.FormatDOCX)

	analyzer := usecase.NewAnalyzeResumeUseCase(textExtractor, speller, rules, usecase.AnalyzeOptions{
		SpellTimeout: time.Duration(cfg.SpellTimeoutSeconds) * time.Second,
		BatchWorkers: cfg.BatchWorkers,
		Observer:     analysisMetrics,
		Logger:       logger,
	})

	logger.Info("pipeline_ready",
		"spell_backend", speller.Name(),
		"batch_workers", cfg.BatchWorkers,
		"staging_dir", area.Dir(),
		"rules_path", cfg.RulesPath,
	)

	return &App{
		Config: cfg,
		Rules:  rules,
		Logger: logger,

		Metrics:  httpMetrics,
		Speller:  speller,
		Analyzer: analyzer,
	}, nil
}

func newSpellChecker(cfg config.Config, observer *metrics.AnalysisMetrics, logger *slog.Logger) (ports.SpellChecker, error) {
	switch cfg.SpellBackend {
	case config.SpellBackendLanguageTool:
		policy := resilience.DefaultConfig()
		policy.Retry.MaxAttempts = cfg.SpellRetryMaxAttempts
		policy.Breaker.Enabled = cfg.SpellBreakerEnabled
		return languagetool.New(languagetool.Options{
			BaseURL:     cfg.LanguageToolURL,
			Language:    cfg.SpellLanguage,
			ChunkChars:  cfg.SpellChunkChars,
			HTTPTimeout: time.Duration(cfg.SpellTimeoutSeconds) * time.Second,
			Resilience:  policy,
			Logger:      logger,

			OnBreakerState: observer.ObserveBreakerState,
		}), nil
	case config.SpellBackendDictionary:
		checker, err := dictionary.Load(cfg.DictionaryPath)
		if err != nil {
			return nil, err
		}
		return checker, nil
	case config.SpellBackendNone:
		return none.New(), nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "spell backend", fmt.Errorf("unknown SPELL_BACKEND %q", cfg.SpellBackend))
	}
}

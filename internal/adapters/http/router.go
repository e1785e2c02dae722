package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
	"github.com/kirillkom/resume-quality-checker/internal/core/ports"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/export"
	"github.com/kirillkom/resume-quality-checker/internal/observability/metrics"
)

const (
	fileField           = "file"
	multipartMemory     = 8 << 20
	defaultMaxUpload    = 20 << 20
	defaultInFlightWait = 250 * time.Millisecond
)

type RouterOptions struct {
	MaxUploadBytes     int64
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxInFlight        int
	InFlightWait       time.Duration
	CORSAllowedOrigins []string
}

type Router struct {
	analyzer ports.ResumeAnalyzer
	rules    domain.Rules
	metrics  *metrics.HTTPServerMetrics
	logger   *slog.Logger
	opts     RouterOptions
}

// NewRouter builds the HTTP surface. With nil httpMetrics, /metrics is not mounted and
// requests are not instrumented.
func NewRouter(
	analyzer ports.ResumeAnalyzer,
	rules domain.Rules,
	httpMetrics *metrics.HTTPServerMetrics,
	logger *slog.Logger,
	opts RouterOptions,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUpload
	}
	if opts.InFlightWait == 0 {
		opts.InFlightWait = defaultInFlightWait
	}
	return &Router{
		analyzer: analyzer,
		rules:    rules,
		metrics:  httpMetrics,
		logger:   logger,
		opts:     opts,
	}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(rt.logger))

	r.Get("/healthz", rt.healthz)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	r.Group(func(api chi.Router) {
		api.Use(rateLimitMiddleware(rt.opts.RateLimitRPS, rt.opts.RateLimitBurst, rt.recordRejected))
		api.Use(backpressureMiddleware(rt.opts.MaxInFlight, rt.opts.InFlightWait, rt.recordRejected))

		api.Get("/v1/rules", rt.getRules)
		api.Post("/v1/resumes/analyze", rt.analyzeResumes)
		api.Post("/v1/resumes/report", rt.reportResume)
		api.Post("/v1/resumes/export", rt.exportSummary)
	})

	if len(rt.opts.CORSAllowedOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins: rt.opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "Content-Disposition", "Retry-After", "X-Batch-Id"},
		MaxAge:         300,
	}).Handler(r)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) getRules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.rules)
}

func (rt *Router) analyzeResumes(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.readDocuments(w, r)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.analyzer.AnalyzeBatch(r.Context(), docs))
}

// reportResume analyzes exactly one upload and reports pipeline failures as HTTP errors
// instead of batch outcomes.
func (rt *Router) reportResume(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.readDocuments(w, r)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	if len(docs) != 1 {
		writeError(w, http.StatusBadRequest, "exactly one 'file' part is required")
		return
	}

	report, err := rt.analyzer.Analyze(r.Context(), docs[0])
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) exportSummary(w http.ResponseWriter, r *http.Request) {
	exporter, err := export.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	docs, err := rt.readDocuments(w, r)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	result := rt.analyzer.AnalyzeBatch(r.Context(), docs)
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="resume_summary%s"`, exporter.FileExtension()))
	w.Header().Set("X-Batch-Id", result.ID)
	if err := exporter.Export(w, result.Summary); err != nil {
		rt.logger.Error("export_failed",
			"request_id", requestIDFromContext(r.Context()),
			"batch_id", result.ID,
			"error", err,
		)
	}
}

func (rt *Router) readDocuments(w http.ResponseWriter, r *http.Request) ([]domain.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse upload", err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[fileField]
	if len(headers) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse upload", errors.New("multipart field 'file' is required"))
	}

	docs := make([]domain.Document, 0, len(headers))
	for _, header := range headers {
		data, err := readPart(header)
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "read upload", fmt.Errorf("%s: %w", header.Filename, err))
		}
		docs = append(docs, domain.NewDocument(header.Filename, data))
	}
	return docs, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (rt *Router) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		rt.logger.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeError(w, status, err.Error())
}

func (rt *Router) recordRejected(reason string) {
	if rt.metrics != nil {
		rt.metrics.RecordRejected(reason)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

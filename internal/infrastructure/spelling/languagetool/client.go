// Package languagetool checks spelling against a LanguageTool server (/v2/check).
package languagetool

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/chunking"
	"github.com/kirillkom/resume-quality-checker/internal/infrastructure/resilience"
)

const (
	Name           = "languagetool"
	checkPath      = "/v2/check"
	checkOperation = "languagetool.check"
)

type Options struct {
	BaseURL     string
	Language    string
	ChunkChars  int
	HTTPTimeout time.Duration
	Resilience  resilience.Config
	Logger      *slog.Logger

	// OnBreakerState receives circuit breaker transitions of the check operation.
	OnBreakerState resilience.StateListener
}

type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	splitter   *chunking.Splitter
	executor   *resilience.Executor
}

func New(opts Options) *Client {
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = "en-US"
	}
	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
		splitter:   chunking.NewSplitter(opts.ChunkChars),
		executor: resilience.NewExecutor(opts.Resilience,
			resilience.WithLogger(opts.Logger),
			resilience.WithStateListener(opts.OnBreakerState),
		),
	}
}

func (c *Client) Name() string {
	return Name
}

type checkResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Rule   struct {
		ID        string `json:"id"`
		IssueType string `json:"issueType"`
		Category  struct {
			ID string `json:"id"`
		} `json:"category"`
	} `json:"rule"`
}

func (m match) isSpelling() bool {
	return m.Rule.IssueType == "misspelling" || m.Rule.Category.ID == "TYPOS"
}

// Check sends the text in whitespace-aligned chunks and collects the spans flagged as
// misspellings. Words are lowercased and deduplicated across chunks.
func (c *Client) Check(ctx context.Context, text string) (domain.SpellingReport, error) {
	seen := make(map[string]struct{})
	words := make([]string, 0, 8)

	for _, chunk := range c.splitter.Split(text) {
		var resp checkResponse
		err := c.executor.Execute(ctx, checkOperation, func(ctx context.Context) error {
			resp = checkResponse{}
			form := url.Values{}
			form.Set("text", chunk)
			form.Set("language", c.language)
			return c.postForm(ctx, checkPath, form, &resp, "check")
		}, classifyError)
		if err != nil {
			return domain.SpellingReport{}, wrapTemporaryIfNeeded(checkOperation, err)
		}

		units := utf16.Encode([]rune(chunk))
		for _, m := range resp.Matches {
			if !m.isSpelling() {
				continue
			}
			word := strings.ToLower(strings.TrimSpace(span(units, m.Offset, m.Length)))
			if word == "" {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}

	return domain.SpellingReport{
		ErrorCount: len(words),
		Words:      words,
		Available:  true,
		Backend:    Name,
	}, nil
}

// span cuts a match out of the chunk. LanguageTool offsets count UTF-16 code units.
func span(units []uint16, offset, length int) string {
	if offset < 0 || length <= 0 || offset >= len(units) {
		return ""
	}
	end := min(offset+length, len(units))
	return string(utf16.Decode(units[offset:end]))
}

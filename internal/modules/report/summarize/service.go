package summarize

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/sheetbrief/core/internal/config"
	"github.com/sheetbrief/core/internal/modules/report/sheet"
)

// Service turns a parsed table into one overall summary: one model call per
// row chunk, strictly sequential and in chunk order, then one combination
// call over the concatenated partials.
type Service struct {
	cfg      appcfg.AIConfig
	pipeline appcfg.PipelineConfig
	logger   *zap.Logger
}

func NewService(cfg appcfg.AIConfig, pipeline appcfg.PipelineConfig, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, pipeline: pipeline, logger: logger}
}

// SummarizeTable returns the final combined summary for the table.
func (s *Service) SummarizeTable(ctx context.Context, table *sheet.Table) (string, error) {
	if table.RowCount() == 0 {
		return "", ErrEmptyTable
	}
	provider := selectProvider(s.cfg)
	if provider == nil {
		return "", ErrNoProvider
	}

	sampling := Sampling{
		MaxOutputTokens: int64(s.pipeline.MaxOutputTokens),
		Temperature:     s.pipeline.Temperature,
		TopP:            s.pipeline.TopP,
	}
	timeout := time.Duration(s.pipeline.RequestTimeoutS) * time.Second

	partials := make([]string, 0, table.ChunkCount(s.pipeline.ChunkRows))
	for chunk := range table.Chunks(s.pipeline.ChunkRows) {
		rendered, truncated := renderRows(chunk.Rows, s.pipeline.MaxChunkChars)
		if truncated {
			s.logger.Warn("chunk rendering exceeds input budget, truncated",
				zap.Int("chunk", chunk.Index),
				zap.Int("max_chars", s.pipeline.MaxChunkChars))
		}

		start := time.Now()
		partial, err := s.call(ctx, provider, sampling, buildChunkPrompt(rendered), timeout)
		if err != nil {
			return "", err
		}
		partials = append(partials, partial)
		s.logger.Debug("chunk summarized",
			zap.Int("chunk", chunk.Index),
			zap.Int("rows", len(chunk.Rows)),
			zap.Duration("latency", time.Since(start)))
	}

	final, err := s.call(ctx, provider, sampling, buildCombinePrompt(partials), timeout)
	if err != nil {
		return "", err
	}
	s.logger.Info("summary combined",
		zap.Int("chunks", len(partials)),
		zap.String("provider", provider.ID),
		zap.String("model", provider.DefaultModel))
	return strings.TrimSpace(final), nil
}

func (s *Service) call(ctx context.Context, provider *appcfg.AIProvider, sampling Sampling, prompt string, timeout time.Duration) (string, error) {
	var out string
	baseDelay := time.Duration(s.pipeline.ModelRetryBaseMS) * time.Millisecond
	err := retryWithBackoff(ctx, s.pipeline.ModelAttempts, baseDelay, func() error {
		text, err := callModel(ctx, provider, sampling, prompt, timeout)
		if err != nil {
			s.logger.Debug("model call failed, may retry", zap.Error(err))
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		return "", &InferenceError{
			Provider: provider.ID,
			Model:    provider.DefaultModel,
			Attempts: s.pipeline.ModelAttempts,
			Err:      err,
		}
	}
	return out, nil
}

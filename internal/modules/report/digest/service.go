package digest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"go.uber.org/zap"

	appcfg "github.com/sheetbrief/core/internal/config"
	"github.com/sheetbrief/core/internal/modules/report/sheet"
	pkgmail "github.com/sheetbrief/core/internal/pkg/mail"
	"github.com/sheetbrief/core/internal/pkg/taskqueue"
)

const (
	// TaskTypeDigest identifies async digest runs in the task queue.
	TaskTypeDigest = "digest:run"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	bodySent    = "Email sent successfully"
	bodyNotSent = "Failed to send email"
)

// Fetcher retrieves the source workbook bytes.
type Fetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// Summarizer produces the combined summary for a parsed table.
type Summarizer interface {
	SummarizeTable(ctx context.Context, table *sheet.Table) (string, error)
}

// Mailer delivers the digest email.
type Mailer interface {
	Send(ctx context.Context, msg pkgmail.Message) (string, error)
}

// Service runs the digest pipeline: fetch, parse, chunk+summarize, notify.
// Each Run is self-contained; the fetched buffer is threaded through to
// both the parser and the attachment, and nothing outlives the invocation.
type Service struct {
	fetcher    Fetcher
	summarizer Summarizer
	mailer     Mailer
	cfg        *appcfg.AppConfig
	tasks      *taskqueue.Service
	logger     *zap.Logger
}

func NewService(fetcher Fetcher, summarizer Summarizer, mailer Mailer, cfg *appcfg.AppConfig, tasks *taskqueue.Service, logger *zap.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		summarizer: summarizer,
		mailer:     mailer,
		cfg:        cfg,
		tasks:      tasks,
		logger:     logger,
	}
}

func (s *Service) resolve(p RunPayload) (bucket, key, to string) {
	bucket, key, to = p.Bucket, p.Key, p.To
	if bucket == "" {
		bucket = s.cfg.Storage.Bucket
	}
	if key == "" {
		key = s.cfg.Storage.Key
	}
	if to == "" {
		to = s.cfg.Mail.To
	}
	return bucket, key, to
}

// Run executes one invocation. Errors from the fetch, parse, and summarize
// stages propagate to the caller and never reach the notify stage. A mail
// rejection is logged and folded into the Result instead.
func (s *Service) Run(ctx context.Context, p RunPayload) (Result, error) {
	bucket, key, to := s.resolve(p)

	content, err := s.fetcher.Fetch(ctx, bucket, key)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("workbook fetched",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("bytes", len(content)))

	table, err := sheet.Parse(content)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("workbook parsed",
		zap.String("sheet", table.Sheet),
		zap.Int("rows", table.RowCount()),
		zap.Int("chunks", table.ChunkCount(s.cfg.Pipeline.ChunkRows)))

	summary, err := s.summarizer.SummarizeTable(ctx, table)
	if err != nil {
		return Result{}, err
	}

	msg := pkgmail.Message{
		To:      to,
		Subject: s.cfg.Mail.Subject,
		Text:    summary,
		HTML:    renderSummaryHTML(summary),
		Attachment: &pkgmail.Attachment{
			Filename:    path.Base(key),
			ContentType: xlsxContentType,
			Content:     content,
		},
	}

	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		s.logger.Error("digest email rejected", zap.String("to", to), zap.Error(err))
		return Result{StatusCode: http.StatusInternalServerError, Body: bodyNotSent}, nil
	}
	s.logger.Info("digest email sent", zap.String("to", to), zap.String("message_id", id))
	return Result{StatusCode: http.StatusOK, Body: bodySent, MessageID: id}, nil
}

// EnqueueRun creates an async digest task (or returns the existing
// deduplicated one) and starts executing it in the background.
func (s *Service) EnqueueRun(ctx context.Context, p RunPayload) (*taskqueue.Task, error) {
	if s.tasks == nil {
		return nil, errors.New("task queue is not configured")
	}
	bucket, key, _ := s.resolve(p)
	task, err := s.tasks.Enqueue(ctx, TaskTypeDigest, p, fmt.Sprintf("%s:%s", bucket, key))
	if err != nil {
		return nil, err
	}
	if task.Status == taskqueue.TaskPending {
		go s.executeRun(context.Background(), task.ID, p)
	}
	return task, nil
}

func (s *Service) executeRun(ctx context.Context, taskID string, p RunPayload) {
	s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	res, err := s.Run(ctx, p)
	if err != nil {
		s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}
	if res.StatusCode != http.StatusOK {
		s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, res, res.Body)
		return
	}
	s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, res, "")
}

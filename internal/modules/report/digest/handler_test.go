package digest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sheetbrief/core/internal/modules/report/sheet"
	"github.com/sheetbrief/core/internal/modules/report/summarize"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v2"))
	return r
}

func TestRunEndpoint(t *testing.T) {
	t.Run("success responds with the invocation result", func(t *testing.T) {
		fetcher := &fakeFetcher{content: workbookBytes(t, 3)}
		svc := NewService(fetcher, &fakeSummarizer{summary: "ok"}, &fakeMailer{id: "msg-9"}, testAppConfig(), nil, zap.NewNop())
		router := newTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v2/digests/run", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"statusCode":200,"body":"Email sent successfully","messageId":"msg-9"}`, w.Body.String())
	})

	t.Run("mail rejection responds 500 with the failure body", func(t *testing.T) {
		fetcher := &fakeFetcher{content: workbookBytes(t, 3)}
		mailer := &fakeMailer{err: assert.AnError}
		svc := NewService(fetcher, &fakeSummarizer{summary: "ok"}, mailer, testAppConfig(), nil, zap.NewNop())
		router := newTestRouter(svc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v2/digests/run", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"statusCode":500,"body":"Failed to send email"}`, w.Body.String())
	})

	t.Run("empty workbook responds 422", func(t *testing.T) {
		fetcher := &fakeFetcher{content: workbookBytes(t, 0)}
		summarizer := &realEmptySummarizer{}
		svc := NewService(fetcher, summarizer, &fakeMailer{}, testAppConfig(), nil, zap.NewNop())
		router := newTestRouter(svc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v2/digests/run", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("upstream error responds 500 envelope", func(t *testing.T) {
		fetcher := &fakeFetcher{err: assert.AnError}
		svc := NewService(fetcher, &fakeSummarizer{}, &fakeMailer{}, testAppConfig(), nil, zap.NewNop())
		router := newTestRouter(svc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v2/digests/run", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":0`)
	})

	t.Run("async create without a queue fails cleanly", func(t *testing.T) {
		fetcher := &fakeFetcher{content: workbookBytes(t, 3)}
		svc := NewService(fetcher, &fakeSummarizer{summary: "ok"}, &fakeMailer{}, testAppConfig(), nil, zap.NewNop())
		router := newTestRouter(svc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v2/digests/tasks", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// realEmptySummarizer mirrors the production behavior for empty tables.
type realEmptySummarizer struct{}

func (realEmptySummarizer) SummarizeTable(_ context.Context, _ *sheet.Table) (string, error) {
	return "", summarize.ErrEmptyTable
}

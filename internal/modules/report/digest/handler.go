package digest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheetbrief/core/internal/modules/report/summarize"
	"github.com/sheetbrief/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/digests")
	g.POST("/run", h.run)
	g.POST("/tasks", h.createTask)
	g.GET("/tasks/:id", h.getTask)
	g.GET("/tasks", h.listTasks)
}

// POST /digests/run — synchronous invocation.
func (h *Handler) run(c *gin.Context) {
	var p RunPayload
	// The trigger payload is optional; decoding failures fall back to the
	// configured source and recipient.
	_ = c.ShouldBindJSON(&p)

	res, err := h.svc.Run(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, summarize.ErrEmptyTable) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(res.StatusCode, res)
}

// POST /digests/tasks — asynchronous invocation.
func (h *Handler) createTask(c *gin.Context) {
	var p RunPayload
	_ = c.ShouldBindJSON(&p)

	task, err := h.svc.EnqueueRun(c.Request.Context(), p)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message": "digest run queued",
		"task":    task,
	})
}

// GET /digests/tasks/:id
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFoundMsg(c, "task not found")
		return
	}
	response.OK(c, task)
}

// GET /digests/tasks
func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.svc.tasks.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tasks)
}

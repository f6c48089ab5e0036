package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/user-management-console/internal/auth"
	"github.com/nekogravitycat/user-management-console/internal/pkg/apperror"
	"github.com/nekogravitycat/user-management-console/internal/pkg/request"
	"github.com/nekogravitycat/user-management-console/internal/pkg/response"
	"github.com/nekogravitycat/user-management-console/internal/screen"
	"github.com/nekogravitycat/user-management-console/internal/session"
)

type action func(ctx context.Context, st *screen.State)

type Handler struct {
	screen   screen.Service
	sessions *session.Manager
	logger   *zap.Logger

	showLogout  bool
	journalLink bool
}

func NewHandler(screenService screen.Service, sessions *session.Manager, logger *zap.Logger, showLogout, journalLink bool) *Handler {
	return &Handler{
		screen:      screenService,
		sessions:    sessions,
		logger:      logger,
		showLogout:  showLogout,
		journalLink: journalLink,
	}
}

//
// HTML pages
//

// Index renders the screen of the current session.
func (h *Handler) Index(c *gin.Context) {
	st, err := h.sessions.Do(c.Request.Context(), auth.GetSessionID(c), nil)
	if err != nil {
		h.pageError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", Page{
		Query:       st.Query,
		Error:       st.Error,
		Rows:        st.Rows(),
		Draft:       st.Draft,
		ShowLogout:  h.showLogout,
		JournalLink: h.journalLink,
	})
}

func (h *Handler) SearchForm(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid search")
		return
	}
	h.page(c, func(ctx context.Context, st *screen.State) {
		h.screen.Search(ctx, st, req.Query)
	})
}

func (h *Handler) RefreshForm(c *gin.Context) {
	h.page(c, h.screen.FetchAll)
}

func (h *Handler) AddForm(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	h.page(c, func(ctx context.Context, st *screen.State) {
		h.screen.Add(ctx, st, req.ToDraft())
	})
}

func (h *Handler) EditForm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.String(http.StatusBadRequest, "invalid user id")
		return
	}
	h.page(c, func(ctx context.Context, st *screen.State) {
		h.screen.Edit(st, uri.ID)
	})
}

func (h *Handler) UpdateForm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.String(http.StatusBadRequest, "invalid user id")
		return
	}
	h.page(c, func(ctx context.Context, st *screen.State) {
		h.screen.Update(ctx, st, uri.ID)
	})
}

func (h *Handler) DeleteForm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.String(http.StatusBadRequest, "invalid user id")
		return
	}
	h.page(c, func(ctx context.Context, st *screen.State) {
		h.screen.Delete(ctx, st, uri.ID)
	})
}

// page runs fn and redirects back to the screen (post/redirect/get).
func (h *Handler) page(c *gin.Context, fn action) {
	if _, err := h.sessions.Do(c.Request.Context(), auth.GetSessionID(c), fn); err != nil {
		h.pageError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) pageError(c *gin.Context, err error) {
	h.logger.Error("session unavailable", zap.Error(err))
	c.String(http.StatusServiceUnavailable, "The screen is temporarily unavailable.")
}

//
// JSON API
//

// GET /v1/screen
func (h *Handler) Get(c *gin.Context) {
	h.api(c, nil)
}

// POST /v1/screen/search
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid request body"))
		return
	}
	h.api(c, func(ctx context.Context, st *screen.State) {
		h.screen.Search(ctx, st, req.Query)
	})
}

// POST /v1/screen/refresh
func (h *Handler) Refresh(c *gin.Context) {
	h.api(c, h.screen.FetchAll)
}

// PUT /v1/screen/query
func (h *Handler) SetQuery(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid request body"))
		return
	}
	h.api(c, func(ctx context.Context, st *screen.State) {
		h.screen.SetQuery(st, req.Query)
	})
}

// PUT /v1/screen/draft
func (h *Handler) SetDraft(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid request body"))
		return
	}
	h.api(c, func(ctx context.Context, st *screen.State) {
		h.screen.SetDraft(st, req.ToDraft())
	})
}

// POST /v1/screen/users
func (h *Handler) Add(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid request body"))
		return
	}
	h.api(c, func(ctx context.Context, st *screen.State) {
		h.screen.Add(ctx, st, req.ToDraft())
	})
}

// POST /v1/screen/users/:id/edit
func (h *Handler) Edit(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid user id"))
		return
	}
	h.api(c, func(ctx context.Context, st *screen.State) {
		h.screen.Edit(st, uri.ID)
	})
}

// POST /v1/screen/users/:id/update
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid user id"))
		return
	}
	h.api(c, func(ctx context.Context, st *screen.State) {
		h.screen.Update(ctx, st, uri.ID)
	})
}

// DELETE /v1/screen/users/:id
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid user id"))
		return
	}
	h.api(c, func(ctx context.Context, st *screen.State) {
		h.screen.Delete(ctx, st, uri.ID)
	})
}

// api runs fn and answers with the resulting screen.
// Remote failures are part of the screen, so they still answer 200.
func (h *Handler) api(c *gin.Context, fn action) {
	st, err := h.sessions.Do(c.Request.Context(), auth.GetSessionID(c), fn)
	if err != nil {
		h.logger.Error("session unavailable", zap.Error(err))
		response.Error(c, apperror.Unavailable(err, "session store unavailable"))
		return
	}
	c.JSON(http.StatusOK, NewStateResponse(st))
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	"github.com/nekogravitycat/user-management-console/internal/auth"
	"github.com/nekogravitycat/user-management-console/internal/pkg/apperror"
	"github.com/nekogravitycat/user-management-console/internal/pkg/response"
)

type Handler struct {
	service activity.Service
}

func NewHandler(service activity.Service) *Handler {
	return &Handler{service: service}
}

// List returns journal entries, newest first.
// With mine=true only the caller's session is included.
func (h *Handler) List(c *gin.Context) {
	var req ListActivityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.BadRequest(err, "invalid query parameters"))
		return
	}

	filter := activity.Filter{
		Action:   activity.Action(req.Action),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Mine {
		filter.SessionID = auth.GetSessionID(c)
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, activity.ErrJournalUnavailable):
			err = apperror.Unavailable(err, "activity journal unavailable")
		case errors.Is(err, activity.ErrInvalidFilter):
			err = apperror.BadRequest(err, "invalid activity filter")
		}
		response.Error(c, err)
		return
	}

	items := make([]EntryResponse, len(list))
	for i, e := range list {
		items[i] = NewEntryResponse(e)
	}

	resp := response.NewPageResponse(items, req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

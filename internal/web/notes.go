package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickyboard/pkg/core"
)

type createNoteRequest struct {
	Text     string `json:"text" form:"text"`
	Priority string `json:"priority" form:"priority"`
}

type setPriorityRequest struct {
	Priority string `json:"priority" form:"priority" binding:"required"`
}

type notesResponse struct {
	Notes  []core.Note                   `json:"notes"`
	Groups map[core.Priority][]core.Note `json:"groups"`
}

func (h *handler) notesView() notesResponse {
	return notesResponse{Notes: h.board.List(), Groups: h.board.GroupByPriority()}
}

func (h *handler) HandleListNotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.notesView())
}

func (h *handler) HandleCreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBind(&req); err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	p, err := core.ParsePriority(req.Priority)
	if err != nil {
		apiErr, _ := validationError(err)
		abort(c, apiErr)
		return
	}

	note, err := h.board.Add(c.Request.Context(), req.Text, p)
	if err != nil {
		if apiErr, ok := validationError(err); ok {
			abort(c, apiErr)
			return
		}
		h.logger.Error("failed to add note", "error", err)
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *handler) HandleDeleteNote(c *gin.Context) {
	if err := h.board.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("failed to remove note", "error", err)
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) HandleSetPriority(c *gin.Context) {
	var req setPriorityRequest
	if err := c.ShouldBind(&req); err != nil {
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	p, err := core.ParsePriority(req.Priority)
	if err == nil {
		err = h.board.SetPriority(c.Request.Context(), c.Param("id"), p)
	}
	if err != nil {
		if apiErr, ok := validationError(err); ok {
			abort(c, apiErr)
			return
		}
		h.logger.Error("failed to set priority", "error", err)
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	c.Status(http.StatusNoContent)
}

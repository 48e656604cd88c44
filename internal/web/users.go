package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/stickyboard/pkg/remote"
)

// todoView is a remote todo with the user's override applied.
type todoView struct {
	remote.Todo
	Overridden bool `json:"overridden"`
}

type userDetailResponse struct {
	User  remote.User   `json:"user"`
	Posts []remote.Post `json:"posts"`
	Todos []todoView    `json:"todos"`
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		abort(c, newBadRequestError("invalid "+name))
		return 0, false
	}
	return id, true
}

func (h *handler) HandleUserDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var resp userDetailResponse
	var todos []remote.Todo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resp.User, err = h.remote.User(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		resp.Posts, err = h.remote.UserPosts(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		todos, err = h.remote.UserTodos(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Warn("failed to load user", "user", id, "error", err)
		abort(c, newAPIError(http.StatusBadGateway, "Error loading user"))
		return
	}

	overrides := h.todos.Load(ctx)
	resp.Todos = make([]todoView, 0, len(todos))
	for _, t := range todos {
		_, overridden := overrides[t.ID]
		t.Completed = overrides.Effective(t.ID, t.Completed)
		resp.Todos = append(resp.Todos, todoView{Todo: t, Overridden: overridden})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) HandleToggleTodo(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	todoID, ok := paramID(c, "todoID")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	todos, err := h.remote.UserTodos(ctx, userID)
	if err != nil {
		h.logger.Warn("failed to load todos", "user", userID, "error", err)
		abort(c, newAPIError(http.StatusBadGateway, "Error loading todos"))
		return
	}

	var found *remote.Todo
	for i := range todos {
		if todos[i].ID == todoID {
			found = &todos[i]
			break
		}
	}
	if found == nil {
		abort(c, newNotFoundError("todo not found"))
		return
	}

	overrides, err := h.todos.Toggle(ctx, todoID, found.Completed)
	if err != nil {
		h.logger.Error("failed to toggle todo", "todo", todoID, "error", err)
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	t := *found
	t.Completed = overrides[todoID]
	c.JSON(http.StatusOK, todoView{Todo: t, Overridden: true})
}

package ginserver

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/services/admin"
	domainuser "stayhub/internal/domain/user"
)

type AdminHandler struct {
	Service *admin.Service
	Logger  *slog.Logger
}

// ListUsers filters and pages the user directory. Query parameters:
// role, approved, sort, order (asc|desc), limit, skip.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	if _, ok := requireCapability(c, policies.ActionModerate, policies.Resource{}); !ok {
		return
	}
	params := admin.ListParams{
		Role:     c.Query("role"),
		SortBy:   c.Query("sort"),
		SortDesc: c.Query("order") == "desc",
	}
	if raw := c.Query("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "approved must be a boolean")
			return
		}
		params.Approved = &approved
	}
	var err error
	if params.Limit, err = queryInt(c, "limit"); err != nil {
		respondMessage(c, http.StatusBadRequest, "limit must be an integer")
		return
	}
	if params.Skip, err = queryInt(c, "skip"); err != nil {
		respondMessage(c, http.StatusBadRequest, "skip must be an integer")
		return
	}
	items, err := h.Service.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewUsers(items))
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, h.Service.Approve)
}

func (h *AdminHandler) Block(c *gin.Context) {
	h.moderate(c, h.Service.Block)
}

func (h *AdminHandler) Unblock(c *gin.Context) {
	h.moderate(c, h.Service.Unblock)
}

func (h *AdminHandler) moderate(c *gin.Context, op func(ctx context.Context, userID string) (*domainuser.User, error)) {
	if _, ok := requireCapability(c, policies.ActionModerate, policies.Resource{}); !ok {
		return
	}
	updated, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewUser(updated))
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

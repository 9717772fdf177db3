package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/services/bookings"
)

type BookingHandler struct {
	Service *bookings.Service
	Logger  *slog.Logger
}

type bookingRequest struct {
	PlaceID string    `json:"place_id"`
	From    time.Time `json:"from"`
	Until   time.Time `json:"until"`
	Persons int       `json:"persons"`
}

// Create reserves a stay. Clients may send an Idempotency-Key header to
// make retried requests return the original booking.
func (h *BookingHandler) Create(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionBookStay, policies.Resource{})
	if !ok {
		return
	}
	var req bookingRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.Service.Request(c.Request.Context(), bookings.RequestParams{
		PlaceID:        req.PlaceID,
		TenantID:       p.ID,
		From:           req.From,
		Until:          req.Until,
		Persons:        req.Persons,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	items, err := h.Service.ListByTenant(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewBookings(items))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id"), p.ID); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"cancelled": true})
}

package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/services/reviews"
)

type ReviewHandler struct {
	Service *reviews.Service
	Logger  *slog.Logger
}

type createReviewRequest struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	p, ok := requireCapability(c, policies.ActionWriteReview, policies.Resource{})
	if !ok {
		return
	}
	var req createReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Service.Create(c.Request.Context(), reviews.CreateParams{
		PlaceID:  c.Param("id"),
		AuthorID: p.ID,
		Text:     req.Text,
		Rating:   req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewReview(created))
}

func (h *ReviewHandler) ListForPlace(c *gin.Context) {
	items, err := h.Service.ListByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewReviews(items))
}

type patchReviewRequest struct {
	Text   *string  `json:"text"`
	Rating *float64 `json:"rating"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req patchReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), reviews.UpdateParams{
		ReviewID: c.Param("id"),
		AuthorID: p.ID,
		Text:     req.Text,
		Rating:   req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewReview(updated))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), p.ID); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

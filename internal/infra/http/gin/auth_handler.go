package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/services/auth"
)

type AuthHandler struct {
	Service *auth.Service
	Logger  *slog.Logger
}

type registerRequest struct {
	UserName    string    `json:"user_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Role        string    `json:"role"`
	Tel         string    `json:"tel"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.Service.Register(c.Request.Context(), auth.RegisterParams{
		UserName:    req.UserName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Tel:         req.Tel,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.AuthResponse{
		Token: result.Token,
		User:  dto.NewUser(result.User),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.Service.Login(c.Request.Context(), auth.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.AuthResponse{
		Token: result.Token,
		User:  dto.NewUser(result.User),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	if err := h.Service.Logout(c.Request.Context(), p.Token); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"logged_out": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	resolved, err := h.Service.ResolveToken(c.Request.Context(), p.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewUser(resolved.User))
}

type updateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Tel       *string `json:"tel"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req updateMeRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Service.UpdateMe(c.Request.Context(), auth.UpdateMeParams{
		UserID:    p.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Tel:       req.Tel,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewUser(updated))
}

// DeleteMe removes the account together with every place the user
// owns, each place taking its bookings, reviews and photos with it.
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteMe(c.Request.Context(), p.ID); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

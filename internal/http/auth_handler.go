package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bci-auth/internal/domain"
	"bci-auth/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger *zap.Logger
	auth   *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
	}
}

// Formato de fecha del contrato: "Nov 16, 2021 12:51:43 PM".
const responseTimeLayout = "Jan 02, 2006 03:04:05 PM"

type phonePayload struct {
	Number      int64  `json:"number"`
	CityCode    int32  `json:"cityCode"`
	CountryCode string `json:"countryCode"`
}

type signUpRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email" binding:"required"`
	Password string         `json:"password" binding:"required"`
	Phones   []phonePayload `json:"phones"`
}

// userResponse expone el registro completo, incluido el hash del password.
// El hash viaja en la respuesta por compatibilidad con el contrato vigente
// (ver DESIGN.md).
type userResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"passwordHash"`
	Created      string         `json:"created"`
	LastLogin    *string        `json:"lastLogin"`
	IsActive     bool           `json:"isActive"`
	Token        string         `json:"token"`
	Phones       []phonePayload `json:"phones"`
}

type errorDetail struct {
	Timestamp string `json:"timestamp"`
	Code      int    `json:"code"`
	Detail    string `json:"detail"`
}

type errorResponse struct {
	Error []errorDetail `json:"error"`
}

// SignUp maneja POST /sign-up.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sign-up request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	phones := make([]domain.Phone, 0, len(req.Phones))
	for _, p := range req.Phones {
		phones = append(phones, domain.Phone{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}

	user, token, err := h.auth.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   phones,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, "Invalid email format. Email must match pattern: example@domain.com")
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, http.StatusBadRequest, "Invalid password format. Password must be 8-12 alphanumeric characters with exactly one uppercase letter and at least two digits")
		case errors.Is(err, service.ErrUserAlreadyExists):
			respondError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error("sign-up failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, mapUserResponse(user, token))
}

// Login maneja GET /login. Requiere header Authorization: Bearer <token>.
func (h *AuthHandler) Login(c *gin.Context) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	var token string
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		token = strings.TrimSpace(header[len("Bearer "):])
	}
	if token == "" {
		respondError(c, http.StatusBadRequest, "Authorization header is required with format: Bearer <token>")
		return
	}

	user, newToken, err := h.auth.Login(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("login failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, mapUserResponse(user, newToken))
}

func mapUserResponse(user domain.User, token string) userResponse {
	phones := make([]phonePayload, 0, len(user.Phones))
	for _, p := range user.Phones {
		phones = append(phones, phonePayload{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}

	var lastLogin *string
	if user.LastLogin != nil {
		formatted := user.LastLogin.Format(responseTimeLayout)
		lastLogin = &formatted
	}

	return userResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Created:      user.Created.Format(responseTimeLayout),
		LastLogin:    lastLogin,
		IsActive:     user.Active,
		Token:        token,
		Phones:       phones,
	}
}

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, errorResponse{
		Error: []errorDetail{{
			Timestamp: time.Now().UTC().Format(responseTimeLayout),
			Code:      status,
			Detail:    detail,
		}},
	})
}

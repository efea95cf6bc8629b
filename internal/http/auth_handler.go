package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workshare/internal/service"
	"workshare/internal/session"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	sessions session.Store
}

// NewAuthHandler crea una instancia de AuthHandler con las dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, sessions session.Store) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		sessions: sessions,
	}
}

// SignUp maneja POST /signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.authServ.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
		// El conflicto por email duplicado se responde con el cuerpo
		// genérico para no permitir enumerar cuentas registradas.
		h.logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
		return
	}

	h.establishSession(c, req.Email)
	c.JSON(http.StatusOK, gin.H{"message": "signed up, check your mail to verify your address"})
}

// Login maneja POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.authServ.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Mismo cuerpo para usuario inexistente y contraseña mala.
			c.JSON(http.StatusUnauthorized, gin.H{"message": "login failed"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
		return
	}

	h.establishSession(c, req.Email)
	c.JSON(http.StatusOK, gin.H{"message": "successfully logged in"})
}

// Logout maneja GET /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid, ok := currentSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), sid); err != nil && !errors.Is(err, session.ErrNoSession) {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
		return
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

// VerifyEmail maneja GET /verification?token=...
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	emailAddr, ok := CurrentEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	tok := c.Query("token")
	if err := h.authServ.VerifyEmail(c.Request.Context(), emailAddr, tok); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		h.logger.Error("verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// RequestPasswordReset maneja POST /password_reset_try.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid password reset request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.authServ.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.logger.Error("password reset request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
		return
	}
	// La respuesta no varía exista o no la cuenta.
	c.JSON(http.StatusOK, gin.H{"message": "check your mail"})
}

// CheckPasswordResetToken maneja GET /password_reset?token=...
func (h *AuthHandler) CheckPasswordResetToken(c *gin.Context) {
	tok := c.Query("token")
	if err := h.authServ.CheckPasswordResetToken(c.Request.Context(), tok); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		h.logger.Error("password reset check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "valid token"})
}

// CompletePasswordReset maneja POST /password_reset.
func (h *AuthHandler) CompletePasswordReset(c *gin.Context) {
	var req struct {
		PasswordResetToken string `json:"password_reset_token" binding:"required"`
		Password           string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid password reset completion", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if err := h.authServ.CompletePasswordReset(c.Request.Context(), req.PasswordResetToken, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		h.logger.Error("password reset completion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *AuthHandler) establishSession(c *gin.Context, emailAddr string) {
	sid, err := h.sessions.Login(c.Request.Context(), emailAddr)
	if err != nil {
		// La cuenta ya quedó operativa; sin sesión el cliente puede
		// reintentar con login.
		h.logger.Error("establish session failed", zap.Error(err))
		return
	}
	c.SetCookie(SessionCookie, sid, 0, "/", "", false, true)
}

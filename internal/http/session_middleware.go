package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"workshare/internal/session"
)

const (
	// SessionCookie es el nombre de la cookie que transporta el id de sesión.
	SessionCookie = "session_id"

	authEmailKey = "auth_email"
	sessionIDKey = "auth_sid"
)

// SessionMiddleware resuelve la cookie de sesión contra el Store y deja
// la identidad en el contexto. No rechaza requests: eso es trabajo de
// RequireSession en las rutas que lo piden.
func SessionMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			c.Next()
			return
		}
		emailAddr, err := store.Current(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "system error"})
				c.Abort()
				return
			}
			c.Next()
			return
		}
		c.Set(authEmailKey, emailAddr)
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// RequireSession corta con 401 cuando no hay sesión activa.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentEmail(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentEmail obtiene el email autenticado desde el contexto.
func CurrentEmail(c *gin.Context) (string, bool) {
	val, ok := c.Get(authEmailKey)
	if !ok {
		return "", false
	}
	emailAddr, ok := val.(string)
	return emailAddr, ok && emailAddr != ""
}

// currentSessionID obtiene el id de sesión desde el contexto.
func currentSessionID(c *gin.Context) (string, bool) {
	val, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	sid, ok := val.(string)
	return sid, ok && sid != ""
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkHandler mantiene los endpoints CRUD de works. Por ahora son
// placeholders sin lógica: responden cuerpo fijo y sólo exigen sesión.
type WorkHandler struct {
	logger *zap.Logger
}

func NewWorkHandler(logger *zap.Logger) *WorkHandler {
	return &WorkHandler{logger: logger}
}

// CreateWork maneja POST /works.
func (h *WorkHandler) CreateWork(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello world!"})
}

// GetWork maneja GET /works/:id.
func (h *WorkHandler) GetWork(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello world!"})
}

// UpdateWork maneja PATCH /works/:id.
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello world!"})
}

// DeleteWork maneja DELETE /works/:id.
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello world!"})
}

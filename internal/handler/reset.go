package handler

import (
	"net/http"

	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResetHandler interface {
	Reset(c *gin.Context)
}

type resetHandler struct {
	reset     repository.ResetRepository
	questions service.QuestionService
	logger    *zap.Logger
}

func NewResetHandler(reset repository.ResetRepository, questions service.QuestionService, logger *zap.Logger) ResetHandler {
	return &resetHandler{reset: reset, questions: questions, logger: logger}
}

// Reset wipes all domain data except admin accounts, then reinstalls the
// default question catalog so the app is usable immediately after.
func (h *resetHandler) Reset(c *gin.Context) {
	counts, err := h.reset.ResetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Database reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to reset database"})
		return
	}

	if err := h.questions.SeedIfEmpty(c.Request.Context()); err != nil {
		h.logger.Error("Failed to reseed question catalog after reset", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "all data deleted except admin users",
		"deleted": counts,
	})
}

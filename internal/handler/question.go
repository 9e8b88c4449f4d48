package handler

import (
	"net/http"
	"strconv"

	"backend/internal/models"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuestionHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Delete(c *gin.Context)
	Reset(c *gin.Context)
}

type questionHandler struct {
	questions service.QuestionService
	logger    *zap.Logger
}

func NewQuestionHandler(questions service.QuestionService, logger *zap.Logger) QuestionHandler {
	return &questionHandler{questions: questions, logger: logger}
}

func (h *questionHandler) List(c *gin.Context) {
	list, err := h.questions.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list questions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list questions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": list})
}

func (h *questionHandler) Create(c *gin.Context) {
	var input models.CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	q, err := h.questions.Create(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create question", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create question"})
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *questionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return
	}

	deleted, err := h.questions.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete question", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to delete question"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "question not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "question deleted"})
}

func (h *questionHandler) Reset(c *gin.Context) {
	count, err := h.questions.ResetToDefaults(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to reset questions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to reset questions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "count": count})
}

package handler

import (
	"net/http"
	"strconv"

	"backend/internal/models"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EmailLogHandler interface {
	Record(c *gin.Context)
	ListByBadanPublik(c *gin.Context)
}

type emailLogHandler struct {
	emails repository.EmailLogRepository
	access service.AccessService
	logger *zap.Logger
}

func NewEmailLogHandler(emails repository.EmailLogRepository, access service.AccessService, logger *zap.Logger) EmailLogHandler {
	return &emailLogHandler{emails: emails, access: access, logger: logger}
}

// Record tracks an outreach email after the external mailer reports the
// outcome. Ownership is checked against the targeted badan publik.
func (h *emailLogHandler) Record(c *gin.Context) {
	var input models.CreateEmailLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "code": models.CodeTokenMissing})
		return
	}

	allowed, err := h.access.CanAccessBadanPublik(c.Request.Context(), userID, role, input.BadanPublikID)
	if err != nil {
		h.logger.Error("Ownership check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to record email"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeForbidden})
		return
	}

	e := &models.EmailLog{
		UserID:        userID,
		BadanPublikID: input.BadanPublikID,
		Subject:       input.Subject,
		Recipient:     input.Recipient,
		Status:        input.Status,
	}
	if err := h.emails.CreateEmailLog(c.Request.Context(), e); err != nil {
		h.logger.Error("Failed to record email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to record email"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *emailLogHandler) ListByBadanPublik(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "code": models.CodeTokenMissing})
		return
	}

	allowed, err := h.access.CanAccessBadanPublik(c.Request.Context(), userID, role, id)
	if err != nil {
		h.logger.Error("Ownership check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list emails"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeForbidden})
		return
	}

	list, err := h.emails.ListEmailLogsByBadanPublik(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list emails", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list emails"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"emails": list})
}

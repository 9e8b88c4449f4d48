package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"backend/internal/models"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BadanPublikHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type badanPublikHandler struct {
	repo   repository.BadanPublikRepository
	access service.AccessService
	logger *zap.Logger
}

func NewBadanPublikHandler(repo repository.BadanPublikRepository, access service.AccessService, logger *zap.Logger) BadanPublikHandler {
	return &badanPublikHandler{repo: repo, access: access, logger: logger}
}

func (h *badanPublikHandler) List(c *gin.Context) {
	list, err := h.repo.ListBadanPublik(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list badan publik", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list badan publik"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"badan_publik": list})
}

func (h *badanPublikHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return
	}

	bp, err := h.repo.GetBadanPublik(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "badan publik not found"})
			return
		}
		h.logger.Error("Failed to get badan publik", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to get badan publik"})
		return
	}
	c.JSON(http.StatusOK, bp)
}

func (h *badanPublikHandler) Create(c *gin.Context) {
	var input models.CreateBadanPublikInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	bp := &models.BadanPublik{
		Name:     input.Name,
		Category: input.Category,
		Email:    input.Email,
		Website:  input.Website,
		Address:  input.Address,
	}
	if err := h.repo.CreateBadanPublik(c.Request.Context(), bp); err != nil {
		h.logger.Error("Failed to create badan publik", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create badan publik"})
		return
	}
	c.JSON(http.StatusCreated, bp)
}

// Update is allowed for admins and for users assigned to the badan publik.
func (h *badanPublikHandler) Update(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to update badan publik"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeForbidden})
		return
	}

	var input models.UpdateBadanPublikInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	bp, err := h.repo.GetBadanPublik(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "badan publik not found"})
			return
		}
		h.logger.Error("Failed to get badan publik", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to update badan publik"})
		return
	}

	if input.Name != "" {
		bp.Name = input.Name
	}
	if input.Category != "" {
		bp.Category = input.Category
	}
	if input.Email != "" {
		bp.Email = input.Email
	}
	if input.Website != "" {
		bp.Website = input.Website
	}
	if input.Address != "" {
		bp.Address = input.Address
	}

	if err := h.repo.UpdateBadanPublik(c.Request.Context(), bp); err != nil {
		h.logger.Error("Failed to update badan publik", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to update badan publik"})
		return
	}
	c.JSON(http.StatusOK, bp)
}

func (h *badanPublikHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return
	}

	if err := h.repo.DeleteBadanPublik(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete badan publik", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to delete badan publik"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

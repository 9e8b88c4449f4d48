package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"backend/internal/models"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	ListMine(c *gin.Context)
	ListAll(c *gin.Context)
}

type reportHandler struct {
	reports   repository.ReportRepository
	questions repository.QuestionRepository
	access    service.AccessService
	logger    *zap.Logger
}

func NewReportHandler(reports repository.ReportRepository, questions repository.QuestionRepository, access service.AccessService, logger *zap.Logger) ReportHandler {
	return &reportHandler{reports: reports, questions: questions, access: access, logger: logger}
}

// Create files an uji akses report. The caller must be assigned to the
// badan publik (or be an admin). Answers are scored against the question
// catalog; any score the client sends is ignored. A submitted report must
// answer every question, a draft may leave gaps.
func (h *reportHandler) Create(c *gin.Context) {
	var input models.CreateReportInput
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
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create report"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeForbidden})
		return
	}

	status := input.Status
	if status == "" {
		status = "draft"
	}

	questions, err := h.questions.ListQuestions(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load question catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create report"})
		return
	}
	answers, total := service.ScoreAnswers(questions, input.Answers)
	if status == "submitted" {
		if missing := service.MissingAnswers(questions, answers); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "jawaban belum lengkap: " + strings.Join(missing, ", "),
			})
			return
		}
	}

	rep := &models.UjiAksesReport{
		UserID:        userID,
		BadanPublikID: input.BadanPublikID,
		Period:        input.Period,
		Score:         total,
		Answers:       answers,
		Status:        status,
		Notes:         input.Notes,
		EvidenceURL:   input.EvidenceURL,
	}
	if err := h.reports.CreateReport(c.Request.Context(), rep); err != nil {
		h.logger.Error("Failed to create report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create report"})
		return
	}
	c.JSON(http.StatusCreated, rep)
}

func (h *reportHandler) Get(c *gin.Context) {
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

	rep, err := h.reports.GetReport(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "report not found"})
			return
		}
		h.logger.Error("Failed to get report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to get report"})
		return
	}

	allowed, err := h.access.CanAccessBadanPublik(c.Request.Context(), userID, role, rep.BadanPublikID)
	if err != nil {
		h.logger.Error("Ownership check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to get report"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "code": models.CodeForbidden})
		return
	}

	c.JSON(http.StatusOK, rep)
}

func (h *reportHandler) ListMine(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "code": models.CodeTokenMissing})
		return
	}

	list, err := h.reports.ListReportsByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": list})
}

func (h *reportHandler) ListAll(c *gin.Context) {
	list, err := h.reports.ListReports(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": list})
}

package handler

import (
	"net/http"

	"backend/internal/models"
	"backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssignmentHandler interface {
	Assign(c *gin.Context)
	ListAll(c *gin.Context)
	ListMine(c *gin.Context)
	History(c *gin.Context)
}

type assignmentHandler struct {
	assignments repository.AssignmentRepository
	badanPublik repository.BadanPublikRepository
	logger      *zap.Logger
}

func NewAssignmentHandler(assignments repository.AssignmentRepository, badanPublik repository.BadanPublikRepository, logger *zap.Logger) AssignmentHandler {
	return &assignmentHandler{assignments: assignments, badanPublik: badanPublik, logger: logger}
}

// Assign links a user to a badan publik. Admin-only (enforced in routing).
func (h *assignmentHandler) Assign(c *gin.Context) {
	var input models.CreateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	actorID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "code": models.CodeTokenMissing})
		return
	}

	a := &models.Assignment{
		UserID:        input.UserID,
		BadanPublikID: input.BadanPublikID,
		AssignedBy:    actorID,
	}
	if err := h.assignments.CreateAssignment(c.Request.Context(), a); err != nil {
		h.logger.Error("Failed to create assignment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create assignment"})
		return
	}

	history := &models.AssignmentHistory{
		UserID:        a.UserID,
		BadanPublikID: a.BadanPublikID,
		Action:        "assigned",
		ActorID:       actorID,
	}
	if err := h.assignments.RecordHistory(c.Request.Context(), history); err != nil {
		// History is advisory; the assignment itself stands.
		h.logger.Warn("Failed to record assignment history", zap.Error(err))
	}

	c.JSON(http.StatusCreated, a)
}

func (h *assignmentHandler) ListAll(c *gin.Context) {
	list, err := h.assignments.ListAssignments(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list assignments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list assignments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": list})
}

// ListMine returns the caller's assignments together with the badan publik
// rows, so the dashboard needs a single round trip.
func (h *assignmentHandler) ListMine(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "code": models.CodeTokenMissing})
		return
	}

	list, err := h.assignments.ListAssignmentsByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list assignments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list assignments"})
		return
	}

	ids := make([]int64, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.BadanPublikID)
	}
	bodies, err := h.badanPublik.ListBadanPublikByIDs(c.Request.Context(), ids)
	if err != nil {
		h.logger.Error("Failed to load assigned badan publik", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": list, "badan_publik": bodies})
}

func (h *assignmentHandler) History(c *gin.Context) {
	history, err := h.assignments.ListAssignmentHistory(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list assignment history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to list history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

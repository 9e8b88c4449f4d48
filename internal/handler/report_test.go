package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/internal/middleware"
	"backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReportRepo struct {
	created *models.UjiAksesReport
}

func (f *fakeReportRepo) CreateReport(ctx context.Context, rep *models.UjiAksesReport) error {
	rep.ID = 1
	f.created = rep
	return nil
}

func (f *fakeReportRepo) GetReport(ctx context.Context, id int64) (*models.UjiAksesReport, error) {
	return f.created, nil
}

func (f *fakeReportRepo) ListReports(ctx context.Context) ([]models.UjiAksesReport, error) {
	return nil, nil
}

func (f *fakeReportRepo) ListReportsByUser(ctx context.Context, userID int64) ([]models.UjiAksesReport, error) {
	return nil, nil
}

type fakeCatalogRepo struct {
	questions []models.UjiAksesQuestion
}

func (f *fakeCatalogRepo) ListQuestions(ctx context.Context) ([]models.UjiAksesQuestion, error) {
	return f.questions, nil
}

func (f *fakeCatalogRepo) CountQuestions(ctx context.Context) (int, error) {
	return len(f.questions), nil
}

func (f *fakeCatalogRepo) CreateQuestion(ctx context.Context, q *models.UjiAksesQuestion) error {
	return nil
}

func (f *fakeCatalogRepo) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func (f *fakeCatalogRepo) ReplaceAll(ctx context.Context, questions []models.UjiAksesQuestion) error {
	return nil
}

type allowAllAccess struct{}

func (allowAllAccess) CanAccessBadanPublik(ctx context.Context, userID int64, role string, badanPublikID int64) (bool, error) {
	return true, nil
}

func reportTestRouter(reports *fakeReportRepo, catalog *fakeCatalogRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(reports, catalog, allowAllAccess{}, zap.NewNop())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, int64(7))
		c.Set(middleware.CtxRole, models.RoleUser)
	})
	r.POST("/reports", h.Create)
	return r
}

func reportCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{questions: []models.UjiAksesQuestion{
		{
			Key: "q1", Text: "Kanal permohonan tersedia?",
			Options: []models.UjiAksesOption{
				{Key: "opt1", Label: "Ya", Score: 3},
				{Key: "opt2", Label: "Tidak", Score: 0},
			},
		},
		{
			Key: "q2", Text: "Permohonan dijawab?",
			Options: []models.UjiAksesOption{
				{Key: "opt1", Label: "Ya", Score: 3},
				{Key: "opt2", Label: "Tidak", Score: 0},
			},
		},
	}}
}

func postReport(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReport_ScoreComputedServerSide(t *testing.T) {
	reports := &fakeReportRepo{}
	r := reportTestRouter(reports, reportCatalog())

	// The client claims a perfect score but only one answer earns points.
	w := postReport(r, `{
		"badan_publik_id": 3,
		"period": "2026-Q3",
		"score": 100,
		"status": "submitted",
		"answers": {
			"q1": {"optionKey": "opt1", "catatan": "via email PPID"},
			"q2": {"optionKey": "opt2"}
		}
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, reports.created)
	assert.Equal(t, 3, reports.created.Score)
	assert.Equal(t, 3, reports.created.Answers["q1"].Score)
	assert.Equal(t, 0, reports.created.Answers["q2"].Score)
	assert.Equal(t, "via email PPID", reports.created.Answers["q1"].Note)
}

func TestCreateReport_SubmittedRequiresAllAnswers(t *testing.T) {
	reports := &fakeReportRepo{}
	r := reportTestRouter(reports, reportCatalog())

	w := postReport(r, `{
		"badan_publik_id": 3,
		"period": "2026-Q3",
		"status": "submitted",
		"answers": {"q1": {"optionKey": "opt1"}}
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "q2")
	assert.Nil(t, reports.created)
}

func TestCreateReport_DraftMayLeaveGaps(t *testing.T) {
	reports := &fakeReportRepo{}
	r := reportTestRouter(reports, reportCatalog())

	w := postReport(r, `{
		"badan_publik_id": 3,
		"period": "2026-Q3",
		"answers": {"q1": {"optionKey": "opt1"}}
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, reports.created)
	assert.Equal(t, "draft", reports.created.Status)
	assert.Equal(t, 3, reports.created.Score)
}

package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"backend/internal/models"
	"backend/internal/repository"

	"go.uber.org/zap"
)

type QuestionService interface {
	List(ctx context.Context) ([]models.UjiAksesQuestion, error)
	Create(ctx context.Context, input models.CreateQuestionInput) (*models.UjiAksesQuestion, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// SeedIfEmpty installs the default catalog on first boot. An already
	// populated catalog is left alone.
	SeedIfEmpty(ctx context.Context) error
	// ResetToDefaults discards the current catalog and reinstalls the
	// template. Returns the number of questions installed.
	ResetToDefaults(ctx context.Context) (int, error)
}

type questionService struct {
	questions repository.QuestionRepository
	logger    *zap.Logger
}

func NewQuestionService(questions repository.QuestionRepository, logger *zap.Logger) QuestionService {
	return &questionService{questions: questions, logger: logger}
}

func (s *questionService) List(ctx context.Context) ([]models.UjiAksesQuestion, error) {
	return s.questions.ListQuestions(ctx)
}

func (s *questionService) Create(ctx context.Context, input models.CreateQuestionInput) (*models.UjiAksesQuestion, error) {
	existing, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	order := input.Order
	if order == 0 {
		order = len(existing) + 1
	}
	q := &models.UjiAksesQuestion{
		Key:     nextKey("q", questionKeys(existing)),
		Section: input.Section,
		Text:    input.Text,
		Order:   order,
	}
	for i, opt := range input.Options {
		optOrder := opt.Order
		if optOrder == 0 {
			optOrder = i + 1
		}
		q.Options = append(q.Options, models.UjiAksesOption{
			Key:   fmt.Sprintf("opt%d", i+1),
			Label: opt.Label,
			Score: opt.Score,
			Order: optOrder,
		})
	}

	if err := s.questions.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.questions.DeleteQuestion(ctx, id)
}

func (s *questionService) SeedIfEmpty(ctx context.Context) error {
	count, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.questions.ReplaceAll(ctx, defaultQuestions()); err != nil {
		return err
	}
	s.logger.Info("Seeded default question catalog")
	return nil
}

func (s *questionService) ResetToDefaults(ctx context.Context) (int, error) {
	defaults := defaultQuestions()
	if err := s.questions.ReplaceAll(ctx, defaults); err != nil {
		return 0, err
	}
	s.logger.Info("Question catalog reset to template", zap.Int("count", len(defaults)))
	return len(defaults), nil
}

var keyNumberRe = regexp.MustCompile(`^q(\d+)$`)

func questionKeys(questions []models.UjiAksesQuestion) []string {
	keys := make([]string, 0, len(questions))
	for _, q := range questions {
		keys = append(keys, q.Key)
	}
	return keys
}

// nextKey continues the numeric sequence of existing keys: q1, q2 -> q3.
// Keys outside the pattern are ignored, so imported catalogs with custom
// keys still get fresh numbers.
func nextKey(prefix string, existing []string) string {
	numbers := []int{}
	for _, key := range existing {
		if m := keyNumberRe.FindStringSubmatch(key); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				numbers = append(numbers, n)
			}
		}
	}
	if len(numbers) == 0 {
		return prefix + "1"
	}
	sort.Ints(numbers)
	return prefix + strconv.Itoa(numbers[len(numbers)-1]+1)
}

// defaultQuestions is the seed template installed on first boot and by
// reset. Scores follow the usual rubric: full availability scores highest,
// absence scores zero.
func defaultQuestions() []models.UjiAksesQuestion {
	standard := func() []models.UjiAksesOption {
		return []models.UjiAksesOption{
			{Key: "opt1", Label: "Tersedia dan mudah diakses", Score: 3, Order: 1},
			{Key: "opt2", Label: "Tersedia sebagian", Score: 2, Order: 2},
			{Key: "opt3", Label: "Tersedia namun sulit diakses", Score: 1, Order: 3},
			{Key: "opt4", Label: "Tidak tersedia", Score: 0, Order: 4},
		}
	}
	return []models.UjiAksesQuestion{
		{
			Key: "q1", Section: "Sarana Permohonan", Order: 1,
			Text:    "Apakah badan publik menyediakan kanal permohonan informasi (formulir, email, atau loket PPID)?",
			Options: standard(),
		},
		{
			Key: "q2", Section: "Sarana Permohonan", Order: 2,
			Text:    "Apakah kontak PPID (alamat, telepon, email) dipublikasikan dan dapat dihubungi?",
			Options: standard(),
		},
		{
			Key: "q3", Section: "Respons", Order: 3,
			Text:    "Apakah permohonan informasi dijawab dalam jangka waktu 10 hari kerja?",
			Options: []models.UjiAksesOption{
				{Key: "opt1", Label: "Dijawab tepat waktu dan lengkap", Score: 3, Order: 1},
				{Key: "opt2", Label: "Dijawab terlambat atau tidak lengkap", Score: 1, Order: 2},
				{Key: "opt3", Label: "Tidak dijawab", Score: 0, Order: 3},
			},
		},
		{
			Key: "q4", Section: "Kelengkapan Informasi", Order: 4,
			Text:    "Apakah informasi yang diberikan sesuai dengan yang dimohonkan?",
			Options: []models.UjiAksesOption{
				{Key: "opt1", Label: "Sesuai sepenuhnya", Score: 3, Order: 1},
				{Key: "opt2", Label: "Sesuai sebagian", Score: 1, Order: 2},
				{Key: "opt3", Label: "Tidak sesuai", Score: 0, Order: 3},
			},
		},
		{
			Key: "q5", Section: "Keterbukaan Proaktif", Order: 5,
			Text:    "Apakah situs web badan publik memuat daftar informasi publik yang wajib diumumkan secara berkala?",
			Options: standard(),
		},
	}
}

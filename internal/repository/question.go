package repository

import (
	"context"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type QuestionRepository interface {
	// ListQuestions returns the full catalog with options, both in display
	// order.
	ListQuestions(ctx context.Context) ([]models.UjiAksesQuestion, error)
	CountQuestions(ctx context.Context) (int, error)
	CreateQuestion(ctx context.Context, q *models.UjiAksesQuestion) error
	// DeleteQuestion reports whether a row was actually removed.
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
	// ReplaceAll wipes the catalog and installs the given questions in one
	// transaction. Used by seeding and reset-to-template.
	ReplaceAll(ctx context.Context, questions []models.UjiAksesQuestion) error
}

type questionRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewQuestionRepository(db *sqlx.DB, log *zap.Logger) QuestionRepository {
	return &questionRepository{db: db, log: log}
}

func (r *questionRepository) ListQuestions(ctx context.Context) ([]models.UjiAksesQuestion, error) {
	questions := []models.UjiAksesQuestion{}
	query := `SELECT id, key, section, text, position
	          FROM uji_akses_questions ORDER BY position, id`
	if err := r.db.SelectContext(ctx, &questions, query); err != nil {
		return nil, err
	}

	options := []models.UjiAksesOption{}
	query = `SELECT id, question_id, key, label, score, position
	         FROM uji_akses_options ORDER BY question_id, position, id`
	if err := r.db.SelectContext(ctx, &options, query); err != nil {
		return nil, err
	}

	byQuestion := make(map[int64][]models.UjiAksesOption, len(questions))
	for _, opt := range options {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}
	for i := range questions {
		questions[i].Options = byQuestion[questions[i].ID]
	}
	return questions, nil
}

func (r *questionRepository) CountQuestions(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM uji_akses_questions`)
	return count, err
}

func (r *questionRepository) CreateQuestion(ctx context.Context, q *models.UjiAksesQuestion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertQuestion(ctx, tx, q); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *questionRepository) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	// Options go with it via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM uji_akses_questions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *questionRepository) ReplaceAll(ctx context.Context, questions []models.UjiAksesQuestion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM uji_akses_questions`); err != nil {
		return err
	}
	for i := range questions {
		if err := insertQuestion(ctx, tx, &questions[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertQuestion(ctx context.Context, tx *sqlx.Tx, q *models.UjiAksesQuestion) error {
	query := `INSERT INTO uji_akses_questions (key, section, text, position)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	if err := tx.QueryRowxContext(ctx, query, q.Key, q.Section, q.Text, q.Order).Scan(&q.ID); err != nil {
		return err
	}
	for i := range q.Options {
		opt := &q.Options[i]
		opt.QuestionID = q.ID
		query = `INSERT INTO uji_akses_options (question_id, key, label, score, position)
		         VALUES ($1, $2, $3, $4, $5)
		         RETURNING id`
		if err := tx.QueryRowxContext(ctx, query, opt.QuestionID, opt.Key, opt.Label, opt.Score, opt.Order).Scan(&opt.ID); err != nil {
			return err
		}
	}
	return nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UjiAksesQuestion is one entry of the questionnaire catalog. Questions are
// identified by a stable key ("q1", "q2", ...) so stored report answers
// survive renumbering of display order.
type UjiAksesQuestion struct {
	ID      int64            `db:"id" json:"id"`
	Key     string           `db:"key" json:"key"`
	Section string           `db:"section" json:"section,omitempty"`
	Text    string           `db:"text" json:"text"`
	Order   int              `db:"position" json:"order"`
	Options []UjiAksesOption `db:"-" json:"options"`
}

// UjiAksesOption is one selectable answer for a question. The score lives
// here and nowhere else; reports never carry client-asserted scores.
type UjiAksesOption struct {
	ID         int64  `db:"id" json:"id"`
	QuestionID int64  `db:"question_id" json:"-"`
	Key        string `db:"key" json:"key"`
	Label      string `db:"label" json:"label"`
	Score      int    `db:"score" json:"score"`
	Order      int    `db:"position" json:"order"`
}

type CreateOptionInput struct {
	Label string `json:"label" binding:"required"`
	Score int    `json:"score" binding:"min=0"`
	Order int    `json:"order"`
}

type CreateQuestionInput struct {
	Section string              `json:"section"`
	Text    string              `json:"text" binding:"required"`
	Order   int                 `json:"order"`
	Options []CreateOptionInput `json:"options" binding:"required,min=1,dive"`
}

// SubmittedAnswer is what the client sends per question key: the chosen
// option and an optional free-text note.
type SubmittedAnswer struct {
	OptionKey string `json:"optionKey"`
	Note      string `json:"catatan"`
}

// ScoredAnswer is the server-computed record stored on the report.
type ScoredAnswer struct {
	OptionKey string `json:"optionKey"`
	Score     int    `json:"score"`
	Note      string `json:"catatan,omitempty"`
}

// AnswerMap maps question keys to scored answers and round-trips through a
// JSONB column.
type AnswerMap map[string]ScoredAnswer

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = AnswerMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported answers column type %T", src)
	}
}

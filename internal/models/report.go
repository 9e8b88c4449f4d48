package models

import "time"

// UjiAksesReport is a compliance questionnaire result submitted by a user
// for a badan publik they are assigned to. Answers and the total score are
// computed server-side from the question catalog; the client only picks
// option keys. Evidence files live in external storage; only the URL is
// tracked here.
type UjiAksesReport struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	BadanPublikID int64     `db:"badan_publik_id" json:"badan_publik_id"`
	Period        string    `db:"period" json:"period"`
	Score         int       `db:"score" json:"score"`
	Answers       AnswerMap `db:"answers" json:"answers"`
	Status        string    `db:"status" json:"status"` // draft, submitted
	Notes         string    `db:"notes" json:"notes,omitempty"`
	EvidenceURL   string    `db:"evidence_url" json:"evidence_url,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateReportInput struct {
	BadanPublikID int64                      `json:"badan_publik_id" binding:"required"`
	Period        string                     `json:"period" binding:"required"`
	Answers       map[string]SubmittedAnswer `json:"answers"`
	Status        string                     `json:"status" binding:"omitempty,oneof=draft submitted"`
	Notes         string                     `json:"notes"`
	EvidenceURL   string                     `json:"evidence_url"`
}

package models

import "time"

// EmailLog records one outreach email sent to a badan publik. Delivery
// itself happens outside this service; this is the tracking record.
type EmailLog struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	BadanPublikID int64     `db:"badan_publik_id" json:"badan_publik_id"`
	Subject       string    `db:"subject" json:"subject"`
	Recipient     string    `db:"recipient" json:"recipient"`
	Status        string    `db:"status" json:"status"` // sent, failed
	SentAt        time.Time `db:"sent_at" json:"sent_at"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateEmailLogInput struct {
	BadanPublikID int64  `json:"badan_publik_id" binding:"required"`
	Subject       string `json:"subject" binding:"required"`
	Recipient     string `json:"recipient" binding:"required,email"`
	Status        string `json:"status" binding:"required,oneof=sent failed"`
}

package models

import "time"

// Assignment links a user to a badan publik they are responsible for.
// Ownership checks are an existence query over this table.
type Assignment struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	BadanPublikID int64     `db:"badan_publik_id" json:"badan_publik_id"`
	AssignedBy    int64     `db:"assigned_by" json:"assigned_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// AssignmentHistory records assign/unassign actions for auditing.
type AssignmentHistory struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	BadanPublikID int64     `db:"badan_publik_id" json:"badan_publik_id"`
	Action        string    `db:"action" json:"action"` // assigned, unassigned
	ActorID       int64     `db:"actor_id" json:"actor_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateAssignmentInput struct {
	UserID        int64 `json:"user_id" binding:"required"`
	BadanPublikID int64 `json:"badan_publik_id" binding:"required"`
}

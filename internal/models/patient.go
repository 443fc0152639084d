package models

import "time"

type Patient struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"` // account that registered the record
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

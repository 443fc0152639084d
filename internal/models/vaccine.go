package models

import "time"

type Vaccine struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Manufacturer        string    `json:"manufacturer"`
	DosesRequired       int       `json:"doses_required"`
	StorageRequirements string    `json:"storage_requirements"`
	CreatedAt           time.Time `json:"created_at"`
}

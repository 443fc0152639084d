package repository

// ListFilter narrows owner-scoped listings.
type ListFilter struct {
	OwnerID string // empty means every owner
	Status  string // exact match, empty means any
}

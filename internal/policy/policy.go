// Package policy is the single place that decides who may do what. Every
// service asks it before touching storage; handlers never compare role
// strings themselves.
package policy

import (
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
)

type Action string

const (
	CreateVaccine     Action = "create_vaccine"
	ListVaccines      Action = "list_vaccines"
	RegisterPatient   Action = "register_patient"
	ListPatients      Action = "list_patients"
	BookAppointment   Action = "book_appointment"
	ListAppointments  Action = "list_appointments"
	RecordVaccination Action = "record_vaccination"
	CreateTicket      Action = "create_ticket"
	ListTickets       Action = "list_tickets"
	ViewTicket        Action = "view_ticket"
	UpdateTicket      Action = "update_ticket"
	ViewReports       Action = "view_reports"
)

// Scope is how much of a resource type an actor may reach through an action.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAll
)

// Actor is the caller. The zero value is the anonymous actor.
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) Authenticated() bool { return a.ID != "" }

// ActorFor builds the actor for an authenticated account.
func ActorFor(acc models.Account) Actor {
	return Actor{ID: acc.ID, Role: acc.Role}
}

// Resource is the owned object an action targets, if any.
type Resource struct {
	OwnerID string
}

const anonymous models.Role = ""

var table = map[Action]map[models.Role]Scope{
	CreateVaccine: {
		models.RoleAdmin: ScopeAll,
	},
	ListVaccines: {
		anonymous:          ScopeAll,
		models.RolePatient: ScopeAll,
		models.RoleStaff:   ScopeAll,
		models.RoleAdmin:   ScopeAll,
	},
	RegisterPatient: {
		models.RolePatient: ScopeOwn,
		models.RoleStaff:   ScopeOwn,
		models.RoleAdmin:   ScopeOwn,
	},
	ListPatients: {
		models.RolePatient: ScopeOwn,
		models.RoleStaff:   ScopeOwn,
		models.RoleAdmin:   ScopeAll,
	},
	BookAppointment: {
		models.RolePatient: ScopeOwn,
	},
	ListAppointments: {
		models.RolePatient: ScopeOwn,
		models.RoleStaff:   ScopeOwn,
		models.RoleAdmin:   ScopeAll,
	},
	RecordVaccination: {
		models.RoleAdmin: ScopeAll,
	},
	CreateTicket: {
		models.RolePatient: ScopeOwn,
		models.RoleStaff:   ScopeOwn,
		models.RoleAdmin:   ScopeOwn,
	},
	ListTickets: {
		models.RolePatient: ScopeOwn,
		models.RoleStaff:   ScopeOwn,
		models.RoleAdmin:   ScopeAll,
	},
	ViewTicket: {
		models.RolePatient: ScopeOwn,
		models.RoleStaff:   ScopeOwn,
		models.RoleAdmin:   ScopeAll,
	},
	UpdateTicket: {
		models.RoleAdmin: ScopeAll,
	},
	ViewReports: {
		models.RoleAdmin: ScopeAll,
	},
}

// ScopeOf returns the actor's reach for action. Unknown actions, unknown roles
// and authenticated actors with an empty role get ScopeNone.
func ScopeOf(actor Actor, action Action) Scope {
	role := actor.Role
	if !actor.Authenticated() {
		role = anonymous
	} else if role == anonymous {
		return ScopeNone
	}
	return table[action][role]
}

// Allow decides whether actor may perform action on res. A nil res with
// ScopeOwn means the actor acts on its own behalf (creating, or listing with
// results narrowed to its rows).
func Allow(actor Actor, action Action, res *Resource) bool {
	switch ScopeOf(actor, action) {
	case ScopeAll:
		return true
	case ScopeOwn:
		return res == nil || res.OwnerID == actor.ID
	default:
		return false
	}
}

// Authorize is Allow reported as an error: ErrUnauthenticated for anonymous
// callers, ErrForbidden for authenticated ones.
func Authorize(actor Actor, action Action, res *Resource) error {
	if Allow(actor, action, res) {
		return nil
	}
	if !actor.Authenticated() {
		return errs.ErrUnauthenticated
	}
	return errs.ErrForbidden
}

package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// appointmentTransitions lists the legal next states. Terminal states map to
// nothing.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled: {AppointmentCompleted, AppointmentCancelled},
	AppointmentCompleted: nil,
	AppointmentCancelled: nil,
}

func (s AppointmentStatus) Valid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

func (s AppointmentStatus) Terminal() bool {
	return s.Valid() && len(appointmentTransitions[s]) == 0
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, n := range appointmentTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// AppointmentSourcesFor returns the states from which next is reachable.
func AppointmentSourcesFor(next AppointmentStatus) []AppointmentStatus {
	var out []AppointmentStatus
	for from, tos := range appointmentTransitions {
		for _, to := range tos {
			if to == next {
				out = append(out, from)
			}
		}
	}
	return out
}

type Appointment struct {
	ID            string            `json:"id"`
	PatientID     string            `json:"patient_id"`
	VaccineID     string            `json:"vaccine_id"`
	BookedBy      string            `json:"booked_by"`
	ScheduledDate time.Time         `json:"scheduled_date"`
	DoseNumber    int               `json:"dose_number"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

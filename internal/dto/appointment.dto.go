package dto

import (
	"time"

	"github.com/clinicbook/clinic-scheduler/internal/models"
)

// AppointmentDTO is the appointment merged with patient display fields, the
// shape every appointment endpoint returns.
type AppointmentDTO struct {
	ID           uint      `json:"id"`
	ClinicID     uint      `json:"clinic_id"`
	PatientID    uint      `json:"patient_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	PatientName  string    `json:"patientName"`
	PatientPhone string    `json:"patientPhone"`
	ClinicName   string    `json:"clinicName,omitempty"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:           ap.ID,
		ClinicID:     ap.ClinicID,
		PatientID:    ap.PatientID,
		Date:         ap.Date,
		Time:         ap.Time,
		Notes:        ap.Notes,
		Status:       ap.Status,
		CreatedAt:    ap.CreatedAt,
		UpdatedAt:    ap.UpdatedAt,
		PatientName:  ap.Patient.Name,
		PatientPhone: ap.Patient.Phone,
		ClinicName:   ap.Clinic.Name,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		d := FromAppointment(&aps[i])
		d.ClinicName = "" // list responses skip the clinic join
		out = append(out, d)
	}
	return out
}

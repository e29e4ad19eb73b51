package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicbook/clinic-scheduler/internal/kv"
	"github.com/clinicbook/clinic-scheduler/internal/models"
	"github.com/clinicbook/clinic-scheduler/internal/timezone"
)

// Store is the Local Mirror Store: the whole multi-tenant dataset persisted
// as namespaced JSON blobs in one key/value space, one namespace per clinic.
// Operations are sequential read-modify-write with no concurrency control;
// the mode is single-user by design.
//
// Key layout (kept from the original localStorage scheme):
//
//	clinic_app_clinics                      directory of all clinics
//	clinic_app_clinic_<id>_appointments     per-clinic appointment list
//	clinic_app_clinic_<id>_patients         per-clinic patient list
//	clinic_app_clinic_<id>_users            per-clinic staff list
//	clinic_app_current_user                 session pointer
//	clinic_app_language                     language preference flag
type Store struct {
	kv kv.Store
}

const keyPrefix = "clinic_app_"

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// ===========================
// Blob plumbing
// ===========================

func (s *Store) getJSON(ctx context.Context, key string, out any) (bool, error) {
	b, ok, err := s.kv.Get(ctx, keyPrefix+key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("mirror: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("mirror: encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, keyPrefix+key, b)
}

func (s *Store) remove(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, keyPrefix+key)
}

// nextID replaces the original's random string ids with the numeric ids the
// rest of the system uses. One shared counter keeps ids unique across
// entity kinds, which lets appointment lookup work without knowing the
// owning clinic up front.
func (s *Store) NextID(ctx context.Context) (uint, error) {
	return s.nextID(ctx)
}

func (s *Store) nextID(ctx context.Context) (uint, error) {
	var seq uint
	if _, err := s.getJSON(ctx, "seq", &seq); err != nil {
		return 0, err
	}
	seq++
	if err := s.setJSON(ctx, "seq", seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func clinicKey(clinicID uint, list string) string {
	return fmt.Sprintf("clinic_%d_%s", clinicID, list)
}

// ===========================
// Clinic Management
// ===========================

type RegisterClinicInput struct {
	Name         string
	OwnerName    string
	Phone        string
	Email        string
	Address      string
	Specialty    string
	WorkingHours string
	Password     string
}

func (s *Store) SaveClinic(ctx context.Context, in RegisterClinicInput) (*models.Clinic, *models.User, error) {
	clinics, err := s.Clinics(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, c := range clinics {
		if c.Email == in.Email {
			return nil, nil, ErrEmailTaken
		}
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	clinic := models.Clinic{
		ID:           id,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		Specialty:    in.Specialty,
		WorkingHours: in.WorkingHours,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	clinics = append(clinics, clinic)
	if err := s.setJSON(ctx, "clinics", clinics); err != nil {
		return nil, nil, err
	}

	// Fresh per-clinic namespaces.
	if err := s.setJSON(ctx, clinicKey(clinic.ID, "appointments"), []models.Appointment{}); err != nil {
		return nil, nil, err
	}
	if err := s.setJSON(ctx, clinicKey(clinic.ID, "patients"), []models.Patient{}); err != nil {
		return nil, nil, err
	}

	// Unlike the original demo, credentials are hashed here too.
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	userID, err := s.nextID(ctx)
	if err != nil {
		return nil, nil, err
	}

	owner := models.User{
		ID:           userID,
		ClinicID:     clinic.ID,
		Name:         in.OwnerName,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         "owner",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.putUsers(ctx, clinic.ID, []models.User{owner}); err != nil {
		return nil, nil, err
	}

	return &clinic, &owner, nil
}

func (s *Store) Clinics(ctx context.Context) ([]models.Clinic, error) {
	var clinics []models.Clinic
	if _, err := s.getJSON(ctx, "clinics", &clinics); err != nil {
		return nil, err
	}
	return clinics, nil
}

func (s *Store) ClinicByID(ctx context.Context, clinicID uint) (*models.Clinic, error) {
	clinics, err := s.Clinics(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clinics {
		if clinics[i].ID == clinicID {
			return &clinics[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) UpdateClinic(ctx context.Context, clinic *models.Clinic) error {
	clinics, err := s.Clinics(ctx)
	if err != nil {
		return err
	}
	for i := range clinics {
		if clinics[i].ID == clinic.ID {
			clinic.UpdatedAt = time.Now()
			clinics[i] = *clinic
			return s.setJSON(ctx, "clinics", clinics)
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteClinic(ctx context.Context, clinicID uint) error {
	clinics, err := s.Clinics(ctx)
	if err != nil {
		return err
	}

	kept := clinics[:0]
	for _, c := range clinics {
		if c.ID != clinicID {
			kept = append(kept, c)
		}
	}
	if err := s.setJSON(ctx, "clinics", kept); err != nil {
		return err
	}

	// Tear down the clinic's namespace with it.
	for _, list := range []string{"appointments", "patients", "users"} {
		if err := s.remove(ctx, clinicKey(clinicID, list)); err != nil {
			return err
		}
	}
	return nil
}

// ===========================
// Appointment Management
// ===========================

func (s *Store) AppointmentsByClinic(ctx context.Context, clinicID uint) ([]models.Appointment, error) {
	var aps []models.Appointment
	if _, err := s.getJSON(ctx, clinicKey(clinicID, "appointments"), &aps); err != nil {
		return nil, err
	}
	return aps, nil
}

func (s *Store) PutAppointments(ctx context.Context, clinicID uint, aps []models.Appointment) error {
	return s.setJSON(ctx, clinicKey(clinicID, "appointments"), aps)
}

// AppointmentByID scans every clinic namespace; ids are globally unique.
func (s *Store) AppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	clinics, err := s.Clinics(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range clinics {
		aps, err := s.AppointmentsByClinic(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		for i := range aps {
			if aps[i].ID == id {
				return &aps[i], nil
			}
		}
	}
	return nil, ErrNotFound
}

func (s *Store) TodayAppointments(ctx context.Context, clinicID uint) ([]models.Appointment, error) {
	aps, err := s.AppointmentsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	today := timezone.Today()
	var out []models.Appointment
	for _, ap := range aps {
		if ap.Date == today {
			out = append(out, ap)
		}
	}
	return out, nil
}

// ===========================
// Patient Management
// ===========================

func (s *Store) PatientsByClinic(ctx context.Context, clinicID uint) ([]models.Patient, error) {
	var patients []models.Patient
	if _, err := s.getJSON(ctx, clinicKey(clinicID, "patients"), &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (s *Store) PatientByPhone(ctx context.Context, clinicID uint, phone string) (*models.Patient, error) {
	patients, err := s.PatientsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].Phone == phone {
			return &patients[i], nil
		}
	}
	return nil, ErrNotFound
}

// SaveOrUpdatePatient keys on the phone number and refreshes the name on
// repeat bookings.
func (s *Store) SaveOrUpdatePatient(ctx context.Context, clinicID uint, name, phone string) (*models.Patient, error) {
	patients, err := s.PatientsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range patients {
		if patients[i].Phone == phone {
			patients[i].Name = name
			patients[i].UpdatedAt = now
			if err := s.setJSON(ctx, clinicKey(clinicID, "patients"), patients); err != nil {
				return nil, err
			}
			return &patients[i], nil
		}
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	patient := models.Patient{
		ID:        id,
		ClinicID:  clinicID,
		Name:      name,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	patients = append(patients, patient)
	if err := s.setJSON(ctx, clinicKey(clinicID, "patients"), patients); err != nil {
		return nil, err
	}
	return &patient, nil
}

// ===========================
// Users
// ===========================

// userRecord is the storage shape for users. models.User tags its hash
// `json:"-"` to keep it out of API responses, which would also strip it from
// the KV blobs here; the record carries it under an explicit key instead.
type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func newUserRecord(u models.User) userRecord {
	return userRecord{User: u, PasswordHash: u.PasswordHash}
}

func (r userRecord) user() models.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	return u
}

func (s *Store) putUsers(ctx context.Context, clinicID uint, users []models.User) error {
	records := make([]userRecord, 0, len(users))
	for _, u := range users {
		records = append(records, newUserRecord(u))
	}
	return s.setJSON(ctx, clinicKey(clinicID, "users"), records)
}

func (s *Store) UsersByClinic(ctx context.Context, clinicID uint) ([]models.User, error) {
	var records []userRecord
	if _, err := s.getJSON(ctx, clinicKey(clinicID, "users"), &records); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(records))
	for _, r := range records {
		users = append(users, r.user())
	}
	return users, nil
}

// ===========================
// Statistics
// ===========================

type Stats struct {
	TotalAppointments     int `json:"totalAppointments"`
	TodayAppointments     int `json:"todayAppointments"`
	TotalPatients         int `json:"totalPatients"`
	PendingAppointments   int `json:"pendingAppointments"`
	ConfirmedAppointments int `json:"confirmedAppointments"`
	CompletedAppointments int `json:"completedAppointments"`
	CancelledAppointments int `json:"cancelledAppointments"`
}

func (s *Store) ClinicStats(ctx context.Context, clinicID uint) (*Stats, error) {
	aps, err := s.AppointmentsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	patients, err := s.PatientsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	today := timezone.Today()
	stats := Stats{
		TotalAppointments: len(aps),
		TotalPatients:     len(patients),
	}

	for _, ap := range aps {
		if ap.Date == today {
			stats.TodayAppointments++
		}
		switch ap.Status {
		case "pending":
			stats.PendingAppointments++
		case "confirmed":
			stats.ConfirmedAppointments++
		case "completed":
			stats.CompletedAppointments++
		case "cancelled":
			stats.CancelledAppointments++
		}
	}

	return &stats, nil
}

// ===========================
// Data Export
// ===========================

type ClinicExport struct {
	Clinic       *models.Clinic       `json:"clinic"`
	Appointments []models.Appointment `json:"appointments"`
	Patients     []models.Patient     `json:"patients"`
	Users        []models.User        `json:"users"`
	ExportedAt   time.Time            `json:"exportedAt"`
}

func (s *Store) ExportClinicData(ctx context.Context, clinicID uint) (*ClinicExport, error) {
	clinic, err := s.ClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	aps, err := s.AppointmentsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	patients, err := s.PatientsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	users, err := s.UsersByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	// Never export credentials.
	for i := range users {
		users[i].PasswordHash = ""
	}

	return &ClinicExport{
		Clinic:       clinic,
		Appointments: aps,
		Patients:     patients,
		Users:        users,
		ExportedAt:   time.Now(),
	}, nil
}

// ClearAll wipes every key under the app prefix.
func (s *Store) ClearAll(ctx context.Context) error {
	keys, err := s.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.kv.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

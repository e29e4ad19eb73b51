package booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/clinic-scheduler/internal/audit"
	domain "github.com/clinicbook/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbook/clinic-scheduler/internal/httperr"
	"github.com/clinicbook/clinic-scheduler/internal/infra/repository"
	"github.com/clinicbook/clinic-scheduler/internal/kv"
	"github.com/clinicbook/clinic-scheduler/internal/mirror"
	"github.com/clinicbook/clinic-scheduler/internal/models"
	"github.com/clinicbook/clinic-scheduler/internal/usecase/booking"
)

// The engine runs against the mirror backend here; both backends share the
// same contract, so the invariants exercised below hold for either one.

type fixture struct {
	store *mirror.Store
	repo  domain.Repository

	create    *booking.Create
	setStatus *booking.SetStatus
	get       *booking.Get
	list      *booking.ListByClinic
	delete    *booking.Delete

	clinic *models.Clinic
	owner  *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := mirror.NewStore(kv.NewMemory())
	repo := repository.NewAppointmentMirrorRepository(store)
	dispatcher := audit.NewDispatcher(audit.New(nil))

	clinic, owner, err := store.SaveClinic(context.Background(), mirror.RegisterClinicInput{
		Name:      "Alpha Clinic",
		OwnerName: "Dr. Alpha",
		Phone:     "01012345678",
		Email:     "alpha@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	return &fixture{
		store:     store,
		repo:      repo,
		create:    booking.NewCreate(repo, dispatcher),
		setStatus: booking.NewSetStatus(repo, dispatcher),
		get:       booking.NewGet(repo),
		list:      booking.NewListByClinic(repo),
		delete:    booking.NewDelete(repo, dispatcher),
		clinic:    clinic,
		owner:     owner,
	}
}

func (f *fixture) book(t *testing.T, date, timeOfDay, phone string) *models.Appointment {
	t.Helper()

	ap, err := f.create.Execute(context.Background(), booking.CreateInput{
		ClinicID:     f.clinic.ID,
		PatientName:  "Ahmed Samir",
		PatientPhone: phone,
		Date:         date,
		Time:         timeOfDay,
	})
	require.NoError(t, err)
	return ap
}

// ======================================================
// CREATE
// ======================================================

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)

	ap := f.book(t, "2025-06-01", "09:00", "01011111111")

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, f.clinic.ID, ap.ClinicID)
	assert.NotZero(t, ap.ID)
	assert.NotZero(t, ap.PatientID)
	assert.Equal(t, "Ahmed Samir", ap.Patient.Name)
}

func TestCreateRejectsTakenSlot(t *testing.T) {
	f := newFixture(t)

	f.book(t, "2025-06-01", "09:00", "01011111111")

	_, err := f.create.Execute(context.Background(), booking.CreateInput{
		ClinicID:     f.clinic.ID,
		PatientName:  "Laila Fathy",
		PatientPhone: "01022222222",
		Date:         "2025-06-01",
		Time:         "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))

	// Adjacent slots stay bookable.
	_, err = f.create.Execute(context.Background(), booking.CreateInput{
		ClinicID:     f.clinic.ID,
		PatientName:  "Laila Fathy",
		PatientPhone: "01022222222",
		Date:         "2025-06-01",
		Time:         "09:30",
	})
	assert.NoError(t, err)
}

func TestCancelledSlotIsBookableAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.book(t, "2025-06-01", "09:00", "01011111111")

	_, err := f.setStatus.Execute(ctx, f.clinic.ID, f.owner.ID, first.ID, domain.StatusCancelled)
	require.NoError(t, err)

	second, err := f.create.Execute(ctx, booking.CreateInput{
		ClinicID:     f.clinic.ID,
		PatientName:  "Laila Fathy",
		PatientPhone: "01022222222",
		Date:         "2025-06-01",
		Time:         "09:00",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateReusesPatientByPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.book(t, "2025-06-01", "09:00", "01011111111")

	second, err := f.create.Execute(ctx, booking.CreateInput{
		ClinicID:     f.clinic.ID,
		PatientName:  "Ahmed S. Mahmoud",
		PatientPhone: "01011111111",
		Date:         "2025-06-02",
		Time:         "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, first.PatientID, second.PatientID)

	// Latest booking wins the name.
	patients, err := f.store.PatientsByClinic(ctx, f.clinic.ID)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Ahmed S. Mahmoud", patients[0].Name)
}

func TestCreateRejectsUnknownClinic(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), booking.CreateInput{
		ClinicID:     9999,
		PatientName:  "Ahmed Samir",
		PatientPhone: "01011111111",
		Date:         "2025-06-01",
		Time:         "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeClinicNotFound))
}

func TestCreateRejectsInactiveClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clinic.Status = "inactive"
	require.NoError(t, f.store.UpdateClinic(ctx, f.clinic))

	_, err := f.create.Execute(ctx, booking.CreateInput{
		ClinicID:     f.clinic.ID,
		PatientName:  "Ahmed Samir",
		PatientPhone: "01011111111",
		Date:         "2025-06-01",
		Time:         "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeClinicNotFound),
		"inactive clinic must look identical to a missing one")
}

// ======================================================
// STATUS
// ======================================================

func TestSetStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "2025-06-01", "09:00", "01011111111")

	for _, next := range []domain.Status{
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusPending, // any known status is reachable from any other
	} {
		updated, err := f.setStatus.Execute(ctx, f.clinic.ID, f.owner.ID, ap.ID, next)
		require.NoError(t, err)
		assert.Equal(t, string(next), updated.Status)
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "2025-06-01", "09:00", "01011111111")

	_, err := f.setStatus.Execute(ctx, f.clinic.ID, f.owner.ID, ap.ID, "archived")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))

	// The invalid value is rejected before any lookup, so a missing id gets
	// the same answer.
	_, err = f.setStatus.Execute(ctx, f.clinic.ID, f.owner.ID, 9999, "archived")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}

func TestSetStatusNotFoundBeforeForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "2025-06-01", "09:00", "01011111111")

	// Missing id reads as not found even for a foreign clinic.
	_, err := f.setStatus.Execute(ctx, f.clinic.ID+1, f.owner.ID, 9999, domain.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))

	// Existing id owned by someone else reads as forbidden.
	_, err = f.setStatus.Execute(ctx, f.clinic.ID+1, f.owner.ID, ap.ID, domain.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAuthorized))
}

// ======================================================
// GET / LIST
// ======================================================

func TestGetScopedToClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "2025-06-01", "09:00", "01011111111")

	got, err := f.get.Execute(ctx, f.clinic.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)
	assert.Equal(t, "Ahmed Samir", got.Patient.Name)

	_, err = f.get.Execute(ctx, f.clinic.ID+1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAuthorized))

	_, err = f.get.Execute(ctx, f.clinic.ID, 9999)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "2025-06-01", "09:00", "01011111111")
	f.book(t, "2025-06-02", "08:00", "01011111111")
	f.book(t, "2025-06-01", "14:00", "01011111111")

	aps, err := f.list.Execute(ctx, f.clinic.ID, f.clinic.ID)
	require.NoError(t, err)
	require.Len(t, aps, 3)

	assert.Equal(t, "2025-06-02", aps[0].Date)
	assert.Equal(t, "14:00", aps[1].Time)
	assert.Equal(t, "09:00", aps[2].Time)
}

func TestListForbiddenForForeignClinic(t *testing.T) {
	f := newFixture(t)

	_, err := f.list.Execute(context.Background(), f.clinic.ID, f.clinic.ID+1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAuthorized))
}

// ======================================================
// DELETE
// ======================================================

func TestDeleteFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "2025-06-01", "09:00", "01011111111")

	require.NoError(t, f.delete.Execute(ctx, f.clinic.ID, f.owner.ID, ap.ID))

	_, err := f.get.Execute(ctx, f.clinic.ID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))

	// Hard delete frees the slot.
	f.book(t, "2025-06-01", "09:00", "01022222222")
}

func TestDeleteScopedToClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.book(t, "2025-06-01", "09:00", "01011111111")

	err := f.delete.Execute(ctx, f.clinic.ID+1, f.owner.ID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAuthorized))

	err = f.delete.Execute(ctx, f.clinic.ID, f.owner.ID, 9999)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

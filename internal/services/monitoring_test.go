package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strokewatch-server/internal/models"
	"strokewatch-server/internal/services"
)

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	view, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MonitoringPending, view.Status)
	assert.Equal(t, patient.Name, view.PatientName)
	assert.Equal(t, doctor.Name, view.RequesterName)
	assert.Equal(t, models.RoleDoctor, view.RequesterRole)
	assert.Nil(t, view.RespondedAt)
}

func TestCreateRequestValidation(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)
	otherPatient := f.seedPatient(t, "carol")

	t.Run("unknown patient", func(t *testing.T) {
		_, err := f.monitoring.CreateRequest("missing-id", doctor.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("unknown requester", func(t *testing.T) {
		_, err := f.monitoring.CreateRequest(patient.ID, "missing-id")
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("target must be a patient", func(t *testing.T) {
		_, err := f.monitoring.CreateRequest(doctor.ID, doctor.ID)
		assert.ErrorIs(t, err, services.ErrInvalidRole)
	})

	t.Run("requester must be doctor or caregiver", func(t *testing.T) {
		_, err := f.monitoring.CreateRequest(patient.ID, otherPatient.ID)
		assert.ErrorIs(t, err, services.ErrInvalidRole)
	})

	t.Run("caregiver may request", func(t *testing.T) {
		caregiver := f.seedUser(t, "carer-dan", models.RoleCaregiver)
		_, err := f.monitoring.CreateRequest(patient.ID, caregiver.ID)
		assert.NoError(t, err)
	})
}

func TestCreateRequestDuplicatePending(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	_, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)

	_, err = f.monitoring.CreateRequest(patient.ID, doctor.ID)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestCreateRequestConflictsWithActiveRelation(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)
	f.grantRelation(t, patient, doctor)

	_, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestResolveRequestApprove(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	request, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)

	view, err := f.monitoring.ResolveRequest(request.ID, patient.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.MonitoringApproved, view.Status)
	require.NotNil(t, view.RespondedAt)

	relations, err := f.monitoring.ListRelationsForMonitor(doctor.ID)
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, patient.ID, relations[0].PatientID)
	assert.Equal(t, patient.Name, relations[0].PatientName)
}

func TestResolveRequestReject(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	request, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)

	view, err := f.monitoring.ResolveRequest(request.ID, patient.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.MonitoringRejected, view.Status)

	relations, err := f.monitoring.ListRelationsForMonitor(doctor.ID)
	require.NoError(t, err)
	assert.Empty(t, relations)

	// A rejected request does not block a fresh attempt.
	_, err = f.monitoring.CreateRequest(patient.ID, doctor.ID)
	assert.NoError(t, err)
}

func TestResolveRequestOnlyOnce(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	request, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)

	_, err = f.monitoring.ResolveRequest(request.ID, patient.ID, true)
	require.NoError(t, err)

	_, err = f.monitoring.ResolveRequest(request.ID, patient.ID, true)
	assert.ErrorIs(t, err, services.ErrInvalidState)

	// Exactly one relation exists.
	relations, err := f.monitoring.ListRelationsForPatient(patient.ID)
	require.NoError(t, err)
	assert.Len(t, relations, 1)
}

func TestResolveRequestAuthorization(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	request, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)

	// Neither the requester nor a bystander may decide.
	_, err = f.monitoring.ResolveRequest(request.ID, doctor.ID, true)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.monitoring.ResolveRequest("missing-id", patient.ID, true)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCancelRequest(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	request, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)

	t.Run("only the requester may cancel", func(t *testing.T) {
		err := f.monitoring.CancelRequest(request.ID, patient.ID)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("cancel deletes the pending request", func(t *testing.T) {
		require.NoError(t, f.monitoring.CancelRequest(request.ID, doctor.ID))
		err := f.monitoring.CancelRequest(request.ID, doctor.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("resolved requests are not cancellable", func(t *testing.T) {
		again, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
		require.NoError(t, err)
		_, err = f.monitoring.ResolveRequest(again.ID, patient.ID, false)
		require.NoError(t, err)

		err = f.monitoring.CancelRequest(again.ID, doctor.ID)
		assert.ErrorIs(t, err, services.ErrInvalidState)
	})
}

func TestRevokeRelation(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)
	relation := f.grantRelation(t, patient, doctor)

	t.Run("outsiders may not revoke", func(t *testing.T) {
		stranger := f.seedUser(t, "dr-eve", models.RoleDoctor)
		err := f.monitoring.RevokeRelation(relation.ID, stranger.ID)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("revoke purges relation and request", func(t *testing.T) {
		require.NoError(t, f.monitoring.RevokeRelation(relation.ID, patient.ID))

		relations, err := f.monitoring.ListRelationsForPatient(patient.ID)
		require.NoError(t, err)
		assert.Empty(t, relations)

		sent, err := f.monitoring.ListSent(doctor.ID)
		require.NoError(t, err)
		assert.Empty(t, sent)

		// The pair is eligible for a fresh request again.
		_, err = f.monitoring.CreateRequest(patient.ID, doctor.ID)
		assert.NoError(t, err)
	})

	t.Run("double revoke is not found", func(t *testing.T) {
		err := f.monitoring.RevokeRelation(relation.ID, patient.ID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestListPending(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)
	caregiver := f.seedUser(t, "carer-dan", models.RoleCaregiver)

	first, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)
	second, err := f.monitoring.CreateRequest(patient.ID, caregiver.ID)
	require.NoError(t, err)

	views, err := f.monitoring.ListPending(patient.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	// Newest first.
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)

	// Resolved requests leave the pending inbox.
	_, err = f.monitoring.ResolveRequest(first.ID, patient.ID, false)
	require.NoError(t, err)
	views, err = f.monitoring.ListPending(patient.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, second.ID, views[0].ID)
}

func TestListSentIncludesAllStatuses(t *testing.T) {
	f := newFixture(t)
	alice := f.seedPatient(t, "alice")
	carol := f.seedPatient(t, "carol")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	approved, err := f.monitoring.CreateRequest(alice.ID, doctor.ID)
	require.NoError(t, err)
	_, err = f.monitoring.ResolveRequest(approved.ID, alice.ID, true)
	require.NoError(t, err)

	_, err = f.monitoring.CreateRequest(carol.ID, doctor.ID)
	require.NoError(t, err)

	views, err := f.monitoring.ListSent(doctor.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, models.MonitoringPending, views[0].Status)
	assert.Equal(t, models.MonitoringApproved, views[1].Status)
}

func TestListingsDropUnresolvableCounterparts(t *testing.T) {
	f := newFixture(t)
	patient := f.seedPatient(t, "alice")
	doctor := f.seedUser(t, "dr-bob", models.RoleDoctor)

	_, err := f.monitoring.CreateRequest(patient.ID, doctor.ID)
	require.NoError(t, err)

	// A request whose requester no longer resolves is silently dropped,
	// not surfaced as an error.
	require.NoError(t, f.store.InsertRequest(&models.MonitoringRequest{
		PatientID:   patient.ID,
		RequesterID: "ghost-user",
		Status:      models.MonitoringPending,
	}))

	views, err := f.monitoring.ListPending(patient.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, doctor.ID, views[0].RequesterID)
}

package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strokewatch-server/internal/models"
	"strokewatch-server/internal/services"
	"strokewatch-server/internal/store"
)

// fixture wires every service against a shared in-memory store.
type fixture struct {
	store      store.Store
	users      *services.UserService
	health     *services.HealthService
	monitoring *services.MonitoringService
	memos      *services.MemoService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemory()
	log := zap.NewNop()
	return &fixture{
		store:      s,
		users:      services.NewUserService(s, log),
		health:     services.NewHealthService(s, log),
		monitoring: services.NewMonitoringService(s, log),
		memos:      services.NewMemoService(s, log),
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

// seedPatient inserts a patient with a complete static profile.
func (f *fixture) seedPatient(t *testing.T, name string) *models.User {
	t.Helper()
	sex := models.SexMale
	// Always 65 years old, keeping the age factor stable.
	birth := time.Now().AddDate(-65, -1, 0)
	smoking := models.SmokingNonSmoker
	user := &models.User{
		Email:          name + "@example.com",
		Name:           name,
		Role:           models.RolePatient,
		Sex:            &sex,
		BirthDate:      &birth,
		HeightCm:       intPtr(170),
		SmokingHistory: &smoking,
	}
	require.NoError(t, user.SetPassword("patient-secret"))
	require.NoError(t, f.store.CreateUser(user))
	return user
}

func (f *fixture) seedUser(t *testing.T, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Email: name + "@example.com",
		Name:  name,
		Role:  role,
	}
	require.NoError(t, user.SetPassword("some-secret"))
	require.NoError(t, f.store.CreateUser(user))
	return user
}

// grantRelation runs the full consent flow: request then patient approval.
func (f *fixture) grantRelation(t *testing.T, patient, monitor *models.User) *models.MonitoringRelationView {
	t.Helper()
	request, err := f.monitoring.CreateRequest(patient.ID, monitor.ID)
	require.NoError(t, err)
	_, err = f.monitoring.ResolveRequest(request.ID, patient.ID, true)
	require.NoError(t, err)
	relations, err := f.monitoring.ListRelationsForPatient(patient.ID)
	require.NoError(t, err)
	require.NotEmpty(t, relations)
	return &relations[0]
}

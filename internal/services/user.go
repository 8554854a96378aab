package services

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"strokewatch-server/internal/models"
	"strokewatch-server/internal/store"
)

// UserService handles accounts and the static patient health profile.
type UserService struct {
	store store.Store
	log   *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(s store.Store, log *zap.Logger) *UserService {
	return &UserService{store: s, log: log}
}

// RegisterInput carries a new account. Patients must supply the full
// static health profile; for other roles the profile fields are ignored.
type RegisterInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=PATIENT DOCTOR CAREGIVER"`

	Sex            *models.Sex            `json:"sex" binding:"omitempty,oneof=M F"`
	BirthDate      *time.Time             `json:"birthDate"`
	HeightCm       *int                   `json:"heightCm" binding:"omitempty,gt=0"`
	StrokeHistory  *bool                  `json:"strokeHistory"`
	Hypertension   *bool                  `json:"hypertension"`
	HeartDisease   *bool                  `json:"heartDisease"`
	Diabetes       *bool                  `json:"diabetes"`
	SmokingHistory *models.SmokingHistory `json:"smokingHistory" binding:"omitempty,oneof=SMOKER PAST_SMOKER NON_SMOKER"`
}

// Register creates an account. A duplicate email is a conflict; a patient
// without sex, birth date, height and smoking history is invalid.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	if _, err := s.store.GetUserByEmail(input.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fromStore(err)
	}

	user := &models.User{
		Email: input.Email,
		Name:  input.Name,
		Role:  input.Role,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if input.Role == models.RolePatient {
		if input.Sex == nil || input.BirthDate == nil || input.HeightCm == nil || input.SmokingHistory == nil {
			return nil, ErrInvalidInput
		}
		now := time.Now()
		user.Sex = input.Sex
		user.BirthDate = input.BirthDate
		user.HeightCm = input.HeightCm
		user.SmokingHistory = input.SmokingHistory
		user.ProfileMeasuredAt = &now
		if input.StrokeHistory != nil {
			user.StrokeHistory = *input.StrokeHistory
		}
		if input.Hypertension != nil {
			user.Hypertension = *input.Hypertension
		}
		if input.HeartDisease != nil {
			user.HeartDisease = *input.HeartDisease
		}
		if input.Diabetes != nil {
			user.Diabetes = *input.Diabetes
		}
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, fromStore(err)
	}
	s.log.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Login verifies credentials and returns the account. The error does not
// reveal whether the email or the password was wrong.
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fromStore(err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser fetches an account by id.
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return nil, fromStore(err)
	}
	return user, nil
}

// ProfileUpdate carries the mutable account fields. Role changes are not
// possible through this path.
type ProfileUpdate struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateProfile applies a partial update to name and password.
func (s *UserService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, fromStore(err)
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		if err := user.SetPassword(*update.Password); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateUser(user); err != nil {
		return nil, fromStore(err)
	}
	return user, nil
}

// GetHealthInfo returns a patient's static profile.
func (s *UserService) GetHealthInfo(userID string) (*models.HealthInfo, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, fromStore(err)
	}
	if user.Role != models.RolePatient {
		return nil, ErrInvalidRole
	}
	info := user.HealthInfo()
	return &info, nil
}

// HealthInfoUpdate is a partial update of the static profile.
type HealthInfoUpdate struct {
	Sex            *models.Sex            `json:"sex" binding:"omitempty,oneof=M F"`
	BirthDate      *time.Time             `json:"birthDate"`
	HeightCm       *int                   `json:"heightCm" binding:"omitempty,gt=0"`
	StrokeHistory  *bool                  `json:"strokeHistory"`
	Hypertension   *bool                  `json:"hypertension"`
	HeartDisease   *bool                  `json:"heartDisease"`
	Diabetes       *bool                  `json:"diabetes"`
	SmokingHistory *models.SmokingHistory `json:"smokingHistory" binding:"omitempty,oneof=SMOKER PAST_SMOKER NON_SMOKER"`
}

// UpdateHealthInfo applies a partial profile update and stamps the
// measurement time. Already-stored records keep the scores they were
// computed with; only future measurements see the new profile.
func (s *UserService) UpdateHealthInfo(userID string, update HealthInfoUpdate) (*models.HealthInfo, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, fromStore(err)
	}
	if user.Role != models.RolePatient {
		return nil, ErrInvalidRole
	}

	if update.Sex != nil {
		user.Sex = update.Sex
	}
	if update.BirthDate != nil {
		user.BirthDate = update.BirthDate
	}
	if update.HeightCm != nil {
		user.HeightCm = update.HeightCm
	}
	if update.StrokeHistory != nil {
		user.StrokeHistory = *update.StrokeHistory
	}
	if update.Hypertension != nil {
		user.Hypertension = *update.Hypertension
	}
	if update.HeartDisease != nil {
		user.HeartDisease = *update.HeartDisease
	}
	if update.Diabetes != nil {
		user.Diabetes = *update.Diabetes
	}
	if update.SmokingHistory != nil {
		user.SmokingHistory = update.SmokingHistory
	}
	now := time.Now()
	user.ProfileMeasuredAt = &now

	if err := s.store.UpdateUser(user); err != nil {
		return nil, fromStore(err)
	}
	info := user.HealthInfo()
	return &info, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/repository"
)

// MissingFieldsError enumerates the required fields absent at dialogue
// completion. The dialogue is hard-stopped and the user is told to restart.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Applications turns completed dialogues into application records
type Applications struct {
	repo *repository.Repository
	now  func() time.Time
}

// NewApplications creates the application completion service
func NewApplications(repo *repository.Repository) *Applications {
	return &Applications{repo: repo, now: time.Now}
}

// CompleteDriver validates the accumulated driver fields and creates a
// pending driver application. On a missing field the dialogue state is
// cleared but the accumulated fields stay in place, so a restart reuses
// them.
func (a *Applications) CompleteDriver(ctx context.Context, userID int64) (models.DriverApplication, error) {
	defer a.repo.ClearDialog(userID)

	u, _ := a.repo.User(userID)
	var missing []string
	if u.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if u.Phone == "" {
		missing = append(missing, "phone")
	}
	if u.CarType == "" {
		missing = append(missing, "car_type")
	}
	if u.Price == "" {
		missing = append(missing, "price")
	}
	if u.CarPhoto == "" {
		missing = append(missing, "car_photo")
	}
	if len(missing) > 0 {
		return models.DriverApplication{}, &MissingFieldsError{Fields: missing}
	}

	// Role is assigned exactly once.
	if u.Role == models.RoleUnset {
		u.Role = models.RoleDriver
		if err := a.repo.PutUser(ctx, u); err != nil {
			return models.DriverApplication{}, err
		}
	}

	app := models.DriverApplication{
		UserID:    userID,
		FirstName: u.FirstName,
		Phone:     u.Phone,
		CarType:   u.CarType,
		Price:     u.Price,
		CarPhoto:  u.CarPhoto,
		CreatedAt: a.now(),
		Status:    models.StatusPending,
	}
	appID, err := a.repo.AddDriverApplication(ctx, app)
	if err != nil {
		return models.DriverApplication{}, fmt.Errorf("failed to store driver application: %w", err)
	}
	app.AppID = appID
	return app, nil
}

// CompletePassenger validates the accumulated passenger fields and creates
// a passenger application. A driver submitting a passenger application
// keeps the driver role.
func (a *Applications) CompletePassenger(ctx context.Context, userID int64) (models.PassengerApplication, error) {
	defer a.repo.ClearDialog(userID)

	u, _ := a.repo.User(userID)
	var missing []string
	if u.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if u.Phone == "" {
		missing = append(missing, "phone")
	}
	if u.CarPreference == "" {
		missing = append(missing, "car_preference")
	}
	if u.DepartureTime == "" {
		missing = append(missing, "departure_time")
	}
	if len(missing) > 0 {
		return models.PassengerApplication{}, &MissingFieldsError{Fields: missing}
	}

	if u.Role == models.RoleUnset {
		u.Role = models.RolePassenger
		if err := a.repo.PutUser(ctx, u); err != nil {
			return models.PassengerApplication{}, err
		}
	}

	app := models.PassengerApplication{
		UserID:              userID,
		FirstName:           u.FirstName,
		Phone:               u.Phone,
		Departure:           u.Departure,
		Destination:         u.Destination,
		DepartureLocation:   u.DepartureLocation,
		DestinationLocation: u.DestinationLocation,
		CarPreference:       u.CarPreference,
		DepartureTime:       u.DepartureTime,
		CreatedAt:           a.now(),
	}
	appID, err := a.repo.AddPassengerApplication(ctx, app)
	if err != nil {
		return models.PassengerApplication{}, fmt.Errorf("failed to store passenger application: %w", err)
	}
	app.AppID = appID
	return app, nil
}

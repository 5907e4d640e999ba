package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/repository"
)

// Step tells the caller what to prompt for after a transition
type Step int

const (
	// StepNone means the input did not match an active dialogue and was
	// ignored
	StepNone Step = iota
	StepAskName
	StepAskPhone
	StepAskCarType
	StepAskPrice
	StepAskPhoto
	StepRetryPhoto
	StepAskDeparture
	StepAskDestination
	StepAskCarPref
	StepAskTime
	StepAskTimeManual
	StepDriverDone
	StepPassengerDone
)

// Input is one inbound chat event normalized for the state machine.
// At most one of the fields is set per message.
type Input struct {
	Text     string
	Contact  string
	Photo    string
	Location *models.Location
}

// Registration drives the per-user multi-turn registration dialogue.
// Dialogue state lives in the repository; collected fields accumulate on
// the user record.
type Registration struct {
	repo *repository.Repository
	now  func() time.Time
}

// NewRegistration creates the registration state machine
func NewRegistration(repo *repository.Repository) *Registration {
	return &Registration{repo: repo, now: time.Now}
}

// Begin starts a registration dialogue for the chosen role. The user
// record is created on first input if it does not exist yet.
func (s *Registration) Begin(ctx context.Context, userID int64, role models.Role) (Step, error) {
	if _, ok := s.repo.User(userID); !ok {
		u := models.User{ID: userID, CreatedAt: s.now()}
		if err := s.repo.PutUser(ctx, u); err != nil {
			return StepNone, fmt.Errorf("failed to create user: %w", err)
		}
	}
	s.repo.SetDialog(userID, models.Dialog{State: models.StateAwaitingName, Role: role}, s.now())
	return StepAskName, nil
}

// Advance feeds one message into the dialogue and returns the next step.
// Inputs that do not match the awaited kind re-prompt without a
// transition; a user with no active dialogue gets StepNone.
func (s *Registration) Advance(ctx context.Context, userID int64, in Input) (Step, error) {
	d, ok := s.repo.Dialog(userID, s.now())
	if !ok || d.State == models.StateIdle {
		return StepNone, nil
	}
	u, ok := s.repo.User(userID)
	if !ok {
		u = models.User{ID: userID, CreatedAt: s.now()}
	}

	switch d.State {
	case models.StateAwaitingName:
		name := strings.TrimSpace(in.Text)
		if name == "" {
			return StepAskName, nil
		}
		u.FirstName = name
		return s.transition(ctx, u, d, models.StateAwaitingPhone, StepAskPhone)

	case models.StateAwaitingPhone:
		switch {
		case in.Contact != "":
			phone := in.Contact
			if !strings.HasPrefix(phone, "+") {
				phone = "+" + phone
			}
			u.Phone = phone
		case strings.TrimSpace(in.Text) != "":
			u.Phone = strings.TrimSpace(in.Text)
		default:
			return StepAskPhone, nil
		}
		if d.Role == models.RoleDriver {
			return s.transition(ctx, u, d, models.StateAwaitingCarType, StepAskCarType)
		}
		return s.transition(ctx, u, d, models.StateAwaitingDeparture, StepAskDeparture)

	case models.StateAwaitingPrice:
		price := strings.TrimSpace(in.Text)
		if price == "" {
			return StepAskPrice, nil
		}
		u.Price = price
		return s.transition(ctx, u, d, models.StateAwaitingPhoto, StepAskPhoto)

	case models.StateAwaitingPhoto:
		if in.Photo == "" {
			return StepRetryPhoto, nil
		}
		u.CarPhoto = in.Photo
		if err := s.repo.PutUser(ctx, u); err != nil {
			return StepNone, err
		}
		return StepDriverDone, nil

	case models.StateAwaitingDeparture:
		switch {
		case in.Location != nil:
			u.DepartureLocation = in.Location
		case strings.TrimSpace(in.Text) != "":
			u.Departure = strings.TrimSpace(in.Text)
		default:
			return StepAskDeparture, nil
		}
		return s.transition(ctx, u, d, models.StateAwaitingDestination, StepAskDestination)

	case models.StateAwaitingDestination:
		switch {
		case in.Location != nil:
			u.DestinationLocation = in.Location
		case strings.TrimSpace(in.Text) != "":
			u.Destination = strings.TrimSpace(in.Text)
		default:
			return StepAskDestination, nil
		}
		return s.transition(ctx, u, d, models.StateAwaitingCarPref, StepAskCarPref)

	case models.StateAwaitingTimeManual:
		t := strings.TrimSpace(in.Text)
		if t == "" {
			return StepAskTimeManual, nil
		}
		u.DepartureTime = t
		if err := s.repo.PutUser(ctx, u); err != nil {
			return StepNone, err
		}
		return StepPassengerDone, nil
	}

	// Selection states (car type, preference, time) only react to button
	// presses; stray messages are ignored.
	return StepNone, nil
}

// ChooseCarType handles the car_type_<Name> selection
func (s *Registration) ChooseCarType(ctx context.Context, userID int64, carType string) (Step, error) {
	d, ok := s.repo.Dialog(userID, s.now())
	if !ok || d.State != models.StateAwaitingCarType {
		return StepNone, nil
	}
	u, ok := s.repo.User(userID)
	if !ok {
		u = models.User{ID: userID, CreatedAt: s.now()}
	}
	u.CarType = carType
	return s.transition(ctx, u, d, models.StateAwaitingPrice, StepAskPrice)
}

// ChooseCarPreference handles the car_pref_<Name> selection
func (s *Registration) ChooseCarPreference(ctx context.Context, userID int64, pref string) (Step, error) {
	d, ok := s.repo.Dialog(userID, s.now())
	if !ok || d.State != models.StateAwaitingCarPref {
		return StepNone, nil
	}
	u, ok := s.repo.User(userID)
	if !ok {
		u = models.User{ID: userID, CreatedAt: s.now()}
	}
	u.CarPreference = pref
	return s.transition(ctx, u, d, models.StateAwaitingTime, StepAskTime)
}

// ChooseTime handles the time_<Label> selection. The "other" label routes
// to the manual time entry step.
func (s *Registration) ChooseTime(ctx context.Context, userID int64, label string, manual bool) (Step, error) {
	d, ok := s.repo.Dialog(userID, s.now())
	if !ok || d.State != models.StateAwaitingTime {
		return StepNone, nil
	}
	if manual {
		d.State = models.StateAwaitingTimeManual
		s.repo.SetDialog(userID, d, s.now())
		return StepAskTimeManual, nil
	}
	u, ok := s.repo.User(userID)
	if !ok {
		u = models.User{ID: userID, CreatedAt: s.now()}
	}
	u.DepartureTime = label
	if err := s.repo.PutUser(ctx, u); err != nil {
		return StepNone, err
	}
	return StepPassengerDone, nil
}

func (s *Registration) transition(ctx context.Context, u models.User, d models.Dialog, next models.DialogState, step Step) (Step, error) {
	if err := s.repo.PutUser(ctx, u); err != nil {
		return StepNone, err
	}
	d.State = next
	s.repo.SetDialog(u.ID, d, s.now())
	return step, nil
}

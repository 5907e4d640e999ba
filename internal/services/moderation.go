package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/repository"
)

const (
	driverApprovedText = "✅ *Arizangiz tasdiqlandi!*\n\nProfilingiz kanalda e'lon qilindi. Yo'lovchilar tez orada siz bilan bog'lanadi. 🚗"
	driverRejectedText = "❌ *Arizangiz rad etildi!*\n\nSabab:\n• Ma'lumotlar to'liq emas\n• Mashina rasmi noaniq\n• Boshqa xatolik\n\nQayta urinib ko'ring yoki admin bilan bog'laning."
)

// Moderation processes admin approve/reject actions on driver
// applications, mutating the record and fanning out notifications
type Moderation struct {
	repo      *repository.Repository
	notifier  Notifier
	channelID int64
	adminID   int64
	now       func() time.Time
}

// NewModeration creates the driver moderation service
func NewModeration(repo *repository.Repository, notifier Notifier, channelID, adminID int64) *Moderation {
	return &Moderation{
		repo:      repo,
		notifier:  notifier,
		channelID: channelID,
		adminID:   adminID,
		now:       time.Now,
	}
}

// VerifyDriver marks the application verified, notifies the driver and
// publishes the public profile to the channel. Only the configured admin
// may act; acting on an already moderated application returns
// ErrAlreadyModerated. Both refusals leave the record untouched.
func (m *Moderation) VerifyDriver(ctx context.Context, appID string, actorID int64) (models.DriverApplication, error) {
	if actorID != m.adminID {
		return models.DriverApplication{}, ErrNotAuthorized
	}
	stamp := m.now()
	app, err := m.repo.UpdateDriverApplication(ctx, appID, func(app *models.DriverApplication) error {
		if app.Status != models.StatusPending {
			return ErrAlreadyModerated
		}
		app.Status = models.StatusVerified
		app.VerifiedBy = actorID
		app.VerifiedAt = &stamp
		return nil
	})
	if err != nil {
		return models.DriverApplication{}, err
	}

	if err := m.notifier.SendText(app.UserID, driverApprovedText); err != nil {
		log.Error().Err(err).Int64("user_id", app.UserID).Msg("Failed to notify driver")
	}
	m.publishProfile(app)
	return app, nil
}

// RejectDriver marks the application rejected and notifies the driver
// with the generic reason list
func (m *Moderation) RejectDriver(ctx context.Context, appID string, actorID int64) (models.DriverApplication, error) {
	if actorID != m.adminID {
		return models.DriverApplication{}, ErrNotAuthorized
	}
	stamp := m.now()
	app, err := m.repo.UpdateDriverApplication(ctx, appID, func(app *models.DriverApplication) error {
		if app.Status != models.StatusPending {
			return ErrAlreadyModerated
		}
		app.Status = models.StatusRejected
		app.RejectedBy = actorID
		app.RejectedAt = &stamp
		return nil
	})
	if err != nil {
		return models.DriverApplication{}, err
	}

	if err := m.notifier.SendText(app.UserID, driverRejectedText); err != nil {
		log.Error().Err(err).Int64("user_id", app.UserID).Msg("Failed to notify driver")
	}
	return app, nil
}

// publishProfile posts the approved driver's public profile to the channel
func (m *Moderation) publishProfile(app models.DriverApplication) {
	caption := fmt.Sprintf(
		"🚗 YANGI HAYDOVCHI #%s\n\nIsm: %s\nMashina: %s\nNarx: %s\nTelefon: %s",
		app.AppID, app.FirstName, app.CarType, app.Price, app.Phone,
	)

	var err error
	if app.CarPhoto != "" {
		err = m.notifier.SendPhoto(m.channelID, app.CarPhoto, caption)
	} else {
		err = m.notifier.SendText(m.channelID, caption)
	}
	if err != nil {
		log.Error().Err(err).Str("app_id", app.AppID).Msg("Failed to publish driver profile")
	}
}

// PublishPassenger posts a new passenger application to the channel,
// sending any shared coordinates as location attachments first
func (m *Moderation) PublishPassenger(app models.PassengerApplication) {
	if app.DepartureLocation != nil {
		if err := m.notifier.SendLocation(m.channelID, app.DepartureLocation.Latitude, app.DepartureLocation.Longitude); err != nil {
			log.Error().Err(err).Str("app_id", app.AppID).Msg("Failed to publish departure location")
		} else if err := m.notifier.SendText(m.channelID, "📍 Joʻnash joyi"); err != nil {
			log.Error().Err(err).Str("app_id", app.AppID).Msg("Failed to publish location caption")
		}
	}
	if app.DestinationLocation != nil {
		if err := m.notifier.SendLocation(m.channelID, app.DestinationLocation.Latitude, app.DestinationLocation.Longitude); err != nil {
			log.Error().Err(err).Str("app_id", app.AppID).Msg("Failed to publish destination location")
		} else if err := m.notifier.SendText(m.channelID, "📍 Borish joyi"); err != nil {
			log.Error().Err(err).Str("app_id", app.AppID).Msg("Failed to publish location caption")
		}
	}

	departure := app.Departure
	if departure == "" {
		departure = "Lokatsiya yuborilgan"
	}
	destination := app.Destination
	if destination == "" {
		destination = "Lokatsiya yuborilgan"
	}
	text := fmt.Sprintf(
		"🚶 YANGI YOʻLOVCHI ARIZASI #%s\n\nIsm: %s\nTelefon: %s\nJoʻnash: %s\nBorish: %s\nMashina: %s\nVaqt: %s\nUser ID: %d",
		app.AppID, app.FirstName, app.Phone, departure, destination, app.CarPreference, app.DepartureTime, app.UserID,
	)
	if err := m.notifier.SendText(m.channelID, text); err != nil {
		log.Error().Err(err).Str("app_id", app.AppID).Msg("Failed to publish passenger application")
	}
}

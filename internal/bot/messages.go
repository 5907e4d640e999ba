package bot

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/services"
)

// handleMessage normalizes an inbound chat message into a state-machine
// input. Screenshot intake takes priority over the registration dialogue.
func (b *Bot) handleMessage(c tele.Context) error {
	userID := c.Sender().ID
	ctx := context.Background()
	msg := c.Message()

	if method, ok := b.payments.PendingMethod(userID); ok {
		return b.handleScreenshot(c, method)
	}

	in := services.Input{}
	switch {
	case msg.Contact != nil:
		in.Contact = msg.Contact.PhoneNumber
	case msg.Photo != nil:
		in.Photo = msg.Photo.FileID
	case msg.Location != nil:
		in.Location = &models.Location{
			Latitude:  float64(msg.Location.Lat),
			Longitude: float64(msg.Location.Lng),
		}
	default:
		in.Text = msg.Text
	}

	step, err := b.registration.Advance(ctx, userID, in)
	if err != nil {
		return err
	}

	switch step {
	case services.StepAskName:
		return c.Send(askNameText)
	case services.StepAskPhone:
		return c.Send(askPhoneText, contactRequestKeyboard())
	case services.StepAskCarType:
		return c.Send(askCarTypeText, carTypeKeyboard())
	case services.StepAskPrice:
		return c.Send(askPriceText)
	case services.StepAskPhoto:
		return c.Send(askPhotoText)
	case services.StepRetryPhoto:
		return c.Send(retryPhotoText)
	case services.StepAskDeparture:
		return c.Send(askDepartureText)
	case services.StepAskDestination:
		return c.Send(askDestinationText, locationRequestKeyboard())
	case services.StepAskCarPref:
		return c.Send(askCarPrefText, carPreferenceKeyboard())
	case services.StepAskTimeManual:
		return c.Send(askTimeManualText)
	case services.StepDriverDone:
		return b.finishDriver(c, userID)
	case services.StepPassengerDone:
		return b.finishPassenger(c, userID)
	}
	return nil
}

// handleScreenshot records a payment attempt from the submitted photo and
// forwards it to the admin with the moderation controls
func (b *Bot) handleScreenshot(c tele.Context, method string) error {
	msg := c.Message()
	if msg.Photo == nil {
		return c.Send(screenshotNotPhotoText, tele.ModeMarkdown)
	}

	userID := c.Sender().ID
	rec, err := b.payments.Record(context.Background(), userID, method, msg.Photo.FileID)
	if err != nil {
		return err
	}
	b.payments.FinishScreenshot(userID)

	caption := paymentNotifyCaption(rec, c.Sender().FirstName, b.amount())
	screenshot := &tele.Photo{
		File:    tele.File{FileID: rec.Screenshot},
		Caption: caption,
	}
	if _, err := b.tb.Send(tele.ChatID(b.cfg.Telegram.AdminID), screenshot, paymentModerationKeyboard(rec.ID), tele.ModeMarkdown); err != nil {
		log.Error().Err(err).Str("payment_id", rec.ID).Msg("Failed to notify admin about payment")
	}

	log.Info().
		Str("payment_id", rec.ID).
		Int64("user_id", userID).
		Str("method", method).
		Msg("Payment recorded")
	return c.Send(screenshotReceivedText, tele.ModeMarkdown)
}

// finishDriver completes the driver registration and forwards the pending
// application to the admin for moderation
func (b *Bot) finishDriver(c tele.Context, userID int64) error {
	app, err := b.applications.CompleteDriver(context.Background(), userID)
	if err != nil {
		return b.completionFailure(c, err)
	}

	application := &tele.Photo{
		File:    tele.File{FileID: app.CarPhoto},
		Caption: driverApplicationCaption(app),
	}
	if _, err := b.tb.Send(tele.ChatID(b.cfg.Telegram.AdminID), application, driverModerationKeyboard(app.AppID)); err != nil {
		log.Error().Err(err).Str("app_id", app.AppID).Msg("Failed to forward driver application")
	}

	log.Info().Str("app_id", app.AppID).Int64("user_id", userID).Msg("Driver application submitted")
	return c.Send(driverSubmittedText(app.FirstName, app.AppID, b.amount()), tele.ModeMarkdown)
}

// finishPassenger completes the passenger registration, publishes the
// application to the channel and chains straight into the payment menu
func (b *Bot) finishPassenger(c tele.Context, userID int64) error {
	app, err := b.applications.CompletePassenger(context.Background(), userID)
	if err != nil {
		return b.completionFailure(c, err)
	}

	b.moderation.PublishPassenger(app)

	log.Info().Str("app_id", app.AppID).Int64("user_id", userID).Msg("Passenger application submitted")
	return c.Send(passengerSubmittedText(app.FirstName, app.AppID, b.amount()), paymentMethodsKeyboard(), tele.ModeMarkdown)
}

func (b *Bot) completionFailure(c tele.Context, err error) error {
	var missing *services.MissingFieldsError
	if errors.As(err, &missing) {
		return c.Send(missingFieldsText(missing.Fields), tele.ModeMarkdown)
	}
	return err
}

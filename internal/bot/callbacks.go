package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/repository"
	"github.com/alibekshomurotov/Bot/internal/services"
)

// handleCallback dispatches every inline-button press by its payload
// prefix. The admin prefixes are matched before the generic verify/reject
// ones.
func (b *Bot) handleCallback(c tele.Context) error {
	data := strings.TrimSpace(c.Callback().Data)
	userID := c.Sender().ID
	ctx := context.Background()

	switch {
	case data == "role_driver" || data == "role_passenger":
		role := models.RolePassenger
		if data == "role_driver" {
			role = models.RoleDriver
		}
		if _, err := b.registration.Begin(ctx, userID, role); err != nil {
			return err
		}
		c.Respond(&tele.CallbackResponse{})
		return c.Edit(askNameText)

	case strings.HasPrefix(data, "car_type_"):
		step, err := b.registration.ChooseCarType(ctx, userID, strings.TrimPrefix(data, "car_type_"))
		if err != nil {
			return err
		}
		if step == services.StepNone {
			return b.staleSession(c)
		}
		c.Respond(&tele.CallbackResponse{})
		return c.Edit(askPriceText)

	case strings.HasPrefix(data, "car_pref_"):
		step, err := b.registration.ChooseCarPreference(ctx, userID, strings.TrimPrefix(data, "car_pref_"))
		if err != nil {
			return err
		}
		if step == services.StepNone {
			return b.staleSession(c)
		}
		c.Respond(&tele.CallbackResponse{})
		return c.Edit(askTimeText, timeKeyboard())

	case strings.HasPrefix(data, "time_"):
		label := strings.TrimPrefix(data, "time_")
		manual := label == "Boshqa"
		step, err := b.registration.ChooseTime(ctx, userID, label, manual)
		if err != nil {
			return err
		}
		switch step {
		case services.StepAskTimeManual:
			c.Respond(&tele.CallbackResponse{})
			return c.Edit(askTimeManualText)
		case services.StepPassengerDone:
			c.Respond(&tele.CallbackResponse{})
			return b.finishPassenger(c, userID)
		default:
			return b.staleSession(c)
		}

	case data == "show_drivers":
		return b.handleShowDrivers(c)

	case data == "pay_card" || data == "pay_click" || data == "pay_payme":
		return b.handlePaymentMethod(c, data)

	case data == "cancel_payment":
		b.payments.Cancel(userID)
		c.Respond(&tele.CallbackResponse{})
		return c.Edit(paymentCancelledText, tele.ModeMarkdown)

	case data == "confirm_payment":
		b.payments.AwaitScreenshot(userID)
		c.Respond(&tele.CallbackResponse{})
		return c.Edit(sendScreenshotText, tele.ModeMarkdown)

	case strings.HasPrefix(data, "admin_verify_driver_") || strings.HasPrefix(data, "admin_reject_driver_"):
		return b.handleDriverModeration(c, data)

	case strings.HasPrefix(data, "verify_") || strings.HasPrefix(data, "reject_"):
		return b.handlePaymentModeration(c, data)
	}

	return c.Respond(&tele.CallbackResponse{})
}

func (b *Bot) handleShowDrivers(c tele.Context) error {
	userID := c.Sender().ID
	c.Respond(&tele.CallbackResponse{})

	if _, ok := b.repo.User(userID); !ok {
		return c.Edit(registerFirstText, b.mainMenuKeyboard(), tele.ModeMarkdown)
	}
	if b.payments.Entitled(userID) {
		return b.directory.Deliver(userID)
	}

	prompt := paymentPromptText(
		b.amount(),
		b.cfg.Payment.CardNumber,
		b.cfg.Payment.CardHolder,
		b.cfg.Payment.ClickPhone,
		b.cfg.Payment.PaymeUsername,
	)
	return c.Edit(prompt, paymentMethodsKeyboard(), tele.ModeMarkdown)
}

func (b *Bot) handlePaymentMethod(c tele.Context, data string) error {
	var method, details string
	switch data {
	case "pay_card":
		method = "Bank karta"
		details = fmt.Sprintf("💳 *Bank karta orqali to'lash*\n\nKarta raqami: %s\nIsm: %s",
			b.cfg.Payment.CardNumber, b.cfg.Payment.CardHolder)
	case "pay_click":
		method = "Click"
		details = fmt.Sprintf("📱 *Click orqali to'lash*\n\nTelefon: %s", b.cfg.Payment.ClickPhone)
	case "pay_payme":
		method = "Payme"
		details = fmt.Sprintf("💵 *Payme orqali to'lash*\n\nTelefon: %s\nUsername: %s",
			b.cfg.Payment.PaymePhone, b.cfg.Payment.PaymeUsername)
	}

	b.payments.SetMethod(c.Sender().ID, method)
	c.Respond(&tele.CallbackResponse{})
	return c.Edit(paymentInstructionsText(method, details, b.amount()), confirmPaymentKeyboard(), tele.ModeMarkdown)
}

func (b *Bot) handlePaymentModeration(c tele.Context, data string) error {
	ctx := context.Background()

	if id, ok := strings.CutPrefix(data, "verify_"); ok {
		if _, err := b.payments.Verify(ctx, id, c.Sender().ID); err != nil {
			return b.moderationFailure(c, err)
		}
		c.Respond(&tele.CallbackResponse{})
		return b.editOutcome(c, paymentVerifiedAdminText)
	}

	id := strings.TrimPrefix(data, "reject_")
	if _, err := b.payments.Reject(ctx, id, c.Sender().ID); err != nil {
		return b.moderationFailure(c, err)
	}
	c.Respond(&tele.CallbackResponse{})
	return b.editOutcome(c, paymentRejectedAdminText)
}

func (b *Bot) handleDriverModeration(c tele.Context, data string) error {
	ctx := context.Background()

	if id, ok := strings.CutPrefix(data, "admin_verify_driver_"); ok {
		if _, err := b.moderation.VerifyDriver(ctx, id, c.Sender().ID); err != nil {
			return b.moderationFailure(c, err)
		}
		c.Respond(&tele.CallbackResponse{})
		return b.editOutcome(c, driverVerifiedAdminText)
	}

	id := strings.TrimPrefix(data, "admin_reject_driver_")
	if _, err := b.moderation.RejectDriver(ctx, id, c.Sender().ID); err != nil {
		return b.moderationFailure(c, err)
	}
	c.Respond(&tele.CallbackResponse{})
	return b.editOutcome(c, driverRejectedAdminText)
}

// moderationFailure maps domain refusals onto visible alerts so the admin
// sees why nothing changed
func (b *Bot) moderationFailure(c tele.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNotAuthorized):
		return c.Respond(&tele.CallbackResponse{Text: notAdminAlert, ShowAlert: true})
	case errors.Is(err, services.ErrAlreadyModerated):
		return c.Respond(&tele.CallbackResponse{Text: alreadyModeratedAlert, ShowAlert: true})
	case errors.Is(err, repository.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: notFoundAlert, ShowAlert: true})
	default:
		return err
	}
}

// editOutcome rewrites the admin's own moderation message. Media messages
// carry the text in a caption.
func (b *Bot) editOutcome(c tele.Context, text string) error {
	if msg := c.Callback().Message; msg != nil && msg.Photo != nil {
		return c.EditCaption(text, tele.ModeMarkdown)
	}
	return c.Edit(text, tele.ModeMarkdown)
}

func (b *Bot) staleSession(c tele.Context) error {
	c.Respond(&tele.CallbackResponse{})
	return c.Edit(sessionExpiredText, tele.ModeMarkdown)
}

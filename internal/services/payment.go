package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/repository"
)

// ErrAlreadyModerated is returned when an admin acts on a record whose
// status is already terminal
var ErrAlreadyModerated = fmt.Errorf("record already moderated")

// ErrNotAuthorized is returned when a moderation action comes from anyone
// but the configured admin
var ErrNotAuthorized = fmt.Errorf("not authorized")

// entitlementWindow bounds directory access after a verified payment.
// The clock anchors at payment creation time.
const entitlementWindow = 24 * time.Hour

const (
	paymentVerifiedText = "✅ *To'lovingiz tasdiqlandi!*\n\nHaydovchilar ro'yxati sizga yuborildi. 24 soat davomida yangi haydovchilar qo'shilganda xabar olasiz.\n\nRahmat! 🚗"
	paymentRejectedText = "❌ *To'lov rad etildi!*\n\nSizning to'lovingiz tasdiqlanmadi. Sabab:\n• Screenshot noaniq\n• To'lov summasi noto'g'ri\n• Boshqa xatolik\n\nQayta urinib ko'ring yoki admin bilan bog'laning."
)

// Payments owns the payment ledger, the entitlement check and the admin
// verification protocol for payments
type Payments struct {
	repo      *repository.Repository
	directory *Directory
	notifier  Notifier
	amount    int
	adminID   int64
	now       func() time.Time
}

// NewPayments creates the payment service
func NewPayments(repo *repository.Repository, directory *Directory, notifier Notifier, amount int, adminID int64) *Payments {
	return &Payments{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		amount:    amount,
		adminID:   adminID,
		now:       time.Now,
	}
}

// Amount returns the flat directory fee
func (p *Payments) Amount() int {
	return p.amount
}

// Record appends a pending payment attempt to the payer's ledger
func (p *Payments) Record(ctx context.Context, userID int64, method, screenshot string) (models.PaymentRecord, error) {
	rec := models.PaymentRecord{
		ID:         fmt.Sprintf("pay_%d_%s", userID, shortID()),
		UserID:     userID,
		CreatedAt:  p.now(),
		Amount:     p.amount,
		Method:     method,
		Status:     models.StatusPending,
		Screenshot: screenshot,
	}
	if err := p.repo.AddPayment(ctx, rec); err != nil {
		return models.PaymentRecord{}, fmt.Errorf("failed to record payment: %w", err)
	}
	return rec, nil
}

// Entitled reports whether the user holds a verified payment younger than
// the entitlement window
func (p *Payments) Entitled(userID int64) bool {
	now := p.now()
	for _, rec := range p.repo.Payments(userID) {
		if rec.Status == models.StatusVerified && now.Sub(rec.CreatedAt) < entitlementWindow {
			return true
		}
	}
	return false
}

// Verify marks the payment verified, delivers the directory to the payer
// and sends the confirmation. Only the configured admin may act; acting on
// an already moderated payment returns ErrAlreadyModerated. Both refusals
// leave the record untouched.
func (p *Payments) Verify(ctx context.Context, paymentID string, actorID int64) (models.PaymentRecord, error) {
	if actorID != p.adminID {
		return models.PaymentRecord{}, ErrNotAuthorized
	}
	stamp := p.now()
	rec, err := p.repo.UpdatePayment(ctx, paymentID, func(rec *models.PaymentRecord) error {
		if rec.Status != models.StatusPending {
			return ErrAlreadyModerated
		}
		rec.Status = models.StatusVerified
		rec.VerifiedBy = actorID
		rec.VerifiedAt = &stamp
		return nil
	})
	if err != nil {
		return models.PaymentRecord{}, err
	}

	if err := p.directory.Deliver(rec.UserID); err != nil {
		log.Error().Err(err).Str("payment_id", paymentID).Msg("Failed to deliver directory")
	}
	if err := p.notifier.SendText(rec.UserID, paymentVerifiedText); err != nil {
		log.Error().Err(err).Int64("user_id", rec.UserID).Msg("Failed to notify payer")
	}
	return rec, nil
}

// Reject marks the payment rejected and notifies the payer with the
// generic reason list
func (p *Payments) Reject(ctx context.Context, paymentID string, actorID int64) (models.PaymentRecord, error) {
	if actorID != p.adminID {
		return models.PaymentRecord{}, ErrNotAuthorized
	}
	stamp := p.now()
	rec, err := p.repo.UpdatePayment(ctx, paymentID, func(rec *models.PaymentRecord) error {
		if rec.Status != models.StatusPending {
			return ErrAlreadyModerated
		}
		rec.Status = models.StatusRejected
		rec.RejectedBy = actorID
		rec.RejectedAt = &stamp
		return nil
	})
	if err != nil {
		return models.PaymentRecord{}, err
	}

	if err := p.notifier.SendText(rec.UserID, paymentRejectedText); err != nil {
		log.Error().Err(err).Int64("user_id", rec.UserID).Msg("Failed to notify payer")
	}
	return rec, nil
}

// SetMethod remembers the payment method the user picked
func (p *Payments) SetMethod(userID int64, method string) {
	d, _ := p.repo.Dialog(userID, p.now())
	d.PaymentMethod = method
	p.repo.SetDialog(userID, d, p.now())
}

// AwaitScreenshot switches the user into screenshot-awaiting mode
func (p *Payments) AwaitScreenshot(userID int64) {
	d, _ := p.repo.Dialog(userID, p.now())
	d.AwaitingScreenshot = true
	p.repo.SetDialog(userID, d, p.now())
}

// Cancel drops any in-progress payment dialogue
func (p *Payments) Cancel(userID int64) {
	d, ok := p.repo.Dialog(userID, p.now())
	if !ok {
		return
	}
	d.AwaitingScreenshot = false
	d.PaymentMethod = ""
	p.repo.SetDialog(userID, d, p.now())
}

// PendingMethod reports whether the user is awaiting a screenshot and for
// which method
func (p *Payments) PendingMethod(userID int64) (string, bool) {
	d, ok := p.repo.Dialog(userID, p.now())
	if !ok || !d.AwaitingScreenshot {
		return "", false
	}
	method := d.PaymentMethod
	if method == "" {
		method = "Noma'lum"
	}
	return method, true
}

// FinishScreenshot clears the screenshot-awaiting mode after intake
func (p *Payments) FinishScreenshot(userID int64) {
	d, ok := p.repo.Dialog(userID, p.now())
	if !ok {
		return
	}
	d.AwaitingScreenshot = false
	d.PaymentMethod = ""
	p.repo.SetDialog(userID, d, p.now())
}

// shortID returns 12 hex characters from a fresh uuid, enough to keep
// payment ids unique within one user's ledger
func shortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

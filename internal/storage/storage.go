package storage

import (
	"context"

	"github.com/alibekshomurotov/Bot/internal/models"
)

// MainDocument is the whole-document snapshot of users, applications and
// the shared application counter.
type MainDocument struct {
	Users                 map[int64]*models.User         `json:"user_data"`
	DriverApplications    []*models.DriverApplication    `json:"driver_applications"`
	PassengerApplications []*models.PassengerApplication `json:"passenger_applications"`
	ApplicationCounter    int                            `json:"application_counter"`
}

// PaymentsDocument is the whole-document snapshot of the payment ledger,
// an ordered list of records per user id.
type PaymentsDocument map[int64][]*models.PaymentRecord

// Store persists the two snapshot documents. Loading missing storage
// returns empty collections and counter = 1, never an error.
type Store interface {
	LoadMain(ctx context.Context) (*MainDocument, error)
	SaveMain(ctx context.Context, doc *MainDocument) error
	LoadPayments(ctx context.Context) (PaymentsDocument, error)
	SavePayments(ctx context.Context, doc PaymentsDocument) error
}

// NewMainDocument returns an empty main document with the counter at its
// starting value.
func NewMainDocument() *MainDocument {
	return &MainDocument{
		Users:              make(map[int64]*models.User),
		ApplicationCounter: 1,
	}
}

// normalize repairs a freshly unmarshaled document: a null user table
// becomes an empty map and the counter never drops below its starting
// value. Every backend applies it after loading.
func (d *MainDocument) normalize() {
	if d.Users == nil {
		d.Users = make(map[int64]*models.User)
	}
	if d.ApplicationCounter < 1 {
		d.ApplicationCounter = 1
	}
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/storage"
)

// ErrNotFound is returned when a record lookup by identifier fails
var ErrNotFound = fmt.Errorf("record not found")

// Repository owns the four in-memory tables, the shared application
// counter and the per-user dialog states. Every mutating call persists the
// affected snapshot document before returning, so one call is one durable
// unit. All access goes through a single mutex.
type Repository struct {
	mu    sync.Mutex
	store storage.Store

	users         map[int64]*models.User
	driverApps    []*models.DriverApplication
	passengerApps []*models.PassengerApplication
	payments      map[int64][]*models.PaymentRecord
	counter       int

	dialogs   map[int64]*models.Dialog
	dialogTTL time.Duration
}

// New creates an empty repository over the given store
func New(store storage.Store, dialogTTL time.Duration) *Repository {
	return &Repository{
		store:     store,
		users:     make(map[int64]*models.User),
		payments:  make(map[int64][]*models.PaymentRecord),
		counter:   1,
		dialogs:   make(map[int64]*models.Dialog),
		dialogTTL: dialogTTL,
	}
}

// Load replaces the in-memory tables with the stored snapshots
func (r *Repository) Load(ctx context.Context) error {
	main, err := r.store.LoadMain(ctx)
	if err != nil {
		return fmt.Errorf("failed to load main document: %w", err)
	}
	ledger, err := r.store.LoadPayments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load payments document: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = main.Users
	r.driverApps = main.DriverApplications
	r.passengerApps = main.PassengerApplications
	r.counter = main.ApplicationCounter
	r.payments = ledger
	if r.payments == nil {
		r.payments = make(map[int64][]*models.PaymentRecord)
	}
	return nil
}

// persistMain must be called with the mutex held
func (r *Repository) persistMain(ctx context.Context) error {
	doc := &storage.MainDocument{
		Users:                 r.users,
		DriverApplications:    r.driverApps,
		PassengerApplications: r.passengerApps,
		ApplicationCounter:    r.counter,
	}
	if err := r.store.SaveMain(ctx, doc); err != nil {
		return fmt.Errorf("failed to save main document: %w", err)
	}
	return nil
}

// persistPayments must be called with the mutex held
func (r *Repository) persistPayments(ctx context.Context) error {
	if err := r.store.SavePayments(ctx, storage.PaymentsDocument(r.payments)); err != nil {
		return fmt.Errorf("failed to save payments document: %w", err)
	}
	return nil
}

// User returns a copy of the user record
func (r *Repository) User(id int64) (models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

// PutUser stores the user record and persists the snapshot
func (r *Repository) PutUser(ctx context.Context, u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	r.users[u.ID] = &u
	return r.persistMain(ctx)
}

// Users returns copies of all user records in a stable order
func (r *Repository) Users() []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// UserCount returns the number of known users
func (r *Repository) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// AddDriverApplication allocates the next application id with the "D"
// prefix, appends the record and persists. The counter is shared with
// passenger applications.
func (r *Repository) AddDriverApplication(ctx context.Context, app models.DriverApplication) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.AppID = fmt.Sprintf("D%04d", r.counter)
	r.counter++
	r.driverApps = append(r.driverApps, &app)
	if err := r.persistMain(ctx); err != nil {
		return "", err
	}
	return app.AppID, nil
}

// AddPassengerApplication allocates the next application id with the "P"
// prefix, appends the record and persists
func (r *Repository) AddPassengerApplication(ctx context.Context, app models.PassengerApplication) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.AppID = fmt.Sprintf("P%04d", r.counter)
	r.counter++
	r.passengerApps = append(r.passengerApps, &app)
	if err := r.persistMain(ctx); err != nil {
		return "", err
	}
	return app.AppID, nil
}

// DriverApplication looks up a driver application by id. Linear scan:
// expected scale is tens to low thousands of records.
func (r *Repository) DriverApplication(appID string) (models.DriverApplication, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.driverApps {
		if app.AppID == appID {
			return *app, true
		}
	}
	return models.DriverApplication{}, false
}

// DriverApplicationByUser returns the first driver application submitted
// by the user
func (r *Repository) DriverApplicationByUser(userID int64) (models.DriverApplication, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.driverApps {
		if app.UserID == userID {
			return *app, true
		}
	}
	return models.DriverApplication{}, false
}

// UpdateDriverApplication applies fn to the record under the lock and
// persists. If fn returns an error nothing is written.
func (r *Repository) UpdateDriverApplication(ctx context.Context, appID string, fn func(*models.DriverApplication) error) (models.DriverApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.driverApps {
		if app.AppID != appID {
			continue
		}
		if err := fn(app); err != nil {
			return models.DriverApplication{}, err
		}
		if err := r.persistMain(ctx); err != nil {
			return models.DriverApplication{}, err
		}
		return *app, nil
	}
	return models.DriverApplication{}, ErrNotFound
}

// DriverApplications returns copies of all driver applications in
// insertion order
func (r *Repository) DriverApplications() []models.DriverApplication {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.DriverApplication, 0, len(r.driverApps))
	for _, app := range r.driverApps {
		out = append(out, *app)
	}
	return out
}

// PassengerApplications returns copies of all passenger applications in
// insertion order
func (r *Repository) PassengerApplications() []models.PassengerApplication {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.PassengerApplication, 0, len(r.passengerApps))
	for _, app := range r.passengerApps {
		out = append(out, *app)
	}
	return out
}

// LatestPassengerApplication returns the most recently created passenger
// application of the user
func (r *Repository) LatestPassengerApplication(userID int64) (models.PassengerApplication, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.passengerApps) - 1; i >= 0; i-- {
		if r.passengerApps[i].UserID == userID {
			return *r.passengerApps[i], true
		}
	}
	return models.PassengerApplication{}, false
}

// AddPayment appends the record to the payer's ledger and persists
func (r *Repository) AddPayment(ctx context.Context, rec models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[rec.UserID] = append(r.payments[rec.UserID], &rec)
	return r.persistPayments(ctx)
}

// Payments returns copies of the user's payment records in append order
func (r *Repository) Payments(userID int64) []models.PaymentRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.payments[userID]
	out := make([]models.PaymentRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, *rec)
	}
	return out
}

// AllPayments returns copies of every payment record, grouped by user in
// ascending user id order
func (r *Repository) AllPayments() []models.PaymentRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.payments))
	for id := range r.payments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.PaymentRecord
	for _, id := range ids {
		for _, rec := range r.payments[id] {
			out = append(out, *rec)
		}
	}
	return out
}

// UpdatePayment applies fn to the record under the lock and persists. If
// fn returns an error nothing is written. Lookup scans every user's
// ledger.
func (r *Repository) UpdatePayment(ctx context.Context, paymentID string, fn func(*models.PaymentRecord) error) (models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, recs := range r.payments {
		for _, rec := range recs {
			if rec.ID != paymentID {
				continue
			}
			if err := fn(rec); err != nil {
				return models.PaymentRecord{}, err
			}
			if err := r.persistPayments(ctx); err != nil {
				return models.PaymentRecord{}, err
			}
			return *rec, nil
		}
	}
	return models.PaymentRecord{}, ErrNotFound
}

// Dialog returns the user's in-progress dialog. Entries older than the
// dialog TTL are dropped on access.
func (r *Repository) Dialog(userID int64, now time.Time) (models.Dialog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dialogs[userID]
	if !ok {
		return models.Dialog{}, false
	}
	if r.dialogTTL > 0 && now.Sub(d.UpdatedAt) > r.dialogTTL {
		delete(r.dialogs, userID)
		return models.Dialog{}, false
	}
	return *d, true
}

// SetDialog stores the user's dialog record, refreshing its timestamp
func (r *Repository) SetDialog(userID int64, d models.Dialog, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.UpdatedAt = now
	r.dialogs[userID] = &d
}

// ClearDialog removes the user's dialog record
func (r *Repository) ClearDialog(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dialogs, userID)
}

// ExpireDialogs drops every dialog entry older than the dialog TTL and
// reports how many were removed
func (r *Repository) ExpireDialogs(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dialogTTL <= 0 {
		return 0
	}
	n := 0
	for id, d := range r.dialogs {
		if now.Sub(d.UpdatedAt) > r.dialogTTL {
			delete(r.dialogs, id)
			n++
		}
	}
	return n
}

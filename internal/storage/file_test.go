package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alibekshomurotov/Bot/internal/models"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(
		filepath.Join(dir, "main.json"),
		filepath.Join(dir, "payments.json"),
	)
}

func TestLoadMissingFiles(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	doc, err := store.LoadMain(ctx)
	if err != nil {
		t.Fatalf("LoadMain: %v", err)
	}
	if len(doc.Users) != 0 || len(doc.DriverApplications) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
	if doc.ApplicationCounter != 1 {
		t.Errorf("counter = %d, want 1", doc.ApplicationCounter)
	}

	ledger, err := store.LoadPayments(ctx)
	if err != nil {
		t.Fatalf("LoadPayments: %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("expected empty ledger, got %+v", ledger)
	}
}

func TestMainRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	stamp := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	doc := NewMainDocument()
	doc.Users[1] = &models.User{
		ID:                  1,
		FirstName:           "Ali",
		Phone:               "+998901112233",
		Role:                models.RolePassenger,
		DepartureLocation:   &models.Location{Latitude: 41.31, Longitude: 69.28},
		DestinationLocation: &models.Location{Latitude: 39.65, Longitude: 66.96},
		CreatedAt:           stamp,
	}
	doc.DriverApplications = append(doc.DriverApplications, &models.DriverApplication{
		AppID: "D0001", UserID: 2, FirstName: "Bobur",
		Status: models.StatusRejected, RejectedBy: 777, RejectedAt: &stamp,
		CreatedAt: stamp,
	})
	doc.PassengerApplications = append(doc.PassengerApplications, &models.PassengerApplication{
		AppID: "P0002", UserID: 1, CarPreference: "Economy", DepartureTime: "Hozir",
		CreatedAt: stamp,
	})
	doc.ApplicationCounter = 3

	if err := store.SaveMain(ctx, doc); err != nil {
		t.Fatalf("SaveMain: %v", err)
	}

	got, err := store.LoadMain(ctx)
	if err != nil {
		t.Fatalf("LoadMain: %v", err)
	}
	if got.ApplicationCounter != 3 {
		t.Errorf("counter = %d", got.ApplicationCounter)
	}

	u := got.Users[1]
	if u == nil {
		t.Fatal("user missing")
	}
	if u.DepartureLocation == nil || u.DepartureLocation.Latitude != 41.31 {
		t.Errorf("departure location = %+v", u.DepartureLocation)
	}
	if u.DestinationLocation == nil || u.DestinationLocation.Longitude != 66.96 {
		t.Errorf("destination location = %+v", u.DestinationLocation)
	}

	if len(got.DriverApplications) != 1 {
		t.Fatalf("driver applications = %+v", got.DriverApplications)
	}
	app := got.DriverApplications[0]
	if app.Status != models.StatusRejected || app.RejectedBy != 777 {
		t.Errorf("application = %+v", app)
	}
	if app.RejectedAt == nil || !app.RejectedAt.Equal(stamp) {
		t.Errorf("rejected at = %v", app.RejectedAt)
	}

	if len(got.PassengerApplications) != 1 || got.PassengerApplications[0].AppID != "P0002" {
		t.Errorf("passenger applications = %+v", got.PassengerApplications)
	}
}

func TestPaymentsRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	stamp := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	ledger := PaymentsDocument{
		42: {
			{ID: "pay_42_a", UserID: 42, Amount: 5000, Method: "Click",
				Status: models.StatusVerified, VerifiedBy: 777, VerifiedAt: &stamp,
				Screenshot: "file-shot", CreatedAt: stamp},
			{ID: "pay_42_b", UserID: 42, Amount: 5000, Method: "Payme",
				Status: models.StatusPending, CreatedAt: stamp},
		},
	}

	if err := store.SavePayments(ctx, ledger); err != nil {
		t.Fatalf("SavePayments: %v", err)
	}

	got, err := store.LoadPayments(ctx)
	if err != nil {
		t.Fatalf("LoadPayments: %v", err)
	}
	recs := got[42]
	if len(recs) != 2 {
		t.Fatalf("ledger = %+v", got)
	}
	if recs[0].ID != "pay_42_a" || recs[1].ID != "pay_42_b" {
		t.Errorf("order = %q, %q", recs[0].ID, recs[1].ID)
	}
	if recs[0].VerifiedAt == nil || !recs[0].VerifiedAt.Equal(stamp) {
		t.Errorf("verified at = %v", recs[0].VerifiedAt)
	}
	if recs[0].Screenshot != "file-shot" {
		t.Errorf("screenshot = %q", recs[0].Screenshot)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.SaveMain(ctx, NewMainDocument()); err != nil {
		t.Fatalf("SaveMain: %v", err)
	}
	if err := store.SaveMain(ctx, NewMainDocument()); err != nil {
		t.Fatalf("SaveMain again: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(store.mainPath))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v", names)
	}
}

func TestNormalizeNullTables(t *testing.T) {
	doc := &MainDocument{}
	doc.normalize()
	if doc.Users == nil {
		t.Error("nil user table survived normalization")
	}
	if doc.ApplicationCounter != 1 {
		t.Errorf("counter = %d, want 1", doc.ApplicationCounter)
	}

	// A snapshot with explicit nulls loads as workable empty collections.
	store := newStore(t)
	body := []byte(`{"user_data": null, "driver_applications": null, "application_counter": 0}`)
	if err := os.WriteFile(store.mainPath, body, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := store.LoadMain(context.Background())
	if err != nil {
		t.Fatalf("LoadMain: %v", err)
	}
	if got.Users == nil || got.ApplicationCounter != 1 {
		t.Errorf("document = %+v", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	store := newStore(t)

	if err := os.WriteFile(store.mainPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := store.LoadMain(context.Background()); err == nil {
		t.Fatal("expected an error for a corrupt file")
	}
}

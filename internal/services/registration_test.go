package services

import (
	"context"
	"testing"
	"time"

	"github.com/alibekshomurotov/Bot/internal/models"
)

func TestRegistrationPassengerFlow(t *testing.T) {
	repo := newTestRepo(t)
	reg := NewRegistration(repo)
	ctx := context.Background()

	step, err := reg.Begin(ctx, 100, models.RolePassenger)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if step != StepAskName {
		t.Fatalf("expected StepAskName, got %v", step)
	}

	step, err = reg.Advance(ctx, 100, Input{Text: "Ali"})
	if err != nil {
		t.Fatalf("Advance name: %v", err)
	}
	if step != StepAskPhone {
		t.Fatalf("expected StepAskPhone, got %v", step)
	}

	step, err = reg.Advance(ctx, 100, Input{Contact: "998901112233"})
	if err != nil {
		t.Fatalf("Advance phone: %v", err)
	}
	if step != StepAskDeparture {
		t.Fatalf("expected StepAskDeparture, got %v", step)
	}

	step, err = reg.Advance(ctx, 100, Input{Text: "Tashkent"})
	if err != nil {
		t.Fatalf("Advance departure: %v", err)
	}
	if step != StepAskDestination {
		t.Fatalf("expected StepAskDestination, got %v", step)
	}

	step, err = reg.Advance(ctx, 100, Input{Text: "Samarkand"})
	if err != nil {
		t.Fatalf("Advance destination: %v", err)
	}
	if step != StepAskCarPref {
		t.Fatalf("expected StepAskCarPref, got %v", step)
	}

	step, err = reg.ChooseCarPreference(ctx, 100, "Economy")
	if err != nil {
		t.Fatalf("ChooseCarPreference: %v", err)
	}
	if step != StepAskTime {
		t.Fatalf("expected StepAskTime, got %v", step)
	}

	step, err = reg.ChooseTime(ctx, 100, "Hozir", false)
	if err != nil {
		t.Fatalf("ChooseTime: %v", err)
	}
	if step != StepPassengerDone {
		t.Fatalf("expected StepPassengerDone, got %v", step)
	}

	u, ok := repo.User(100)
	if !ok {
		t.Fatal("user not stored")
	}
	if u.FirstName != "Ali" {
		t.Errorf("FirstName = %q, want Ali", u.FirstName)
	}
	if u.Phone != "+998901112233" {
		t.Errorf("Phone = %q, want +998901112233", u.Phone)
	}
	if u.Departure != "Tashkent" || u.Destination != "Samarkand" {
		t.Errorf("route = %q -> %q", u.Departure, u.Destination)
	}
	if u.CarPreference != "Economy" {
		t.Errorf("CarPreference = %q", u.CarPreference)
	}
	if u.DepartureTime != "Hozir" {
		t.Errorf("DepartureTime = %q", u.DepartureTime)
	}
}

func TestRegistrationDriverFlow(t *testing.T) {
	repo := newTestRepo(t)
	reg := NewRegistration(repo)
	ctx := context.Background()

	if _, err := reg.Begin(ctx, 200, models.RoleDriver); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := reg.Advance(ctx, 200, Input{Text: "Bobur"}); err != nil {
		t.Fatalf("Advance name: %v", err)
	}

	step, err := reg.Advance(ctx, 200, Input{Text: "+998935554433"})
	if err != nil {
		t.Fatalf("Advance phone: %v", err)
	}
	if step != StepAskCarType {
		t.Fatalf("expected StepAskCarType after driver phone, got %v", step)
	}

	step, err = reg.ChooseCarType(ctx, 200, "Cobalt")
	if err != nil {
		t.Fatalf("ChooseCarType: %v", err)
	}
	if step != StepAskPrice {
		t.Fatalf("expected StepAskPrice, got %v", step)
	}

	step, err = reg.Advance(ctx, 200, Input{Text: "50000 so'm"})
	if err != nil {
		t.Fatalf("Advance price: %v", err)
	}
	if step != StepAskPhoto {
		t.Fatalf("expected StepAskPhoto, got %v", step)
	}

	// Text instead of a photo re-prompts without advancing.
	step, err = reg.Advance(ctx, 200, Input{Text: "mana rasm"})
	if err != nil {
		t.Fatalf("Advance non-photo: %v", err)
	}
	if step != StepRetryPhoto {
		t.Fatalf("expected StepRetryPhoto, got %v", step)
	}

	step, err = reg.Advance(ctx, 200, Input{Photo: "file-abc"})
	if err != nil {
		t.Fatalf("Advance photo: %v", err)
	}
	if step != StepDriverDone {
		t.Fatalf("expected StepDriverDone, got %v", step)
	}

	u, _ := repo.User(200)
	if u.CarType != "Cobalt" || u.Price != "50000 so'm" || u.CarPhoto != "file-abc" {
		t.Errorf("driver fields = %q / %q / %q", u.CarType, u.Price, u.CarPhoto)
	}
}

func TestRegistrationLocationInput(t *testing.T) {
	repo := newTestRepo(t)
	reg := NewRegistration(repo)
	ctx := context.Background()

	reg.Begin(ctx, 300, models.RolePassenger)
	reg.Advance(ctx, 300, Input{Text: "Vali"})
	reg.Advance(ctx, 300, Input{Text: "+998900000000"})

	loc := &models.Location{Latitude: 41.31, Longitude: 69.28}
	step, err := reg.Advance(ctx, 300, Input{Location: loc})
	if err != nil {
		t.Fatalf("Advance location: %v", err)
	}
	if step != StepAskDestination {
		t.Fatalf("expected StepAskDestination, got %v", step)
	}

	u, _ := repo.User(300)
	if u.DepartureLocation == nil || u.DepartureLocation.Latitude != 41.31 {
		t.Errorf("DepartureLocation = %+v", u.DepartureLocation)
	}
	if u.Departure != "" {
		t.Errorf("Departure text should stay empty, got %q", u.Departure)
	}
}

func TestRegistrationIgnoresStrayInput(t *testing.T) {
	repo := newTestRepo(t)
	reg := NewRegistration(repo)
	ctx := context.Background()

	// No dialogue at all.
	step, err := reg.Advance(ctx, 400, Input{Text: "salom"})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if step != StepNone {
		t.Fatalf("expected StepNone without a dialogue, got %v", step)
	}

	// Selection out of order.
	reg.Begin(ctx, 400, models.RolePassenger)
	step, err = reg.ChooseCarPreference(ctx, 400, "Economy")
	if err != nil {
		t.Fatalf("ChooseCarPreference: %v", err)
	}
	if step != StepNone {
		t.Fatalf("expected StepNone for out-of-order selection, got %v", step)
	}

	// Empty name re-prompts.
	step, err = reg.Advance(ctx, 400, Input{Text: "   "})
	if err != nil {
		t.Fatalf("Advance blank name: %v", err)
	}
	if step != StepAskName {
		t.Fatalf("expected StepAskName re-prompt, got %v", step)
	}
}

func TestRegistrationManualTime(t *testing.T) {
	repo := newTestRepo(t)
	reg := NewRegistration(repo)
	ctx := context.Background()

	reg.Begin(ctx, 500, models.RolePassenger)
	reg.Advance(ctx, 500, Input{Text: "Gulnora"})
	reg.Advance(ctx, 500, Input{Text: "+998911234567"})
	reg.Advance(ctx, 500, Input{Text: "Buxoro"})
	reg.Advance(ctx, 500, Input{Text: "Xiva"})
	reg.ChooseCarPreference(ctx, 500, "Farqi yoq")

	step, err := reg.ChooseTime(ctx, 500, "Boshqa", true)
	if err != nil {
		t.Fatalf("ChooseTime manual: %v", err)
	}
	if step != StepAskTimeManual {
		t.Fatalf("expected StepAskTimeManual, got %v", step)
	}

	step, err = reg.Advance(ctx, 500, Input{Text: "Ertaga 18:00"})
	if err != nil {
		t.Fatalf("Advance manual time: %v", err)
	}
	if step != StepPassengerDone {
		t.Fatalf("expected StepPassengerDone, got %v", step)
	}

	u, _ := repo.User(500)
	if u.DepartureTime != "Ertaga 18:00" {
		t.Errorf("DepartureTime = %q", u.DepartureTime)
	}
}

func TestRegistrationDialogExpiry(t *testing.T) {
	dir := t.TempDir()
	// TTL of one hour with a clock moved two hours forward.
	repo := newTestRepoWithTTL(t, dir, time.Hour)
	reg := NewRegistration(repo)
	ctx := context.Background()

	reg.Begin(ctx, 600, models.RolePassenger)

	base := time.Now()
	reg.now = func() time.Time { return base.Add(2 * time.Hour) }

	step, err := reg.Advance(ctx, 600, Input{Text: "Kech qoldim"})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if step != StepNone {
		t.Fatalf("expected StepNone after dialogue expiry, got %v", step)
	}
}

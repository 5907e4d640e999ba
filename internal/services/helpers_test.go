package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/alibekshomurotov/Bot/internal/repository"
	"github.com/alibekshomurotov/Bot/internal/storage"
)

// fakeNotifier collects outbound messages and can be told to fail for
// chosen recipients.
type fakeNotifier struct {
	texts     []sentText
	photos    []sentPhoto
	locations []sentLocation
	failFor   map[int64]bool
}

type sentText struct {
	ChatID int64
	Text   string
}

type sentPhoto struct {
	ChatID  int64
	FileID  string
	Caption string
}

type sentLocation struct {
	ChatID int64
	Lat    float64
	Lng    float64
}

func (f *fakeNotifier) SendText(chatID int64, text string) error {
	if f.failFor[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	f.texts = append(f.texts, sentText{ChatID: chatID, Text: text})
	return nil
}

func (f *fakeNotifier) SendPhoto(chatID int64, fileID, caption string) error {
	if f.failFor[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	f.photos = append(f.photos, sentPhoto{ChatID: chatID, FileID: fileID, Caption: caption})
	return nil
}

func (f *fakeNotifier) SendLocation(chatID int64, lat, lng float64) error {
	if f.failFor[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	f.locations = append(f.locations, sentLocation{ChatID: chatID, Lat: lat, Lng: lng})
	return nil
}

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	return newTestRepoWithTTL(t, t.TempDir(), 0)
}

func newTestRepoWithTTL(t *testing.T, dir string, ttl time.Duration) *repository.Repository {
	t.Helper()
	store := storage.NewFileStore(
		filepath.Join(dir, "main.json"),
		filepath.Join(dir, "payments.json"),
	)
	return repository.New(store, ttl)
}

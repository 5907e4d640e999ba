package services

import (
	"context"
	"strings"
	"testing"

	"github.com/alibekshomurotov/Bot/internal/models"
)

func TestBroadcastSend(t *testing.T) {
	repo := newTestRepo(t)
	notifier := &fakeNotifier{failFor: map[int64]bool{2: true}}
	broadcast := NewBroadcast(repo, notifier)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if err := repo.PutUser(ctx, models.User{ID: id}); err != nil {
			t.Fatalf("PutUser: %v", err)
		}
	}

	success, failed := broadcast.Send("Yangi haydovchilar qo'shildi!")
	if success != 2 || failed != 1 {
		t.Fatalf("success = %d, failed = %d", success, failed)
	}

	for _, msg := range notifier.texts {
		if !strings.HasPrefix(msg.Text, "📢 *Admin xabari:*") {
			t.Errorf("missing broadcast header: %q", msg.Text)
		}
		if !strings.Contains(msg.Text, "Yangi haydovchilar qo'shildi!") {
			t.Errorf("missing body: %q", msg.Text)
		}
	}
}

func TestBroadcastEmpty(t *testing.T) {
	repo := newTestRepo(t)
	broadcast := NewBroadcast(repo, &fakeNotifier{})

	success, failed := broadcast.Send("hech kimga")
	if success != 0 || failed != 0 {
		t.Fatalf("success = %d, failed = %d", success, failed)
	}
}

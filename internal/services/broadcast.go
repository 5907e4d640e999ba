package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/alibekshomurotov/Bot/internal/repository"
)

// Broadcast fans a message out to every known user
type Broadcast struct {
	repo     *repository.Repository
	notifier Notifier
}

// NewBroadcast creates the broadcast service
func NewBroadcast(repo *repository.Repository, notifier Notifier) *Broadcast {
	return &Broadcast{repo: repo, notifier: notifier}
}

// Send delivers the message to all users and returns the success and
// failure counts. Per-recipient failures (blocked bot, deleted chat) are
// logged and do not stop the fan-out.
func (b *Broadcast) Send(text string) (success, failed int) {
	body := fmt.Sprintf("📢 *Admin xabari:*\n\n%s", text)
	for _, u := range b.repo.Users() {
		if err := b.notifier.SendText(u.ID, body); err != nil {
			log.Warn().Err(err).Int64("user_id", u.ID).Msg("Broadcast delivery failed")
			failed++
			continue
		}
		success++
	}
	return success, failed
}

package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/alibekshomurotov/Bot/internal/config"
	"github.com/alibekshomurotov/Bot/internal/repository"
	"github.com/alibekshomurotov/Bot/internal/services"
)

// Bot is the Telegram layer: it normalizes inbound updates, dispatches
// them to the services and renders replies
type Bot struct {
	tb   *tele.Bot
	cfg  *config.Config
	repo *repository.Repository

	registration *services.Registration
	applications *services.Applications
	payments     *services.Payments
	directory    *services.Directory
	moderation   *services.Moderation
	broadcast    *services.Broadcast
	reports      *services.Reports
}

// Deps bundles the services the bot dispatches to
type Deps struct {
	Registration *services.Registration
	Applications *services.Applications
	Payments     *services.Payments
	Directory    *services.Directory
	Moderation   *services.Moderation
	Broadcast    *services.Broadcast
	Reports      *services.Reports
}

// New wires the handlers onto an existing telebot instance
func New(tb *tele.Bot, cfg *config.Config, repo *repository.Repository, deps Deps) *Bot {
	b := &Bot{
		tb:   tb,
		cfg:  cfg,
		repo: repo,

		registration: deps.Registration,
		applications: deps.Applications,
		payments:     deps.Payments,
		directory:    deps.Directory,
		moderation:   deps.Moderation,
		broadcast:    deps.Broadcast,
		reports:      deps.Reports,
	}
	b.register()
	return b
}

// NewTelebot creates the underlying long-polling telebot instance
func NewTelebot(token string) (*tele.Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			evt := log.Error().Err(err)
			if c != nil && c.Sender() != nil {
				evt = evt.Int64("user_id", c.Sender().ID)
			}
			evt.Msg("Handler failed")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return tb, nil
}

func (b *Bot) register() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/help", b.handleHelp)
	b.tb.Handle("/myapp", b.handleMyApp)

	// Admin commands; identity-gated in the handlers.
	b.tb.Handle("/stats", b.handleStats)
	b.tb.Handle("/payments", b.handlePayments)
	b.tb.Handle("/broadcast", b.handleBroadcast)
	b.tb.Handle("/users", b.handleUsers)

	b.tb.Handle(tele.OnCallback, b.handleCallback)
	b.tb.Handle(tele.OnText, b.handleMessage)
	b.tb.Handle(tele.OnPhoto, b.handleMessage)
	b.tb.Handle(tele.OnContact, b.handleMessage)
	b.tb.Handle(tele.OnLocation, b.handleMessage)
}

// Start blocks on the update loop
func (b *Bot) Start() {
	log.Info().Msg("Bot polling started")
	b.tb.Start()
}

// Stop terminates the update loop
func (b *Bot) Stop() {
	b.tb.Stop()
}

func (b *Bot) isAdmin(id int64) bool {
	return id == b.cfg.Telegram.AdminID
}

// amount renders the configured fee with thousands separators
func (b *Bot) amount() string {
	return services.FormatAmount(b.cfg.Payment.Amount)
}

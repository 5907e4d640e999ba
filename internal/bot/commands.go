package bot

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"github.com/alibekshomurotov/Bot/internal/services"
)

func (b *Bot) handleStart(c tele.Context) error {
	if b.isAdmin(c.Sender().ID) {
		return c.Send(adminPanelText, tele.ModeMarkdown)
	}
	return c.Send(welcomeText(c.Sender().FirstName, b.amount()), b.mainMenuKeyboard(), tele.ModeMarkdown)
}

func (b *Bot) handleHelp(c tele.Context) error {
	return c.Send(helpText, tele.ModeMarkdown)
}

func (b *Bot) handleMyApp(c tele.Context) error {
	userID := c.Sender().ID

	if app, ok := b.repo.DriverApplicationByUser(userID); ok {
		return c.Send(myDriverAppText(app), tele.ModeMarkdown)
	}

	app, ok := b.repo.LatestPassengerApplication(userID)
	if !ok {
		return c.Send(noApplicationText, tele.ModeMarkdown)
	}
	if err := c.Send(myPassengerAppText(app), tele.ModeMarkdown); err != nil {
		return err
	}
	if b.payments.Entitled(userID) {
		return c.Send(entitledText(), tele.ModeMarkdown)
	}
	return c.Send(payPromptText(b.amount()), paymentMethodsKeyboard(), tele.ModeMarkdown)
}

func (b *Bot) handleStats(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return nil
	}
	s := b.reports.Stats()
	return c.Send(statsText(s, services.FormatAmount, time.Now().Format("02.01.2006")), tele.ModeMarkdown)
}

func (b *Bot) handlePayments(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return nil
	}

	recs := b.reports.RecentPayments()
	if len(recs) == 0 {
		return c.Send("📭 To'lovlar mavjud emas")
	}

	var sb strings.Builder
	sb.WriteString("💰 *TO'LOVLAR RO'YXATI*\n\n")
	for i, rec := range recs {
		sb.WriteString(formatPaymentLine(i+1, rec))
	}
	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handleBroadcast(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return nil
	}

	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return c.Send(broadcastUsageText, tele.ModeMarkdown)
	}

	success, failed := b.broadcast.Send(text)
	log.Info().Int("success", success).Int("failed", failed).Msg("Broadcast finished")
	return c.Send(broadcastReportText(success, failed), tele.ModeMarkdown)
}

func (b *Bot) handleUsers(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return nil
	}

	users, total := b.reports.UsersPage()
	if total == 0 {
		return c.Send("📭 Foydalanuvchilar mavjud emas")
	}

	var sb strings.Builder
	sb.WriteString(formatUsersHeader(total))
	for i, u := range users {
		sb.WriteString(formatUserLine(i+1, u))
	}
	if total > len(users) {
		sb.WriteString(formatUsersOverflow(total - len(users)))
	}
	return c.Send(sb.String(), tele.ModeMarkdown)
}

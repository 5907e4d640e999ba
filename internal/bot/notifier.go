package bot

import (
	tele "gopkg.in/telebot.v3"
)

// Notifier sends outbound messages on behalf of the services. It accepts
// user ids and the public channel id alike.
type Notifier struct {
	tb *tele.Bot
}

// NewNotifier wraps a telebot instance
func NewNotifier(tb *tele.Bot) *Notifier {
	return &Notifier{tb: tb}
}

// SendText delivers a Markdown-formatted text message
func (n *Notifier) SendText(chatID int64, text string) error {
	_, err := n.tb.Send(tele.ChatID(chatID), text, tele.ModeMarkdown)
	return err
}

// SendPhoto delivers a stored Telegram photo by file id
func (n *Notifier) SendPhoto(chatID int64, fileID, caption string) error {
	photo := &tele.Photo{
		File:    tele.File{FileID: fileID},
		Caption: caption,
	}
	_, err := n.tb.Send(tele.ChatID(chatID), photo)
	return err
}

// SendLocation delivers a coordinate attachment
func (n *Notifier) SendLocation(chatID int64, lat, lng float64) error {
	loc := &tele.Location{
		Lat: float32(lat),
		Lng: float32(lng),
	}
	_, err := n.tb.Send(tele.ChatID(chatID), loc)
	return err
}

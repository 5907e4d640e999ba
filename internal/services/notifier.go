package services

// Notifier delivers outbound messages through the messaging gateway. The
// recipient id is a Telegram chat id: a user id or the public channel id.
// Implementations must treat delivery failures as per-recipient errors, not
// fatal conditions.
type Notifier interface {
	SendText(chatID int64, text string) error
	SendPhoto(chatID int64, fileID, caption string) error
	SendLocation(chatID int64, lat, lng float64) error
}

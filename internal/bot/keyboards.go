package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// Inline buttons carry raw callback payloads: the moderation and payment
// protocol parses them as verb[_subverb]_identifier strings.

func (b *Bot) mainMenuKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "🚗 Haydovchi bo'lish", Data: "role_driver"}},
		{{Text: "🚶 Yo'lovchi bo'lish", Data: "role_passenger"}},
		{{Text: fmt.Sprintf("💰 Haydovchilar ro'yxati (%s so'm)", b.amount()), Data: "show_drivers"}},
		{{Text: "📞 Admin", URL: fmt.Sprintf("tg://user?id=%d", b.cfg.Telegram.AdminID)}},
	}}
}

func carTypeKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "Spark ⚡️", Data: "car_type_Spark"}, {Text: "Cobalt", Data: "car_type_Cobalt"}},
		{{Text: "Gentra", Data: "car_type_Gentra"}, {Text: "Lacetti", Data: "car_type_Lacetti"}},
		{{Text: "Nexia", Data: "car_type_Nexia"}, {Text: "Malibu", Data: "car_type_Malibu"}},
		{{Text: "Boshqa", Data: "car_type_Boshqa"}},
	}}
}

func carPreferenceKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "Iqtisodiy 💸", Data: "car_pref_Iqtisodiy"}, {Text: "Komfort 🛋️", Data: "car_pref_Komfort"}},
		{{Text: "Spark", Data: "car_pref_Spark"}, {Text: "Cobalt", Data: "car_pref_Cobalt"}},
		{{Text: "Gentra", Data: "car_pref_Gentra"}, {Text: "Farqi yo'q", Data: "car_pref_Farqi yoq"}},
	}}
}

func timeKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "Hozir 🕐", Data: "time_Hozir"}, {Text: "30 daqiqadan keyin", Data: "time_30 daqiqadan keyin"}},
		{{Text: "1 soatdan keyin", Data: "time_1 soatdan keyin"}, {Text: "Bugun kechqurun", Data: "time_Bugun kechqurun"}},
		{{Text: "Ertaga ertalab", Data: "time_Ertaga ertalab"}},
		{{Text: "Boshqa vaqt", Data: "time_Boshqa"}},
	}}
}

func paymentMethodsKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "💳 Bank karta", Data: "pay_card"}},
		{{Text: "📱 Click", Data: "pay_click"}},
		{{Text: "💵 Payme", Data: "pay_payme"}},
		{{Text: "❌ Bekor qilish", Data: "cancel_payment"}},
	}}
}

func confirmPaymentKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "✅ To'lov qildim", Data: "confirm_payment"}},
		{{Text: "❌ Bekor qilish", Data: "cancel_payment"}},
	}}
}

func paymentModerationKeyboard(paymentID string) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{
			{Text: "✅ Tasdiqlash", Data: "verify_" + paymentID},
			{Text: "❌ Rad etish", Data: "reject_" + paymentID},
		},
	}}
}

func driverModerationKeyboard(appID string) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{
			{Text: "✅ Tasdiqlash", Data: "admin_verify_driver_" + appID},
			{Text: "❌ Rad etish", Data: "admin_reject_driver_" + appID},
		},
	}}
}

func contactRequestKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		ReplyKeyboard: [][]tele.ReplyButton{
			{{Text: "📱 Telefon raqamni yuborish", Contact: true}},
		},
	}
}

func locationRequestKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		ReplyKeyboard: [][]tele.ReplyButton{
			{{Text: "📍 Borish joyini yuborish", Location: true}},
		},
	}
}

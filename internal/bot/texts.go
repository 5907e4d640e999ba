package bot

import (
	"fmt"
	"strings"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/services"
)

const (
	askNameText        = "Iltimos, ismingizni kiriting:"
	askPhoneText       = "Telefon raqamingizni yuboring:"
	askCarTypeText     = "Mashina turini tanlang:"
	askPriceText       = "Bir safar narxini kiriting (masalan: 150000 soʻm):"
	askPhotoText       = "🚗 Mashinangiz rasmini yuboring:"
	retryPhotoText     = "Iltimos, faqat rasm yuboring!"
	askDepartureText   = "📍 Qayerdan joʻnamoqchisiz?\n\nMasalan: \"Toshkent, Chilanzor\" yoki \"Samarqand shahar\" deb yozing."
	askDestinationText = "📍 Borish joyingizni yuboring:"
	askCarPrefText     = "Qanday mashina afzal koʻrasiz?"
	askTimeText        = "Qachon joʻnamoqchisiz?"
	askTimeManualText  = "Vaqtni oʻzingiz yozing (masalan: 15:30, ertaga soat 10:00):"

	adminPanelText = "👑 *Assalomu alaykum, Admin!*\n\nAdmin panelga xush kelibsiz. Quyidagi komandalar mavjud:\n/stats - Statistika\n/payments - To'lovlar ro'yxati\n/broadcast - Xabar yuborish\n/users - Foydalanuvchilar"

	helpText = "🚕 *Ride Sharing Bot - Yordam*\n\n/start - Botni ishga tushirish\n/myapp - Ariza holatini ko'rish\n/help - Yordam\n\n💰 *Xizmat narxi:* 5,000 so'm (yo'lovchidan)\n⏱️ *Access muddati:* 24 soat\n👥 *Haydovchilar:* Bepul ro'yxatdan o'tadi\n\n📞 *Admin:* @username (murojaat uchun)"

	registerFirstText = "⚠️ *Avval ro'yxatdan o'ting!*\n\nHaydovchilar ro'yxatini ko'rish uchun avval botdan foydalanish uchun ro'yxatdan o'ting. Quyidagi tugmalardan birini tanlang:"

	sessionExpiredText = "⚠️ *Sessiya eskirgan.*\n\nIltimos, /start bilan boshqatdan boshlang."

	paymentCancelledText = "❌ *To'lov bekor qilindi.*\n\nBosh menyuga qaytish uchun /start ni bosing."

	sendScreenshotText = "✅ *To'lov qilganingizni bildirdingiz!*\n\nEndi to'lov screenshotini (skrinshot) yuboring.\nAdmin tekshirgach, sizga haydovchilar ro'yxati yuboriladi.\n\n📸 *Iltimos, rasm yuboring:*"

	screenshotReceivedText = "✅ *Screenshot qabul qilindi!*\n\nAdmin to'lovni tekshiryapti. Tasdiqlanganidan so'ng sizga haydovchilar ro'yxati yuboriladi.\n\n⏳ *Kuting...*"

	screenshotNotPhotoText = "⚠️ *Iltimos, screenshotni rasm shaklida yuboring!*\n\nTelefoningizdan to'lov qilganingizni ko'rsatadigan rasmni yuboring."

	noApplicationText = "📭 Siz hali ariza topshirmagansiz.\nAriza topshirish uchun /start ni bosing."

	paymentVerifiedAdminText = "✅ *To'lov tasdiqlandi!*\n\nFoydalanuvchiga haydovchilar ro'yxati yuborildi."
	paymentRejectedAdminText = "❌ *To'lov rad etildi!*\n\nFoydalanuvchiga rad etilganligi haqida xabar yuborildi."

	driverVerifiedAdminText = "✅ *Ariza tasdiqlandi!*\n\nHaydovchi profili kanalda e'lon qilindi."
	driverRejectedAdminText = "❌ *Ariza rad etildi!*\n\nHaydovchiga rad etilganligi haqida xabar yuborildi."

	notAdminAlert         = "Siz admin emassiz!"
	notFoundAlert         = "Yozuv topilmadi!"
	alreadyModeratedAlert = "Bu yozuv allaqachon ko'rib chiqilgan!"

	broadcastUsageText = "📢 *Xabar yuborish*\n\nFoydalanish: /broadcast <xabar>\nMasalan: /broadcast Yangi yangilik!"
)

func welcomeText(firstName string, amount string) string {
	return fmt.Sprintf("👋 *Assalomu alaykum, %s!*\n\n🚖 *Ride Sharing Bot* ga xush kelibsiz!\n\n📌 *Bot qanday ishlaydi:*\n1. Haydovchi yoki yo'lovchi sifatida ro'yxatdan o'ting\n2. Yo'lovchi bo'lsangiz, haydovchilar ro'yxatini ko'rish uchun %s so'm to'lang\n3. Haydovchi bilan bog'lanib, safar haqida kelishing\n\n💰 *Xizmat narxi:* %s so'm (yo'lovchidan)\n⏱️ *24 soat davomida cheksiz haydovchilarni ko'rishingiz mumkin*\n\nQuyidagi tugmalardan birini tanlang:",
		firstName, amount, amount)
}

func driverSubmittedText(firstName, appID, amount string) string {
	return fmt.Sprintf("✅ Rahmat, %s!\nArizangiz qabul qilindi (ID: %s)\nAdmin tekshirgach, profilingiz kanalda e'lon qilinadi.\n\n💰 Yo'lovchilar sizni ko'rish uchun %s so'm to'laydi", firstName, appID, amount)
}

func passengerSubmittedText(firstName, appID, amount string) string {
	return fmt.Sprintf("✅ Rahmat, %s!\nYangi arizangiz qabul qilindi (ID: %s)\n\n🚗 *Haydovchilar ro'yxatini ko'rish uchun %s so'm to'lang*\n24 soat davomida cheksiz haydovchilarni ko'rishingiz mumkin!\n\nTo'lov qilish uchun:", firstName, appID, amount)
}

func missingFieldsText(fields []string) string {
	return fmt.Sprintf("⚠️ *Ariza toʻliq emas!*\n\nQuyidagi maʼlumotlar yetishmayapti: %s\n\nIltimos, /start bilan boshqatdan boshlang.", strings.Join(fields, ", "))
}

func driverApplicationCaption(app models.DriverApplication) string {
	return fmt.Sprintf("🚗 YANGI HAYDOVCHI ARIZASI #%s\n\nIsm: %s\nTelefon: %s\nMashina: %s\nNarx: %s\nUser ID: %d\n\nTasdiqlang yoki rad eting:",
		app.AppID, app.FirstName, app.Phone, app.CarType, app.Price, app.UserID)
}

func paymentNotifyCaption(rec models.PaymentRecord, firstName, amount string) string {
	return fmt.Sprintf("🔄 *Yangi to'lov tasdiqlanmoqda!*\n\n👤 *Foydalanuvchi:* %s\n🆔 *ID:* %d\n💰 *Summa:* %s so'm\n💳 *Usul:* %s\n📅 *Vaqt:* %s\n🔢 *To'lov ID:* %s\n\n*Tasdiqlang yoki rad eting:*",
		firstName, rec.UserID, amount, rec.Method, rec.CreatedAt.Format("15:04 02.01.2006"), rec.ID)
}

func paymentPromptText(amount, cardNumber, cardHolder, clickPhone, paymeUsername string) string {
	return fmt.Sprintf("💰 *Haydovchilar ro'yxati - %s so'm*\n\nTo'lov usulini tanlang:\n\n💳 *Bank karta:* %s (%s)\n📱 *Click:* %s\n💵 *Payme:* %s\n\n💡 *Eslatma:* To'lov qilganingizdan so'ng screenshot yuboring",
		amount, cardNumber, cardHolder, clickPhone, paymeUsername)
}

func paymentInstructionsText(method, details, amount string) string {
	return fmt.Sprintf("%s\n\n💰 *To'lov summasi:* %s so'm\n\n💡 *Ko'rsatma:*\n1. Yuqoridagi raqamga %s so'm o'tkazing\n2. To'lovni tasdiqlovchi screenshot oling\n3. '✅ To'lov qildim' tugmasini bosing\n4. Screenshotni yuboring\n\nAdmin 5-10 daqiqada tekshirib, ro'yxatni yuboradi.",
		details, amount, amount)
}

func myDriverAppText(app models.DriverApplication) string {
	return fmt.Sprintf("🚗 *Sizning haydovchi arizangiz* (%s)\n\n👤 Ism: %s\n📞 Telefon: %s\n🚘 Mashina: %s\n💰 Narx: %s\n📊 Holat: %s\n📅 Sana: %s",
		app.AppID, app.FirstName, app.Phone, app.CarType, app.Price, statusLabel(app.Status), app.CreatedAt.Format("2006-01-02"))
}

func myPassengerAppText(app models.PassengerApplication) string {
	departure := app.Departure
	if departure == "" {
		departure = "Lokatsiya"
	}
	destination := app.Destination
	if destination == "" {
		destination = "Lokatsiya"
	}
	return fmt.Sprintf("🚶 *Sizning yoʻlovchi arizangiz* (%s)\n\n👤 Ism: %s\n📞 Telefon: %s\n📍 Joʻnash: %s\n🎯 Borish: %s\n🕐 Vaqt: %s\n🚗 Mashina: %s\n📅 Sana: %s",
		app.AppID, app.FirstName, app.Phone, departure, destination, app.DepartureTime, app.CarPreference, app.CreatedAt.Format("2006-01-02"))
}

func entitledText() string {
	return "✅ *Siz to'lov qilgansiz!*\n24 soat davomida haydovchilar ro'yxatini ko'rishingiz mumkin."
}

func payPromptText(amount string) string {
	return fmt.Sprintf("💰 *Haydovchilar ro'yxatini ko'rish uchun to'lov qiling!*\nSumma: %s so'm\n24 soat davomida cheksiz access", amount)
}

func statsText(s services.Stats, amount func(int) string, today string) string {
	return fmt.Sprintf("📊 *BOT STATISTIKASI*\n\n👥 *Umumiy foydalanuvchilar:* %d\n🚗 *Haydovchilar:* %d\n🚶 *Yo'lovchilar:* %d\n\n💰 *TO'LOVLAR:*\n• Umumiy to'lovlar: %d\n• Tasdiqlangan: %d\n• Daromad: %s so'm\n\n📅 *Bugun:* %s",
		s.Users, s.Drivers, s.Passengers, s.Payments, s.VerifiedPayments, amount(s.Revenue), today)
}

func broadcastReportText(success, failed int) string {
	return fmt.Sprintf("✅ *Xabar yuborildi!*\n\n✅ Muvaffaqiyatli: %d\n❌ Muvaffaqiyatsiz: %d", success, failed)
}

func formatPaymentLine(i int, rec models.PaymentRecord) string {
	emoji := "⏳"
	switch rec.Status {
	case models.StatusVerified:
		emoji = "✅"
	case models.StatusRejected:
		emoji = "❌"
	}
	return fmt.Sprintf("%d. %s %s\n   👤 User ID: %d\n   💰 %s so'm\n   💳 %s\n   📅 %s\n   📊 %s\n%s\n",
		i, emoji, rec.ID, rec.UserID, services.FormatAmount(rec.Amount), rec.Method,
		rec.CreatedAt.Format("2006-01-02 15:04"), rec.Status, strings.Repeat("   ―", 10))
}

func formatUsersHeader(total int) string {
	return fmt.Sprintf("👥 *FOYDALANUVCHILAR: %d ta*\n\n", total)
}

func formatUserLine(i int, u models.User) string {
	role := "🚶 Yo'lovchi"
	if u.Role == models.RoleDriver {
		role = "🚗 Haydovchi"
	}
	name := u.FirstName
	if name == "" {
		name = "Noma'lum"
	}
	phone := u.Phone
	if phone == "" {
		phone = "Yo'q"
	}
	return fmt.Sprintf("%d. %s\n   🆔 %d\n   %s\n   📞 %s\n%s\n", i, name, u.ID, role, phone, strings.Repeat("   ―", 8))
}

func formatUsersOverflow(n int) string {
	return fmt.Sprintf("\n... va yana %d ta foydalanuvchi", n)
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusVerified:
		return "✅ tasdiqlangan"
	case models.StatusRejected:
		return "❌ rad etilgan"
	default:
		return "⏳ kutilmoqda"
	}
}

package services

import (
	"fmt"
	"strings"

	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/repository"
)

// directoryLimit caps the listing at the first entries in insertion
// order; no ranking is applied.
const directoryLimit = 10

const noDriversText = "🚗 *Haydovchilar ro'yxati*\n\nHozircha faol haydovchilar yo'q. Biroz vaqt o'tgach qayta urinib ko'ring.\n\n✅ To'lovingiz qabul qilindi va saqlandi."

// Directory assembles and delivers the capped list of verified drivers to
// an entitled passenger
type Directory struct {
	repo     *repository.Repository
	notifier Notifier
	amount   int
}

// NewDirectory creates the directory publisher
func NewDirectory(repo *repository.Repository, notifier Notifier, amount int) *Directory {
	return &Directory{repo: repo, notifier: notifier, amount: amount}
}

// Listing returns the verified driver applications that make up the
// directory, oldest first, capped at the listing limit
func (d *Directory) Listing() []models.DriverApplication {
	var out []models.DriverApplication
	for _, app := range d.repo.DriverApplications() {
		if app.Status != models.StatusVerified {
			continue
		}
		out = append(out, app)
		if len(out) == directoryLimit {
			break
		}
	}
	return out
}

// Deliver sends the formatted directory to the user. An empty directory
// produces the "no drivers yet" message, never an error.
func (d *Directory) Deliver(userID int64) error {
	drivers := d.Listing()
	if len(drivers) == 0 {
		return d.notifier.SendText(userID, noDriversText)
	}
	return d.notifier.SendText(userID, d.format(drivers))
}

func (d *Directory) format(drivers []models.DriverApplication) string {
	var b strings.Builder
	b.WriteString("🚗 *TOP HAYDOVCHILAR*\n\n")
	fmt.Fprintf(&b, "💰 *To'lov qilganingiz uchun rahmat! (%s so'm)*\n\n", FormatAmount(d.amount))

	for i, drv := range drivers {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, drv.FirstName)
		fmt.Fprintf(&b, "   🚘 %s\n", drv.CarType)
		fmt.Fprintf(&b, "   💰 %s\n", drv.Price)
		fmt.Fprintf(&b, "   📞 %s\n\n", drv.Phone)
	}

	b.WriteString("📞 *Haydovchi bilan bog'laning va safar haqida kelishing*\n\n")
	b.WriteString("⏱️ *24 soat davomida yangi haydovchilar qo'shilganda sizga xabar yuboriladi*")
	return b.String()
}

// FormatAmount renders an amount with thousands separators, e.g. 5,000
func FormatAmount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

package services

import (
	"github.com/alibekshomurotov/Bot/internal/models"
	"github.com/alibekshomurotov/Bot/internal/repository"
)

// Stats is the aggregate snapshot behind the admin /stats command
type Stats struct {
	Users            int
	Drivers          int
	Passengers       int
	Payments         int
	VerifiedPayments int
	Revenue          int
}

// Reports produces the admin views over the tables
type Reports struct {
	repo   *repository.Repository
	amount int
}

// NewReports creates the admin reporting service
func NewReports(repo *repository.Repository, amount int) *Reports {
	return &Reports{repo: repo, amount: amount}
}

// Stats collects aggregate counts and revenue
func (r *Reports) Stats() Stats {
	s := Stats{
		Users:      r.repo.UserCount(),
		Drivers:    len(r.repo.DriverApplications()),
		Passengers: len(r.repo.PassengerApplications()),
	}
	for _, rec := range r.repo.AllPayments() {
		s.Payments++
		if rec.Status == models.StatusVerified {
			s.VerifiedPayments++
			s.Revenue += r.amount
		}
	}
	return s
}

// RecentPayments returns the last few payment records of every user, for
// the admin ledger view
func (r *Reports) RecentPayments() []models.PaymentRecord {
	const perUser = 5

	var out []models.PaymentRecord
	var userID int64
	var run []models.PaymentRecord
	flush := func() {
		if len(run) > perUser {
			run = run[len(run)-perUser:]
		}
		out = append(out, run...)
		run = nil
	}
	for _, rec := range r.repo.AllPayments() {
		if rec.UserID != userID && run != nil {
			flush()
		}
		userID = rec.UserID
		run = append(run, rec)
	}
	flush()
	return out
}

// UsersPage returns the first page of users and the total count
func (r *Reports) UsersPage() ([]models.User, int) {
	const pageSize = 10

	users := r.repo.Users()
	total := len(users)
	if len(users) > pageSize {
		users = users[:pageSize]
	}
	return users, total
}

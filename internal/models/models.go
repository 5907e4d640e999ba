package models

import "time"

// Role is a user's marketplace role. It is set once at the first completed
// application and never overwritten afterwards.
type Role string

const (
	RoleUnset     Role = ""
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// Status is the moderation status of a driver application or a payment.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Location holds coordinates shared through the chat.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// User accumulates fields as the registration dialogue progresses.
// Keyed by the Telegram user id. There is no deletion path.
type User struct {
	ID                  int64     `json:"id"`
	FirstName           string    `json:"first_name,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	Role                Role      `json:"role,omitempty"`
	CarType             string    `json:"car_type,omitempty"`
	Price               string    `json:"price,omitempty"`
	CarPhoto            string    `json:"car_photo,omitempty"`
	CarPreference       string    `json:"car_preference,omitempty"`
	Departure           string    `json:"departure,omitempty"`
	Destination         string    `json:"destination,omitempty"`
	DepartureLocation   *Location `json:"departure_location,omitempty"`
	DestinationLocation *Location `json:"destination_location,omitempty"`
	DepartureTime       string    `json:"departure_time,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// DriverApplication is a completed driver registration awaiting moderation.
type DriverApplication struct {
	AppID      string     `json:"app_id"`
	UserID     int64      `json:"user_id"`
	FirstName  string     `json:"first_name"`
	Phone      string     `json:"phone"`
	CarType    string     `json:"car_type"`
	Price      string     `json:"price"`
	CarPhoto   string     `json:"car_photo,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Status     Status     `json:"status"`
	VerifiedBy int64      `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	RejectedBy int64      `json:"rejected_by,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}

// PassengerApplication is a submitted ride request. It has no status:
// existence alone represents the request, and the most recently created one
// is the user's current application.
type PassengerApplication struct {
	AppID               string    `json:"app_id"`
	UserID              int64     `json:"user_id"`
	FirstName           string    `json:"first_name"`
	Phone               string    `json:"phone"`
	Departure           string    `json:"departure,omitempty"`
	Destination         string    `json:"destination,omitempty"`
	DepartureLocation   *Location `json:"departure_location,omitempty"`
	DestinationLocation *Location `json:"destination_location,omitempty"`
	CarPreference       string    `json:"car_preference"`
	DepartureTime       string    `json:"departure_time"`
	CreatedAt           time.Time `json:"created_at"`
}

// PaymentRecord is one payment attempt. Appended to the payer's ordered
// list; never mutated except for the status transition and its stamps.
type PaymentRecord struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Amount     int        `json:"amount"`
	Method     string     `json:"method"`
	Status     Status     `json:"status"`
	Screenshot string     `json:"screenshot,omitempty"`
	VerifiedBy int64      `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	RejectedBy int64      `json:"rejected_by,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}

// DialogState names the step a registration dialogue is waiting on.
type DialogState string

const (
	StateIdle                DialogState = ""
	StateAwaitingName        DialogState = "awaiting_name"
	StateAwaitingPhone       DialogState = "awaiting_phone"
	StateAwaitingCarType     DialogState = "awaiting_car_type"
	StateAwaitingPrice       DialogState = "awaiting_price"
	StateAwaitingPhoto       DialogState = "awaiting_photo"
	StateAwaitingDeparture   DialogState = "awaiting_departure"
	StateAwaitingDestination DialogState = "awaiting_destination"
	StateAwaitingCarPref     DialogState = "awaiting_car_preference"
	StateAwaitingTime        DialogState = "awaiting_time"
	StateAwaitingTimeManual  DialogState = "awaiting_time_manual"
)

// Dialog is the per-user in-progress conversation record. Registration
// steps and the payment screenshot intake are tracked independently so a
// payment can start right after a passenger application completes.
type Dialog struct {
	State              DialogState
	Role               Role
	AwaitingScreenshot bool
	PaymentMethod      string
	UpdatedAt          time.Time
}

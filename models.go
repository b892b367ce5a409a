package concert

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BookingStatus is the booking lifecycle state
type BookingStatus = string

const (
	// BookingConfirmed is set on creation
	BookingConfirmed BookingStatus = "CONFIRMED"
	// BookingCancelled is set when the owner cancels
	BookingCancelled BookingStatus = "CANCELLED"
)

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Name          string     `bun:"name" json:"name,omitempty"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	Address       string     `bun:"address" json:"address,omitempty"`
	City          string     `bun:"city" json:"city,omitempty"`
	Country       string     `bun:"country" json:"country,omitempty"`
	Pincode       string     `bun:"pincode" json:"pincode,omitempty"`
	Company       string     `bun:"company" json:"company,omitempty"`
	Website       string     `bun:"website" json:"website,omitempty"`
	ProfilePhoto  string     `bun:"profile_photo" json:"profile_photo,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Event is an organizer-owned concert listing. The organizer is fixed at
// creation and never transferred.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:evt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Category      string     `bun:"category" json:"category,omitempty"`
	Location      string     `bun:"location" json:"location,omitempty"`
	Address       string     `bun:"address" json:"address,omitempty"`
	City          string     `bun:"city" json:"city,omitempty"`
	Country       string     `bun:"country" json:"country,omitempty"`
	PersonLimit   int        `bun:"person_limit" json:"person_limit,omitempty"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	StartDate     time.Time  `bun:"start_date,notnull" json:"start_date,omitempty"`
	EndDate       time.Time  `bun:"end_date,notnull" json:"end_date,omitempty"`
	TicketPrice   float64    `bun:"ticket_price" json:"ticket_price,omitempty"`
	OrganizerID   uuid.UUID  `bun:"organizer_id,notnull,type:uuid" json:"organizer_id,omitempty"`
	Organizer     *User      `bun:"rel:belongs-to,join:organizer_id=id" json:"organizer,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// OwnerUsername returns the organizer's username for ownership checks.
func (e *Event) OwnerUsername() string {
	if e == nil || e.Organizer == nil {
		return ""
	}
	return e.Organizer.Username
}

// Booking ties a user to an event with a quantity and a computed price.
type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:bkg"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID     `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User         `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	EventID       uuid.UUID     `bun:"event_id,notnull,type:uuid" json:"event_id,omitempty"`
	Event         *Event        `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
	Quantity      int           `bun:"quantity,notnull" json:"quantity,omitempty"`
	TotalPrice    float64       `bun:"total_price" json:"total_price,omitempty"`
	Status        BookingStatus `bun:"status,notnull" json:"status,omitempty"`
	BookingDate   time.Time     `bun:"booking_date,notnull" json:"booking_date,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time    `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// OwnerUsername returns the booking creator's username for ownership checks.
func (b *Booking) OwnerUsername() string {
	if b == nil || b.User == nil {
		return ""
	}
	return b.User.Username
}

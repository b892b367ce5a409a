package concert

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// BookingStore is the slice of the bookings repository the booking service
// needs.
type BookingStore interface {
	GetWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	Create(ctx context.Context, record *Booking, criteria ...repository.InsertCriteria) (*Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error
}

var _ BookingStore = (Bookings)(nil)

// EventLookup resolves the event being booked.
type EventLookup interface {
	GetWithOrganizer(ctx context.Context, id uuid.UUID) (*Event, error)
}

var _ EventLookup = (Events)(nil)

// BookingService owns the booking lifecycle. Every operation requires a
// resolved principal; bookings are only ever visible to the user that
// placed them.
type BookingService struct {
	bookings BookingStore
	events   EventLookup
	users    OrganizerLookup
	logger   Logger
}

func NewBookingService(bookings BookingStore, events EventLookup, users OrganizerLookup, logger Logger) *BookingService {
	if logger == nil {
		logger = defLogger{}
	}
	return &BookingService{
		bookings: bookings,
		events:   events,
		users:    users,
		logger:   logger,
	}
}

// CreateBooking books quantity seats on an event for the principal. The
// total is computed server side from the event's ticket price; client
// supplied prices are never trusted.
func (s *BookingService) CreateBooking(ctx context.Context, principal string, eventID uuid.UUID, quantity int) (*Booking, error) {
	if quantity <= 0 {
		return nil, errors.New("Quantity must be at least 1", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	user, err := s.users.GetByUsername(ctx, principal)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("user")
		}
		return nil, err
	}

	event, err := s.events.GetWithOrganizer(ctx, eventID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("event")
		}
		return nil, err
	}

	booking := &Booking{
		UserID:      user.ID,
		EventID:     event.ID,
		Quantity:    quantity,
		TotalPrice:  event.TicketPrice * float64(quantity),
		Status:      BookingConfirmed,
		BookingDate: time.Now(),
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	created.User = user
	created.Event = event

	s.logger.Info("created booking", "id", created.ID, "event", event.ID, "user", principal)
	return created, nil
}

// GetBooking loads a booking the principal owns.
func (s *BookingService) GetBooking(ctx context.Context, principal string, id uuid.UUID) (*Booking, error) {
	return s.ownedBooking(ctx, principal, id)
}

// UserBookings lists the principal's bookings, most recent first.
func (s *BookingService) UserBookings(ctx context.Context, principal string) ([]*Booking, error) {
	user, err := s.users.GetByUsername(ctx, principal)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("user")
		}
		return nil, err
	}
	return s.bookings.ListByUser(ctx, user.ID)
}

// CancelBooking flips a booking the principal owns to cancelled. Cancelling
// twice is a no-op failure with a validation category.
func (s *BookingService) CancelBooking(ctx context.Context, principal string, id uuid.UUID) (*Booking, error) {
	booking, err := s.ownedBooking(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == BookingCancelled {
		return nil, errors.New("Booking is already cancelled", errors.CategoryConflict).
			WithCode(errors.CodeConflict)
	}

	if err := s.bookings.UpdateStatus(ctx, id, BookingCancelled); err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("booking")
		}
		return nil, err
	}

	booking.Status = BookingCancelled
	s.logger.Info("cancelled booking", "id", id, "user", principal)
	return booking, nil
}

// ownedBooking loads the booking and enforces ownership, distinguishing a
// missing record from one owned by someone else.
func (s *BookingService) ownedBooking(ctx context.Context, principal string, id uuid.UUID) (*Booking, error) {
	booking, err := s.bookings.GetWithRelations(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("booking")
		}
		return nil, err
	}

	if err := AuthorizeOwnership("booking", booking, principal); err != nil {
		return nil, err
	}

	return booking, nil
}

package concert

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// EventCatalog is the slice of the events repository the event service needs.
type EventCatalog interface {
	GetWithOrganizer(ctx context.Context, id uuid.UUID) (*Event, error)
	ListUpcoming(ctx context.Context, after time.Time, limit, offset int) ([]*Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*Event, error)
	Create(ctx context.Context, record *Event, criteria ...repository.InsertCriteria) (*Event, error)
	Update(ctx context.Context, record *Event, criteria ...repository.UpdateCriteria) (*Event, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

var _ EventCatalog = (Events)(nil)

// OrganizerLookup resolves a principal to its account record.
type OrganizerLookup interface {
	GetByUsername(ctx context.Context, username string, criteria ...repository.SelectCriteria) (*User, error)
}

var _ OrganizerLookup = (Users)(nil)

// EventInput carries the writable event fields.
type EventInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	Address     string
	City        string
	Country     string
	PersonLimit int
	Phone       string
	StartDate   time.Time
	EndDate     time.Time
	TicketPrice float64
}

// EventService owns the event lifecycle. Reads are open to anonymous
// callers; every mutation is restricted to the organizer that created the
// event.
type EventService struct {
	events EventCatalog
	users  OrganizerLookup
	logger Logger
}

func NewEventService(events EventCatalog, users OrganizerLookup, logger Logger) *EventService {
	if logger == nil {
		logger = defLogger{}
	}
	return &EventService{
		events: events,
		users:  users,
		logger: logger,
	}
}

// CreateEvent registers a new event organized by the principal.
func (s *EventService) CreateEvent(ctx context.Context, principal string, input EventInput) (*Event, error) {
	if err := validateEventDates(input); err != nil {
		return nil, err
	}

	organizer, err := s.users.GetByUsername(ctx, principal)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("user")
		}
		return nil, err
	}

	event := &Event{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Address:     input.Address,
		City:        input.City,
		Country:     input.Country,
		PersonLimit: input.PersonLimit,
		Phone:       input.Phone,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		TicketPrice: input.TicketPrice,
		OrganizerID: organizer.ID,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	created.Organizer = organizer

	s.logger.Info("created event", "id", created.ID, "organizer", principal)
	return created, nil
}

// GetEvent loads a single event. No identity is required to read.
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.events.GetWithOrganizer(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("event")
		}
		return nil, err
	}
	return event, nil
}

// UpcomingEvents lists events that have not started yet, soonest first.
func (s *EventService) UpcomingEvents(ctx context.Context, limit, offset int) ([]*Event, error) {
	return s.events.ListUpcoming(ctx, time.Now(), limit, offset)
}

// EventsForOrganizer lists the principal's own events.
func (s *EventService) EventsForOrganizer(ctx context.Context, principal string) ([]*Event, error) {
	organizer, err := s.users.GetByUsername(ctx, principal)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("user")
		}
		return nil, err
	}
	return s.events.ListByOrganizer(ctx, organizer.ID)
}

// UpdateEvent applies the input to an event the principal organizes.
func (s *EventService) UpdateEvent(ctx context.Context, principal string, id uuid.UUID, input EventInput) (*Event, error) {
	if err := validateEventDates(input); err != nil {
		return nil, err
	}

	event, err := s.ownedEvent(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Category = input.Category
	event.Location = input.Location
	event.Address = input.Address
	event.City = input.City
	event.Country = input.Country
	event.PersonLimit = input.PersonLimit
	event.Phone = input.Phone
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	event.TicketPrice = input.TicketPrice

	return s.events.Update(ctx, event)
}

// DeleteEvent removes an event the principal organizes.
func (s *EventService) DeleteEvent(ctx context.Context, principal string, id uuid.UUID) error {
	if _, err := s.ownedEvent(ctx, principal, id); err != nil {
		return err
	}

	if err := s.events.DeleteByID(ctx, id); err != nil {
		if repository.IsRecordNotFound(err) {
			return NewNotFoundError("event")
		}
		return err
	}

	s.logger.Info("deleted event", "id", id, "organizer", principal)
	return nil
}

// ownedEvent loads the event and enforces that the principal organizes it.
// A missing record and a record owned by someone else produce distinct
// failures so callers can answer 404 vs 403.
func (s *EventService) ownedEvent(ctx context.Context, principal string, id uuid.UUID) (*Event, error) {
	event, err := s.events.GetWithOrganizer(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, NewNotFoundError("event")
		}
		return nil, err
	}

	if err := AuthorizeOwnership("event", event, principal); err != nil {
		return nil, err
	}

	return event, nil
}

func validateEventDates(input EventInput) error {
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return errors.New("Start and end dates are required", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
	if input.EndDate.Before(input.StartDate) {
		return errors.New("End date must be after start date", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
	return nil
}

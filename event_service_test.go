package concert_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	concert "github.com/MorningMores/concert-backend"
)

// MockEventCatalog implements concert.EventCatalog for testing
type MockEventCatalog struct {
	mock.Mock
}

func (m *MockEventCatalog) GetWithOrganizer(ctx context.Context, id uuid.UUID) (*concert.Event, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*concert.Event)
	return event, args.Error(1)
}

func (m *MockEventCatalog) ListUpcoming(ctx context.Context, after time.Time, limit, offset int) ([]*concert.Event, error) {
	args := m.Called(ctx, after, limit, offset)
	records, _ := args.Get(0).([]*concert.Event)
	return records, args.Error(1)
}

func (m *MockEventCatalog) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*concert.Event, error) {
	args := m.Called(ctx, organizerID)
	records, _ := args.Get(0).([]*concert.Event)
	return records, args.Error(1)
}

func (m *MockEventCatalog) Create(ctx context.Context, record *concert.Event, criteria ...repository.InsertCriteria) (*concert.Event, error) {
	args := m.Called(ctx, record)
	event, _ := args.Get(0).(*concert.Event)
	return event, args.Error(1)
}

func (m *MockEventCatalog) Update(ctx context.Context, record *concert.Event, criteria ...repository.UpdateCriteria) (*concert.Event, error) {
	args := m.Called(ctx, record)
	event, _ := args.Get(0).(*concert.Event)
	return event, args.Error(1)
}

func (m *MockEventCatalog) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validEventInput() concert.EventInput {
	start := time.Now().Add(48 * time.Hour)
	return concert.EventInput{
		Title:       "Summer Jam",
		Location:    "Riverside Arena",
		StartDate:   start,
		EndDate:     start.Add(4 * time.Hour),
		TicketPrice: 45,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	alice := &concert.User{ID: uuid.New(), Username: "alice"}

	t.Run("creates an event for the principal", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByUsername", ctx, "alice").Return(alice, nil)

		events := &MockEventCatalog{}
		events.On("Create", ctx, mock.AnythingOfType("*concert.Event")).
			Return(&concert.Event{ID: uuid.New(), Title: "Summer Jam", OrganizerID: alice.ID}, nil)

		service := concert.NewEventService(events, users, nil)

		event, err := service.CreateEvent(ctx, "alice", validEventInput())

		assert.NoError(t, err)
		assert.Equal(t, "Summer Jam", event.Title)
		assert.Equal(t, "alice", event.OwnerUsername())

		created := events.Calls[0].Arguments.Get(1).(*concert.Event)
		assert.Equal(t, alice.ID, created.OrganizerID)
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		events := &MockEventCatalog{}
		users := &MockUserAccounts{}

		service := concert.NewEventService(events, users, nil)

		input := validEventInput()
		input.EndDate = input.StartDate.Add(-time.Hour)

		event, err := service.CreateEvent(ctx, "alice", input)

		assert.Nil(t, event)
		assert.ErrorContains(t, err, "End date must be after start date")
		events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing dates", func(t *testing.T) {
		service := concert.NewEventService(&MockEventCatalog{}, &MockUserAccounts{}, nil)

		input := validEventInput()
		input.StartDate = time.Time{}

		event, err := service.CreateEvent(ctx, "alice", input)

		assert.Nil(t, event)
		assert.ErrorContains(t, err, "dates are required")
	})
}

func TestEventService_GetEvent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("loads an event for anyone", func(t *testing.T) {
		events := &MockEventCatalog{}
		events.On("GetWithOrganizer", ctx, id).
			Return(&concert.Event{ID: id, Title: "Summer Jam"}, nil)

		service := concert.NewEventService(events, &MockUserAccounts{}, nil)

		event, err := service.GetEvent(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, "Summer Jam", event.Title)
	})

	t.Run("maps a missing record to not found", func(t *testing.T) {
		events := &MockEventCatalog{}
		events.On("GetWithOrganizer", ctx, id).Return(nil, repository.NewRecordNotFound())

		service := concert.NewEventService(events, &MockUserAccounts{}, nil)

		event, err := service.GetEvent(ctx, id)

		assert.Nil(t, event)
		assert.True(t, concert.IsNotFoundError(err))
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	stored := &concert.Event{
		ID:        id,
		Title:     "Summer Jam",
		Organizer: &concert.User{Username: "alice"},
	}

	t.Run("updates an event the principal organizes", func(t *testing.T) {
		events := &MockEventCatalog{}
		events.On("GetWithOrganizer", ctx, id).Return(stored, nil)
		events.On("Update", ctx, mock.AnythingOfType("*concert.Event")).
			Return(&concert.Event{ID: id, Title: "Winter Jam"}, nil)

		service := concert.NewEventService(events, &MockUserAccounts{}, nil)

		input := validEventInput()
		input.Title = "Winter Jam"

		event, err := service.UpdateEvent(ctx, "alice", id, input)

		assert.NoError(t, err)
		assert.Equal(t, "Winter Jam", event.Title)
	})

	t.Run("denies another organizer with an unauthorized error", func(t *testing.T) {
		events := &MockEventCatalog{}
		events.On("GetWithOrganizer", ctx, id).Return(stored, nil)

		service := concert.NewEventService(events, &MockUserAccounts{}, nil)

		event, err := service.UpdateEvent(ctx, "carol", id, validEventInput())

		assert.Nil(t, event)
		assert.True(t, concert.IsUnauthorizedAccessError(err))
		events.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("reports a missing event as not found", func(t *testing.T) {
		events := &MockEventCatalog{}
		events.On("GetWithOrganizer", ctx, id).Return(nil, repository.NewRecordNotFound())

		service := concert.NewEventService(events, &MockUserAccounts{}, nil)

		event, err := service.UpdateEvent(ctx, "alice", id, validEventInput())

		assert.Nil(t, event)
		assert.True(t, concert.IsNotFoundError(err))
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	stored := &concert.Event{
		ID:        id,
		Organizer: &concert.User{Username: "alice"},
	}

	t.Run("deletes an event the principal organizes", func(t *testing.T) {
		events := &MockEventCatalog{}
		events.On("GetWithOrganizer", ctx, id).Return(stored, nil)
		events.On("DeleteByID", ctx, id).Return(nil)

		service := concert.NewEventService(events, &MockUserAccounts{}, nil)

		assert.NoError(t, service.DeleteEvent(ctx, "alice", id))
		events.AssertExpectations(t)
	})

	t.Run("denies another organizer", func(t *testing.T) {
		events := &MockEventCatalog{}
		events.On("GetWithOrganizer", ctx, id).Return(stored, nil)

		service := concert.NewEventService(events, &MockUserAccounts{}, nil)

		err := service.DeleteEvent(ctx, "carol", id)

		assert.True(t, concert.IsUnauthorizedAccessError(err))
		events.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}

func TestEventService_EventsForOrganizer(t *testing.T) {
	ctx := context.Background()

	alice := &concert.User{ID: uuid.New(), Username: "alice"}

	t.Run("lists the principal's events", func(t *testing.T) {
		users := &MockUserAccounts{}
		users.On("GetByUsername", ctx, "alice").Return(alice, nil)

		events := &MockEventCatalog{}
		events.On("ListByOrganizer", ctx, alice.ID).
			Return([]*concert.Event{{Title: "Summer Jam"}}, nil)

		service := concert.NewEventService(events, users, nil)

		records, err := service.EventsForOrganizer(ctx, "alice")

		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

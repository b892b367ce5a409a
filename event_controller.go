package concert

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// EventController serves the event catalog. Listing and single reads are
// public; mutations require the organizer's identity.
type EventController struct {
	Events *EventService
	Logger Logger
}

func NewEventController(events *EventService, logger Logger) *EventController {
	if logger == nil {
		logger = defLogger{}
	}
	return &EventController{
		Events: events,
		Logger: logger,
	}
}

func (e *EventController) RegisterRoutes(router fiber.Router) {
	grp := router.Group("/events")
	grp.Get("/", e.Index)
	grp.Post("/", e.Create)
	grp.Get("/mine", e.Mine)
	grp.Get("/:id", e.Show)
	grp.Put("/:id", e.Update)
	grp.Delete("/:id", e.Delete)
}

// EventPayload is the writable portion of an event.
type EventPayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	PersonLimit int       `json:"person_limit"`
	Phone       string    `json:"phone"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TicketPrice float64   `json:"ticket_price"`
}

func (r EventPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Location, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.StartDate, validation.Required),
			validation.Field(&r.EndDate, validation.Required),
			validation.Field(&r.PersonLimit, validation.Min(0)),
			validation.Field(&r.TicketPrice, validation.Min(0.0)),
		)
	}, "Invalid event payload")
}

func (r EventPayload) input() EventInput {
	return EventInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		Address:     r.Address,
		City:        r.City,
		Country:     r.Country,
		PersonLimit: r.PersonLimit,
		Phone:       r.Phone,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TicketPrice: r.TicketPrice,
	}
}

// Index lists upcoming events. Anonymous callers are welcome.
func (e *EventController) Index(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	records, err := e.Events.UpcomingEvents(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

func (e *EventController) Show(c *fiber.Ctx) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, err := e.Events.GetEvent(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(event)
}

// Mine lists the events organized by the authenticated user.
func (e *EventController) Mine(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	records, err := e.Events.EventsForOrganizer(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

func (e *EventController) Create(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	payload := new(EventPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Unable to parse event payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	event, err := e.Events.CreateEvent(c.UserContext(), principal, payload.input())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

func (e *EventController) Update(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	id, err := eventID(c)
	if err != nil {
		return err
	}

	payload := new(EventPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Unable to parse event payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	event, err := e.Events.UpdateEvent(c.UserContext(), principal, id, payload.input())
	if err != nil {
		return err
	}

	return c.JSON(event)
}

func (e *EventController) Delete(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := e.Events.DeleteEvent(c.UserContext(), principal, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func eventID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryBadInput, "Invalid event id").
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

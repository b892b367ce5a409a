package concert

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// BookingController serves the booking lifecycle. Every route requires a
// resolved identity.
type BookingController struct {
	Bookings *BookingService
	Logger   Logger
}

func NewBookingController(bookings *BookingService, logger Logger) *BookingController {
	if logger == nil {
		logger = defLogger{}
	}
	return &BookingController{
		Bookings: bookings,
		Logger:   logger,
	}
}

func (b *BookingController) RegisterRoutes(router fiber.Router) {
	grp := router.Group("/bookings")
	grp.Get("/", b.Index)
	grp.Post("/", b.Create)
	grp.Get("/:id", b.Show)
	grp.Post("/:id/cancel", b.Cancel)
}

// BookingPayload is the booking creation request body.
type BookingPayload struct {
	EventID  string `json:"event_id"`
	Quantity int    `json:"quantity"`
}

func (r BookingPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.EventID, validation.Required, is.UUID),
			validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		)
	}, "Invalid booking payload")
}

func (b *BookingController) Index(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	records, err := b.Bookings.UserBookings(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

func (b *BookingController) Create(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	payload := new(BookingPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Unable to parse booking payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	eventID, err := uuid.Parse(payload.EventID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Invalid event id").
			WithCode(errors.CodeBadRequest)
	}

	booking, err := b.Bookings.CreateBooking(c.UserContext(), principal, eventID, payload.Quantity)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (b *BookingController) Show(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := b.Bookings.GetBooking(c.UserContext(), principal, id)
	if err != nil {
		return err
	}

	return c.JSON(booking)
}

func (b *BookingController) Cancel(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := b.Bookings.CancelBooking(c.UserContext(), principal, id)
	if err != nil {
		return err
	}

	return c.JSON(booking)
}

func bookingID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryBadInput, "Invalid booking id").
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

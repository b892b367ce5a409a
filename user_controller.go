package concert

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// UserController serves the authenticated user's profile.
type UserController struct {
	Auth   *AuthService
	Logger Logger
}

func NewUserController(auth *AuthService, logger Logger) *UserController {
	if logger == nil {
		logger = defLogger{}
	}
	return &UserController{
		Auth:   auth,
		Logger: logger,
	}
}

func (u *UserController) RegisterRoutes(router fiber.Router) {
	grp := router.Group("/users")
	grp.Get("/profile", u.ProfileShow)
	grp.Put("/profile", u.ProfileUpdate)
}

// ProfilePayload carries the editable profile fields.
type ProfilePayload struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode"`
	Company      string `json:"company"`
	Website      string `json:"website"`
	ProfilePhoto string `json:"profile_photo"`
}

func (r ProfilePayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Length(0, 200)),
			validation.Field(&r.Phone, validation.Length(0, 20)),
			validation.Field(&r.Website, is.URL),
		)
	}, "Invalid profile payload")
}

func (u *UserController) ProfileShow(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	user, err := u.Auth.Profile(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (u *UserController) ProfileUpdate(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	payload := new(ProfilePayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Unable to parse profile payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, err := u.Auth.UpdateProfile(c.UserContext(), principal, UpdateProfileInput{
		Name:         payload.Name,
		Phone:        payload.Phone,
		Address:      payload.Address,
		City:         payload.City,
		Country:      payload.Country,
		Pincode:      payload.Pincode,
		Company:      payload.Company,
		Website:      payload.Website,
		ProfilePhoto: payload.ProfilePhoto,
	})
	if err != nil {
		return err
	}

	return c.JSON(user)
}

package concert

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// RequestPrincipal returns the identity resolved for the request, if any.
func RequestPrincipal(c *fiber.Ctx) (string, bool) {
	return PrincipalFromContext(c.UserContext())
}

// ErrAuthenticationRequired rejects anonymous requests to guarded routes.
var ErrAuthenticationRequired = errors.New("Authentication required", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// AuthController serves registration, login, and the current identity.
type AuthController struct {
	Auth   *AuthService
	Logger Logger
}

func NewAuthController(auth *AuthService, logger Logger) *AuthController {
	if logger == nil {
		logger = defLogger{}
	}
	return &AuthController{
		Auth:   auth,
		Logger: logger,
	}
}

func (a *AuthController) RegisterRoutes(router fiber.Router) {
	grp := router.Group("/auth")
	grp.Post("/register", a.Register)
	grp.Post("/login", a.Login)
	grp.Get("/me", a.Me)
}

// RegisterPayload is the account creation request body.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r RegisterPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
			validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
			validation.Field(&r.Name, validation.Length(0, 200)),
		)
	}, "Invalid registration payload")
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Unable to parse registration payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	result, err := a.Auth.Register(c.UserContext(), RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// LoginPayload is the credential exchange request body. The identifier can
// be a username or an email address.
type LoginPayload struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r LoginPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Identifier, validation.Required),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Unable to parse login payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	result, err := a.Auth.Login(c.UserContext(), payload.Identifier, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Me reports the identity the resolver attached to the request.
func (a *AuthController) Me(c *fiber.Ctx) error {
	principal, ok := RequestPrincipal(c)
	if !ok {
		return ErrAuthenticationRequired
	}

	user, err := a.Auth.Profile(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

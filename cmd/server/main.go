package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	concert "github.com/MorningMores/concert-backend"
	"github.com/MorningMores/concert-backend/config"
	"github.com/MorningMores/concert-backend/middleware/identityware"
	"github.com/MorningMores/concert-backend/provider/cognito"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	repo   concert.RepositoryManager
	tokens concert.TokenService
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("concert"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithTokenService(app); err != nil {
		panic(err)
	}

	srv, keys := BuildServer(app)
	if keys != nil {
		defer keys.Close()
	}

	go func() {
		if err := srv.Listen(app.Config().GetServer().GetAddress()); err != nil {
			log.Fatal(err)
		}
	}()

	WaitExitSignal()

	if err := srv.Shutdown(); err != nil {
		app.GetLogger("server").Error("shutdown error", "error", err)
	}
}

func WithPersistence(ctx context.Context, app *App) error {
	pcfg := app.Config().GetPersistence()

	db, err := sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
	if err != nil {
		return err
	}

	persistence.RegisterModel((*concert.User)(nil))
	persistence.RegisterModel((*concert.Event)(nil))
	persistence.RegisterModel((*concert.Booking)(nil))

	client, err := persistence.New(pcfg, db, sqlitedialect.New())
	if err != nil {
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(concert.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = concert.NewRepositoryManager(client.DB())

	return app.repo.Validate()
}

func WithTokenService(app *App) error {
	tokens, err := concert.NewTokenServiceFromConfig(app.Config(), app.GetLogger("tokens"))
	if err != nil {
		return err
	}
	app.tokens = tokens
	return nil
}

// BuildServer wires the HTTP surface: the identity resolver runs on every
// request, controllers decide per route whether anonymous access is
// acceptable. The returned key set is nil when Cognito is not configured.
func BuildServer(app *App) (*fiber.App, *cognito.KeySet) {
	srv := fiber.New(fiber.Config{
		AppName:      "concert-backend",
		ErrorHandler: concert.NewErrorHandler(app.GetLogger("http")),
	})

	validators := []concert.TokenValidator{
		concert.TokenValidatorFunc(app.tokens.Validate),
	}

	var keys *cognito.KeySet
	if ccfg := app.Config().GetCognito(); ccfg.Enabled() {
		keys = cognito.NewKeySet(
			cognito.DefaultConfig(ccfg.GetRegion(), ccfg.GetUserPoolID()),
			app.GetLogger("cognito"),
		)
		validators = append(validators, cognito.NewTokenValidator(keys, app.GetLogger("cognito")))
	}

	srv.Use(identityware.New(identityware.Config{
		TokenValidator: concert.NewMultiTokenValidator(validators...),
		Logger:         app.GetLogger("identity"),
	}))

	authService := concert.NewAuthService(app.repo.Users(), app.tokens, app.GetLogger("auth"))
	eventService := concert.NewEventService(app.repo.Events(), app.repo.Users(), app.GetLogger("events"))
	bookingService := concert.NewBookingService(
		app.repo.Bookings(),
		app.repo.Events(),
		app.repo.Users(),
		app.GetLogger("bookings"),
	)

	api := srv.Group("/api")
	concert.NewAuthController(authService, app.GetLogger("auth:http")).RegisterRoutes(api)
	concert.NewUserController(authService, app.GetLogger("users:http")).RegisterRoutes(api)
	concert.NewEventController(eventService, app.GetLogger("events:http")).RegisterRoutes(api)
	concert.NewBookingController(bookingService, app.GetLogger("bookings:http")).RegisterRoutes(api)

	return srv, keys
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}

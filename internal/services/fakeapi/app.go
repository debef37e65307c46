package fakeapi

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/earlypay/internal/apiclient"
	"github.com/louisbranch/earlypay/internal/platform/logging"
	"github.com/louisbranch/earlypay/internal/platform/timeouts"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// NewApp builds the fiber app serving the auth endpoints from dir.
func NewApp(dir *Directory, logger *zap.Logger) *fiber.App {
	logger = logging.OrNop(logger)
	app := fiber.New(fiber.Config{
		AppName:               "earlypay-fakeapi",
		DisableStartupMessage: true,
		ReadTimeout:           timeouts.APIRequest,
		ErrorHandler:          errorHandler(logger),
	})
	app.Use(requestLogger(logger))

	auth := app.Group("/auth")
	auth.Post("/login", loginHandler(dir))
	auth.Post("/signup", signupHandler(dir))
	auth.Get("/user", userHandler(dir))
	return app
}

func loginHandler(dir *Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req apiclient.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		token, err := dir.Login(req.Email, req.Password)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return c.JSON(apiclient.LoginResponse{Message: "Login successful", Token: token})
	}
}

func signupHandler(dir *Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req apiclient.SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(req.User.Email) == "" || strings.TrimSpace(req.User.FirstName) == "" || strings.TrimSpace(req.User.LastName) == "" {
			return fail(c, fiber.StatusBadRequest, "First name, last name and email are required")
		}
		if len(req.User.Password) < minPasswordLength {
			return fail(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
		}
		err := dir.Register(accountFromSignup(req))
		if errors.Is(err, ErrEmailTaken) {
			return fail(c, fiber.StatusConflict, "Email is already registered")
		}
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(apiclient.SignupResponse{Message: "Signup successful"})
	}
}

func userHandler(dir *Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fail(c, fiber.StatusUnauthorized, "Authentication required")
		}
		rec, err := dir.User(token)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fail(c, fiber.StatusUnauthorized, "Token has expired")
		}
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "Invalid token")
		}
		return c.JSON(fiber.Map{"user": rec})
	}
}

func accountFromSignup(req apiclient.SignupRequest) SeedAccount {
	co := req.Company
	return SeedAccount{
		Email:     req.User.Email,
		Password:  req.User.Password,
		FirstName: req.User.FirstName,
		LastName:  req.User.LastName,
		Phone:     co.Phone,
		Company: SeedCompany{
			Name:                 co.LegalName,
			LegalName:            co.LegalName,
			BusinessType:         co.BusinessType.Label,
			Industry:             co.Industry.Label,
			Website:              co.Website,
			BusinessNumber:       co.BusinessNumber,
			BusinessRegistration: co.BusinessRegistration,
			HasTradeName:         co.HasTradeName,
			EarlyPayIntent:       co.EarlyPayIntent,
			ExpectedActivity:     co.ExpectedActivity,
		},
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal Server Error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("api request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return fail(c, status, message)
	}
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		logger.Info("api request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}

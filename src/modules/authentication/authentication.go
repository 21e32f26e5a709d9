package authentication

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ismaelstrey/quiz-biblico/src/core/apperror"
	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/middleware"
	"github.com/ismaelstrey/quiz-biblico/src/core/models"
)

// bcrypt cost for stored passwords.
const hashCost = 12

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// publicUser is the serialized shape of a user; the hash never leaves the
// server.
type publicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Register handles user registration.
func Register(c *fiber.Ctx) error {
	body := new(registerInput)
	if err := c.BodyParser(body); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if err := helpers.Validate(body); err != nil {
		return err
	}

	user, err := createUser(body.Name, body.Email, body.Password)
	if err != nil {
		return err
	}

	token, err := IssueSessionToken(user.ID)
	if err != nil {
		return apperror.Internal("failed to create session", err)
	}
	setSessionCookie(c, token)

	return helpers.HandleSuccess(c, fiber.StatusCreated, "Account created successfully", fiber.Map{
		"user": publicUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Login handles user authentication.
func Login(c *fiber.Ctx) error {
	body := new(loginInput)
	if err := c.BodyParser(body); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if err := helpers.Validate(body); err != nil {
		return err
	}

	user, ok := validatePassword(body.Email, body.Password)
	if !ok {
		// Same response for unknown email and wrong password.
		return apperror.Authentication("invalid email or password")
	}

	token, err := IssueSessionToken(user.ID)
	if err != nil {
		return apperror.Internal("failed to create session", err)
	}
	setSessionCookie(c, token)

	return helpers.HandleSuccess(c, fiber.StatusOK, "Sign-in successful", fiber.Map{
		"user": publicUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Logout clears the session cookie. The token itself expires on its own.
func Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return helpers.HandleSuccess(c, fiber.StatusOK, "Logged out successfully", nil)
}

// Me returns the user bound to the current session.
func Me(c *fiber.Ctx) error {
	userID, err := middleware.SessionUserID(c)
	if err != nil {
		return err
	}

	user := new(models.User)
	if result := database.DB.Where("id = ?", userID).First(user); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperror.Authentication("invalid session")
		}
		return apperror.FromDatabase(result.Error)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Session user", fiber.Map{
		"user": publicUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// createUser hashes the password and inserts the user. A duplicate email maps
// to CONFLICT through the unique constraint.
func createUser(name, email, password string) (*models.User, error) {
	db := database.DB

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperror.Conflict("a user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.FromDatabase(err)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hashedPwd),
	}
	if result := db.Create(user); result.Error != nil {
		return nil, apperror.FromDatabase(result.Error)
	}
	return user, nil
}

// validatePassword compares the password against the stored hash. Unknown
// email and mismatch are indistinguishable to the caller.
func validatePassword(email, password string) (*models.User, bool) {
	user := new(models.User)
	if result := database.DB.Where("email = ?", email).First(user); result.Error != nil {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, false
	}
	return user, true
}

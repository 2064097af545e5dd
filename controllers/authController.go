package controllers

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"oficina-backend/database"
	"oficina-backend/middlewares"
	"oficina-backend/models"

	"github.com/gofiber/fiber/v2"
)

const trialDays = 3

type RegisterDTO struct {
	FirstName       string `json:"first_name" validate:"required,min=1"`
	LastName        string `json:"last_name" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	WorkshopName    string `json:"workshop_name" validate:"required,min=2"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/registration
// Creates the user, the organization (tenant) with its own schema, migrates
// the tenant tables and starts the free trial.
func Register(c *fiber.Ctx) error {
	var in RegisterDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if in.Password != in.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	var mailExist models.User
	database.DB.Where("email = ?", in.Email).First(&mailExist)
	if mailExist.Email != "" {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}

	schemaName, err := createSchema(in.WorkshopName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workshop name")
	}

	tx := database.DB.Begin()

	user := models.User{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		SchemaName: schemaName,
	}
	user.SetPassword(in.Password)
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, "could not create user")
	}

	trialEnd := time.Now().AddDate(0, 0, trialDays)
	org := models.Organization{
		Name:               strings.TrimSpace(in.WorkshopName),
		OwnerId:            user.Id,
		SchemaName:         schemaName,
		SubscriptionStatus: models.SubscriptionTrialing,
		TrialEndsAt:        &trialEnd,
	}
	if err := tx.Create(&org).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, "could not create organization")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "registration failed")
	}

	if err := database.MigrateTenantSchema(schemaName); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	database.DB.Preload("Owner").First(&org, "id = ?", org.Id)
	return c.JSON(org)
}

func createSchema(workshop string) (string, error) {
	safeName := strings.ToLower(strings.TrimSpace(workshop))
	safeName = strings.ReplaceAll(safeName, " ", "_")
	// Only letters, numbers, underscores; must start with letter/underscore.
	valid := regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	if !valid.MatchString(safeName) {
		return "", fmt.Errorf("invalid schema name after sanitization: %s", safeName)
	}

	if err := database.DB.Exec("CREATE SCHEMA IF NOT EXISTS " + safeName).Error; err != nil {
		return "", err
	}
	return safeName, nil
}

// POST /api/login
func Login(c *fiber.Ctx) error {
	var in LoginDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var user models.User
	database.DB.Table("public.users").Where("email = ?", in.Email).First(&user)
	if user.Id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	if err := user.ComparePassword(in.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.SchemaName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not issue token")
	}

	// Keep the tenant tables current on every login.
	if err := database.MigrateTenantSchema(user.SchemaName); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"schema": user.SchemaName,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

// POST /api/logout
func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}

// GET /api/subscription
// Accessible without an active subscription so the client can render the
// paywall state.
func GetSubscription(c *fiber.Ctx) error {
	schema, _ := c.Locals("schema").(string)
	var org models.Organization
	if err := database.DB.Where("schema_name = ?", schema).First(&org).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "organization not found")
	}
	return c.JSON(fiber.Map{
		"subscription_status": org.SubscriptionStatus,
		"trial_ends_at":       org.TrialEndsAt,
	})
}

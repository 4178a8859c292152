package controllers

import (
	"log"
	"net/http"
	"strings"

	"cloud.google.com/go/auth/credentials/idtoken"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/smartstudy/smartstudy-backend/config"
	"github.com/smartstudy/smartstudy-backend/models"
	"github.com/smartstudy/smartstudy-backend/utils"
)

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=50"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

// Register creates a new account and sends the welcome mail in the
// background.
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email or username already exists"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}

		user := models.User{
			Email:          input.Email,
			Username:       input.Username,
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			HashedPassword: string(hashed),
			Status:         models.UserActive,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
			return
		}

		if cfg.SMTPEmail != "" {
			go func() {
				body := utils.WelcomeEmailBody(user.FirstName)
				if err := utils.SendEmail(cfg, user.Email, "Welcome to SmartStudy!", body); err != nil {
					log.Printf("welcome email to %s failed: %v", user.Email, err)
				}
			}()
		}

		c.JSON(http.StatusCreated, user)
	}
}

// Login exchanges a username (or email) and password for a bearer token.
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		err := db.Where("username = ? OR email = ?", input.Username, input.Username).First(&user).Error
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		if !user.IsActive() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}

		token, err := utils.GenerateToken(cfg.JWTSecret, user.ID.String(), user.Username, cfg.TokenExpiry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GoogleLogin verifies a Google ID token and signs the user in, creating an
// account on first sight.
func GoogleLogin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		var input GoogleLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		payload, err := idtoken.Validate(c, input.IDToken, cfg.GoogleClientID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
			return
		}

		email, _ := payload.Claims["email"].(string)
		givenName, _ := payload.Claims["given_name"].(string)
		familyName, _ := payload.Claims["family_name"].(string)

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			// Derive a unique username from the mailbox name.
			local := email
			if at := strings.Index(email, "@"); at > 0 {
				local = email[:at]
			}
			user = models.User{
				Email:     email,
				Username:  local + "-" + utils.GenerateShortID(6),
				FirstName: givenName,
				LastName:  familyName,
				Status:    models.UserActive,
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
				return
			}
		}
		if !user.IsActive() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}

		token, err := utils.GenerateToken(cfg.JWTSecret, user.ID.String(), user.Username, cfg.TokenExpiry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

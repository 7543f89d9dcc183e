package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Voxodinson/webass-api/models"
	"github.com/Voxodinson/webass-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	bcryptCost = 10
	tokenTTL   = 5 * time.Hour

	msgInvalidCredentials  = "Invalid credentials."
	msgInternalServerError = "Internal server error"
)

type AuthController struct {
	DB      *gorm.DB
	Storage storage.Storage
}

func NewAuthController(db *gorm.DB, store storage.Storage) *AuthController {
	return &AuthController{DB: db, Storage: store}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// Register creates a user account from a multipart form with an optional
// profile image.
func (ac *AuthController) Register(ctx *gin.Context) {
	name := ctx.PostForm("name")
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "The name field is required."
	}
	if email == "" {
		fields["email"] = "The email field is required."
	}
	if len(password) < 6 {
		fields["password"] = "The password must be at least 6 characters."
	}
	if len(fields) > 0 {
		sendFieldErrors(ctx, fields)
		return
	}

	var count int64
	if err := ac.DB.Model(&models.User{}).
		Where("name = ? OR email = ?", name, email).
		Count(&count).Error; err != nil {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if count > 0 {
		sendFieldErrors(ctx, map[string]string{"email": "The name or email has already been taken."})
		return
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	// Self-registration never grants elevated roles; promotion happens
	// through the user update endpoint by an existing admin.
	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleUser,
		Address:  ctx.PostForm("address"),
		Dob:      ctx.PostForm("dob"),
	}

	if file, err := ctx.FormFile("profile"); err == nil {
		opened, openErr := file.Open()
		if openErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to read profile image", openErr)
			return
		}
		stored, storeErr := ac.Storage.Store(storage.NamespaceUsers, file.Filename, opened, file.Header.Get("Content-Type"))
		opened.Close()
		if storeErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to store profile image", storeErr)
			return
		}
		user.Profile = stored
	}

	if result := ac.DB.Create(&user); result.Error != nil {
		if isDuplicateEntry(result.Error) {
			sendFieldErrors(ctx, map[string]string{"email": "The name or email has already been taken."})
			return
		}
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"status":  "success",
		"data":    user,
	})
}

// Login checks credentials and issues a bearer token.
func (ac *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendValidationError(ctx, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", loginData.Email).First(&user).Error; err != nil {
		sendFieldErrors(ctx, map[string]string{"email": msgInvalidCredentials})
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendFieldErrors(ctx, map[string]string{"email": msgInvalidCredentials})
		return
	}

	expiresAt := time.Now().Add(tokenTTL)
	tokenString, err := generateJWT(user, expiresAt)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Login successful",
		"status":  "success",
		"data": gin.H{
			"user":       user,
			"token":      tokenString,
			"expires_at": expiresAt,
		},
	})
}

// Logout acknowledges the client discarding its token. Tokens are stateless,
// so there is nothing to revoke server-side; they lapse at their expiry.
func (ac *AuthController) Logout(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Logged out successfully",
		"status":  "success",
	})
}

package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Voxodinson/webass-api/models"
	"github.com/Voxodinson/webass-api/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	DB       *gorm.DB
	Storage  storage.Storage
	Resolver *storage.Resolver
}

func NewUserController(db *gorm.DB, store storage.Storage, resolver *storage.Resolver) *UserController {
	return &UserController{DB: db, Storage: store, Resolver: resolver}
}

func (uc *UserController) userView(user models.User) gin.H {
	var profileURL any
	if user.Profile != "" {
		profileURL = uc.Resolver.URL(storage.NamespaceUsers, user.Profile)
	}
	return gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"address":     user.Address,
		"dob":         user.Dob,
		"profile":     user.Profile,
		"profile_url": profileURL,
		"created_at":  user.CreatedAt,
		"updated_at":  user.UpdatedAt,
	}
}

func (uc *UserController) GetUsers(ctx *gin.Context) {
	page, perPage := paginationParams(ctx)

	var users []models.User
	result := uc.DB.Limit(perPage).Offset((page - 1) * perPage).Find(&users)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", result.Error)
		return
	}

	var count int64
	uc.DB.Model(&models.User{}).Count(&count)

	data := make([]gin.H, 0, len(users))
	for _, user := range users {
		data = append(data, uc.userView(user))
	}

	ctx.JSON(http.StatusOK, paginatedResponse("Users retrieved successfully", data, count, perPage, page))
}

func (uc *UserController) GetUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve user", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"status":  "success",
		"data":    uc.userView(user),
	})
}

// UpdateUser applies a partial multipart patch. A new profile image replaces
// the old one; the old file is removed only after the new one is stored.
func (uc *UserController) UpdateUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve user", err)
		}
		return
	}

	if name := ctx.PostForm("name"); name != "" {
		var count int64
		uc.DB.Model(&models.User{}).Where("name = ? AND id != ?", name, user.ID).Count(&count)
		if count > 0 {
			sendFieldErrors(ctx, map[string]string{"name": "The name has already been taken."})
			return
		}
		user.Name = name
	}

	if email := ctx.PostForm("email"); email != "" {
		var count int64
		uc.DB.Model(&models.User{}).Where("email = ? AND id != ?", email, user.ID).Count(&count)
		if count > 0 {
			sendFieldErrors(ctx, map[string]string{"email": "The email has already been taken."})
			return
		}
		user.Email = email
	}

	if password := ctx.PostForm("password"); password != "" {
		if len(password) < 6 {
			sendFieldErrors(ctx, map[string]string{"password": "The password must be at least 6 characters."})
			return
		}
		hashed, hashErr := hashPassword(password)
		if hashErr != nil {
			log.Println("Password hashing error:", hashErr)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		user.Password = hashed
	}

	if role := ctx.PostForm("role"); role != "" {
		caller, ok := currentUser(ctx)
		if !ok || caller.Role != models.RoleAdmin {
			sendFieldErrors(ctx, map[string]string{"role": "Only administrators may change roles."})
			return
		}
		if role != models.RoleAdmin && role != models.RoleUser {
			sendFieldErrors(ctx, map[string]string{"role": "The role must be one of admin, user."})
			return
		}
		user.Role = role
	}

	if address := ctx.PostForm("address"); address != "" {
		user.Address = address
	}
	if dob := ctx.PostForm("dob"); dob != "" {
		user.Dob = dob
	}

	oldProfile := ""
	if file, fileErr := ctx.FormFile("profile"); fileErr == nil {
		opened, openErr := file.Open()
		if openErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to read profile image", openErr)
			return
		}
		stored, storeErr := uc.Storage.Store(storage.NamespaceUsers, file.Filename, opened, file.Header.Get("Content-Type"))
		opened.Close()
		if storeErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to store profile image", storeErr)
			return
		}
		oldProfile = user.Profile
		user.Profile = stored
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		if isDuplicateEntry(err) {
			sendFieldErrors(ctx, map[string]string{"email": "The name or email has already been taken."})
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update user", err)
		return
	}

	if oldProfile != "" {
		if err := uc.Storage.Delete(storage.NamespaceUsers, oldProfile); err != nil {
			log.Println("Failed to delete old profile image:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "User updated successfully",
		"status":  "success",
		"data":    uc.userView(user),
	})
}

// DeleteUser removes the account. The profile file delete is best-effort and
// feedback rows are detached, not deleted.
func (uc *UserController) DeleteUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve user", err)
		}
		return
	}

	if err := uc.DB.Model(&models.Feedback{}).
		Where("user_id = ?", user.ID).
		Update("user_id", nil).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to detach user feedback", err)
		return
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete user", err)
		return
	}

	if user.Profile != "" {
		if err := uc.Storage.Delete(storage.NamespaceUsers, user.Profile); err != nil {
			log.Println("Failed to delete profile image:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"status":  "success",
	})
}

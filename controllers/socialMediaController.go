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

type SocialMediaController struct {
	DB       *gorm.DB
	Storage  storage.Storage
	Resolver *storage.Resolver
}

func NewSocialMediaController(db *gorm.DB, store storage.Storage, resolver *storage.Resolver) *SocialMediaController {
	return &SocialMediaController{DB: db, Storage: store, Resolver: resolver}
}

func (sc *SocialMediaController) socialMediaView(socialMedia models.SocialMedia) gin.H {
	var photoURL any
	if socialMedia.Photo != "" {
		photoURL = sc.Resolver.URL(storage.NamespaceSocialMedia, socialMedia.Photo)
	}
	return gin.H{
		"id":         socialMedia.ID,
		"name":       socialMedia.Name,
		"photo":      socialMedia.Photo,
		"photo_url":  photoURL,
		"link_url":   socialMedia.LinkURL,
		"created_at": socialMedia.CreatedAt,
		"updated_at": socialMedia.UpdatedAt,
	}
}

func (sc *SocialMediaController) GetSocialMedia(ctx *gin.Context) {
	page, perPage := paginationParams(ctx)

	var count int64
	sc.DB.Model(&models.SocialMedia{}).Count(&count)

	var platforms []models.SocialMedia
	if result := sc.DB.Limit(perPage).Offset((page - 1) * perPage).Find(&platforms); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch social media platforms", result.Error)
		return
	}

	data := make([]gin.H, 0, len(platforms))
	for _, platform := range platforms {
		data = append(data, sc.socialMediaView(platform))
	}

	ctx.JSON(http.StatusOK, paginatedResponse("Social Media platforms retrieved successfully.", data, count, perPage, page))
}

func (sc *SocialMediaController) GetSocialMediaByID(ctx *gin.Context) {
	platformID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid social media ID")
		return
	}

	var platform models.SocialMedia
	if err := sc.DB.First(&platform, platformID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Social media platform not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve social media platform", err)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Social Media platform retrieved successfully.",
		"data":    sc.socialMediaView(platform),
	})
}

func (sc *SocialMediaController) CreateSocialMedia(ctx *gin.Context) {
	fields := map[string]string{}

	name := ctx.PostForm("name")
	if name == "" {
		fields["name"] = "The name field is required."
	}
	linkURL := ctx.PostForm("link_url")
	if linkURL == "" {
		fields["link_url"] = "The link_url field is required."
	}
	if len(fields) > 0 {
		sendFieldErrors(ctx, fields)
		return
	}

	platform := models.SocialMedia{Name: name, LinkURL: linkURL}

	if file, err := ctx.FormFile("photo"); err == nil {
		opened, openErr := file.Open()
		if openErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to read photo", openErr)
			return
		}
		stored, storeErr := sc.Storage.Store(storage.NamespaceSocialMedia, file.Filename, opened, file.Header.Get("Content-Type"))
		opened.Close()
		if storeErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to store photo", storeErr)
			return
		}
		platform.Photo = stored
	}

	if err := sc.DB.Create(&platform).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create social media platform", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Social Media platform created successfully.",
		"data":    sc.socialMediaView(platform),
	})
}

func (sc *SocialMediaController) UpdateSocialMedia(ctx *gin.Context) {
	platformID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid social media ID")
		return
	}

	var platform models.SocialMedia
	if err := sc.DB.First(&platform, platformID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Social media platform not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve social media platform", err)
		}
		return
	}

	if name := ctx.PostForm("name"); name != "" {
		platform.Name = name
	}
	if linkURL := ctx.PostForm("link_url"); linkURL != "" {
		platform.LinkURL = linkURL
	}

	oldPhoto := ""
	if file, fileErr := ctx.FormFile("photo"); fileErr == nil {
		opened, openErr := file.Open()
		if openErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to read photo", openErr)
			return
		}
		stored, storeErr := sc.Storage.Store(storage.NamespaceSocialMedia, file.Filename, opened, file.Header.Get("Content-Type"))
		opened.Close()
		if storeErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to store photo", storeErr)
			return
		}
		oldPhoto = platform.Photo
		platform.Photo = stored
	}

	if err := sc.DB.Save(&platform).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update social media platform", err)
		return
	}

	if oldPhoto != "" {
		if err := sc.Storage.Delete(storage.NamespaceSocialMedia, oldPhoto); err != nil {
			log.Println("Failed to delete old social media photo:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Social Media platform updated successfully."})
}

func (sc *SocialMediaController) DeleteSocialMedia(ctx *gin.Context) {
	platformID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid social media ID")
		return
	}

	var platform models.SocialMedia
	if err := sc.DB.First(&platform, platformID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Social media platform not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve social media platform", err)
		}
		return
	}

	if err := sc.DB.Delete(&platform).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete social media platform", err)
		return
	}

	if platform.Photo != "" {
		if err := sc.Storage.Delete(storage.NamespaceSocialMedia, platform.Photo); err != nil {
			log.Println("Failed to delete social media photo:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Social Media platform deleted successfully."})
}

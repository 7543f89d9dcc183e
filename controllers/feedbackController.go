package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Voxodinson/webass-api/models"
	"github.com/Voxodinson/webass-api/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedbackController struct {
	DB       *gorm.DB
	Resolver *storage.Resolver
}

func NewFeedbackController(db *gorm.DB, resolver *storage.Resolver) *FeedbackController {
	return &FeedbackController{DB: db, Resolver: resolver}
}

type feedbackInput struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// feedbackView joins in the author where one still exists; feedback from
// deleted users keeps null author fields.
func (fc *FeedbackController) feedbackView(feedback models.Feedback, users map[uint]models.User) gin.H {
	var userName, userPhoto any
	if feedback.UserID != nil {
		if user, ok := users[*feedback.UserID]; ok {
			userName = user.Name
			if user.Profile != "" {
				userPhoto = fc.Resolver.URL(storage.NamespaceUsers, user.Profile)
			}
		}
	}
	return gin.H{
		"id":          feedback.ID,
		"title":       feedback.Title,
		"description": feedback.Description,
		"user_name":   userName,
		"user_photo":  userPhoto,
	}
}

func (fc *FeedbackController) usersByID(feedbacks []models.Feedback) (map[uint]models.User, error) {
	ids := make([]uint, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		if feedback.UserID != nil {
			ids = append(ids, *feedback.UserID)
		}
	}

	users := map[uint]models.User{}
	if len(ids) == 0 {
		return users, nil
	}

	var rows []models.User
	if err := fc.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, user := range rows {
		users[user.ID] = user
	}
	return users, nil
}

func (fc *FeedbackController) GetFeedbacks(ctx *gin.Context) {
	page, perPage := paginationParams(ctx)

	var count int64
	fc.DB.Model(&models.Feedback{}).Count(&count)

	var feedbacks []models.Feedback
	if result := fc.DB.Limit(perPage).Offset((page - 1) * perPage).Find(&feedbacks); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch feedbacks", result.Error)
		return
	}

	users, err := fc.usersByID(feedbacks)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch feedback authors", err)
		return
	}

	data := make([]gin.H, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		data = append(data, fc.feedbackView(feedback, users))
	}

	ctx.JSON(http.StatusOK, paginatedResponse("Feedbacks retrieved successfully.", data, count, perPage, page))
}

func (fc *FeedbackController) GetFeedback(ctx *gin.Context) {
	feedbackID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid feedback ID")
		return
	}

	var feedback models.Feedback
	if err := fc.DB.First(&feedback, feedbackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Feedback not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve feedback", err)
		}
		return
	}

	users, err := fc.usersByID([]models.Feedback{feedback})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch feedback author", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Feedback retrieved successfully.",
		"data":    fc.feedbackView(feedback, users),
	})
}

// CreateFeedback attributes the row to the authenticated caller.
func (fc *FeedbackController) CreateFeedback(ctx *gin.Context) {
	var input feedbackInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationError(ctx, err)
		return
	}

	feedback := models.Feedback{
		Title:       input.Title,
		Description: input.Description,
	}
	if user, ok := currentUser(ctx); ok {
		id := user.ID
		feedback.UserID = &id
	}

	if err := fc.DB.Create(&feedback).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create feedback", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Feedback created successfully.",
		"data":    feedback,
	})
}

func (fc *FeedbackController) UpdateFeedback(ctx *gin.Context) {
	feedbackID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid feedback ID")
		return
	}

	var input feedbackInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationError(ctx, err)
		return
	}

	var feedback models.Feedback
	if err := fc.DB.First(&feedback, feedbackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Feedback not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve feedback", err)
		}
		return
	}

	feedback.Title = input.Title
	feedback.Description = input.Description
	if err := fc.DB.Save(&feedback).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update feedback", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Feedback updated successfully."})
}

func (fc *FeedbackController) DeleteFeedback(ctx *gin.Context) {
	feedbackID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid feedback ID")
		return
	}

	result := fc.DB.Delete(&models.Feedback{}, feedbackID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete feedback", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Feedback not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Feedback deleted successfully."})
}

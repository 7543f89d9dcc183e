package controllers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Voxodinson/webass-api/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
)

const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL unique-key violation,
// so a lost insert race still maps to a validation conflict.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

const defaultPerPage = 10

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// sendValidationError turns binding failures into a 422 with per-field
// messages.
func sendValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  validationMessages(err),
	})
}

// sendFieldErrors is sendValidationError for handler-built messages, used by
// the multipart endpoints that validate form fields by hand.
func sendFieldErrors(ctx *gin.Context, fields map[string]string) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}

func validationMessages(err error) map[string]string {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["body"] = "Invalid request body."
		return fields
	}

	for _, fe := range verrs {
		name := snakeCase(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "The " + name + " field is required."
		case "email":
			fields[name] = "The " + name + " must be a valid email address."
		case "min":
			fields[name] = "The " + name + " must be at least " + fe.Param() + "."
		case "max":
			fields[name] = "The " + name + " may not be greater than " + fe.Param() + "."
		case "url":
			fields[name] = "The " + name + " must be a valid URL."
		default:
			fields[name] = "The " + name + " field is invalid."
		}
	}
	return fields
}

func snakeCase(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (runes[i-1] < 'A' || runes[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func paginationParams(ctx *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(ctx.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

func lastPage(total int64, perPage int) int {
	pages := int(math.Ceil(float64(total) / float64(perPage)))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// paginatedResponse is the list envelope every index endpoint shares.
func paginatedResponse(message string, data any, total int64, perPage, currentPage int) gin.H {
	return gin.H{
		"message":      message,
		"data":         data,
		"total":        total,
		"per_page":     perPage,
		"current_page": currentPage,
		"last_page":    lastPage(total, perPage),
	}
}

func encodeStringList(values []string) (datatypes.JSON, error) {
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

// currentUser reads the authenticated caller set by the auth middleware.
func currentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

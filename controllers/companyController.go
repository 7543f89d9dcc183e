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

type CompanyController struct {
	DB       *gorm.DB
	Storage  storage.Storage
	Resolver *storage.Resolver
}

func NewCompanyController(db *gorm.DB, store storage.Storage, resolver *storage.Resolver) *CompanyController {
	return &CompanyController{DB: db, Storage: store, Resolver: resolver}
}

func (cc *CompanyController) companyView(company models.Company) gin.H {
	var photoURL any
	if company.Photo != "" {
		photoURL = cc.Resolver.URL(storage.NamespaceCompanies, company.Photo)
	}
	return gin.H{
		"id":              company.ID,
		"name":            company.Name,
		"email":           company.Email,
		"phone":           company.PhoneList(),
		"address":         company.Address,
		"website":         company.Website,
		"description":     company.Description,
		"photo":           company.Photo,
		"photo_url":       photoURL,
		"store_locations": company.StoreLocations,
		"created_at":      company.CreatedAt,
		"updated_at":      company.UpdatedAt,
	}
}

func (cc *CompanyController) GetCompanies(ctx *gin.Context) {
	page, perPage := paginationParams(ctx)

	query := cc.DB.Model(&models.Company{})
	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR CAST(phone AS CHAR) LIKE ? OR address LIKE ? OR website LIKE ?",
			like, like, like, like, like,
		)
	}

	var count int64
	query.Count(&count)

	var companies []models.Company
	if result := query.Limit(perPage).Offset((page - 1) * perPage).Find(&companies); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch companies", result.Error)
		return
	}

	data := make([]gin.H, 0, len(companies))
	for _, company := range companies {
		data = append(data, cc.companyView(company))
	}

	ctx.JSON(http.StatusOK, paginatedResponse("Companies retrieved successfully.", data, count, perPage, page))
}

func (cc *CompanyController) GetCompany(ctx *gin.Context) {
	companyID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var company models.Company
	if err := cc.DB.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Company not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve company", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, cc.companyView(company))
}

func (cc *CompanyController) CreateCompany(ctx *gin.Context) {
	fields := map[string]string{}

	name := ctx.PostForm("name")
	if name == "" {
		fields["name"] = "The name field is required."
	}
	email := ctx.PostForm("email")
	if email == "" {
		fields["email"] = "The email field is required."
	}
	phones := ctx.PostFormArray("phone")
	if len(phones) == 0 {
		fields["phone"] = "The phone field is required."
	}
	address := ctx.PostForm("address")
	if address == "" {
		fields["address"] = "The address field is required."
	}
	if len(fields) > 0 {
		sendFieldErrors(ctx, fields)
		return
	}

	var count int64
	cc.DB.Model(&models.Company{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		sendFieldErrors(ctx, map[string]string{"email": "The email has already been taken."})
		return
	}

	company := models.Company{
		Name:           name,
		Email:          email,
		Address:        address,
		Website:        ctx.PostForm("website"),
		Description:    ctx.PostForm("description"),
		StoreLocations: ctx.PostForm("store_locations"),
	}
	if err := company.SetPhoneList(phones); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to encode phone numbers", err)
		return
	}

	if file, err := ctx.FormFile("photo"); err == nil {
		opened, openErr := file.Open()
		if openErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to read photo", openErr)
			return
		}
		stored, storeErr := cc.Storage.Store(storage.NamespaceCompanies, file.Filename, opened, file.Header.Get("Content-Type"))
		opened.Close()
		if storeErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to store photo", storeErr)
			return
		}
		company.Photo = stored
	}

	if err := cc.DB.Create(&company).Error; err != nil {
		if isDuplicateEntry(err) {
			sendFieldErrors(ctx, map[string]string{"email": "The email has already been taken."})
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create company", err)
		return
	}

	ctx.JSON(http.StatusCreated, cc.companyView(company))
}

func (cc *CompanyController) UpdateCompany(ctx *gin.Context) {
	companyID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var company models.Company
	if err := cc.DB.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Company not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve company", err)
		}
		return
	}

	if name := ctx.PostForm("name"); name != "" {
		company.Name = name
	}
	if email := ctx.PostForm("email"); email != "" {
		var count int64
		cc.DB.Model(&models.Company{}).Where("email = ? AND id != ?", email, company.ID).Count(&count)
		if count > 0 {
			sendFieldErrors(ctx, map[string]string{"email": "The email has already been taken."})
			return
		}
		company.Email = email
	}
	if phones := ctx.PostFormArray("phone"); len(phones) > 0 {
		if err := company.SetPhoneList(phones); err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to encode phone numbers", err)
			return
		}
	}
	if address := ctx.PostForm("address"); address != "" {
		company.Address = address
	}
	if website := ctx.PostForm("website"); website != "" {
		company.Website = website
	}
	if description := ctx.PostForm("description"); description != "" {
		company.Description = description
	}
	if locations := ctx.PostForm("store_locations"); locations != "" {
		company.StoreLocations = locations
	}

	oldPhoto := ""
	if file, fileErr := ctx.FormFile("photo"); fileErr == nil {
		opened, openErr := file.Open()
		if openErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to read photo", openErr)
			return
		}
		stored, storeErr := cc.Storage.Store(storage.NamespaceCompanies, file.Filename, opened, file.Header.Get("Content-Type"))
		opened.Close()
		if storeErr != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to store photo", storeErr)
			return
		}
		oldPhoto = company.Photo
		company.Photo = stored
	}

	if err := cc.DB.Save(&company).Error; err != nil {
		if isDuplicateEntry(err) {
			sendFieldErrors(ctx, map[string]string{"email": "The email has already been taken."})
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update company", err)
		return
	}

	if oldPhoto != "" {
		if err := cc.Storage.Delete(storage.NamespaceCompanies, oldPhoto); err != nil {
			log.Println("Failed to delete old company photo:", err)
		}
	}

	ctx.JSON(http.StatusOK, cc.companyView(company))
}

func (cc *CompanyController) DeleteCompany(ctx *gin.Context) {
	companyID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var company models.Company
	if err := cc.DB.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Company not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve company", err)
		}
		return
	}

	if err := cc.DB.Delete(&company).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete company", err)
		return
	}

	if company.Photo != "" {
		if err := cc.Storage.Delete(storage.NamespaceCompanies, company.Photo); err != nil {
			log.Println("Failed to delete company photo:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Company deleted successfully"})
}

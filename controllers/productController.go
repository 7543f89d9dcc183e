package controllers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Voxodinson/webass-api/models"
	"github.com/Voxodinson/webass-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductController struct {
	DB       *gorm.DB
	Storage  storage.Storage
	Resolver *storage.Resolver
}

func NewProductController(db *gorm.DB, store storage.Storage, resolver *storage.Resolver) *ProductController {
	return &ProductController{DB: db, Storage: store, Resolver: resolver}
}

func (pc *ProductController) storeImages(files []*multipart.FileHeader) ([]string, error) {
	stored := make([]string, 0, len(files))
	for _, file := range files {
		opened, err := file.Open()
		if err != nil {
			return stored, err
		}
		name, err := pc.Storage.Store(storage.NamespaceProducts, file.Filename, opened, file.Header.Get("Content-Type"))
		opened.Close()
		if err != nil {
			return stored, err
		}
		stored = append(stored, name)
	}
	return stored, nil
}

func (pc *ProductController) deleteImages(names []string) {
	for _, name := range names {
		if err := pc.Storage.Delete(storage.NamespaceProducts, name); err != nil {
			log.Println("Failed to delete product image:", err)
		}
	}
}

func (pc *ProductController) productView(product models.Product) gin.H {
	urls := pc.Resolver.URLs(storage.NamespaceProducts, product.ImageList())
	var first any
	if len(urls) > 0 {
		first = urls[0]
	}
	return gin.H{
		"id":           product.ID,
		"name":         product.Name,
		"description":  product.Description,
		"price":        product.Price,
		"stock":        product.Stock,
		"sizes":        product.SizeList(),
		"color":        product.Color,
		"brand":        product.Brand,
		"category":     product.Category,
		"images":       urls,
		"image":        first,
		"rating":       product.Rating,
		"product_type": product.ProductType,
		"created_at":   product.CreatedAt,
		"updated_at":   product.UpdatedAt,
	}
}

// GetProducts lists the catalog with optional LIKE search over
// name/category/brand and an exact product_type filter.
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	query := pc.DB.Model(&models.Product{})

	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR category LIKE ? OR brand LIKE ?", like, like, like)
	}
	if productType := ctx.Query("product_type"); productType != "" {
		query = query.Where("product_type = ?", productType)
	}

	var products []models.Product
	if result := query.Find(&products); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	data := make([]gin.H, 0, len(products))
	for _, product := range products {
		data = append(data, pc.productView(product))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Products retrieved successfully.",
		"data":    data,
	})
}

func (pc *ProductController) GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	view := pc.productView(product)
	view["images"] = product.ImageList()
	view["image_urls"] = pc.Resolver.URLs(storage.NamespaceProducts, product.ImageList())
	ctx.JSON(http.StatusOK, view)
}

// CreateProduct builds a product from a multipart form; at least one image
// file is required.
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	fields := map[string]string{}

	name := ctx.PostForm("name")
	if name == "" {
		fields["name"] = "The name field is required."
	}

	price, err := decimal.NewFromString(ctx.PostForm("price"))
	if err != nil {
		fields["price"] = "The price must be a number."
	}

	stock, err := strconv.Atoi(ctx.PostForm("stock"))
	if err != nil || stock < 0 {
		fields["stock"] = "The stock must be a non-negative integer."
	}

	sizes := ctx.PostFormArray("sizes")
	if len(sizes) == 0 {
		fields["sizes"] = "The sizes field is required."
	}

	color := ctx.PostForm("color")
	if color == "" {
		fields["color"] = "The color field is required."
	}

	rating := 0.0
	if raw := ctx.PostForm("rating"); raw != "" {
		rating, err = strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 || rating > 5 {
			fields["rating"] = "The rating must be between 0 and 5."
		}
	}

	productType := ctx.PostForm("product_type")
	if !models.ValidProductType(productType) {
		fields["product_type"] = "The product_type must be one of men, women, kids."
	}

	files := form.File["images"]
	if len(files) == 0 {
		fields["images"] = "The images field is required."
	}

	if len(fields) > 0 {
		sendFieldErrors(ctx, fields)
		return
	}

	product := models.Product{
		Name:        name,
		Description: ctx.PostForm("description"),
		Price:       price,
		Stock:       stock,
		Color:       color,
		Brand:       ctx.PostForm("brand"),
		Category:    ctx.PostForm("category"),
		Rating:      rating,
		ProductType: productType,
	}
	if err := product.SetImageList([]string{}); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to encode images", err)
		return
	}
	if encoded, err := encodeStringList(sizes); err == nil {
		product.Sizes = encoded
	}

	stored, err := pc.storeImages(files)
	if err != nil {
		pc.deleteImages(stored)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to store product images", err)
		return
	}
	if err := product.SetImageList(stored); err != nil {
		pc.deleteImages(stored)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to encode images", err)
		return
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		pc.deleteImages(stored)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Product created successfully"})
}

// UpdateProduct patches scalar fields and optionally replaces the image set.
// New files plus an optional keep_images list become the new set; images
// dropped from the set are deleted only after the new files are stored.
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	if name := ctx.PostForm("name"); name != "" {
		product.Name = name
	}
	if description := ctx.PostForm("description"); description != "" {
		product.Description = description
	}
	if raw := ctx.PostForm("price"); raw != "" {
		price, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			sendFieldErrors(ctx, map[string]string{"price": "The price must be a number."})
			return
		}
		product.Price = price
	}
	if raw := ctx.PostForm("stock"); raw != "" {
		stock, parseErr := strconv.Atoi(raw)
		if parseErr != nil || stock < 0 {
			sendFieldErrors(ctx, map[string]string{"stock": "The stock must be a non-negative integer."})
			return
		}
		product.Stock = stock
	}
	if sizes := ctx.PostFormArray("sizes"); len(sizes) > 0 {
		if encoded, encErr := encodeStringList(sizes); encErr == nil {
			product.Sizes = encoded
		}
	}
	if color := ctx.PostForm("color"); color != "" {
		product.Color = color
	}
	if brand := ctx.PostForm("brand"); brand != "" {
		product.Brand = brand
	}
	if category := ctx.PostForm("category"); category != "" {
		product.Category = category
	}
	if raw := ctx.PostForm("rating"); raw != "" {
		rating, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil || rating < 0 || rating > 5 {
			sendFieldErrors(ctx, map[string]string{"rating": "The rating must be between 0 and 5."})
			return
		}
		product.Rating = rating
	}
	if productType := ctx.PostForm("product_type"); productType != "" {
		if !models.ValidProductType(productType) {
			sendFieldErrors(ctx, map[string]string{"product_type": "The product_type must be one of men, women, kids."})
			return
		}
		product.ProductType = productType
	}

	form, _ := ctx.MultipartForm()
	var newFiles []*multipart.FileHeader
	if form != nil {
		newFiles = form.File["images"]
	}
	keep := ctx.PostFormArray("keep_images")

	var dropped []string
	if len(newFiles) > 0 || len(keep) > 0 {
		old := product.ImageList()
		kept := make([]string, 0, len(keep))
		keepSet := map[string]bool{}
		for _, name := range keep {
			keepSet[name] = true
		}
		for _, name := range old {
			if keepSet[name] {
				kept = append(kept, name)
			} else {
				dropped = append(dropped, name)
			}
		}

		stored, storeErr := pc.storeImages(newFiles)
		if storeErr != nil {
			pc.deleteImages(stored)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to store product images", storeErr)
			return
		}
		if err := product.SetImageList(append(kept, stored...)); err != nil {
			pc.deleteImages(stored)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to encode images", err)
			return
		}
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	pc.deleteImages(dropped)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product updated successfully"})
}

func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	if err := pc.DB.Delete(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}

	pc.deleteImages(product.ImageList())

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

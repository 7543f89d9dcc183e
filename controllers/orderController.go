package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Voxodinson/webass-api/models"
	"github.com/Voxodinson/webass-api/storage"
	"github.com/Voxodinson/webass-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderController struct {
	DB       *gorm.DB
	Resolver *storage.Resolver
	Notifier *utils.OrderNotifier
}

func NewOrderController(db *gorm.DB, resolver *storage.Resolver, notifier *utils.OrderNotifier) *OrderController {
	return &OrderController{DB: db, Resolver: resolver, Notifier: notifier}
}

type createOrderItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

type createOrderInput struct {
	UserID          uint                   `json:"user_id" binding:"required"`
	Items           []createOrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string                 `json:"shipping_address" binding:"required"`
	ShippingCity    string                 `json:"shipping_city" binding:"required"`
	ShippingZip     string                 `json:"shipping_zip" binding:"required,max=10"`
	ShippingCountry string                 `json:"shipping_country" binding:"required"`
	PaymentMethod   string                 `json:"payment_method"`
	PaymentStatus   string                 `json:"payment_status"`
	TransactionID   string                 `json:"transaction_id"`
	// TotalAmount is accepted for compatibility but always recomputed
	// server-side from the items.
	TotalAmount *float64 `json:"total_amount"`
}

type updateOrderInput struct {
	PaymentMethod   *string `json:"payment_method"`
	PaymentStatus   *string `json:"payment_status"`
	TransactionID   *string `json:"transaction_id"`
	ShippingAddress *string `json:"shipping_address"`
	ShippingCity    *string `json:"shipping_city"`
	ShippingZip     *string `json:"shipping_zip" binding:"omitempty,max=10"`
	ShippingCountry *string `json:"shipping_country"`
}

var errProductNotFound = errors.New("product not found")

// buildOrderItems snapshots each referenced product's current price and name
// into an item and returns the items together with the summed total. Any
// line referencing an absent product fails the whole build.
func buildOrderItems(items []createOrderItemInput, products map[uint]models.Product) ([]models.OrderItem, decimal.Decimal, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	totalAmount := decimal.Zero

	for _, line := range items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, decimal.Zero, errProductNotFound
		}

		total := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Total:     total,
			Color:     line.Color,
			Size:      line.Size,
		})
		totalAmount = totalAmount.Add(total)
	}

	return orderItems, totalAmount, nil
}

func (oc *OrderController) productsByID(ids []uint) (map[uint]models.Product, error) {
	products := map[uint]models.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	var rows []models.Product
	if err := oc.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, product := range rows {
		products[product.ID] = product
	}
	return products, nil
}

func (oc *OrderController) usersByID(ids []uint) (map[uint]models.User, error) {
	users := map[uint]models.User{}
	if len(ids) == 0 {
		return users, nil
	}

	var rows []models.User
	if err := oc.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, user := range rows {
		users[user.ID] = user
	}
	return users, nil
}

// CreateOrder persists one order plus its items as a single transaction.
// The total is always computed server-side from the price snapshots.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var input createOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationError(ctx, err)
		return
	}

	var user models.User
	if err := oc.DB.First(&user, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate user", err)
		}
		return
	}

	productIDs := make([]uint, 0, len(input.Items))
	for _, line := range input.Items {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := oc.productsByID(productIDs)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to validate products", err)
		return
	}

	orderItems, totalAmount, err := buildOrderItems(input.Items, products)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	order := models.Order{
		UserID:          input.UserID,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   input.PaymentStatus,
		TransactionID:   input.TransactionID,
		TotalAmount:     totalAmount,
		ShippingAddress: input.ShippingAddress,
		ShippingCity:    input.ShippingCity,
		ShippingZip:     input.ShippingZip,
		ShippingCountry: input.ShippingCountry,
	}

	tx := oc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
		if err := tx.Create(&orderItems[i]).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	order.OrderItems = orderItems

	if oc.Notifier != nil {
		go oc.Notifier.OrderCreated(order)
	}

	ctx.JSON(http.StatusCreated, order)
}

// orderView enriches an order with buyer identity and, per item, the live
// product name and first image. Deleted products degrade to "N/A"/null.
func (oc *OrderController) orderView(order models.Order, users map[uint]models.User, products map[uint]models.Product) gin.H {
	var customerName, customerEmail any
	if user, ok := users[order.UserID]; ok {
		customerName = user.Name
		customerEmail = user.Email
	}

	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		productName := "N/A"
		var productImage any
		if product, ok := products[item.ProductID]; ok {
			productName = product.Name
			if images := product.ImageList(); len(images) > 0 {
				productImage = oc.Resolver.URL(storage.NamespaceProducts, images[0])
			}
		}
		items = append(items, gin.H{
			"id":            item.ID,
			"product_id":    item.ProductID,
			"name":          item.Name,
			"price":         item.Price,
			"quantity":      item.Quantity,
			"total":         item.Total,
			"color":         item.Color,
			"size":          item.Size,
			"product_name":  productName,
			"product_image": productImage,
		})
	}

	return gin.H{
		"id":               order.ID,
		"user_id":          order.UserID,
		"customer_name":    customerName,
		"customer_email":   customerEmail,
		"payment_method":   order.PaymentMethod,
		"payment_status":   order.PaymentStatus,
		"transaction_id":   order.TransactionID,
		"total_amount":     order.TotalAmount,
		"shipping_address": order.ShippingAddress,
		"shipping_city":    order.ShippingCity,
		"shipping_zip":     order.ShippingZip,
		"shipping_country": order.ShippingCountry,
		"order_items":      items,
		"created_at":       order.CreatedAt,
	}
}

func (oc *OrderController) enrichOrders(orders []models.Order) ([]gin.H, error) {
	userIDs := make([]uint, 0, len(orders))
	var productIDs []uint
	for _, order := range orders {
		userIDs = append(userIDs, order.UserID)
		for _, item := range order.OrderItems {
			productIDs = append(productIDs, item.ProductID)
		}
	}

	users, err := oc.usersByID(userIDs)
	if err != nil {
		return nil, err
	}
	products, err := oc.productsByID(productIDs)
	if err != nil {
		return nil, err
	}

	data := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		data = append(data, oc.orderView(order, users, products))
	}
	return data, nil
}

func (oc *OrderController) listOrders(ctx *gin.Context, userID *int) {
	page, perPage := paginationParams(ctx)

	query := oc.DB.Model(&models.Order{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var count int64
	query.Count(&count)

	var orders []models.Order
	result := query.Preload("OrderItems").
		Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	data, err := oc.enrichOrders(orders)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}

	ctx.JSON(http.StatusOK, paginatedResponse("Orders retrieved successfully.", data, count, perPage, page))
}

func (oc *OrderController) GetOrders(ctx *gin.Context) {
	oc.listOrders(ctx, nil)
}

func (oc *OrderController) GetOrdersByUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}
	oc.listOrders(ctx, &userID)
}

func (oc *OrderController) GetOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve order", err)
		}
		return
	}

	data, err := oc.enrichOrders([]models.Order{order})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve order", err)
		return
	}

	ctx.JSON(http.StatusOK, data[0])
}

// UpdateOrder patches payment and shipping fields only. Items and the total
// are immutable once the order exists.
func (oc *OrderController) UpdateOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var input updateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationError(ctx, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve order", err)
		}
		return
	}

	updates := map[string]any{}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}
	if input.PaymentStatus != nil {
		updates["payment_status"] = *input.PaymentStatus
	}
	if input.TransactionID != nil {
		updates["transaction_id"] = *input.TransactionID
	}
	if input.ShippingAddress != nil {
		updates["shipping_address"] = *input.ShippingAddress
	}
	if input.ShippingCity != nil {
		updates["shipping_city"] = *input.ShippingCity
	}
	if input.ShippingZip != nil {
		updates["shipping_zip"] = *input.ShippingZip
	}
	if input.ShippingCountry != nil {
		updates["shipping_country"] = *input.ShippingCountry
	}

	if len(updates) > 0 {
		if err := oc.DB.Model(&order).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update order", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, order)
}

// DeleteOrder removes the items first, then the order. The cascade is
// explicit rather than relying on a storage-level constraint.
func (oc *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve order", err)
		}
		return
	}

	tx := oc.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete order items", err)
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete order", err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete order", err)
		return
	}

	log.Printf("Order %d deleted with its items", order.ID)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

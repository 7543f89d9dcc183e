package controllers

import (
	"net/http"
	"time"

	"github.com/Voxodinson/webass-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type dailySales struct {
	SaleDate   string          `json:"sale_date"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type topProductRow struct {
	ProductID uint  `json:"product_id"`
	TotalSold int64 `json:"total_sold"`
}

// GetOverview composes the dashboard document from five independent read
// queries. Each aggregate is internally consistent; the document as a whole
// is a monitoring snapshot, not a transactional read.
func (dc *DashboardController) GetOverview(ctx *gin.Context) {
	now := time.Now()
	since30Days := now.AddDate(0, 0, -30)
	since7Days := now.AddDate(0, 0, -7)
	sinceMonth := now.AddDate(0, -1, 0)

	var totalOrders int64
	if err := dc.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load dashboard data", err)
		return
	}

	var totalRevenue decimal.Decimal
	if err := dc.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load dashboard data", err)
		return
	}

	var newCustomers int64
	if err := dc.DB.Model(&models.User{}).Where("created_at >= ?", since30Days).Count(&newCustomers).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load dashboard data", err)
		return
	}

	var totalProductsSold int64
	if err := dc.DB.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totalProductsSold).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load dashboard data", err)
		return
	}

	recentOrders, err := dc.recentOrders()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load recent orders", err)
		return
	}

	salesByDay := make([]dailySales, 0)
	if err := dc.DB.Model(&models.Order{}).
		Select("DATE(created_at) AS sale_date, SUM(total_amount) AS total_sales").
		Where("created_at >= ?", since7Days).
		Group("sale_date").
		Order("sale_date ASC").
		Scan(&salesByDay).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load sales overview", err)
		return
	}

	topProducts, err := dc.topSellingProducts(3)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load top selling products", err)
		return
	}

	var newCustomersLastMonth int64
	if err := dc.DB.Model(&models.User{}).Where("created_at >= ?", sinceMonth).Count(&newCustomersLastMonth).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load customer insights", err)
		return
	}

	var returningCustomersLastMonth int64
	if err := dc.DB.Model(&models.User{}).
		Where("created_at < ?", sinceMonth).
		Where("EXISTS (SELECT 1 FROM orders WHERE orders.user_id = users.id AND orders.created_at BETWEEN ? AND ? AND orders.deleted_at IS NULL)", sinceMonth, now).
		Count(&returningCustomersLastMonth).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to load customer insights", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"general_overview": gin.H{
			"total_orders":        totalOrders,
			"total_revenue":       totalRevenue,
			"new_customers":       newCustomers,
			"total_products_sold": totalProductsSold,
		},
		"recent_orders":        recentOrders,
		"sales_overview":       salesByDay,
		"top_selling_products": topProducts,
		"customer_insights": gin.H{
			"new_customers_last_month":       newCustomersLastMonth,
			"returning_customers_last_month": returningCustomersLastMonth,
		},
		"sales_by_day": salesByDay,
	})
}

// recentOrders returns the latest five orders with buyer identity and per
// item product names, looked up in batches.
func (dc *DashboardController) recentOrders() ([]gin.H, error) {
	var orders []models.Order
	err := dc.DB.Preload("OrderItems").
		Order("created_at DESC").
		Limit(5).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(orders))
	for _, order := range orders {
		userIDs = append(userIDs, order.UserID)
	}
	users := map[uint]models.User{}
	if len(userIDs) > 0 {
		var rows []models.User
		if err := dc.DB.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, user := range rows {
			users[user.ID] = user
		}
	}

	data := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		var userName, userEmail any
		if user, ok := users[order.UserID]; ok {
			userName = user.Name
			userEmail = user.Email
		}

		items := make([]gin.H, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			items = append(items, gin.H{
				"product_id":   item.ProductID,
				"product_name": item.Name,
				"quantity":     item.Quantity,
			})
		}

		data = append(data, gin.H{
			"id":             order.ID,
			"user_id":        order.UserID,
			"user_name":      userName,
			"user_email":     userEmail,
			"total_amount":   order.TotalAmount,
			"payment_status": order.PaymentStatus,
			"created_at":     order.CreatedAt,
			"order_items":    items,
		})
	}
	return data, nil
}

// topSellingProducts ranks products by total units across all order items.
// The live product name is looked up afterwards; deleted products show N/A.
func (dc *DashboardController) topSellingProducts(limit int) ([]gin.H, error) {
	rows := make([]topProductRow, 0)
	err := dc.DB.Model(&models.OrderItem{}).
		Select("product_id, SUM(quantity) AS total_sold").
		Group("product_id").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	names := map[uint]string{}
	if len(ids) > 0 {
		var products []models.Product
		if err := dc.DB.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return nil, err
		}
		for _, product := range products {
			names[product.ID] = product.Name
		}
	}

	data := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		name := "N/A"
		if n, ok := names[row.ProductID]; ok {
			name = n
		}
		data = append(data, gin.H{
			"product_id":   row.ProductID,
			"product_name": name,
			"total_sold":   row.TotalSold,
		})
	}
	return data, nil
}

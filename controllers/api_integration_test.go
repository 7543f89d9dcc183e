package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Voxodinson/webass-api/initializers"
	"github.com/Voxodinson/webass-api/models"
	"github.com/Voxodinson/webass-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// APITestSuite exercises the order and dashboard flows against a real
// database. Set TEST_DB_DSN to run it, e.g.
// root:secret@tcp(localhost:3306)/webass_test?charset=utf8mb4&parseTime=True
type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestAPISuite(t *testing.T) {
	if os.Getenv("TEST_DB_DSN") == "" {
		t.Skip("TEST_DB_DSN not set; skipping integration tests")
	}
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(mysql.Open(os.Getenv("TEST_DB_DSN")), &gorm.Config{})
	require.NoError(s.T(), err)
	require.NoError(s.T(), initializers.SyncDatabase(db))
	s.db = db

	resolver := storage.NewResolver("http://localhost:8080")
	orders := NewOrderController(db, resolver, nil)
	dashboard := NewDashboardController(db)

	router := gin.New()
	router.POST("/orders", orders.CreateOrder)
	router.GET("/orders", orders.GetOrders)
	router.GET("/orders/:id", orders.GetOrder)
	router.GET("/orders/user/:userId", orders.GetOrdersByUser)
	router.PUT("/orders/:id", orders.UpdateOrder)
	router.DELETE("/orders/:id", orders.DeleteOrder)
	router.GET("/dashboard/overview", dashboard.GetOverview)
	s.router = router
}

func (s *APITestSuite) SetupTest() {
	s.db.Exec("DELETE FROM order_items")
	s.db.Exec("DELETE FROM orders")
	s.db.Exec("DELETE FROM feedbacks")
	s.db.Exec("DELETE FROM products")
	s.db.Exec("DELETE FROM users")
}

func (s *APITestSuite) TearDownSuite() {
	if s.db != nil {
		sqlDB, _ := s.db.DB()
		sqlDB.Close()
	}
}

func (s *APITestSuite) createTestUser(name string) models.User {
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	require.NoError(s.T(), s.db.Create(&user).Error)
	return user
}

func (s *APITestSuite) createTestProduct(name, price string) models.Product {
	product := models.Product{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Stock:       100,
		Color:       "black",
		ProductType: models.ProductTypeMen,
	}
	require.NoError(s.T(), product.SetImageList([]string{}))
	require.NoError(s.T(), s.db.Create(&product).Error)
	return product
}

func (s *APITestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	s.router.ServeHTTP(recorder, request)
	return recorder
}

func orderBody(userID uint, items string) string {
	return fmt.Sprintf(`{
		"user_id": %d,
		"items": %s,
		"shipping_address": "1 Main St",
		"shipping_city": "Phnom Penh",
		"shipping_zip": "12000",
		"shipping_country": "KH"
	}`, userID, items)
}

func (s *APITestSuite) TestCreateOrderPersistsOrderAndItems() {
	user := s.createTestUser("buyer")
	sneaker := s.createTestProduct("Sneaker", "9.99")
	hat := s.createTestProduct("Cap", "5.00")

	items := fmt.Sprintf(
		`[{"product_id": %d, "quantity": 2, "color": "red", "size": "M"},
		  {"product_id": %d, "quantity": 1, "color": "blue", "size": "L"}]`,
		sneaker.ID, hat.ID,
	)
	recorder := s.do(http.MethodPost, "/orders", orderBody(user.ID, items))
	require.Equal(s.T(), http.StatusCreated, recorder.Code, recorder.Body.String())

	var orderCount, itemCount int64
	s.db.Model(&models.Order{}).Count(&orderCount)
	s.db.Model(&models.OrderItem{}).Count(&itemCount)
	s.Equal(int64(1), orderCount)
	s.Equal(int64(2), itemCount)

	var order models.Order
	require.NoError(s.T(), s.db.Preload("OrderItems").First(&order).Error)

	sum := decimal.Zero
	for _, item := range order.OrderItems {
		sum = sum.Add(item.Total)
	}
	s.True(order.TotalAmount.Equal(sum), "total %s != item sum %s", order.TotalAmount, sum)
	s.True(order.TotalAmount.Equal(decimal.RequireFromString("24.98")), "got %s", order.TotalAmount)
}

func (s *APITestSuite) TestCreateOrderIgnoresClientTotal() {
	user := s.createTestUser("buyer")
	sneaker := s.createTestProduct("Sneaker", "9.99")

	body := fmt.Sprintf(`{
		"user_id": %d,
		"items": [{"product_id": %d, "quantity": 2, "color": "red", "size": "M"}],
		"shipping_address": "1 Main St",
		"shipping_city": "Phnom Penh",
		"shipping_zip": "12000",
		"shipping_country": "KH",
		"total_amount": 1.00
	}`, user.ID, sneaker.ID)

	recorder := s.do(http.MethodPost, "/orders", body)
	require.Equal(s.T(), http.StatusCreated, recorder.Code)

	var order models.Order
	require.NoError(s.T(), s.db.First(&order).Error)
	s.True(order.TotalAmount.Equal(decimal.RequireFromString("19.98")), "got %s", order.TotalAmount)
}

func (s *APITestSuite) TestCreateOrderMissingProductPersistsNothing() {
	user := s.createTestUser("buyer")
	sneaker := s.createTestProduct("Sneaker", "9.99")

	items := fmt.Sprintf(
		`[{"product_id": %d, "quantity": 1, "color": "red", "size": "M"},
		  {"product_id": 999999, "quantity": 1, "color": "red", "size": "M"}]`,
		sneaker.ID,
	)
	recorder := s.do(http.MethodPost, "/orders", orderBody(user.ID, items))
	require.Equal(s.T(), http.StatusNotFound, recorder.Code)

	var orderCount, itemCount int64
	s.db.Model(&models.Order{}).Count(&orderCount)
	s.db.Model(&models.OrderItem{}).Count(&itemCount)
	s.Zero(orderCount)
	s.Zero(itemCount)
}

func (s *APITestSuite) TestCreateOrderMissingUser() {
	sneaker := s.createTestProduct("Sneaker", "9.99")

	items := fmt.Sprintf(`[{"product_id": %d, "quantity": 1, "color": "red", "size": "M"}]`, sneaker.ID)
	recorder := s.do(http.MethodPost, "/orders", orderBody(999999, items))
	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *APITestSuite) TestOrderItemSnapshotSurvivesProductEdits() {
	user := s.createTestUser("buyer")
	sneaker := s.createTestProduct("Sneaker", "9.99")

	items := fmt.Sprintf(`[{"product_id": %d, "quantity": 1, "color": "red", "size": "M"}]`, sneaker.ID)
	recorder := s.do(http.MethodPost, "/orders", orderBody(user.ID, items))
	require.Equal(s.T(), http.StatusCreated, recorder.Code)

	require.NoError(s.T(), s.db.Model(&sneaker).Updates(map[string]any{
		"name":  "Renamed",
		"price": "99.99",
	}).Error)
	require.NoError(s.T(), s.db.Delete(&models.Product{}, sneaker.ID).Error)

	var item models.OrderItem
	require.NoError(s.T(), s.db.First(&item).Error)
	s.Equal("Sneaker", item.Name)
	s.True(item.Price.Equal(decimal.RequireFromString("9.99")), "got %s", item.Price)
}

func (s *APITestSuite) TestUpdateOrderPatchesPaymentFieldsOnly() {
	user := s.createTestUser("buyer")
	sneaker := s.createTestProduct("Sneaker", "9.99")

	items := fmt.Sprintf(`[{"product_id": %d, "quantity": 2, "color": "red", "size": "M"}]`, sneaker.ID)
	require.Equal(s.T(), http.StatusCreated, s.do(http.MethodPost, "/orders", orderBody(user.ID, items)).Code)

	var order models.Order
	require.NoError(s.T(), s.db.First(&order).Error)

	body := `{"payment_status": "completed", "total_amount": 1.00}`
	recorder := s.do(http.MethodPut, fmt.Sprintf("/orders/%d", order.ID), body)
	require.Equal(s.T(), http.StatusOK, recorder.Code)

	var updated models.Order
	require.NoError(s.T(), s.db.First(&updated, order.ID).Error)
	s.Equal("completed", updated.PaymentStatus)
	s.True(updated.TotalAmount.Equal(decimal.RequireFromString("19.98")), "total must stay immutable, got %s", updated.TotalAmount)
}

func (s *APITestSuite) TestDeleteOrderRemovesItems() {
	user := s.createTestUser("buyer")
	sneaker := s.createTestProduct("Sneaker", "9.99")

	items := fmt.Sprintf(`[{"product_id": %d, "quantity": 2, "color": "red", "size": "M"}]`, sneaker.ID)
	require.Equal(s.T(), http.StatusCreated, s.do(http.MethodPost, "/orders", orderBody(user.ID, items)).Code)

	var order models.Order
	require.NoError(s.T(), s.db.First(&order).Error)

	recorder := s.do(http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), "")
	require.Equal(s.T(), http.StatusOK, recorder.Code)

	var itemCount int64
	s.db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	s.Zero(itemCount)
}

func (s *APITestSuite) TestOrdersByUserFiltersBuyer() {
	alice := s.createTestUser("alice")
	bob := s.createTestUser("bob")
	sneaker := s.createTestProduct("Sneaker", "9.99")

	items := fmt.Sprintf(`[{"product_id": %d, "quantity": 1, "color": "red", "size": "M"}]`, sneaker.ID)
	require.Equal(s.T(), http.StatusCreated, s.do(http.MethodPost, "/orders", orderBody(alice.ID, items)).Code)
	require.Equal(s.T(), http.StatusCreated, s.do(http.MethodPost, "/orders", orderBody(bob.ID, items)).Code)

	recorder := s.do(http.MethodGet, fmt.Sprintf("/orders/user/%d", alice.ID), "")
	require.Equal(s.T(), http.StatusOK, recorder.Code)

	var response struct {
		Data  []map[string]any `json:"data"`
		Total int64            `json:"total"`
	}
	require.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &response))
	s.Equal(int64(1), response.Total)
	require.Len(s.T(), response.Data, 1)
	s.Equal("alice", response.Data[0]["customer_name"])
}

func (s *APITestSuite) TestDashboardRevenueMatchesStoredTotals() {
	user := s.createTestUser("buyer")
	sneaker := s.createTestProduct("Sneaker", "9.99")
	hat := s.createTestProduct("Cap", "5.00")

	one := fmt.Sprintf(`[{"product_id": %d, "quantity": 2, "color": "red", "size": "M"}]`, sneaker.ID)
	two := fmt.Sprintf(`[{"product_id": %d, "quantity": 3, "color": "blue", "size": "L"}]`, hat.ID)
	require.Equal(s.T(), http.StatusCreated, s.do(http.MethodPost, "/orders", orderBody(user.ID, one)).Code)
	require.Equal(s.T(), http.StatusCreated, s.do(http.MethodPost, "/orders", orderBody(user.ID, two)).Code)

	recorder := s.do(http.MethodGet, "/dashboard/overview", "")
	require.Equal(s.T(), http.StatusOK, recorder.Code)

	var response struct {
		GeneralOverview struct {
			TotalOrders       int64           `json:"total_orders"`
			TotalRevenue      decimal.Decimal `json:"total_revenue"`
			TotalProductsSold int64           `json:"total_products_sold"`
		} `json:"general_overview"`
		SalesByDay []struct {
			SaleDate   string          `json:"sale_date"`
			TotalSales decimal.Decimal `json:"total_sales"`
		} `json:"sales_by_day"`
		TopSellingProducts []struct {
			ProductName string `json:"product_name"`
			TotalSold   int64  `json:"total_sold"`
		} `json:"top_selling_products"`
	}
	require.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &response))

	s.Equal(int64(2), response.GeneralOverview.TotalOrders)
	s.True(response.GeneralOverview.TotalRevenue.Equal(decimal.RequireFromString("34.98")),
		"got %s", response.GeneralOverview.TotalRevenue)
	s.Equal(int64(5), response.GeneralOverview.TotalProductsSold)

	require.NotEmpty(s.T(), response.SalesByDay)
	today := time.Now().Format("2006-01-02")
	s.True(strings.HasPrefix(response.SalesByDay[len(response.SalesByDay)-1].SaleDate, today))

	require.NotEmpty(s.T(), response.TopSellingProducts)
	s.Equal("Cap", response.TopSellingProducts[0].ProductName)
	s.Equal(int64(3), response.TopSellingProducts[0].TotalSold)
}

func (s *APITestSuite) TestDashboardWithNoOrders() {
	recorder := s.do(http.MethodGet, "/dashboard/overview", "")
	require.Equal(s.T(), http.StatusOK, recorder.Code)

	var response struct {
		GeneralOverview struct {
			TotalOrders  int64           `json:"total_orders"`
			TotalRevenue decimal.Decimal `json:"total_revenue"`
		} `json:"general_overview"`
		SalesByDay []any `json:"sales_by_day"`
	}
	require.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &response))

	s.Zero(response.GeneralOverview.TotalOrders)
	s.True(response.GeneralOverview.TotalRevenue.IsZero())
	s.NotNil(response.SalesByDay)
	s.Empty(response.SalesByDay)
}

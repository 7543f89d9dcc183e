package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Web-Ass back office API.

The following are the endpoints for this API:

AUTH
- POST "/register" - Create user account
- POST "/login" - Access user account
- POST "/logout" - Discard the current token

USERS
- GET "/users" - Get all users (paginated)
- GET "/users/{id}" - Get user by ID
- POST "/update/{id}" - Update user
- DELETE "/users/{id}" - Delete user

PRODUCTS
- GET "/products" - Get all products (search, product_type filter)
- GET "/products/{id}" - Get product by ID
- POST "/products" - Create product (admin)
- PUT "/products/{id}" - Update product (admin)
- DELETE "/products/{id}" - Delete product (admin)

COMPANIES
- GET "/companies", GET "/companies/{id}"
- POST "/companies", PUT "/companies/{id}", DELETE "/companies/{id}" (admin)

SOCIAL MEDIA
- GET "/social-media", GET "/social-media/{id}"
- POST "/social-media", PUT "/social-media/{id}", DELETE "/social-media/{id}" (admin)

FEEDBACK
- GET "/feedbacks", GET "/feedbacks/{id}"
- POST "/feedbacks", PUT "/feedbacks/{id}", DELETE "/feedbacks/{id}"

ORDERS
- POST "/orders" - Create a new order
- GET "/orders" - Retrieve all orders (paginated)
- GET "/orders/{id}" - Get order by ID
- GET "/orders/user/{userId}" - Get orders for a specific user
- PUT "/orders/{id}" - Update payment/shipping fields
- DELETE "/orders/{id}" - Delete order with its items

DASHBOARD
- GET "/dashboard/overview" - Aggregated statistics (admin)`

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "shipping_address", snakeCase("ShippingAddress"))
	assert.Equal(t, "name", snakeCase("Name"))
	assert.Equal(t, "user_id", snakeCase("UserID"))
	assert.Equal(t, "transaction_id", snakeCase("TransactionID"))
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, lastPage(0, 10))
	assert.Equal(t, 1, lastPage(10, 10))
	assert.Equal(t, 2, lastPage(11, 10))
	assert.Equal(t, 5, lastPage(50, 10))
}

func TestPaginatedResponse(t *testing.T) {
	envelope := paginatedResponse("ok", []string{}, 25, 10, 2)

	assert.Equal(t, int64(25), envelope["total"])
	assert.Equal(t, 10, envelope["per_page"])
	assert.Equal(t, 2, envelope["current_page"])
	assert.Equal(t, 3, envelope["last_page"])
}

package utils

import (
	"log"
	"time"

	"github.com/Voxodinson/webass-api/models"
	"github.com/go-resty/resty/v2"
)

// OrderNotifier posts order-created events to a configured endpoint.
// Delivery is best-effort; a failed post is logged and not retried.
type OrderNotifier struct {
	client *resty.Client
	url    string
}

// NewOrderNotifier returns nil when no webhook URL is configured.
func NewOrderNotifier(url string) *OrderNotifier {
	if url == "" {
		return nil
	}
	return &OrderNotifier{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    url,
	}
}

func (n *OrderNotifier) OrderCreated(order models.Order) {
	payload := map[string]any{
		"event":        "order.created",
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"item_count":   len(order.OrderItems),
		"created_at":   order.CreatedAt,
	}

	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(n.url)
	if err != nil {
		log.Printf("Order webhook failed for order %d: %v", order.ID, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Order webhook for order %d returned status %d", order.ID, resp.StatusCode())
	}
}

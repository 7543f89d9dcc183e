package initializers

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when redis is not configured or unreachable;
// callers treat a nil client as "rate limiting disabled".
func ConnectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARNING: failed to connect to redis: %v. Rate limiting disabled.", err)
		return nil
	}
	return client
}

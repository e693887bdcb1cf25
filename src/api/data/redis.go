package data

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// MustRedis parses a redis URL and returns a client. Used by the rate
// limiter when a shared counter across instances is wanted.
func MustRedis(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opts)
}

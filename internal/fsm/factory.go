package fsm

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tajik-krasava/RPP/internal/config"
)

// NewStore builds the session store selected by configuration.
func NewStore(cfg config.SessionConfig) (Store, error) {
	switch cfg.Driver {
	case config.SessionDriverMemory, "":
		return NewMemoryStore(), nil
	case config.SessionDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisStore(client, time.Duration(cfg.TTLMinutes)*time.Minute), nil
	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.Driver)
	}
}

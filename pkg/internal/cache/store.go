package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// S is the process-wide cache store. In-process ristretto by default, a
// shared redis when cache.redis_addr is configured.
var S store.StoreInterface

func NewStore() error {
	if addr := viper.GetString("cache.redis_addr"); len(addr) > 0 {
		client := redis.NewClient(&redis.Options{Addr: addr})
		S = redisstore.NewRedis(client)
		log.Info().Str("addr", addr).Msg("Cache backed by redis.")
		return nil
	}

	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	S = ristrettostore.NewRistretto(inner)
	return nil
}

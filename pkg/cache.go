package pkg

import (
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"golang.org/x/net/context"
)

var (
	Rdb *redis.Client
	Ctx = context.Background()
)

// InitRedis deixa Rdb nulo quando REDIS_URL não está configurado; o cache
// de CEP em Redis é opcional e os serviços seguem só com o cache em memória.
func InitRedis() {
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		log.Println("REDIS_URL não configurado, cache Redis desativado")
		return
	}

	Rdb = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := Rdb.Ping(Ctx).Result(); err != nil {
		log.Printf("Não foi possível conectar ao Redis: %v", err)
		Rdb = nil
	}
}

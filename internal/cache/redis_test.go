package cache

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "catalog:item:438631:lang:en-US", buildKey(438631, "en-US"))
}

func TestNewCacheDefaultTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	assert.Equal(t, defaultTTL, NewCache(client, 0).ttl)
	assert.Equal(t, time.Hour, NewCache(client, time.Hour).ttl)
}

func TestKeyDistinguishesLanguage(t *testing.T) {
	id := domain.ItemID(27205)
	assert.NotEqual(t, buildKey(id, "en-US"), buildKey(id, "de-DE"))
}

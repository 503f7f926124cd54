package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/radio-cms-api/pkg/config"
)

func TestOptions(t *testing.T) {
	opts := Options(config.RedisConfig{Host: "cache", Port: 6380, DB: 2})
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Less(t, opts.ReadTimeout.Seconds(), 1.0)
}

func TestNewRedisFailsWithoutServer(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}

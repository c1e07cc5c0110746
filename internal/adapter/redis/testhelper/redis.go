package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/pathgraph/internal/adapter/redis"
	"github.com/heartmarshall/pathgraph/internal/config"
)

var (
	once      sync.Once
	sharedCfg config.RedisConfig
	initErr   error
)

// Config starts a shared Redis container (once for the entire test run) and
// returns the settings for connecting to it. Skipped with -short.
func Config(t *testing.T) config.RedisConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("testhelper: redis container skipped in -short mode")
	}

	once.Do(func() {
		sharedCfg, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test redis: %v", initErr)
	}
	return sharedCfg
}

// SetupTestStore returns a Store on the shared container under a unique key
// prefix so parallel tests never share keys. The client is closed via t.Cleanup.
func SetupTestStore(t *testing.T) (*redis.Store, *goredis.Client) {
	t.Helper()

	rdb, err := redis.NewClient(context.Background(), Config(t))
	if err != nil {
		t.Fatalf("testhelper: failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	return redis.NewStore(rdb, "test-"+uuid.NewString()[:8]), rdb
}

func startContainer() (config.RedisConfig, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return config.RedisConfig{}, fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return config.RedisConfig{}, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return config.RedisConfig{}, fmt.Errorf("get mapped port: %w", err)
	}

	return config.RedisConfig{
		Addr:         host + ":" + port.Port(),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     5,
	}, nil
}

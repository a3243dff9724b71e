package repository

import (
	"context"
	"os"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// Set these to reuse running servers instead of starting containers.
	testRedisAddressEnv = "CONTACTS_TEST_REDIS_ADDRESS"
	testMongoURLEnv     = "CONTACTS_TEST_MONGO_URL"

	redisImage = "redis:7-alpine"
	mongoImage = "mongo:7"
)

// startRedis returns the address of a redis server for the test.
func startRedis(t *testing.T) string {
	t.Helper()

	if addr := os.Getenv(testRedisAddressEnv); addr != "" {
		return addr
	}
	return startContainer(t, redisImage, "6379/tcp", "")
}

// startMongo returns a connection URL of a mongo server for the test.
func startMongo(t *testing.T) string {
	t.Helper()

	if url := os.Getenv(testMongoURLEnv); url != "" {
		return url
	}
	return startContainer(t, mongoImage, "27017/tcp", "mongodb")
}

// startContainer runs image until the test ends and returns the endpoint
// of port. Tests are skipped when no container runtime is reachable.
func startContainer(t *testing.T, image string, port nat.Port, proto string) string {
	t.Helper()

	if testing.Short() {
		t.Skip("container tests are skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForListeningPort(port),
		},
		Started: true,
	}

	container, err := testcontainers.GenericContainer(ctx, req)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	endpoint, err := container.PortEndpoint(ctx, port, proto)
	require.NoError(t, err)
	return endpoint
}

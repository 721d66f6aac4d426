package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MySQLDatabase = "facet_deriver"
	MySQLUser     = "root"
	MySQLPassword = "root"
	RabbitMQUser  = "guest"
	RabbitMQPass  = "guest"
)

// StartMySQL starts a throwaway MySQL container and returns its host:port.
func StartMySQL(t *testing.T) string {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": MySQLPassword,
				"MYSQL_DATABASE":      MySQLDatabase,
			},
			WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.Nil(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.Nil(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.Nil(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

// StartRabbitMQ starts a throwaway RabbitMQ container and returns its host and port.
func StartRabbitMQ(t *testing.T) (string, string) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.Nil(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.Nil(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.Nil(t, err)

	return host, port.Port()
}

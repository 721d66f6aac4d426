package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/testutils"
)

func TestDSN(t *testing.T) {
	cfg := &Config{Host: "localhost:3306", Name: "facet", User: "root", Password: "passw00d"}
	require.Equal(t, "root:passw00d@tcp(localhost:3306)/facet?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.Nil(t, err)
	require.NotEmpty(t, entries)
}

func TestOpenMySQLAndMigrate(t *testing.T) {
	if testutils.ShouldSkipContainerTests() {
		t.Skip("Skipping container tests")
	}

	db, err := OpenMySQL(&Config{
		Host:     testutils.StartMySQL(t),
		Name:     testutils.MySQLDatabase,
		User:     testutils.MySQLUser,
		Password: testutils.MySQLPassword,
	})
	require.Nil(t, err)
	require.Nil(t, Migrate(context.Background(), db))
	// Applying twice is a no-op.
	require.Nil(t, Migrate(context.Background(), db))
}

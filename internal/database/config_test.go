package database

import (
	"testing"

	"itemvault/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := NewConfig(&config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "vault", DBPassword: "pw", DBName: "items", DBSSLMode: "disable",
	})

	assert.Equal(t, "host=db port=5432 user=vault password=pw dbname=items sslmode=disable", cfg.DSN())
}

func TestConfig_MigrateURLEscapesCredentials(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "vault", Password: "p@ss/word", DBName: "items", SSLMode: "require"}

	assert.Equal(t, "postgres://vault:p%40ss%2Fword@db:5432/items?sslmode=require", cfg.MigrateURL())
}

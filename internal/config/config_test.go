package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("MAX_UPLOAD_BYTES", "1048576")
	os.Setenv("USE_PRESIGNED_URLS", "false")
	os.Setenv("ALLOWED_EXTENSIONS", "pdf, PNG ,txt")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("MAX_UPLOAD_BYTES")
		os.Unsetenv("USE_PRESIGNED_URLS")
		os.Unsetenv("ALLOWED_EXTENSIONS")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Download.UsePresignedURLs)
	assert.Equal(t, []string{"pdf", "png", "txt"}, cfg.Upload.AllowedExtensions)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("MAX_UPLOAD_BYTES")
	os.Unsetenv("USE_PRESIGNED_URLS")
	os.Unsetenv("ALLOWED_EXTENSIONS")
	os.Unsetenv("RECONCILE_QUEUE_PATH")

	cfg := Load()

	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes)
	assert.True(t, cfg.Download.UsePresignedURLs)
	assert.Equal(t, 15, cfg.Download.PresignExpiryMin)
	assert.Nil(t, cfg.Upload.AllowedExtensions)
	assert.Equal(t, "reconcile_queue.jsonl", cfg.ReconcileQueuePath)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	os.Setenv(key, "10485760")
	assert.Equal(t, int64(10485760), getEnvInt64(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, int64(7), getEnvInt64(key, 7))

	os.Unsetenv(key)
	assert.Equal(t, int64(7), getEnvInt64(key, 7))
}

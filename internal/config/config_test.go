package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads the config file", func(t *testing.T) {
		// Given: a config file overriding a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
http-port: "8080"
storage:
  driver: sqlite
game:
  computer-delay: 10ms
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf := MustLoad(path)

		// Then: file values win and the rest fall back to defaults
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "sqlite", conf.Storage.Driver)
		assert.Equal(t, 10*time.Millisecond, conf.Game.ComputerDelay)
		assert.Equal(t, 700*time.Millisecond, conf.Game.WinResetDelay)
		assert.Equal(t, 500*time.Millisecond, conf.Game.DrawResetDelay)
		assert.Equal(t, 1000, conf.Leaderboard.MaxRecords)
		assert.Equal(t, 50, conf.Leaderboard.DefaultLimit)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		// Given: no config file and an env override
		t.Setenv("REDIS_HOST", "redis")

		// When: loading a missing path
		conf := MustLoad(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: env and defaults are used
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "http://localhost:9090/api/players", conf.Leaderboard.URL)
		assert.Equal(t, 5*time.Second, conf.Leaderboard.Timeout)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("Missing file is not an error", func(t *testing.T) {
		require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("Loads variables", func(t *testing.T) {
		// Given: a .env file
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TICTACTOE_TEST_VAR=loaded\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("TICTACTOE_TEST_VAR") })

		// When: loading it
		err := LoadDotEnv(path)

		// Then: the variable is set
		require.NoError(t, err)
		assert.Equal(t, "loaded", os.Getenv("TICTACTOE_TEST_VAR"))
	})
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort  string      `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage     Storage     `yaml:"storage"`
	Redis       Redis       `yaml:"redis"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
	Game        Game        `yaml:"game"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"redis"`
	SQLitePath string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"leaderboard.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Leaderboard struct {
	URL          string        `yaml:"url" env:"LEADERBOARD_URL" env-default:"http://localhost:9090/api/players"`
	Timeout      time.Duration `yaml:"timeout" env:"LEADERBOARD_TIMEOUT" env-default:"5s"`
	MaxRecords   int           `yaml:"max-records" env:"LEADERBOARD_MAX_RECORDS" env-default:"1000"`
	DefaultLimit int           `yaml:"default-limit" env:"LEADERBOARD_DEFAULT_LIMIT" env-default:"50"`
}

// Game holds the pauses between a move and the computer reply or the next round.
type Game struct {
	ComputerDelay  time.Duration `yaml:"computer-delay" env:"GAME_COMPUTER_DELAY" env-default:"400ms"`
	WinResetDelay  time.Duration `yaml:"win-reset-delay" env:"GAME_WIN_RESET_DELAY" env-default:"700ms"`
	DrawResetDelay time.Duration `yaml:"draw-reset-delay" env:"GAME_DRAW_RESET_DELAY" env-default:"500ms"`
}

// MustLoad - load all configurations from the config file at path, or from
// the environment alone when the file does not exist.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load config from env: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	return godotenv.Load(path)
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

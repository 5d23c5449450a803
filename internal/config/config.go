package config

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"japjap-server/internal/util"
)

// envPrefix namespaces the environment overrides, e.g., JAPJAP_PG_DSN
const envPrefix = "japjap"

// Config is the server configuration
// It is read from an optional YAML file, then overridden by the environment
type Config struct {
	// Host is the public base URL, used to build table join links
	Host              string     `yaml:"host" envconfig:"host"`
	PGDSN             string     `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath    string     `yaml:"migrationsPath" envconfig:"migrations_path"`
	RecaptchaSecret   string     `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	PlayerCreateDelay int        `yaml:"playerCreateDelay" envconfig:"player_create_delay"`
	StartGameDelay    int        `yaml:"startGameDelay" envconfig:"start_game_delay"`
	JWT               JWTConfig  `yaml:"jwt"`
	Log               LogConfig  `yaml:"log"`
	NATS              NATSConfig `yaml:"nats"`
	Game              GameConfig `yaml:"game"`
}

// JWTConfig locates the PEM encoded RSA key pair
type JWTConfig struct {
	PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
	PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
}

// LogConfig controls logrus
type LogConfig struct {
	Level string `yaml:"level"`
	// Format is text or json
	Format            string `yaml:"format"`
	DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
}

// NATSConfig is where game events are published, an empty URL disables publishing
type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subjectPrefix" envconfig:"subject_prefix"`
}

// GameConfig holds the pacing of games played at a table, both in milliseconds
type GameConfig struct {
	ThinkingTime int `yaml:"thinkingTime" envconfig:"thinking_time"`
	RoundPause   int `yaml:"roundPause" envconfig:"round_pause"`
}

var (
	mu      sync.Mutex
	current *Config
)

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Host:              "http://localhost:5000",
		PGDSN:             "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath:    "./sql",
		PlayerCreateDelay: 60,
		StartGameDelay:    10,
		JWT:               JWTConfig{PublicKey: ".keys/public.pem", PrivateKey: ".keys/private.key"},
		Log:               LogConfig{Level: "info", Format: "text"},
		NATS:              NATSConfig{SubjectPrefix: "japjap"},
		Game:              GameConfig{ThinkingTime: 300, RoundPause: 5000},
	}
}

// ThinkingTime is how long a bot waits before it acts
func (c Config) ThinkingTime() time.Duration {
	return time.Duration(c.Game.ThinkingTime) * time.Millisecond
}

// RoundPause is how long revealed hands stay up after a round
func (c Config) RoundPause() time.Duration {
	return time.Duration(c.Game.RoundPause) * time.Millisecond
}

// Instance returns a copy of the loaded configuration, loading it on first use
// It panics if the configuration cannot be loaded
func Instance() Config {
	mu.Lock()
	loaded := current
	mu.Unlock()

	if loaded == nil {
		if err := Load(); err != nil {
			panic(err)
		}

		return Instance()
	}

	return *loaded
}

// Load reads the configuration again, replacing what Instance returns
func Load() error {
	cfg := DefaultConfig()

	if err := readFile(util.Getenv("JAPJAP_CONFIG_FILE", "config.yaml"), &cfg); err != nil {
		return err
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return err
	}

	mu.Lock()
	current = &cfg
	mu.Unlock()
	return nil
}

// readFile decodes the YAML file at path over cfg, a missing file is not an error
func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	return yaml.Unmarshal(b, cfg)
}

// reset forgets the loaded configuration
func reset() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

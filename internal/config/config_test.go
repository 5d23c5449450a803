package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"japjap-server/internal/util"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("JAPJAP_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("JAPJAP_JWT_PRIVATE_KEY", "private2.key")()
	reset()

	cfg := Instance()
	assert.Equal(t, "https://japjap.example", cfg.Host)
	assert.Equal(t, JWTConfig{PublicKey: "public.pem", PrivateKey: "private2.key"}, cfg.JWT, "the environment wins over the file")
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.ThinkingTime())

	// settings the file leaves out keep their defaults
	assert.Equal(t, "japjap", cfg.NATS.SubjectPrefix)
	assert.Equal(t, 5*time.Second, cfg.RoundPause())

	// later changes to the environment or the copy do not leak in
	require.NoError(t, os.Setenv("JAPJAP_JWT_PRIVATE_KEY", "private3.key"))
	cfg.JWT.PrivateKey = "bad"
	assert.Equal(t, "private2.key", Instance().JWT.PrivateKey)
}

func TestLoad_missingFile(t *testing.T) {
	defer util.SetEnv("JAPJAP_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("JAPJAP_GAME_ROUND_PAUSE", "250")()

	require.NoError(t, Load())

	cfg := Instance()
	assert.Equal(t, GameConfig{ThinkingTime: 300, RoundPause: 250}, cfg.Game)
	assert.Equal(t, DefaultConfig().Log, cfg.Log)
}

func TestLoad_badFile(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	require.NoError(t, os.WriteFile(path, []byte("host: [unterminated"), 0o600))
	defer util.SetEnv("JAPJAP_CONFIG_FILE", path)()

	assert.Error(t, Load())
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rbackit/pkg/config"
)

type testConfig struct {
	Name    string `env:"RBAC_TEST_NAME" envDefault:"default-name"`
	Workers int    `env:"RBAC_TEST_WORKERS" envDefault:"4"`
}

type requiredConfig struct {
	Secret string `env:"RBAC_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		config.Reset()

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "default-name", cfg.Name)
		assert.Equal(t, 4, cfg.Workers)
	})

	t.Run("env overrides defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("RBAC_TEST_NAME", "from-env")
		t.Setenv("RBAC_TEST_WORKERS", "16")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Name)
		assert.Equal(t, 16, cfg.Workers)
	})

	t.Run("cached between calls", func(t *testing.T) {
		config.Reset()
		t.Setenv("RBAC_TEST_NAME", "first")

		var first testConfig
		require.NoError(t, config.Load(&first))

		// Environment changes after the first load are not observed.
		t.Setenv("RBAC_TEST_NAME", "second")
		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Name)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil destination", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load("does-not-exist.yaml")

	assert.Equal(t, 9872, c.Server.Port)
	assert.Equal(t, ":9872", c.Addr())
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "challenge_monitor", c.Database.Name)
	assert.True(t, c.AutoSkip.Enabled)
	assert.Equal(t, 3, c.AutoSkip.CutoffHour)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8099")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("AUTOSKIP_CUTOFF_HOUR", "5")
	t.Setenv("LOG_LEVEL", "debug")

	c := Load("does-not-exist.yaml")

	assert.Equal(t, 8099, c.Server.Port)
	assert.Equal(t, "db.internal", c.Database.Host)
	assert.Equal(t, 5, c.AutoSkip.CutoffHour)
	assert.Equal(t, "debug", c.Log.Level)
}

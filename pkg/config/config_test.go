package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults("does-not-exist.toml")

	require.NoError(t, err)
	assert.Equal(t, "quant", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10000, cfg.Quant.DefaultPaths)
	assert.Equal(t, 1e-6, cfg.Quant.VolLowerBound)
	assert.Equal(t, 5.0, cfg.Quant.VolUpperBound)
	assert.Equal(t, 100, cfg.Quant.SolverMaxIterations)
	assert.Equal(t, "quant.pricing.events", cfg.Kafka.Topic)
}

func TestLoadWithDefaultsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quant.toml")
	content := `
service_name = "quant-test"

[http]
port = 9999

[quant]
default_paths = 50000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadWithDefaults(path)

	require.NoError(t, err)
	assert.Equal(t, "quant-test", cfg.ServiceName)
	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, 50000, cfg.Quant.DefaultPaths)
	// 未覆盖的字段保留默认值
	assert.Equal(t, 1e-6, cfg.Quant.SolverTolerance)
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServiceName: "quant",
		HTTP:        HTTPConfig{Port: 8080},
		Quant: QuantConfig{
			DefaultPaths:        10000,
			VolLowerBound:       1e-6,
			VolUpperBound:       5.0,
			SolverTolerance:     1e-6,
			SolverMaxIterations: 100,
		},
	}
	require.NoError(t, valid.Validate())

	noName := valid
	noName.ServiceName = ""
	assert.Error(t, noName.Validate())

	badPort := valid
	badPort.HTTP.Port = 0
	assert.Error(t, badPort.Validate())

	badInterval := valid
	badInterval.Quant.VolUpperBound = badInterval.Quant.VolLowerBound
	assert.Error(t, badInterval.Validate())

	badPaths := valid
	badPaths.Quant.DefaultPaths = 0
	assert.Error(t, badPaths.Validate())
}

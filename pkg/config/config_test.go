package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deeplinks/pkg/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.DefaultVersion, cfg.Version)
	assert.Equal(t, config.InputAuto, cfg.Format)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, config.LogWarn, cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Color)
}

func TestIsValid(t *testing.T) {
	assert.True(t, config.InputMarkdown.IsValid())
	assert.False(t, config.InputFormat("rst").IsValid())
	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("").IsValid())
	assert.True(t, config.OutputJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	tests := []struct {
		name string
		opts config.TemplateOptions
	}{
		{"minimal", config.TemplateOptions{}},
		{"full", config.TemplateOptions{Full: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := config.GenerateTemplate(tt.opts)
			require.NoError(t, err)
			assert.Contains(t, string(content), "# deeplinks configuration")

			cfg, err := config.FromYAML(content)
			require.NoError(t, err, "template must parse as config")
			assert.Equal(t, config.DefaultVersion, cfg.Version)
		})
	}

	t.Run("full template parses to defaults", func(t *testing.T) {
		content, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(content)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("json", func(t *testing.T) {
		content, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.InDelta(t, float64(config.DefaultVersion), decoded["version"], 0)
		assert.Equal(t, "commonmark", decoded["flavor"])
	})
}

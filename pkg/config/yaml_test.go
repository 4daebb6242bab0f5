package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deeplinks/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("copies all fields", func(t *testing.T) {
		original := config.NewConfig()
		original.MaxRanges = 1

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Version = 1
		assert.Equal(t, config.DefaultVersion, original.Version)
	})
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *config.Config
		wantErr bool
	}{
		{
			name:  "all fields",
			input: "version: 1\nformat: markdown\nflavor: gfm\noutput: json\nlog_level: debug\ncolor: never\n",
			want: &config.Config{
				Version:  1,
				Format:   config.InputMarkdown,
				Flavor:   config.FlavorGFM,
				Output:   config.OutputJSON,
				LogLevel: config.LogDebug,
				Color:    "never",
			},
		},
		{
			name:  "partial",
			input: "flavor: gfm\n",
			want:  &config.Config{Flavor: config.FlavorGFM},
		},
		{
			name:  "empty",
			input: "",
			want:  &config.Config{},
		},
		{
			name:  "comments only",
			input: "# nothing here\n",
			want:  &config.Config{},
		},
		{
			name:    "unknown key",
			input:   "rules:\n  MD001: false\n",
			wantErr: true,
		},
		{
			name:    "wrong type",
			input:   "version: two\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.FromYAML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToYAML(t *testing.T) {
	cfg := config.NewConfig()
	cfg.MaxRanges = 3

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "max_ranges", "CLI-only fields are not persisted")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	cfg.MaxRanges = 0
	assert.Equal(t, cfg, parsed)

	withHeader, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
	require.NoError(t, err)
	assert.Contains(t, string(withHeader), "# deeplinks configuration\n# See: https://github.com/yaklabco/deeplinks\n\nversion: 2\n")

	var nilCfg *config.Config
	data, err = nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}

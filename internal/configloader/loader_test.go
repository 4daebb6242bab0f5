package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/deeplinks/pkg/config"
	"github.com/yaklabco/deeplinks/pkg/fsutil"
)

// projectDir returns a temp directory that is its own VCS root, so the
// upward config search never leaves it.
func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       projectDir(t),
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff(config.NewConfig(), result.Config); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	configPath := filepath.Join(root, ProjectConfigName)
	writeFile(t, configPath, "version: 1\nflavor: gfm\n")

	// Search starts in a subdirectory and walks up.
	workDir := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       workDir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Version != 1 {
		t.Errorf("expected version 1, got %d", result.Config.Version)
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor gfm, got %q", result.Config.Flavor)
	}
	if result.Config.Output != config.OutputText {
		t.Errorf("unset keys keep defaults; got output %q", result.Config.Output)
	}
	if result.Paths.Project != configPath {
		t.Errorf("expected project path %q, got %q", configPath, result.Paths.Project)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ProjectConfigName), "version: 1\n")
	inner := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(inner, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), inner)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at the repository root, found %q", path)
	}
}

func TestLoad_Precedence(t *testing.T) {
	// Not parallel: uses t.Setenv.
	root := projectDir(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	writeFile(t, filepath.Join(xdg, "deeplinks", "config.yaml"), "version: 1\nflavor: gfm\noutput: json\nlog_level: info\ncolor: never\n")
	writeFile(t, filepath.Join(root, ProjectConfigName), "flavor: commonmark\noutput: text\nlog_level: debug\n")
	explicit := filepath.Join(t.TempDir(), "explicit.yml")
	writeFile(t, explicit, "output: json\nlog_level: error\n")
	t.Setenv("DEEPLINKS_LOG_LEVEL", "warn")
	t.Setenv("DEEPLINKS_FORMAT", "html")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:   root,
		ExplicitPath: explicit,
		CLIConfig:    &config.Config{Format: config.InputMarkdown},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := config.Config{
		Version:  1,                      // user
		Flavor:   config.FlavorCommonMark, // project over user
		Output:   config.OutputJSON,      // explicit over project
		LogLevel: config.LogWarn,         // env over explicit
		Format:   config.InputMarkdown,   // flag over env
		Color:    "never",                // user
	}
	if diff := cmp.Diff(want, *result.Config); diff != "" {
		t.Errorf("layered config mismatch (-want +got):\n%s", diff)
	}
	if len(result.LoadedFrom) != 3 {
		t.Errorf("expected 3 files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad flavor", "flavor: rst\n", "flavor"},
		{"bad version", "version: 7\n", "unknown fragment version 7"},
		{"bad output", "output: sarif\n", "output"},
		{"unknown key", "rules: {}\n", "parse yaml"},
		{"bad log level", "log_level: loud\n", "log_level"},
		{"bad exclude glob", "exclude:\n  - \"[vendor\"\n", "exclude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := projectDir(t)
			path := filepath.Join(root, ProjectConfigName)
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), LoadOptions{
				WorkingDir:       root,
				IgnoreUserConfig: true,
				IgnoreEnv:        true,
			})
			if err == nil {
				t.Fatal("expected error for invalid config")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:       projectDir(t),
		ExplicitPath:     filepath.Join(t.TempDir(), "missing.yml"),
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	})
	if !errors.Is(err, fsutil.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("DEEPLINKS_VERSION", "two")

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:       projectDir(t),
		IgnoreUserConfig: true,
	})
	if err == nil || !strings.Contains(err.Error(), "DEEPLINKS_VERSION") {
		t.Errorf("expected error naming DEEPLINKS_VERSION, got %v", err)
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       projectDir(t),
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
		CLIConfig:        &config.Config{Format: config.InputHTML, Flavor: config.FlavorGFM},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "flavor only applies") {
		t.Errorf("expected flavor warning, got %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, LoadOptions{WorkingDir: t.TempDir(), IgnoreEnv: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	got := MergeAll(
		config.NewConfig(),
		&config.Config{Version: 1},
		&config.Config{Output: config.OutputJSON, MaxRanges: 1, Exclude: []string{"vendor/**"}},
		&config.Config{Exclude: nil},
		nil,
	)
	if got.Version != 1 || got.Output != config.OutputJSON || got.MaxRanges != 1 {
		t.Errorf("unexpected merge result %+v", got)
	}
	if got.Flavor != config.FlavorCommonMark {
		t.Errorf("unset fields keep the base value, got %q", got.Flavor)
	}
	if len(got.Exclude) != 1 || got.Exclude[0] != "vendor/**" {
		t.Errorf("an empty exclude list keeps the lower layer's, got %v", got.Exclude)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("expected %d vars, got %d", len(envMappings), len(vars))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name >= vars[i].Name {
			t.Errorf("vars not sorted: %q before %q", vars[i-1].Name, vars[i].Name)
		}
	}
	if GetEnvVarName("log_level") != "DEEPLINKS_LOG_LEVEL" {
		t.Errorf("unexpected env var for log_level: %q", GetEnvVarName("log_level"))
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		var out strings.Builder
		got, err := Confirm(strings.NewReader(tt.input), &out, "Overwrite?")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Overwrite? [y/N] " {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}

package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/deeplinks/pkg/runner"
)

// writeTree creates each file, relative to dir, with placeholder content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relPaths strips dir from each discovered path.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	rel := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel %s: %v", f, err)
		}
		rel[i] = filepath.ToSlash(r)
	}
	return rel
}

func assertPaths(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d files %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "notes.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"notes.txt"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	// A file named explicitly is searched whatever its extension.
	assertPaths(t, files, []string{filepath.Join(dir, "notes.txt")})
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"index.html",
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/legacy.HTM",
		"src/main.go",
		"notes.txt",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, relPaths(t, dir, files), []string{
		"docs/api.markdown",
		"docs/guide.md",
		"docs/legacy.HTM",
		"index.html",
		"readme.md",
	})
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.html", "c.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".txt"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, relPaths(t, dir, files), []string{"c.txt"})
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"readme.md",
		"docs/guide.md",
		"docs/deep/nested.md",
		"vendor/lib/readme.md",
		"site/index.html",
		"site/draft.html",
	)

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "exclude directory",
			exclude: []string{"vendor"},
			want:    []string{"docs/deep/nested.md", "docs/guide.md", "readme.md", "site/draft.html", "site/index.html"},
		},
		{
			name:    "exclude double star",
			exclude: []string{"docs/**", "vendor/**"},
			want:    []string{"readme.md", "site/draft.html", "site/index.html"},
		},
		{
			name:    "exclude base name",
			exclude: []string{"draft.*", "readme.md"},
			want:    []string{"docs/deep/nested.md", "docs/guide.md", "site/index.html"},
		},
		{
			name:    "include only html",
			include: []string{"**.html"},
			want:    []string{"site/draft.html", "site/index.html"},
		},
		{
			name:    "single star stays in one directory",
			include: []string{"docs/*.md"},
			want:    []string{"docs/guide.md"},
		},
		{
			name:    "include and exclude",
			include: []string{"{docs,site}/**"},
			exclude: []string{"deep"},
			want:    []string{"docs/guide.md", "site/draft.html", "site/index.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			assertPaths(t, relPaths(t, dir, files), tt.want)
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	if !errors.Is(err, runner.ErrInvalidGlob) {
		t.Fatalf("expected ErrInvalidGlob, got %v", err)
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md", ".hidden.md", ".git/notes.md", ".cache/page.html")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, relPaths(t, dir, files), []string{"readme.md"})
}

func TestDiscover_DeduplicationAndOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "z.md", "a.md", "m.html", "b.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"z.md", ".", "./a.md", "a.md"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, relPaths(t, dir, files), []string{"a.md", "b.md", "m.html", "z.md"})
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for non-existent path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	writeTree(t, dir, "readme.md")
	writeTree(t, target, "linked.md")
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected directory symlink to be skipped, got %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected symlinked directory to be walked, got %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	for _, want := range []string{".html", ".md"} {
		found := false
		for _, e := range exts {
			if e == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in default extensions %v", want, exts)
		}
	}
}

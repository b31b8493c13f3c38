package tree

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rescale/projtree/internal/localfs"
	"github.com/rescale/projtree/internal/logging"
)

// mkTree creates files and directories under dir. Entries ending in "/" are
// directories; everything else is a file with parents created as needed.
func mkTree(t *testing.T, dir string, entries ...string) {
	t.Helper()
	for _, e := range entries {
		p := filepath.Join(dir, filepath.FromSlash(e))
		if strings.HasSuffix(e, "/") {
			if err := os.MkdirAll(p, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func buildString(t *testing.T, dir string, opts Options) string {
	t.Helper()
	result, err := Build(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("Build(%s) failed: %v", dir, err)
	}
	return Render(result.Root)
}

func TestBuildListing(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    string
	}{
		{
			name:    "only metadata directory",
			entries: []string{".git/HEAD", ".git/objects/ab/cdef", ".git/refs/"},
			want:    "",
		},
		{
			name:    "single file",
			entries: []string{"a.txt"},
			want:    "a.txt\n",
		},
		{
			name:    "empty subdirectory at root",
			entries: []string{"sub/"},
			want:    "sub\n",
		},
		{
			name:    "file in subdirectory",
			entries: []string{"sub/x.txt"},
			want:    "sub\n  /x.txt\n",
		},
		{
			name:    "nested empty directory",
			entries: []string{"sub/inner/"},
			want:    "sub\n  /inner\n    (empty)\n",
		},
		{
			name:    "deep metadata directory",
			entries: []string{"a/b/.git/HEAD", "a/b/.git/hooks/pre-commit", "a/b/c.txt"},
			want:    "a\n  /b\n    /c.txt\n",
		},
		{
			name:    "files precede subdirectories",
			entries: []string{"z.txt", "a/x.txt"},
			want:    "z.txt\na\n  /x.txt\n",
		},
		{
			name:    "similar names are kept",
			entries: []string{".github/workflows/ci.yml"},
			want:    ".github\n  /workflows\n    /ci.yml\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			mkTree(t, dir, tt.entries...)

			if got := buildString(t, dir, Options{}); got != tt.want {
				t.Errorf("listing =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBuildIdempotent(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, "README.md", "cmd/app/main.go", "internal/a/a.go", "internal/b/", ".git/config", "docs/img/")

	first, err := Build(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !first.Root.Equal(second.Root) {
		t.Errorf("builds differ:\n%s\nvs\n%s", Render(first.Root), Render(second.Root))
	}
}

func TestBuildFollowsEnumerationOrder(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, "delta", "alpha", "charlie", "bravo", "echo")

	level, err := localfs.ReadLevel(dir, localfs.WalkOptions{})
	if err != nil {
		t.Fatal(err)
	}

	result, err := Build(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}

	got := result.Root.Names()
	if len(got) != len(level.Files) {
		t.Fatalf("Names() = %v, want %v", got, level.Files)
	}
	for i := range got {
		if got[i] != level.Files[i] {
			t.Errorf("Names()[%d] = %q, want %q (enumeration order)", i, got[i], level.Files[i])
		}
	}
}

func TestBuildResult(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, "a.txt", "src/main.go", "src/util/", ".git/HEAD")

	result, err := Build(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if result.Path != filepath.Clean(dir) {
		t.Errorf("Path = %q, want %q", result.Path, dir)
	}
	if result.Dirs != 2 || result.Files != 2 {
		t.Errorf("counts = (%d dirs, %d files), want (2, 2)", result.Dirs, result.Files)
	}
	if result.Skipped != nil {
		t.Errorf("Skipped = %v, want nil", result.Skipped)
	}
}

func TestBuildCustomExclude(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, ".hg/store/data", "node_modules/x/index.js", ".git/HEAD", "main.go")

	got := buildString(t, dir, Options{Exclude: []string{".hg", "node_modules"}})
	if strings.Contains(got, ".hg") || strings.Contains(got, "node_modules") {
		t.Errorf("excluded names in listing:\n%s", got)
	}
	if !strings.Contains(got, ".git\n  /HEAD\n") {
		t.Errorf(".git should be listed when not excluded:\n%s", got)
	}
}

func TestBuildRootInsideExcluded(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, ".git/HEAD", ".git/refs/heads/main")

	got := buildString(t, filepath.Join(dir, ".git"), Options{})
	want := "refs\n  /heads\n    (empty)\n"
	if got != want {
		t.Errorf("listing =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildRootUnderLookalikeName(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, "my.gitrepo/.github/ci.yml", "my.gitrepo/main.go")

	got := buildString(t, filepath.Join(dir, "my.gitrepo"), Options{})
	if !strings.Contains(got, "main.go\n") || !strings.Contains(got, ".github\n  /ci.yml\n") {
		t.Errorf("files under a look-alike root should be listed:\n%s", got)
	}
}

func TestBuildRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, "project/sub/x.txt")
	chdir(t, dir)

	result, err := Build(context.Background(), "project", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(result.Path) {
		t.Errorf("Path %q is not absolute", result.Path)
	}
	if got := Render(result.Root); got != "sub\n  /x.txt\n" {
		t.Errorf("listing = %q", got)
	}
}

func TestBuildErrors(t *testing.T) {
	dir := t.TempDir()
	mkTree(t, dir, "file.txt")

	t.Run("missing root", func(t *testing.T) {
		_, err := Build(context.Background(), filepath.Join(dir, "missing"), Options{})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Build() error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("file root", func(t *testing.T) {
		_, err := Build(context.Background(), filepath.Join(dir, "file.txt"), Options{})
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("Build() error = %v, want ErrNotDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Build(ctx, dir, Options{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Build() error = %v, want context.Canceled", err)
		}
	})
}

func TestBuildSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}
	dir := t.TempDir()
	mkTree(t, dir, "real/data.txt")
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "dirlink")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "real", "data.txt"), filepath.Join(dir, "real", "filelink")); err != nil {
		t.Fatal(err)
	}

	got := buildString(t, dir, Options{})
	if strings.Contains(got, "dirlink") {
		t.Errorf("directory symlink should not be listed:\n%s", got)
	}
	if !strings.Contains(got, "  /filelink\n") {
		t.Errorf("file symlink should be listed:\n%s", got)
	}
}

func TestBuildSkipsUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	dir := t.TempDir()
	mkTree(t, dir, "locked/secret.txt", "open/ok.txt")
	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(locked, 0755)

	var logs bytes.Buffer
	result, err := Build(context.Background(), dir, Options{Logger: logging.NewLogger(&logs)})
	if err != nil {
		t.Fatalf("Build() should not fail on an unreadable subdirectory: %v", err)
	}
	if result.Skipped == nil {
		t.Error("Skipped should report the unreadable directory")
	}
	if !strings.Contains(logs.String(), "skipping unreadable directory") {
		t.Errorf("missing warning in logs: %q", logs.String())
	}
	if got := Render(result.Root); !strings.Contains(got, "open\n  /ok.txt\n") {
		t.Errorf("readable sibling missing:\n%s", got)
	}
	if got := Render(result.Root); strings.Contains(got, "secret.txt") {
		t.Errorf("unreadable contents listed:\n%s", got)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lembra-app/lembra/internal/config"
	"github.com/lembra-app/lembra/internal/errors"
)

// allowedConfig returns a config whose allowed_paths contains dir.
func allowedConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = append(cfg.AllowedPaths, dir)
	return cfg
}

func TestValidatePath_AllowedDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.json")

	err := ValidatePath(path, PathCheckWrite, allowedConfig(dir), ".json")
	if err != nil {
		t.Errorf("path in allowed dir should pass, got: %v", err)
	}
}

func TestValidatePath_Traversal(t *testing.T) {
	dir := t.TempDir()
	// filepath.Join would collapse the "..", so build the raw string.
	path := dir + string(filepath.Separator) + ".." + string(filepath.Separator) + "escape.json"

	err := ValidatePath(path, PathCheckWrite, allowedConfig(dir), ".json")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("traversal should be ErrInvalidRequest, got: %v", err)
	}
}

func TestValidatePath_Extension(t *testing.T) {
	dir := t.TempDir()
	cfg := allowedConfig(dir)

	err := ValidatePath(filepath.Join(dir, "deck.txt"), PathCheckWrite, cfg, ".json", ".html")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("wrong extension should be ErrInvalidRequest, got: %v", err)
	}

	if err := ValidatePath(filepath.Join(dir, "deck.html"), PathCheckWrite, cfg, ".json", ".html"); err != nil {
		t.Errorf(".html should be allowed here, got: %v", err)
	}
}

func TestValidatePath_SubdirectoryRejected(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	err := ValidatePath(filepath.Join(sub, "deck.json"), PathCheckWrite, allowedConfig(dir), ".json")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("file in subdirectory should be ErrInvalidRequest, got: %v", err)
	}
}

func TestValidatePath_OutsideAllowedDirs(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()

	err := ValidatePath(filepath.Join(other, "deck.json"), PathCheckWrite, allowedConfig(dir), ".json")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("file outside allowed dirs should be ErrInvalidRequest, got: %v", err)
	}
}

func TestValidatePath_SymlinkFileRejected(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	if err := os.WriteFile(target, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	err := ValidatePath(link, PathCheckRead, allowedConfig(dir), ".json")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("symlink file should be ErrInvalidRequest, got: %v", err)
	}
}

func TestValidatePath_ReadRequiresExistence(t *testing.T) {
	dir := t.TempDir()
	cfg := allowedConfig(dir)
	path := filepath.Join(dir, "absent.json")

	err := ValidatePath(path, PathCheckRead, cfg, ".json")
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("missing file should be ErrFileNotFound on read, got: %v", err)
	}

	// Writes do not require the file to exist yet.
	if err := ValidatePath(path, PathCheckWrite, cfg, ".json"); err != nil {
		t.Errorf("missing file should pass on write, got: %v", err)
	}
}

func TestValidatePath_UnsafePathsSkipDirCheckOnly(t *testing.T) {
	anywhere := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	if err := ValidatePath(filepath.Join(anywhere, "deck.json"), PathCheckWrite, cfg, ".json"); err != nil {
		t.Errorf("unsafe mode should allow any directory, got: %v", err)
	}

	target := filepath.Join(anywhere, "target.json")
	if err := os.WriteFile(target, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(anywhere, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	err := ValidatePath(link, PathCheckRead, cfg, ".json")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("symlink check must survive unsafe mode, got: %v", err)
	}
}

func TestValidatePath_RelativeAllowedPathIgnored(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = append(cfg.AllowedPaths, "relative/dir")

	err := ValidatePath(filepath.Join("relative", "dir", "deck.json"), PathCheckWrite, cfg, ".json")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("relative allowed_paths entries must not open directories, got: %v", err)
	}
}

func TestValidatePath_Empty(t *testing.T) {
	err := ValidatePath("", PathCheckWrite, config.DefaultConfig(), ".json")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty path should be ErrInvalidRequest, got: %v", err)
	}
}

func TestSanitizeForFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Biologia Celular", "Biologia Celular"},
		{"a/b\\c", "a-b-c"},
		{"../../etc/passwd", "etc-passwd"},
		{"---", "deck"},
		{"", "deck"},
		{"café", "café"},
	}
	for _, tt := range tests {
		if got := SanitizeForFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeForFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package assets

// Notes:
// - ErrAssetRead from an unreadable custom template is not tested: root
//   ignores permission bits, so the outcome depends on who runs the suite.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeTemplate(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, "templates")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+TemplateExt), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName - Name validation
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "default"},
		{name: "dash and digits", input: "blog-2024"},
		{name: "empty", input: "", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "traversal", input: "..", wantErr: true},
		{name: "extension", input: "default.tmpl", wantErr: true},
		{name: "null byte", input: "a\x00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in templates
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_Names(t *testing.T) {
	t.Parallel()

	got := NewEmbeddedLoader().Names()
	want := []string{"default", "html", "markdown"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	for _, name := range loader.Names() {
		content, err := loader.LoadTemplate(name)
		if err != nil {
			t.Fatalf("LoadTemplate(%q) error: %v", name, err)
		}
		if !strings.Contains(content, "{{") {
			t.Errorf("LoadTemplate(%q) has no actions: %q", name, content)
		}
	}

	if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) = %v, want ErrTemplateNotFound", err)
	}
	if _, err := loader.LoadTemplate("../default"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTemplate(traversal) = %v, want ErrInvalidAssetName", err)
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader - Custom templates on disk
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader_Errors(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	for _, base := range []string{"", filepath.Join(t.TempDir(), "missing"), file} {
		if _, err := NewFilesystemLoader(base); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(%q) = %v, want ErrInvalidBasePath", base, err)
		}
	}
}

func TestFilesystemLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTemplate(t, base, "blog", "{{ .Text }}")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}

	got, err := loader.LoadTemplate("blog")
	if err != nil || got != "{{ .Text }}" {
		t.Errorf("LoadTemplate(blog) = %q, %v", got, err)
	}
	if _, err := loader.LoadTemplate("other"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(other) = %v, want ErrTemplateNotFound", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	outside := filepath.Join(t.TempDir(), "secret.tmpl")
	if err := os.WriteFile(outside, []byte("secret"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(base, "templates"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(base, "templates", "leak"+TemplateExt)); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadTemplate("leak"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTemplate(leak) = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolver - Name and path resolution
// ---------------------------------------------------------------------------

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTemplate(t, base, "default", "custom default")
	writeTemplate(t, base, "blog", "custom blog")

	file := filepath.Join(t.TempDir(), "post.tmpl")
	if err := os.WriteFile(file, []byte("from file"), 0o600); err != nil {
		t.Fatal(err)
	}

	builtinMarkdown, err := NewEmbeddedLoader().LoadTemplate("markdown")
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewResolver(base)
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasCustomLoader() {
		t.Error("HasCustomLoader() = false")
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "custom overrides built-in", input: "default", want: "custom default"},
		{name: "custom only", input: "blog", want: "custom blog"},
		{name: "falls back to built-in", input: "markdown", want: builtinMarkdown},
		{name: "file path", input: file, want: "from file"},
		{name: "unknown name", input: "nope", wantErr: ErrTemplateNotFound},
		{name: "missing file", input: filepath.Join(base, "nope.tmpl"), wantErr: ErrTemplateNotFound},
		{name: "directory", input: base + string(filepath.Separator), wantErr: ErrAssetRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Resolve(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("")
	if err != nil {
		t.Fatal(err)
	}
	if r.HasCustomLoader() {
		t.Error("HasCustomLoader() = true without a base path")
	}
	if _, err := r.Resolve("default"); err != nil {
		t.Errorf("Resolve(default) error: %v", err)
	}
	if len(r.Names()) != 3 {
		t.Errorf("Names() = %v", r.Names())
	}
}

func TestResolver_CustomDirWithoutTemplates(t *testing.T) {
	t.Parallel()

	// A config directory without a templates subdirectory still resolves built-ins.
	r, err := NewResolver(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve("html"); err != nil {
		t.Errorf("Resolve(html) error: %v", err)
	}
}

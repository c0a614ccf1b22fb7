package assets

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-twempest/internal/fileutil"
)

// MaxTemplateSize bounds template files read from disk.
const MaxTemplateSize = 1 << 20

// Resolver loads a template given either a file path or a template name.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewResolver creates a Resolver. With an empty customBasePath only the
// built-in templates are available by name.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// Resolve returns the template text for nameOrPath.
func (r *Resolver) Resolve(nameOrPath string) (string, error) {
	if fileutil.IsFilePath(nameOrPath) {
		return readTemplateFile(nameOrPath)
	}
	return r.LoadTemplate(nameOrPath)
}

// LoadTemplate loads a named template, trying the custom loader first.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return r.embedded.LoadTemplate(name)
}

// Names lists the built-in template names.
func (r *Resolver) Names() []string {
	return r.embedded.Names()
}

// HasCustomLoader returns true if a custom template directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

func readTemplateFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetRead, path)
	}
	if info.Size() > MaxTemplateSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrAssetRead, path, MaxTemplateSize)
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided template path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)

// Package assets provides the built-in post templates.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from a directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in templates (default, markdown, html)
// embedded at compile time.
//
// FilesystemLoader reads user templates from {basePath}/templates/{name}.tmpl,
// with path traversal protection and symlink resolution. The command uses the
// configuration directory as basePath, so a user can override a built-in
// template by name.
//
// Resolver is the entry point. A template argument containing a path
// separator or an extension is read as a file; anything else is a name,
// looked up in the custom loader first and then in the embedded one.
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

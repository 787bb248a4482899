package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is a per-request scratch area on ephemeral storage, keyed
// by a unique identifier so concurrent requests never collide. All
// paths it hands out live inside one directory, and Cleanup releases
// everything at once on every exit path of a request.
type Workspace struct {
	id  string
	dir string
}

// NewWorkspace creates a fresh workspace directory under baseDir. An
// empty baseDir uses the system temporary directory.
func NewWorkspace(baseDir string) (*Workspace, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	u := uuid.New()
	id := fmt.Sprintf("%x", u[:])
	dir := filepath.Join(baseDir, id)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &Workspace{id: id, dir: dir}, nil
}

// ID returns the unique request identifier.
func (ws *Workspace) ID() string { return ws.id }

// Dir returns the workspace directory.
func (ws *Workspace) Dir() string { return ws.dir }

// Path returns the path for a named file inside the workspace.
func (ws *Workspace) Path(name string) string {
	return filepath.Join(ws.dir, name)
}

// UploadPath is where the uploaded PDF is saved.
func (ws *Workspace) UploadPath() string { return ws.Path("upload.pdf") }

// OutputPath is where the assembled document is written.
func (ws *Workspace) OutputPath() string { return ws.Path("output.docx") }

// Cleanup removes the workspace and everything in it. Best effort:
// secondary errors are swallowed, so it is safe to defer alongside
// response writing.
func (ws *Workspace) Cleanup() {
	_ = os.RemoveAll(ws.dir)
}

/*package io reads and writes the run's external files: the gcfg run
configuration, restart snapshots of lost particles, and columnar source
site files.
*/
package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/gomc-dev/gomc/particle"
)

// FileRestartWriter writes one JSON restart file per lost particle into
// Dir. It is safe for concurrent use: workers lose different particles, so
// the file names never collide.
type FileRestartWriter struct {
	Dir string
}

// NewFileRestartWriter creates the directory if needed.
func NewFileRestartWriter(dir string) (*FileRestartWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileRestartWriter{Dir: dir}, nil
}

func (w *FileRestartWriter) WriteRestart(snap *particle.Snapshot) error {
	fname := path.Join(w.Dir, fmt.Sprintf("particle_%d_restart.json", snap.ID))
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

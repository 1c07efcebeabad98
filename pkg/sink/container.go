package sink

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/svg"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// FileContainer writes every drawing to an SVG file. The file is replaced
// by rename, so readers see either the old or the new drawing.
type FileContainer struct {
	mu    sync.Mutex
	path  string
	width float64
}

// NewFileContainer returns a container width pixels wide writing to path.
func NewFileContainer(path string, width float64) (*FileContainer, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidContainer, "container width must be positive, got %v", width)
	}
	return &FileContainer{path: path, width: width}, nil
}

func (c *FileContainer) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// Path returns the output file.
func (c *FileContainer) Path() string { return c.path }

func (c *FileContainer) Replace(doc *svg.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+"-*")
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path)
}

var _ timeline.Container = (*FileContainer)(nil)

package timeline

import (
	"sync"

	"github.com/matzehuels/timeline/pkg/svg"
)

// Container is the surface host a Timeline draws into.
type Container interface {
	// Width is the horizontal extent available, in pixels.
	Width() float64
	// Replace swaps the displayed drawing for doc.
	Replace(doc *svg.Document) error
}

// MemoryContainer keeps the last drawing in memory.
type MemoryContainer struct {
	mu      sync.RWMutex
	width   float64
	surface *svg.Document
	swaps   int
}

// NewMemoryContainer returns a container width pixels wide.
func NewMemoryContainer(width float64) *MemoryContainer {
	return &MemoryContainer{width: width}
}

func (c *MemoryContainer) Width() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width
}

// Resize changes the width reported to the next refresh.
func (c *MemoryContainer) Resize(width float64) {
	c.mu.Lock()
	c.width = width
	c.mu.Unlock()
}

func (c *MemoryContainer) Replace(doc *svg.Document) error {
	c.mu.Lock()
	c.surface = doc
	c.swaps++
	c.mu.Unlock()
	return nil
}

// Surface returns the current drawing, or nil before the first refresh.
func (c *MemoryContainer) Surface() *svg.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surface
}

// Swaps counts how many drawings were attached.
func (c *MemoryContainer) Swaps() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.swaps
}

// Package images caches room illustrations on disk, content-addressed
// by the room properties that determine the picture.
package images

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tatianab/storywalk/internal/models"
)

// Renderer produces image bytes for an image prompt. No implementation
// ships with the engine; the cache works as lookup-only until one is
// injected.
type Renderer interface {
	Render(ctx context.Context, prompt string) ([]byte, error)
}

// Cache stores one PNG per room under dir, keyed by a hash of the room's
// name, description, and image prompt. Editing any of those yields a new
// key, so stale images are never reused.
type Cache struct {
	dir      string
	renderer Renderer
}

// NewCache returns a cache rooted at dir. renderer may be nil, in which
// case only already-rendered images are served.
func NewCache(dir string, renderer Renderer) *Cache {
	return &Cache{dir: dir, renderer: renderer}
}

// Key returns the content hash for a room's image.
func Key(room *models.Room) string {
	sum := sha256.Sum256([]byte(room.Name + room.Description + room.ImagePrompt))
	return hex.EncodeToString(sum[:])
}

// Ensure resolves the image for a room, rendering and persisting it on a
// cache miss. On success the room's ImagePath is set. A miss with no
// renderer configured returns "" without error.
func (c *Cache) Ensure(ctx context.Context, room *models.Room) (string, error) {
	path := filepath.Join(c.dir, Key(room)+".png")
	if _, err := os.Stat(path); err == nil {
		room.ImagePath = path
		return path, nil
	}
	if c.renderer == nil {
		return "", nil
	}

	data, err := c.renderer.Render(ctx, room.ImagePrompt)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	room.ImagePath = path
	return path, nil
}

// Warm attaches images for every given room, rendering misses when a
// renderer is configured. Failures are logged and skipped; a missing
// picture never blocks play.
func (c *Cache) Warm(ctx context.Context, rooms []*models.Room) {
	for _, room := range rooms {
		if _, err := c.Ensure(ctx, room); err != nil {
			slog.Warn("image render failed", "room", room.Name, "error", err)
		}
	}
}

package upload

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// allowedTypes is the declared content-type allowlist for image uploads
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Saver stores uploaded images under a base directory and returns the
// URL path persisted on the owning entity.
type Saver struct {
	baseDir  string
	maxBytes int64
}

// NewSaver creates a saver rooted at baseDir
func NewSaver(baseDir string, maxBytes int) *Saver {
	return &Saver{baseDir: baseDir, maxBytes: int64(maxBytes)}
}

// SaveImage validates and stores a multipart image under baseDir/subdir.
// The stored filename is a random UUID with the extension implied by the
// declared content type. Returns the public URL path ("/uploads/...").
func (s *Saver) SaveImage(c *fiber.Ctx, file *multipart.FileHeader, subdir string) (string, error) {
	if file.Size > s.maxBytes {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", file.Size, s.maxBytes)
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return path.Join("/uploads", subdir, filename), nil
}

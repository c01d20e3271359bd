package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SaveImage decodes an uploaded image, writes the original plus a 300px-wide
// thumbnail under dir, and returns the stored filename.
func SaveImage(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext

	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	thumbDir := filepath.Join(dir, "thumb")
	if err := EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, filename)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return filename, nil
}

package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AssignStoredName returns a storage-unique filename for an upload,
// keeping the original extension.
func AssignStoredName(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}

// SaveUploadedFile writes an uploaded part to destDir under storedName
// and returns the full path.
func SaveUploadedFile(file *multipart.FileHeader, destDir, storedName string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(destDir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// DeleteFileByURL removes the stored file behind a "/uploads/<name>"
// URL. Files already gone are not an error.
func DeleteFileByURL(destDir, fileURL string) error {
	name := strings.TrimPrefix(fileURL, "/uploads/")
	if name == "" || name == fileURL {
		return nil
	}

	// The URL is client-influenced data; never let it escape destDir.
	path := filepath.Join(destDir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

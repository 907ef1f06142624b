package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaRoot returns the directory uploaded files are stored under.
func MediaRoot() string {
	if root := os.Getenv("MEDIA_ROOT"); root != "" {
		return root
	}
	return "media"
}

// SaveUploadedFile stores an uploaded file under MEDIA_ROOT/<subdir> with
// a generated name and returns the URL it is served from.
func SaveUploadedFile(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(MediaRoot(), subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return fmt.Sprintf("/media/%s/%s", subdir, name), nil
}

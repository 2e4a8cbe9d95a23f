package utils

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxUploadSize is the per-file upload limit.
const MaxUploadSize = 100 * 1024 * 1024 // 100MB

// ReadMultipartFile reads an uploaded part into memory and resolves its
// content type, preferring the part header over the extension guess.
func ReadMultipartFile(file *multipart.FileHeader) ([]byte, string, error) {
	if file.Size > MaxUploadSize {
		return nil, "", fmt.Errorf("file size %d exceeds maximum allowed size %d", file.Size, int64(MaxUploadSize))
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %v", err)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return data, contentType, nil
}

package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	storage "github.com/supabase-community/storage-go"

	"github.com/smartstudy/smartstudy-backend/config"
)

// UploadProfilePicture stores an avatar in Supabase Storage and returns its
// public URL. Path: uploads/avatars/<userID>.<ext>
func UploadProfilePicture(cfg *config.Config, fileHeader *multipart.FileHeader, userID string) (string, error) {
	storageClient := storage.NewClient(cfg.SupabaseURL+"/storage/v1", cfg.SupabaseKey, nil)

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectPath := fmt.Sprintf("avatars/%s%s", userID, ext)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := storageClient.UploadFile("uploads", objectPath, &buf, options); err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/uploads/%s", cfg.SupabaseURL, objectPath)
	return publicURL, nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryBackend stores blobs as Cloudinary raw assets keyed by public ID.
type CloudinaryBackend struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryBackend initializes a Cloudinary-backed blob store.
func NewCloudinaryBackend(cloudName, apiKey, apiSecret string) (*CloudinaryBackend, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryBackend{cld: cld}, nil
}

// publicID strips the extension: Cloudinary derives format itself, and keys
// must round-trip Upload -> Delete unchanged.
func publicID(key string) string {
	if idx := strings.LastIndex(key, "."); idx > strings.LastIndex(key, "/") {
		return key[:idx]
	}
	return key
}

func (b *CloudinaryBackend) Upload(ctx context.Context, key string, reader io.Reader) error {
	_, err := b.cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		PublicID:     publicID(key),
		ResourceType: "auto",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to cloudinary: %w", key, err)
	}
	return nil
}

func (b *CloudinaryBackend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	asset, err := b.cld.Media(publicID(key))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cloudinary asset %s: %w", key, err)
	}
	url, err := asset.String()
	if err != nil {
		return nil, fmt.Errorf("failed to build URL for %s: %w", key, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from cloudinary: %w", key, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, key)
	}
	return resp.Body, nil
}

func (b *CloudinaryBackend) Delete(ctx context.Context, key string) error {
	result, err := b.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from cloudinary: %w", key, err)
	}
	if result != nil && result.Result == "not found" {
		return ErrNotFound
	}
	return nil
}

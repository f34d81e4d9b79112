package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"learnify_backend/internals/configs"
)

const (
	maxThumbnailWidth = 1280
	webpQuality       = 82
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// UploadCourseThumbnail re-encodes the uploaded image as webp (resized to a
// sane width) and pushes it to Supabase storage. Returns the public URL.
func UploadCourseThumbnail(folder string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxThumbnailWidth {
		img = imaging.Resize(img, maxThumbnailWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	filename := uniqueFilename(folder, fileHeader.Filename)
	if err := uploadToSupabase(configs.StorageBucket, filename, "image/webp", buf); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		configs.SupabaseProjectURL,
		configs.StorageBucket,
		url.PathEscape(filename),
	), nil
}

func uploadToSupabase(bucket, filename, contentType string, body io.Reader) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		configs.SupabaseProjectURL, bucket, url.PathEscape(filename))

	req, err := http.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+configs.SupabaseSecretKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("storage upload status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func uniqueFilename(folder, original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = unsafeFilenameChars.ReplaceAllString(base, "-")
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%s/%s-%s.webp", strings.Trim(folder, "/"), base, uuid.NewString()[:8])
}

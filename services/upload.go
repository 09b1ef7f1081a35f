package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PublicUploadPrefix is the URL prefix uploaded files are served under.
const PublicUploadPrefix = "/uploads"

// allowedImages maps accepted content types to the stored file extension.
var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadService stores catalog images on local disk.
type UploadService struct {
	dir      string
	maxBytes int64
	log      logrus.FieldLogger
}

func NewUploadService(dir string, maxBytes int64, log logrus.FieldLogger) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadService{dir: dir, maxBytes: maxBytes, log: log.WithField("service", "upload")}, nil
}

// Dir is the directory served under PublicUploadPrefix.
func (s *UploadService) Dir() string { return s.dir }

// MaxBytes is the largest accepted image.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// SaveImage sniffs r's content, rejects anything that is not an accepted
// image or is larger than the limit, and stores it under a random name.
// It returns the public path, e.g. "/uploads/3f0c...e1.png".
func (s *UploadService) SaveImage(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", validationError("image must be at most %d bytes", s.maxBytes)
	}
	if len(data) == 0 {
		return "", validationError("image is empty")
	}

	mime := mimetype.Detect(data)
	ext, ok := "", false
	for m := mime; m != nil; m = m.Parent() {
		if ext, ok = allowedImages[m.String()]; ok {
			break
		}
	}
	if !ok {
		return "", validationError("unsupported image type %s", mime.String())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	s.log.WithFields(logrus.Fields{"file": name, "type": mime.String(), "bytes": len(data)}).Info("Image uploaded")
	return PublicUploadPrefix + "/" + name, nil
}

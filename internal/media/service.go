package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/relistlabs/relist-backend/pkg/config"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
	"github.com/relistlabs/relist-backend/pkg/logger"
)

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

// Upload is one in-memory file received from a multipart form.
type Upload struct {
	Filename string
	Data     []byte
}

// Service stores listing images on local disk under unguessable names.
type Service interface {
	SaveImages(ctx context.Context, uploads []Upload) ([]string, error)
	Remove(ctx context.Context, publicPath string) error
}

type service struct {
	cfg  config.UploadsConfig
	logg *logger.Logger
}

// NewService constructs the media service and ensures the upload dir exists.
func NewService(cfg config.UploadsConfig, logg *logger.Logger) (Service, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	if cfg.MaxImages <= 0 {
		return nil, fmt.Errorf("max images must be positive")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", cfg.Dir, err)
	}
	return &service{cfg: cfg, logg: logg}, nil
}

// SaveImages validates and persists the uploads, returning their public
// paths. Content types come from sniffing the bytes, never from the client.
func (s *service) SaveImages(ctx context.Context, uploads []Upload) ([]string, error) {
	if len(uploads) == 0 {
		return []string{}, nil
	}
	if len(uploads) > s.cfg.MaxImages {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("at most %d images are allowed", s.cfg.MaxImages))
	}

	maxBytes := int64(s.cfg.MaxSizeMB) * 1024 * 1024
	written := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		if maxBytes > 0 && int64(len(upload.Data)) > maxBytes {
			s.cleanup(ctx, written)
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("image %q exceeds the %dMB limit", upload.Filename, s.cfg.MaxSizeMB))
		}

		detected := mimetype.Detect(upload.Data)
		if _, ok := allowedImageTypes[detected.String()]; !ok {
			s.cleanup(ctx, written)
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("file %q is not an allowed image type", upload.Filename))
		}

		name := uuid.NewString() + detected.Extension()
		target := filepath.Join(s.cfg.Dir, name)
		if err := os.WriteFile(target, upload.Data, 0o644); err != nil {
			s.cleanup(ctx, written)
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write image")
		}
		written = append(written, path.Join(s.cfg.PathPrefix, name))
	}
	return written, nil
}

// Remove deletes a previously stored image by its public path. Unknown paths
// are ignored.
func (s *service) Remove(ctx context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.cfg.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove image")
	}
	return nil
}

func (s *service) cleanup(ctx context.Context, publicPaths []string) {
	for _, p := range publicPaths {
		if err := s.Remove(ctx, p); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "path", p), "failed to clean up partial upload")
		}
	}
}

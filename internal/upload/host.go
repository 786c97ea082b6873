package upload

import (
	"fmt"
	"net/http"

	"hackafrica-web/internal/config"
)

// NewHost picks the image host named by IMAGE_HOST.
func NewHost(cfg *config.Config) (Host, error) {
	switch cfg.ImageHost {
	case "cloudinary", "":
		return &Cloudinary{
			BaseURL: cfg.CloudinaryURL,
			Cloud:   cfg.CloudinaryCloud,
			Preset:  cfg.CloudinaryPreset,
			HTTP:    &http.Client{Timeout: cfg.RequestTimeout},
		}, nil
	case "s3":
		return NewS3(cfg.S3Bucket, cfg.S3Region, cfg.AWSAccessKey, cfg.AWSSecretKey)
	default:
		return nil, fmt.Errorf("unsupported IMAGE_HOST %q", cfg.ImageHost)
	}
}

// Package media wraps image upload behind a small interface so handlers
// and services never talk to the Cloudinary SDK directly.
package media

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
}

// Eager transformation keeps logos small and in an auto-negotiated format.
const logoEager = "q_auto,f_auto,w_400,c_fit"

var eagerAsyncFalse = false

type cloudinaryUploader struct {
	uploader *uploader.API
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (Uploader, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &cloudinaryUploader{uploader: up}, nil
}

func (u *cloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := u.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      logoEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", err
	}

	if len(result.Eager) > 0 && result.Eager[0].SecureURL != "" {
		return result.Eager[0].SecureURL, nil
	}
	return result.SecureURL, nil
}

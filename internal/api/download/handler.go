package download

import (
	"context"
	"time"

	"course-copilot/config"
	"course-copilot/pkg/apperror"
	"course-copilot/pkg/apperror/status"
	s3client "course-copilot/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
)

const urlTTL = 15 * time.Minute

type downloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// HandleDownload issues a short-lived presigned URL for a stored course
// material object. The object key is the wildcard path segment.
func HandleDownload(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	key := c.Params("*")
	if key == "" {
		return apperror.BadRequest(config.ModuleDownload, c, status.DownloadMissingKey, "object key is required")
	}

	presigner, err := s3client.GetPresignClient()
	if err != nil {
		return apperror.InternalErrorCode(config.ModuleDownload, c, status.DownloadPresignFailed, "failed to sign download url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(config.Cfg.S3.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(urlTTL))
	if err != nil {
		return apperror.InternalErrorCode(config.ModuleDownload, c, status.DownloadPresignFailed, "failed to sign download url")
	}

	return apperror.Success(config.ModuleDownload, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "download url ok",
		TrackingID: trackingID,
		Data:       downloadResponse{URL: out.URL, ExpiresIn: int(urlTTL.Seconds())},
	})
}

package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

// MaxImageSize caps product and cake reference photos at 10 MB.
const MaxImageSize int64 = 10 << 20

// ImageStorage hands out presigned S3 PUT URLs so the browser uploads
// cake photos directly, keeping image bytes off the API server.
type ImageStorage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewImageStorage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *ImageStorage {
	var cfg aws.Config
	var err error

	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		// Fall back to the default chain: env vars, shared config, IAM role
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return &ImageStorage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// PresignUpload returns a time-limited PUT URL for the given file.
// The object key is randomized so uploads never collide.
func (s *ImageStorage) PresignUpload(filename, contentType, folder string) (*PresignedUpload, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.client)
	presignedReq, err := presignClient.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
	if s.baseURL != "" {
		fileURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(s.baseURL, "/"), key)
	}

	return &PresignedUpload{
		UploadURL: presignedReq.URL,
		FileURL:   fileURL,
		Key:       key,
	}, nil
}

// ValidateImageType rejects anything that is not a browser-displayable image.
func (s *ImageStorage) ValidateImageType(contentType string) error {
	allowed := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}
	for _, a := range allowed {
		if contentType == a {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}

// ValidateSize rejects declared sizes over the limit.
func (s *ImageStorage) ValidateSize(size int64) error {
	if size > MaxImageSize {
		return fmt.Errorf("file size %d exceeds maximum of %d bytes", size, MaxImageSize)
	}
	return nil
}

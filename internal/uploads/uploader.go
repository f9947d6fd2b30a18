package uploads

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/jazyl/booking-service/internal/config"
	"github.com/jazyl/booking-service/internal/httperr"
)

// maxDimension caps the longest side of stored images.
const maxDimension = 1024

const webpQuality = 85

// S3Client is the slice of the S3 API the uploader needs, mockable in
// tests.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Uploader normalizes uploaded images (tenant logos, master photos) to
// bounded webp and stores them in object storage.
type Uploader struct {
	client  S3Client
	bucket  string
	baseURL string
}

func NewUploader(client S3Client, bucket, baseURL string) *Uploader {
	return &Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewS3Client builds an S3 client from static credentials. A custom
// endpoint switches to path-style addressing for S3-compatible stores.
func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// UploadImage decodes, downscales and re-encodes the image as webp, then
// stores it under "<prefix>/<uuid>.webp". Returns the public URL.
func (u *Uploader) UploadImage(ctx context.Context, prefix string, r io.Reader) (string, error) {
	if u == nil || u.client == nil {
		return "", fmt.Errorf("uploads: object storage not configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness(httperr.CodeValidation)
	}

	img := downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("uploads: encode webp: %w", err)
	}

	key := fmt.Sprintf("%s/%s.webp", strings.Trim(prefix, "/"), uuid.New())

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("uploads: put object: %w", err)
	}

	return u.baseURL + "/" + key, nil
}

// Delete removes a previously uploaded object given its public URL.
// Foreign URLs are ignored.
func (u *Uploader) Delete(ctx context.Context, publicURL string) error {
	if u == nil || u.client == nil {
		return nil
	}
	if !strings.HasPrefix(publicURL, u.baseURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(publicURL, u.baseURL+"/")

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("uploads: delete object: %w", err)
	}
	return nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDimension && h <= maxDimension {
		return src
	}

	if w >= h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

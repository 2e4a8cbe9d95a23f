package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"cloudnest/models"
	"cloudnest/utils"
)

// S3Client implements RemoteStorage on any S3-compatible backend. Folders
// are represented as zero-byte marker keys ending in "/", so folder
// existence and emptiness can be checked with prefix listings.
type S3Client struct {
	client   *s3.S3
	provider *models.StorageProvider
	bucket   string
	region   string
}

// NewS3Client creates a client for S3 or an S3-compatible endpoint (R2,
// Wasabi).
func NewS3Client(provider *models.StorageProvider) (*S3Client, error) {
	config := &aws.Config{
		Region: aws.String(provider.Region),
	}

	if provider.AccessKey != "" && provider.SecretKey != "" {
		config.Credentials = credentials.NewStaticCredentials(
			provider.AccessKey,
			provider.SecretKey,
			"",
		)
	}

	if provider.Endpoint != "" {
		config.Endpoint = aws.String(provider.Endpoint)
		config.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %v", err)
	}

	return &S3Client{
		client:   s3.New(sess),
		provider: provider,
		bucket:   provider.Bucket,
		region:   provider.Region,
	}, nil
}

func (s *S3Client) folderMarker(path string) string {
	return strings.TrimSuffix(path, "/") + "/"
}

func (s *S3Client) objectURL(key string) string {
	if s.provider.CDNUrl != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.provider.CDNUrl, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Client) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && (aerr.Code() == "NotFound" || aerr.Code() == s3.ErrCodeNoSuchKey) {
			return false, nil
		}
		return false, NewStorageError("s3", "HEAD_FAILED", err.Error(), key)
	}
	return true, nil
}

// Upload stores data under folderPath, suffixing the name with " (n)" until
// it no longer collides with an existing object.
func (s *S3Client) Upload(ctx context.Context, data []byte, contentType, name, folderPath string) (*UploadResult, error) {
	base, ext := name, ""
	if idx := strings.LastIndex(name, "."); idx > 0 {
		base, ext = name[:idx], name[idx:]
	}

	resolved := name
	renamed := false
	for counter := 1; ; counter++ {
		key := folderPath + "/" + resolved
		taken, err := s.exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		resolved = fmt.Sprintf("%s (%d)%s", base, counter, ext)
		renamed = true
	}

	key := folderPath + "/" + resolved
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, NewStorageError("s3", "UPLOAD_FAILED", err.Error(), key)
	}

	return &UploadResult{
		ObjectID:     key,
		PublicRef:    uuid.NewString(),
		URL:          s.objectURL(key),
		Size:         int64(len(data)),
		CreatedAt:    time.Now().UTC(),
		ResolvedName: resolved,
		ResolvedPath: folderPath,
		Renamed:      renamed,
	}, nil
}

// CreateFolder writes the folder marker key.
func (s *S3Client) CreateFolder(ctx context.Context, path string) error {
	marker := s.folderMarker(path)
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(marker),
		Body:   bytes.NewReader(nil),
	})
	if err != nil {
		return NewStorageError("s3", "CREATE_FOLDER_FAILED", err.Error(), marker)
	}
	return nil
}

// RenameFolder copies every key under oldPath to the corresponding key
// under newPath and deletes the originals.
func (s *S3Client) RenameFolder(ctx context.Context, oldPath, newPath string) error {
	oldPrefix := s.folderMarker(oldPath)
	newPrefix := s.folderMarker(newPath)

	keys, err := s.listKeys(ctx, oldPrefix)
	if err != nil {
		return err
	}
	keys = append(keys, oldPrefix)

	for _, key := range keys {
		var destKey string
		if key == oldPrefix {
			destKey = newPrefix
		} else {
			destKey = newPrefix + strings.TrimPrefix(key, oldPrefix)
		}
		_, err := s.client.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
			Bucket:     aws.String(s.bucket),
			CopySource: aws.String(fmt.Sprintf("%s/%s", s.bucket, key)),
			Key:        aws.String(destKey),
		})
		if err != nil {
			if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
				continue
			}
			return NewStorageError("s3", "RENAME_FOLDER_FAILED", err.Error(), key)
		}
	}

	return s.deleteKeys(ctx, keys)
}

// DeleteFolder removes the folder marker, failing with ErrFolderNotEmpty
// while any object remains under the folder prefix.
func (s *S3Client) DeleteFolder(ctx context.Context, path string) error {
	marker := s.folderMarker(path)

	keys, err := s.listKeys(ctx, marker)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if key != marker {
			return ErrFolderNotEmpty
		}
	}

	return s.deleteKeys(ctx, []string{marker})
}

// DeleteObjects removes objects by key.
func (s *S3Client) DeleteObjects(ctx context.Context, objectIDs []string) error {
	if len(objectIDs) == 0 {
		return nil
	}
	return s.deleteKeys(ctx, objectIDs)
}

// DeleteByPrefix wipes everything under the prefix, markers included.
func (s *S3Client) DeleteByPrefix(ctx context.Context, prefix string) error {
	keys, err := s.listKeys(ctx, s.folderMarker(prefix))
	if err != nil {
		return err
	}
	return s.deleteKeys(ctx, keys)
}

// RenameObject copies the object to its new name within the same folder and
// deletes the old key.
func (s *S3Client) RenameObject(ctx context.Context, objectID, newName string) (*RenameResult, error) {
	dir := objectID
	if idx := strings.LastIndex(objectID, "/"); idx >= 0 {
		dir = objectID[:idx]
	}
	destKey := dir + "/" + newName

	_, err := s.client.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(fmt.Sprintf("%s/%s", s.bucket, objectID)),
		Key:        aws.String(destKey),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrObjectNotFound
		}
		return nil, NewStorageError("s3", "RENAME_FAILED", err.Error(), objectID)
	}

	if err := s.deleteKeys(ctx, []string{objectID}); err != nil {
		return nil, err
	}

	return &RenameResult{ObjectID: destKey, URL: s.objectURL(destKey)}, nil
}

// ResolveDownloadURL presigns a GET for the object, optionally as an
// attachment and pinned to a version.
func (s *S3Client) ResolveDownloadURL(ctx context.Context, objectID, versionID string, attachment bool) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectID),
	}
	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}
	if attachment {
		_, name := utils.SplitPath(objectID)
		input.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", name))
	}

	req, _ := s.client.GetObjectRequest(input)
	req.SetContext(ctx)
	url, err := req.Presign(15 * time.Minute)
	if err != nil {
		return "", NewStorageError("s3", "PRESIGN_FAILED", err.Error(), objectID)
	}
	return url, nil
}

// HealthCheck checks bucket reachability.
func (s *S3Client) HealthCheck() error {
	_, err := s.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return NewStorageError("s3", "HEALTH_CHECK_FAILED", err.Error(), "")
	}
	return nil
}

func (s *S3Client) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			keys = append(keys, aws.StringValue(obj.Key))
		}
		return true
	})
	if err != nil {
		return nil, NewStorageError("s3", "LIST_FAILED", err.Error(), prefix)
	}
	return keys, nil
}

func (s *S3Client) deleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	// DeleteObjects takes at most 1000 keys per call.
	for start := 0; start < len(keys); start += 1000 {
		end := start + 1000
		if end > len(keys) {
			end = len(keys)
		}

		objects := make([]*s3.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(key)})
		}

		_, err := s.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &s3.Delete{Objects: objects},
		})
		if err != nil {
			return NewStorageError("s3", "BULK_DELETE_FAILED", err.Error(), "")
		}
	}
	return nil
}

// Copyright 2025 OceanKit
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package spaces is the object-storage adapter for DigitalOcean Spaces,
// built on the S3-compatible API via the AWS SDK for Go v2. Each method
// issues one call against the vendor client and translates failures into
// the gateway error taxonomy, enriched with the vendor error code and
// message when present.
package spaces

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"oceankit/gateway/shared/apierr"
)

// deleteBatchSize is the vendor limit for one DeleteObjects call.
const deleteBatchSize = 1000

// Config configures a Spaces client.
type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the regional Spaces endpoint, used by tests.
	Endpoint string
	// UsePathStyle forces path-style addressing, used by tests.
	UsePathStyle bool
}

// Client wraps one S3 client bound to a default bucket and region.
type Client struct {
	s3     *s3.Client
	bucket string
	region string
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
}

// DeleteResult describes the outcome for one key of a batch deletion.
type DeleteResult struct {
	Key     string `json:"key"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewClient creates a Spaces client. Credentials are mandatory and checked
// at construction time.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("Spaces credentials not found: set SPACES_KEY and SPACES_SECRET")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Region)
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Spaces client config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Client{
		s3:     client,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Bucket returns the default bucket this client is bound to.
func (c *Client) Bucket() string {
	return c.bucket
}

// ListObjects lists objects in the default bucket, filtered by prefix.
// maxKeys <= 0 returns all objects.
func (c *Client) ListObjects(ctx context.Context, prefix string, maxKeys int) ([]ObjectInfo, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	}

	objects := make([]ObjectInfo, 0)
	paginator := s3.NewListObjectsV2Paginator(c.s3, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, vendorError("Failed to list files in Spaces", err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         strings.Trim(aws.ToString(obj.ETag), "\""),
			})
			if maxKeys > 0 && len(objects) >= maxKeys {
				return objects, nil
			}
		}
	}

	return objects, nil
}

// ObjectKey builds the full object key from a folder prefix and name.
func ObjectKey(folder, name string) string {
	if folder != "" {
		return folder + "/" + name
	}
	return name
}

// Upload stores the file at localPath under folder/objectName in the
// default bucket and returns the full key. An empty objectName falls back
// to the local file name.
func (c *Client) Upload(ctx context.Context, localPath, folder, objectName string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", apierr.Dependencyf("file not found: %s", localPath)
	}
	defer func() {
		_ = file.Close()
	}()

	if objectName == "" {
		objectName = filepath.Base(localPath)
	}
	key := ObjectKey(folder, objectName)

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   file,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", vendorError("Failed to upload file to Spaces", err)
	}

	return key, nil
}

// DeleteObject removes one object from the default bucket.
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return vendorError("Failed to delete file from Spaces", err)
	}
	return nil
}

// DeleteObjects removes up to len(keys) objects, batching at the vendor
// limit. A failed batch marks every key in that batch failed; the other
// batches still run.
func (c *Client) DeleteObjects(ctx context.Context, keys []string) []DeleteResult {
	results := make([]DeleteResult, 0, len(keys))

	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		identifiers := make([]types.ObjectIdentifier, 0, len(batch))
		for _, key := range batch {
			identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
		}

		output, err := c.s3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &types.Delete{
				Objects: identifiers,
				Quiet:   aws.Bool(false),
			},
		})
		if err != nil {
			for _, key := range batch {
				results = append(results, DeleteResult{Key: key, Success: false, Error: err.Error()})
			}
			continue
		}

		deleted := make(map[string]bool, len(output.Deleted))
		for _, obj := range output.Deleted {
			deleted[aws.ToString(obj.Key)] = true
		}
		failed := make(map[string]string, len(output.Errors))
		for _, objErr := range output.Errors {
			failed[aws.ToString(objErr.Key)] = aws.ToString(objErr.Message)
		}

		for _, key := range batch {
			switch {
			case deleted[key]:
				results = append(results, DeleteResult{Key: key, Success: true})
			case failed[key] != "":
				results = append(results, DeleteResult{Key: key, Success: false, Error: failed[key]})
			default:
				results = append(results, DeleteResult{Key: key, Success: false, Error: "unknown error during deletion"})
			}
		}
	}

	return results
}

// CreateBucket creates a new bucket in the given region, defaulting to the
// client region.
func (c *Client) CreateBucket(ctx context.Context, name, region string) error {
	if region == "" {
		region = c.region
	}

	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(name),
		ACL:    types.BucketCannedACLPrivate,
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		},
	})
	if err != nil {
		switch errorCode(err) {
		case "BucketAlreadyExists":
			return vendorError(fmt.Sprintf("Bucket '%s' already exists", name), err)
		case "BucketAlreadyOwnedByYou":
			return vendorError(fmt.Sprintf("Bucket '%s' is already owned by you", name), err)
		default:
			return vendorError(fmt.Sprintf("Failed to create bucket '%s'", name), err)
		}
	}

	return nil
}

// DeleteBucket deletes a bucket. The bucket must be empty.
func (c *Client) DeleteBucket(ctx context.Context, name string) error {
	_, err := c.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		switch errorCode(err) {
		case "NoSuchBucket":
			return vendorError(fmt.Sprintf("Bucket '%s' does not exist", name), err)
		case "BucketNotEmpty":
			return vendorError(fmt.Sprintf("Bucket '%s' is not empty. Delete all objects first.", name), err)
		default:
			return vendorError(fmt.Sprintf("Failed to delete bucket '%s'", name), err)
		}
	}

	return nil
}

// BucketInfo returns the location, owner, and approximate creation date of
// a bucket. Spaces does not expose a creation date directly, so the first
// object's timestamp stands in and may be nil for an empty bucket.
func (c *Client) BucketInfo(ctx context.Context, name string) (map[string]interface{}, error) {
	location, err := c.s3.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		if errorCode(err) == "NoSuchBucket" {
			return nil, vendorError(fmt.Sprintf("Bucket '%s' does not exist", name), err)
		}
		return nil, vendorError(fmt.Sprintf("Failed to get bucket information for '%s'", name), err)
	}

	region := string(location.LocationConstraint)
	if region == "" {
		region = c.region
	}

	owner := map[string]interface{}{}
	if acl, err := c.s3.GetBucketAcl(ctx, &s3.GetBucketAclInput{Bucket: aws.String(name)}); err == nil && acl.Owner != nil {
		owner["id"] = aws.ToString(acl.Owner.ID)
		owner["display_name"] = aws.ToString(acl.Owner.DisplayName)
	}

	var creationDate interface{}
	if objects, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(name),
		MaxKeys: aws.Int32(1),
	}); err == nil && len(objects.Contents) > 0 {
		creationDate = aws.ToTime(objects.Contents[0].LastModified)
	}

	return map[string]interface{}{
		"name":          name,
		"location":      region,
		"creation_date": creationDate,
		"owner":         owner,
	}, nil
}

// ListBuckets lists every bucket visible to the credentials. The vendor
// response is returned without per-bucket region lookups.
func (c *Client) ListBuckets(ctx context.Context) (map[string]interface{}, error) {
	output, err := c.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, vendorError("Failed to list buckets", err)
	}

	buckets := make([]map[string]interface{}, 0, len(output.Buckets))
	for _, bucket := range output.Buckets {
		buckets = append(buckets, map[string]interface{}{
			"name":          aws.ToString(bucket.Name),
			"creation_date": aws.ToTime(bucket.CreationDate),
		})
	}

	result := map[string]interface{}{
		"buckets": buckets,
		"count":   len(buckets),
	}
	if output.Owner != nil {
		result["owner"] = map[string]interface{}{
			"id":           aws.ToString(output.Owner.ID),
			"display_name": aws.ToString(output.Owner.DisplayName),
		}
	}

	return result, nil
}

// errorCode extracts the vendor error code, if any.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// vendorError wraps a vendor failure as a dependency error carrying the
// vendor code and message when the SDK exposes them.
func vendorError(message string, err error) *apierr.Error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apierr.Dependency(message, apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}
	return apierr.Dependency(message, "", "", err)
}

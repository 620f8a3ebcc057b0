// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible archive for rendered pptx
// files. It wraps the AWS SDK v2 and is configured for path-style access
// (required by CEPH/Hetzner). The archive is a durable second tier behind
// the Valkey deck cache: decks outlive the cache TTL and survive restarts.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Archive wraps an S3 client for deck storage in a single private bucket.
type Archive struct {
	s3     *s3.Client
	bucket string
}

// New creates an S3 archive client configured for CEPH/Hetzner with
// path-style addressing. Returns (nil, nil) if endpoint or credentials
// are empty, allowing the app to start without an archive.
func New(endpoint, region, accessKey, secretKey, bucket string) (*Archive, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Archive{
		s3:     s3Client,
		bucket: bucket,
	}, nil
}

// deckKey names the archived object. The nanosecond stamp of the
// presentation's updated_at is part of the key, so an edited presentation
// never serves a stale deck from the archive.
func deckKey(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("decks/%s/%d.pptx", id, at.UnixNano())
}

// Store uploads a rendered deck for the presentation as of the given
// updated_at timestamp.
func (a *Archive) Store(ctx context.Context, id uuid.UUID, at time.Time, data []byte) error {
	key := deckKey(id, at)
	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(pptxContentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", a.bucket, key, err)
	}
	return nil
}

// Fetch retrieves the archived deck for the presentation as of the given
// updated_at timestamp. Returns (nil, nil) when no such deck is archived.
func (a *Archive) Fetch(ctx context.Context, id uuid.UUID, at time.Time) ([]byte, error) {
	key := deckKey(id, at)
	output, err := a.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("s3 download %s/%s: %w", a.bucket, key, err)
	}
	defer output.Body.Close()
	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body %s/%s: %w", a.bucket, key, err)
	}
	return data, nil
}

// Remove deletes every archived deck of the presentation, including copies
// from earlier updated_at stamps. Used when the presentation is deleted.
func (a *Archive) Remove(ctx context.Context, id uuid.UUID) error {
	prefix := fmt.Sprintf("decks/%s/", id)
	var continuation *string
	for {
		page, err := a.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(a.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuation,
		})
		if err != nil {
			return fmt.Errorf("s3 list %s/%s: %w", a.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			if _, err := a.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(a.bucket),
				Key:    obj.Key,
			}); err != nil {
				return fmt.Errorf("s3 delete %s/%s: %w", a.bucket, *obj.Key, err)
			}
		}
		if page.IsTruncated == nil || !*page.IsTruncated {
			return nil
		}
		continuation = page.NextContinuationToken
	}
}

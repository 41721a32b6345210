package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"

	"bizscout/bizscout/config"
	"bizscout/bizscout/utils/types"
)

// ErrCacheMiss is returned when no usable record is cached for a query.
var ErrCacheMiss = eris.New("storage: cache miss")

type MinIOClient struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
	now    func() time.Time
}

// CachedRecord is the object stored per search string.
type CachedRecord struct {
	Query     string               `json:"query"`
	Source    string               `json:"source"`
	Record    types.BusinessRecord `json:"record"`
	Timestamp time.Time            `json:"timestamp"`
}

// Fresh reports whether the entry is younger than ttl at now. A zero ttl never expires.
func (c CachedRecord) Fresh(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(c.Timestamp) < ttl
}

func NewMinIOClient(ctx context.Context, cfg config.Config) (*MinIOClient, error) {
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: cfg.MinIOSecure,
		},
	)
	if err != nil {
		return nil, eris.Wrap(err, "storage: minio client")
	}
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, eris.Wrapf(err, "storage: check bucket %s", cfg.MinIOBucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, eris.Wrapf(err, "storage: make bucket %s", cfg.MinIOBucket)
		}
	}
	return &MinIOClient{client: client, bucket: cfg.MinIOBucket, ttl: cfg.CacheTTL, now: time.Now}, nil
}

// RecordKey maps a search string to its object key. Case and surrounding
// whitespace do not change the key.
func RecordKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return path.Join("records", fmt.Sprintf("%x.json", md5.Sum([]byte(normalized))))
}

// PutRecord stores record under the key for query.
func (m *MinIOClient) PutRecord(ctx context.Context, query, source string, record types.BusinessRecord) (string, error) {
	key := RecordKey(query)
	data, err := json.Marshal(CachedRecord{
		Query:     query,
		Source:    source,
		Record:    record,
		Timestamp: m.now().UTC(),
	})
	if err != nil {
		return "", eris.Wrap(err, "storage: marshal record")
	}
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", eris.Wrapf(err, "storage: put %s", key)
	}
	return key, nil
}

// GetRecord returns the cached record for query, or ErrCacheMiss when there is
// none or it has expired.
func (m *MinIOClient) GetRecord(ctx context.Context, query string) (CachedRecord, error) {
	key := RecordKey(query)
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return CachedRecord{}, eris.Wrapf(err, "storage: get %s", key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return CachedRecord{}, eris.Wrap(ErrCacheMiss, key)
		}
		return CachedRecord{}, eris.Wrapf(err, "storage: read %s", key)
	}
	return decodeRecord(data, key, m.now(), m.ttl)
}

func decodeRecord(data []byte, key string, now time.Time, ttl time.Duration) (CachedRecord, error) {
	var cached CachedRecord
	if err := json.Unmarshal(data, &cached); err != nil {
		return CachedRecord{}, eris.Wrapf(err, "storage: decode %s", key)
	}
	if !cached.Fresh(now, ttl) {
		return CachedRecord{}, eris.Wrapf(ErrCacheMiss, "%s expired", key)
	}
	cached.Record.Normalize()
	return cached, nil
}

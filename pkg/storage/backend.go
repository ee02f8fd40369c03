package storage

import "errors"

// ErrBucketNotFound is returned when an operation names a bucket that was
// never created.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key-value store. Keys within a bucket are iterated in
// byte-wise ascending order by every implementation.
type Backend interface {
	// CreateBucket is idempotent.
	CreateBucket(name []byte) error

	Put(bucket, key, value []byte) error
	// Get returns nil, nil for a missing key.
	Get(bucket, key []byte) ([]byte, error)

	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}

package storage

import (
	"context"
	"time"
)

// Package storage contains the object-store abstraction for stored decision
// documents. The registry bucket is externally populated; this service never
// uploads or deletes objects, it only mints download links.

// Storage is an S3-compatible object storage client interface.
type Storage interface {
	// PresignGet returns a time-limited URL that can be used to download the
	// object without credentials. The signature binds the GET method, the
	// object key and the expiry.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

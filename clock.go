package remind

import (
	"os"
	"time"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock uses the system time in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Identity supplies a stable identifier for the running worker process.
type Identity interface {
	// WorkerID returns an opaque identifier for this process or host.
	WorkerID() string
}

// HostIdentity identifies the worker by hostname.
type HostIdentity struct{}

// WorkerID returns the hostname, or "worker-1" when it cannot be resolved.
func (HostIdentity) WorkerID() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "worker-1"
	}

	return hostname
}

// StaticIdentity returns a fixed worker identifier.
type StaticIdentity string

// WorkerID returns the configured identifier.
func (s StaticIdentity) WorkerID() string {
	return string(s)
}

// Package device issues the stable pseudo-random identifier that scopes
// all server-side data to one device. The id stands in for user accounts:
// the server partitions records by it, and every gateway request carries
// it in the X-Device-Id header.
package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// idFileName is the file under the data directory holding the persisted id.
const idFileName = "device-id"

// Prefixes distinguish a persisted id from the throwaway form handed out
// when no persistent storage is available.
const (
	persistentPrefix = "device-"
	temporaryPrefix  = "temp-"
)

// ID returns the device identifier for the given data directory. A
// previously stored id is returned as-is; otherwise a new one is
// generated, persisted, and returned. With an empty dir there is nowhere
// to persist, so a fresh temporary id is returned on every call — callers
// must not assume stability in that case. Never makes network calls,
// never rotates an existing id.
func ID(dir string) (string, error) {
	if dir == "" {
		return temporaryPrefix + uuid.NewString(), nil
	}

	path := filepath.Join(dir, idFileName)

	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
		// Empty file: fall through and regenerate.
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("device: reading id file %s: %w", path, err)
	}

	id := persistentPrefix + uuid.NewString()

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("device: creating data dir %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("device: persisting id file %s: %w", path, err)
	}

	return id, nil
}

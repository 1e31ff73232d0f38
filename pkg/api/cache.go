package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-explorer/pkg/logging"
)

// SnapshotCache persists the last full graph payload to disk,
// snappy-compressed, so a restart can show the previous picture before
// the backend answers.
type SnapshotCache struct {
	path string
	log  logging.Logger
}

// NewSnapshotCache creates a cache at the given file path. logger may
// be nil.
func NewSnapshotCache(path string, logger logging.Logger) *SnapshotCache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SnapshotCache{
		path: path,
		log:  logger.With(logging.Component("snapshot")),
	}
}

// Save writes the payload atomically: compress to a sibling temp file,
// then rename over the target.
func (c *SnapshotCache) Save(payload *GraphPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	compressed := snappy.Encode(nil, raw)

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	c.log.Debug("snapshot saved",
		logging.Path(c.path),
		logging.Int("bytes", len(compressed)))
	return nil
}

// Load reads the last saved payload. A missing file returns (nil, nil);
// a corrupt file returns an error and should be treated as a cold
// start, not a failure.
func (c *SnapshotCache) Load() (*GraphPayload, error) {
	compressed, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var payload GraphPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	c.log.Debug("snapshot loaded",
		logging.Path(c.path),
		logging.Count(len(payload.Nodes)))
	return &payload, nil
}

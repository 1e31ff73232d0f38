package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-explorer/pkg/graph"
)

func TestSnapshotRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "graph.snap")
	c := NewSnapshotCache(path, nil)

	payload := &GraphPayload{
		Nodes: []graph.Person{{Email: "alice@x.com", Name: "Alice", Cluster: 1}},
		Edges: []graph.Edge{{
			Source: "alice@x.com", Target: "bob@x.com",
			Properties: graph.EdgeProperties{EmailCount: 3, Summary: "standup"},
		}},
	}
	require.NoError(t, c.Save(payload))

	loaded, err := c.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, payload, loaded)
}

func TestSnapshotMissingFileIsColdStart(t *testing.T) {
	c := NewSnapshotCache(filepath.Join(t.TempDir(), "nope.snap"), nil)

	loaded, err := c.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.snap")
	require.NoError(t, os.WriteFile(path, []byte("not snappy"), 0o644))

	c := NewSnapshotCache(path, nil)
	_, err := c.Load()
	assert.Error(t, err)
}

func TestSnapshotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.snap")
	c := NewSnapshotCache(path, nil)

	require.NoError(t, c.Save(&GraphPayload{Nodes: []graph.Person{{Email: "old@x.com"}}}))
	require.NoError(t, c.Save(&GraphPayload{Nodes: []graph.Person{{Email: "new@x.com"}}}))

	loaded, err := c.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "new@x.com", loaded.Nodes[0].Email)
}

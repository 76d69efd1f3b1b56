package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowshow/internal/adapters/sqlite"
	"flowshow/internal/config"
	"flowshow/internal/domain"
)

func TestOpen_Defaults(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.db")

	rt, err := Open(filepath.Join(dir, "missing.yml"), func(c *config.Config) {
		c.Document.Path = docPath
		c.Log.File = filepath.Join(dir, "flowshow.log")
	})
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, docPath, rt.Doc.Path())
	assert.Len(t, rt.ControllerOptions(), 2)
	assert.Equal(t, domain.PanelSize{Width: 240, Height: 416}, rt.Config.ExpandedSize())
}

func TestOpen_MemoryDocument(t *testing.T) {
	rt, err := Open(filepath.Join(t.TempDir(), "missing.yml"), func(c *config.Config) {
		c.Document.Path = sqlite.MemoryPath
	})
	require.NoError(t, err)
	defer rt.Close()

	n, err := rt.Doc.AddNode(domain.NodeKindConnector, "")
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.yml"), func(c *config.Config) {
		c.Log.Level = "loud"
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crediflow/lsctl/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c, err := ReadOrCreate(path)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, scoring.DefaultThresholds(), c.Thresholds)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestReadOrCreate_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c1, err := ReadOrCreate(path)
	require.NoError(t, err)

	c1.Thresholds.Excellent = 900
	require.NoError(t, Save(path, c1))

	c2, err := ReadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, c1.Thresholds, c2.Thresholds)
}

func TestReadOrCreate_PathRequired(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestReadOrCreate_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds: [not a map"), 0600))

	_, err := ReadOrCreate(path)
	assert.Error(t, err)
}

func TestSave_Required(t *testing.T) {
	assert.Error(t, Save("", &Config{}))
	assert.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
}

func TestGetOrCreateHomeDir_NameRequired(t *testing.T) {
	_, err := GetOrCreateHomeDir("")
	assert.Error(t, err)
}

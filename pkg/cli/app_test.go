package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, appName, app.Name)

	want := []string{"import", "score", "query", "reconcile", "export", "server"}
	var got []string
	for _, cmd := range app.Commands {
		got = append(got, cmd.Name)
	}
	assert.Equal(t, want, got)

	assert.Len(t, app.Flags, 4)
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional(""))

	v := optional("A")
	require.NotNil(t, v)
	assert.Equal(t, "A", *v)
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeakCommandPrimaries(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewLeakCommand(&RootOptions{})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--theta", "30", "--phi", "45", writeScene(t, sceneJSON)})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	for i, key := range []string{"B", "G", "R", "W"} {
		assert.True(t, strings.HasPrefix(lines[i], key+" "), lines[i])
		assert.Contains(t, lines[i], "T=")
		assert.Contains(t, lines[i], "CR=")
	}
	assert.Contains(t, lines[1], "546.00 nm")
}

func TestLeakCommandMono(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewLeakCommand(&RootOptions{})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--nm", "500", writeScene(t, sceneJSON)})
	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "mono"))
	assert.Contains(t, out, "500.00 nm")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLeakCommandMissingConfig(t *testing.T) {
	cmd := NewLeakCommand(&RootOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/scene.json"})
	require.Error(t, cmd.Execute())
}

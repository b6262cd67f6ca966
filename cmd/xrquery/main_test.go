package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

const labScene = `
objects:
  - name: crate
    mesh: {cube: [1, 1, 1]}
    position: [1.1, 0, 0]
    collider: capsule
  - name: shelf
    mesh: {cube: [1, 1, 1]}
    position: [1.5, 0, 0]
    collider: capsule
  - name: lamp
    mesh: {cube: [0.2, 0.2, 0.2]}
    position: [0, 5, 0]
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(labScene), 0644))
	return path
}

func runQuery(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestPoint(t *testing.T) {
	path := writeScene(t)

	code, out, _ := runQuery("point", path, "1.1,0,0")
	require.Equal(t, 0, code)
	assert.Equal(t, "crate\nshelf\n", out)

	code, out, _ = runQuery("point", path, "3,0,0")
	require.Equal(t, 0, code)
	assert.Equal(t, "no objects\n", out)
}

func TestCapsule(t *testing.T) {
	code, out, _ := runQuery("capsule", writeScene(t), "0,4.5,0", "0,6,0", "0.05")
	require.Equal(t, 0, code)
	assert.Equal(t, "lamp\n", out)
}

func TestRay(t *testing.T) {
	code, out, _ := runQuery("ray", writeScene(t), "-5,0,0", "1,0,0")
	require.Equal(t, 0, code)
	assert.Equal(t, "crate at 5.6\n", out)
}

func TestCollisions(t *testing.T) {
	code, out, _ := runQuery("collisions", writeScene(t))
	require.Equal(t, 0, code)
	assert.Equal(t, "crate <-> shelf\n", out)
}

func TestInfo(t *testing.T) {
	code, out, _ := runQuery("info", writeScene(t))
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "3 objects\n"))
	assert.Contains(t, out, "lamp")
}

func TestErrors(t *testing.T) {
	path := writeScene(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"unknown command", []string{"explode", path}},
		{"missing arg", []string{"point", path}},
		{"bad vector", []string{"point", path, "1,2"}},
		{"negative radius", []string{"capsule", path, "0,0,0", "0,1,0", "-1"}},
		{"zero direction", []string{"ray", path, "0,0,0", "0,0,0"}},
		{"missing scene", []string{"info", filepath.Join(t.TempDir(), "none.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runQuery(tt.args...)
			assert.Equal(t, 1, code)
		})
	}
}

func TestParseVec3(t *testing.T) {
	v, err := parseVec3(" 1, -2.5 ,3")
	require.NoError(t, err)
	assert.Equal(t, math.V3(1, -2.5, 3), v)

	_, err = parseVec3("a,b,c")
	assert.Error(t, err)
}

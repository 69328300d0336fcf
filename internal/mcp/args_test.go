package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for argument parsing:
// - parseStringArg: present, missing-required, missing-optional, wrong type, empty-required
// - parseIntArg: present float64, missing, wrong type
// - parseRequiredIntArg: present, missing, wrong type

func TestParseStringArg(t *testing.T) {
	t.Parallel()

	args := map[string]interface{}{
		"file":  "api/users.go",
		"count": 3.0,
		"empty": "",
	}

	val, err := parseStringArg(args, "file", true)
	require.NoError(t, err)
	assert.Equal(t, "api/users.go", val)

	val, err = parseStringArg(args, "missing", false)
	require.NoError(t, err)
	assert.Equal(t, "", val)

	_, err = parseStringArg(args, "missing", true)
	assert.Error(t, err)

	_, err = parseStringArg(args, "count", true)
	assert.Error(t, err)

	_, err = parseStringArg(args, "empty", true)
	assert.Error(t, err)
}

func TestParseIntArg(t *testing.T) {
	t.Parallel()

	args := map[string]interface{}{
		"line": 42.0,
		"file": "api/users.go",
	}

	assert.Equal(t, 42, parseIntArg(args, "line", 7))
	assert.Equal(t, 7, parseIntArg(args, "missing", 7))
	assert.Equal(t, 7, parseIntArg(args, "file", 7))
}

func TestParseRequiredIntArg(t *testing.T) {
	t.Parallel()

	args := map[string]interface{}{
		"line": 10.0,
		"file": "api/users.go",
	}

	val, err := parseRequiredIntArg(args, "line")
	require.NoError(t, err)
	assert.Equal(t, 10, val)

	_, err = parseRequiredIntArg(args, "missing")
	assert.Error(t, err)

	_, err = parseRequiredIntArg(args, "file")
	assert.Error(t, err)
}

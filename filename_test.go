package tfrecord

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPrefixRejectsEmpty(t *testing.T) {
	_, _, err := splitPrefix("")
	require.Error(t, err)
}

func TestSplitPrefixSeparatesDirAndName(t *testing.T) {
	dir, name, err := splitPrefix("runs/exp1/events")
	require.NoError(t, err)
	assert.Equal(t, "runs/exp1", dir)
	assert.Equal(t, "events", name)
}

func TestSplitPrefixWithNoDirectory(t *testing.T) {
	dir, name, err := splitPrefix("events")
	require.NoError(t, err)
	assert.Equal(t, ".", dir)
	assert.Equal(t, "events", name)
}

func TestSplitPrefixWithTrailingSeparatorMatchesWholeDirectory(t *testing.T) {
	dir, name, err := splitPrefix("runs/exp1/")
	require.NoError(t, err)
	assert.Equal(t, "runs/exp1/", dir)
	assert.Equal(t, "", name)
}

func TestTFStylePathShape(t *testing.T) {
	path, err := tfStylePath("runs/exp1/events", ".v2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "runs/exp1/events.out.tfevents."))
	assert.True(t, strings.HasSuffix(path, ".v2"))
}

package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// saveAndRestoreState saves the debug package state and returns a cleanup function
func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalOutput := debugOutput
	originalFile := debugFile
	return func() {
		EnableDebug = originalDebug
		debugOutput = originalOutput
		debugFile = originalFile
	}
}

// TestIsDebugEnabled tests the is debug enabled.
func TestIsDebugEnabled(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")
	t.Setenv("RESPVET_DEBUG", "")

	// Test when debug is disabled
	EnableDebug = "false"
	assert.False(t, IsDebugEnabled())

	// Test when debug is enabled
	EnableDebug = "true"
	assert.True(t, IsDebugEnabled())

	// Test invalid value defaults to false
	EnableDebug = "invalid"
	assert.False(t, IsDebugEnabled())

	// Environment override
	t.Setenv("RESPVET_DEBUG", "1")
	assert.True(t, IsDebugEnabled())
}

// TestPrintf tests trace output routing.
func TestPrintf(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")
	t.Setenv("RESPVET_DEBUG", "")

	var buf bytes.Buffer
	SetDebugOutput(&buf)

	// Disabled: nothing written
	EnableDebug = "false"
	Printf("hello %s", "world")
	assert.Empty(t, buf.String())

	// Enabled: prefixed output
	EnableDebug = "true"
	Printf("hello %s\n", "world")
	assert.Equal(t, "[DEBUG] hello world\n", buf.String())
}

// TestLog tests component-tagged trace output.
func TestLog(t *testing.T) {
	defer saveAndRestoreState()()
	t.Setenv("DEBUG", "")
	t.Setenv("RESPVET_DEBUG", "")

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"

	Log("classify", "scanned %d blocks\n", 3)
	assert.True(t, strings.HasPrefix(buf.String(), "[DEBUG:classify] "))
	assert.Contains(t, buf.String(), "scanned 3 blocks")
}

// TestInitDebugLogFile tests file-backed trace logging.
func TestInitDebugLogFile(t *testing.T) {
	defer saveAndRestoreState()()

	path, err := InitDebugLogFile()
	assert.NoError(t, err)
	assert.NotEmpty(t, path)
	defer os.Remove(path)

	assert.NoError(t, CloseDebugLog())

	// Closing twice is harmless
	assert.NoError(t, CloseDebugLog())
}

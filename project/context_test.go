package project

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/respvet/lang"
)

func TestNewContextNormalizesAndDedups(t *testing.T) {
	ctx := NewContext([]string{
		"src/app.py",
		`src\app.py`,
		"src/utils/helpers.py",
		"",
	})

	assert.Equal(t, 2, ctx.Len())
	assert.True(t, ctx.FileExists("src/app.py"))
	assert.True(t, ctx.FileExists(`src\app.py`))
	assert.False(t, ctx.FileExists("src/missing.py"))

	assert.True(t, ctx.DirectoryExists("src"))
	assert.True(t, ctx.DirectoryExists("src/utils"))
	assert.False(t, ctx.DirectoryExists("lib"))
}

func TestContextModules(t *testing.T) {
	ctx := NewContext([]string{
		"src/app.py",
		"src/utils/helpers.py",
		"web/index.js",
		"web/router.ts",
	})

	assert.Equal(t, []string{"src.app", "src.utils.helpers"}, ctx.Modules(lang.Python))
	assert.Equal(t, []string{"web/index.js"}, ctx.Modules(lang.JavaScript))
	assert.Equal(t, []string{"web/router.ts"}, ctx.Modules(lang.TypeScript))
}

func TestContextFilesReturnsCopy(t *testing.T) {
	ctx := NewContext([]string{"b.py", "a.py"})

	files := ctx.Files()
	assert.Equal(t, []string{"a.py", "b.py"}, files)

	files[0] = "mutated"
	assert.Equal(t, []string{"a.py", "b.py"}, ctx.Files())
}

func TestContextGlob(t *testing.T) {
	ctx := NewContext([]string{
		"src/app.py",
		"src/utils/helpers.py",
		"docs/readme.md",
	})

	assert.Equal(t, []string{"src/app.py", "src/utils/helpers.py"}, ctx.Glob("src/**/*.py"))
	assert.Empty(t, ctx.Glob("**/*.go"))
}

func TestContextFingerprint(t *testing.T) {
	a := NewContext([]string{"a.py", "b.py"})
	b := NewContext([]string{"b.py", "a.py"})
	c := NewContext([]string{"a.py"})

	// Order-insensitive, content-sensitive.
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

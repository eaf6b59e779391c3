// Package project holds the caller-supplied ground truth about a target
// codebase and cross-references generated code against it: file references,
// import resolution, and naming-style drift.
package project

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/respvet/lang"
)

// Context is an immutable snapshot of a project: the set of known relative
// file paths plus sets derived once at construction (directories, module
// names per language). It is never mutated after NewContext returns and is
// safe for concurrent use.
type Context struct {
	files   map[string]struct{}
	sorted  []string
	dirs    map[string]struct{}
	modules map[lang.Language]map[string]struct{}
	hash    uint64
}

// NewContext builds a snapshot from the given relative file paths.
// Duplicates are collapsed; path separators are normalized to forward
// slashes.
func NewContext(filePaths []string) *Context {
	ctx := &Context{
		files:   make(map[string]struct{}, len(filePaths)),
		dirs:    make(map[string]struct{}),
		modules: make(map[lang.Language]map[string]struct{}),
	}

	for _, p := range filePaths {
		p = strings.ReplaceAll(p, `\`, "/")
		if p == "" {
			continue
		}
		if _, ok := ctx.files[p]; ok {
			continue
		}
		ctx.files[p] = struct{}{}
		ctx.sorted = append(ctx.sorted, p)

		// Every ancestor directory of a known file is a known directory.
		parts := strings.Split(p, "/")
		for i := 1; i < len(parts); i++ {
			ctx.dirs[strings.Join(parts[:i], "/")] = struct{}{}
		}
	}
	sort.Strings(ctx.sorted)

	for _, l := range []lang.Language{lang.Python, lang.JavaScript, lang.TypeScript} {
		ctx.modules[l] = deriveModules(ctx.sorted, l)
	}

	digest := xxhash.New()
	for _, p := range ctx.sorted {
		_, _ = digest.WriteString(p)
		_, _ = digest.WriteString("\n")
	}
	ctx.hash = digest.Sum64()

	return ctx
}

// deriveModules computes the importable module names for a language.
// Python paths become dotted module paths; script languages keep the file
// path as the module identity.
func deriveModules(paths []string, l lang.Language) map[string]struct{} {
	modules := make(map[string]struct{})
	for _, p := range paths {
		for _, ext := range lang.Extensions(l) {
			if !strings.HasSuffix(p, ext) {
				continue
			}
			if l == lang.Python {
				module := strings.TrimSuffix(p, ext)
				modules[strings.ReplaceAll(module, "/", ".")] = struct{}{}
			} else {
				modules[p] = struct{}{}
			}
			break
		}
	}
	return modules
}

// FileExists reports whether the exact path is a known project file.
func (c *Context) FileExists(path string) bool {
	_, ok := c.files[strings.ReplaceAll(path, `\`, "/")]
	return ok
}

// DirectoryExists reports whether the path is a known project directory.
func (c *Context) DirectoryExists(path string) bool {
	_, ok := c.dirs[strings.ReplaceAll(path, `\`, "/")]
	return ok
}

// Files returns the known file paths in sorted order. The returned slice is
// a copy; the snapshot stays immutable.
func (c *Context) Files() []string {
	out := make([]string, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// Len returns the number of known files.
func (c *Context) Len() int { return len(c.sorted) }

// Modules returns the importable module names for a language, sorted.
func (c *Context) Modules(l lang.Language) []string {
	set := c.modules[l]
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// hasModule reports whether the module name is known for the language.
func (c *Context) hasModule(l lang.Language, module string) bool {
	_, ok := c.modules[l][module]
	return ok
}

// Glob returns the known files matching a doublestar pattern, sorted.
// Invalid patterns match nothing.
func (c *Context) Glob(pattern string) []string {
	var out []string
	for _, p := range c.sorted {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			out = append(out, p)
		}
	}
	return out
}

// Fingerprint returns a stable hash of the snapshot's sorted path list,
// usable as a cache or report key by outer layers.
func (c *Context) Fingerprint() uint64 { return c.hash }

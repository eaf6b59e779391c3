package parse

import (
	"fmt"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/standardbeagle/respvet/internal/errors"
	"github.com/standardbeagle/respvet/lang"
)

// The language and compiled query are immutable after initialization and
// safe to share between parsers. Parsers themselves are created per call;
// tree-sitter parsers are not safe for concurrent reuse.
var (
	pythonInit     sync.Once
	pythonLanguage *tree_sitter.Language
	pythonQuery    *tree_sitter.Query
)

const pythonQuerySource = `
    (function_definition name: (identifier) @function.name) @function
    (class_definition name: (identifier) @class.name) @class
    (expression_statement (assignment left: (identifier) @assign.name)) @assign
    (import_statement) @import
    (import_from_statement) @import
`

func initPython() {
	pythonLanguage = tree_sitter.NewLanguage(tree_sitter_python.Language())
	query, _ := tree_sitter.NewQuery(pythonLanguage, pythonQuerySource)
	// The Go binding can return a typed nil error, so check the query itself
	pythonQuery = query
}

// parsePython runs the strict-grammar path: a real tree-sitter parse with
// query-based extraction. When the tree contains errors the first error
// location is reported and the summary comes from the regex fallback
// extractor, so downstream checks still have declarations to work with.
func parsePython(source string) Result {
	pythonInit.Do(initPython)

	result := Result{
		Language: lang.Python,
		Mode:     ModeParsed,
		Summary:  Summary{LineCount: countLines(source)},
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(pythonLanguage); err != nil {
		result.Mode = ModeFallback
		result.Errors = append(result.Errors, fmt.Sprintf("Parse error: %v", err))
		extractPythonFallback(source, &result.Summary)
		return result
	}

	// Tree-sitter mutates input buffers via CGO; hand it a private copy.
	buf := []byte(source)
	tree := parser.Parse(buf, nil)
	if tree == nil {
		result.Mode = ModeFallback
		result.Errors = append(result.Errors, "Parse error: parser produced no tree")
		extractPythonFallback(source, &result.Summary)
		return result
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line, column, msg := firstSyntaxError(root, buf)
		perr := errors.NewParseError(line, column, "", fmt.Errorf("%s", msg))
		result.Valid = false
		result.Mode = ModeFallback
		result.Errors = append(result.Errors, fmt.Sprintf("Syntax error at line %d, column %d: %s", perr.Line, perr.Column, msg))
		extractPythonFallback(source, &result.Summary)
		return result
	}

	result.Valid = true
	extractPythonTree(root, buf, &result.Summary)
	return result
}

// firstSyntaxError walks the tree depth-first and reports the position and a
// short description of the first ERROR or missing node.
func firstSyntaxError(node *tree_sitter.Node, content []byte) (line, column int, msg string) {
	if node.IsMissing() {
		pos := node.StartPosition()
		return int(pos.Row) + 1, int(pos.Column) + 1, fmt.Sprintf("missing %s", node.Kind())
	}
	if node.IsError() {
		pos := node.StartPosition()
		text := node.Utf8Text(content)
		if len(text) > 20 {
			text = text[:20]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return int(pos.Row) + 1, int(pos.Column) + 1, "unexpected token"
		}
		return int(pos.Row) + 1, int(pos.Column) + 1, fmt.Sprintf("unexpected token near %q", text)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !child.HasError() {
			continue
		}
		return firstSyntaxError(child, content)
	}
	// The error flag is set but no child carries it; report this node.
	pos := node.StartPosition()
	return int(pos.Row) + 1, int(pos.Column) + 1, "invalid syntax"
}

// extractPythonTree populates the summary from query captures over a clean
// parse tree.
func extractPythonTree(root *tree_sitter.Node, content []byte, summary *Summary) {
	if pythonQuery == nil {
		// Query failed to compile; fall back to regex extraction.
		extractPythonFallback(string(content), summary)
		return
	}

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(pythonQuery, root, content)

	captureNames := pythonQuery.CaptureNames()

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var name string
		var nameLine int
		for _, c := range match.Captures {
			if strings.HasSuffix(captureNames[c.Index], ".name") {
				name = c.Node.Utf8Text(content)
				nameLine = int(c.Node.StartPosition().Row) + 1
			}
		}

		for _, c := range match.Captures {
			node := c.Node
			switch captureNames[c.Index] {
			case "function":
				if name != "" {
					summary.Functions = append(summary.Functions, Decl{Name: name, Line: nameLine})
				}
			case "class":
				if name != "" {
					summary.Classes = append(summary.Classes, Decl{Name: name, Line: nameLine})
				}
			case "assign":
				if name != "" {
					appendAssignment(summary, name, nameLine)
				}
			case "import":
				stmt := node.Utf8Text(content)
				line := int(node.StartPosition().Row) + 1
				summary.Imports = append(summary.Imports, parsePythonImportStatement(stmt, line)...)
			}
		}
	}
}

// appendAssignment buckets an assignment target as constant-like or
// variable-like by casing, matching how the context checks group names.
func appendAssignment(summary *Summary, name string, line int) {
	if name == strings.ToUpper(name) && name != strings.ToLower(name) {
		summary.Constants = append(summary.Constants, Decl{Name: name, Line: line})
		return
	}
	summary.Variables = append(summary.Variables, Decl{Name: name, Line: line})
}

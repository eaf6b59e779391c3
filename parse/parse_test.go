package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/respvet/lang"
)

const validPython = `"""Utility helpers."""
import os
from pathlib import Path

MAX_RETRIES = 3
timeout = 30


def fetch_data(url):
    """Fetch data from a URL."""
    return url


class DataProcessor:
    """Processes data."""

    def process(self, item):
        return item
`

func TestParsePythonValid(t *testing.T) {
	result := Parse(validPython, lang.Python)

	require.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Equal(t, ModeParsed, result.Mode)
	assert.Empty(t, result.Errors)

	names := func(decls []Decl) []string {
		out := make([]string, len(decls))
		for i, d := range decls {
			out[i] = d.Name
		}
		return out
	}

	assert.Contains(t, names(result.Summary.Functions), "fetch_data")
	assert.Equal(t, []string{"DataProcessor"}, names(result.Summary.Classes))
	assert.Equal(t, []string{"MAX_RETRIES"}, names(result.Summary.Constants))
	assert.Contains(t, names(result.Summary.Variables), "timeout")

	require.Len(t, result.Summary.Imports, 2)
	assert.Equal(t, "os", result.Summary.Imports[0].Module)
	assert.Equal(t, "pathlib", result.Summary.Imports[1].Module)
	assert.Equal(t, "Path", result.Summary.Imports[1].Name)
	assert.True(t, result.Summary.Imports[1].From)
}

func TestParsePythonSyntaxErrorFallsBack(t *testing.T) {
	source := "def broken(:\n    pass\n\ndef works():\n    return 1\n"
	result := Parse(source, lang.Python)

	assert.False(t, result.Valid)
	assert.Equal(t, ModeFallback, result.Mode)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Syntax error at line")

	// Fallback extraction still sees both declarations.
	require.Len(t, result.Summary.Functions, 2)
	assert.Equal(t, "broken", result.Summary.Functions[0].Name)
	assert.Equal(t, "works", result.Summary.Functions[1].Name)
}

func TestParsePythonImportForms(t *testing.T) {
	source := strings.Join([]string{
		"import os, sys as system",
		"from collections import OrderedDict, defaultdict",
		"from utils.helpers import (",
		"    first_helper,",
		"    second_helper,",
		")",
	}, "\n")

	result := Parse(source, lang.Python)
	require.True(t, result.Valid, "errors: %v", result.Errors)

	imports := result.Summary.Imports
	require.Len(t, imports, 6)

	assert.Equal(t, Import{Module: "os", Line: 1}, imports[0])
	assert.Equal(t, Import{Module: "sys", Alias: "system", Line: 1}, imports[1])
	assert.Equal(t, Import{Module: "collections", Name: "OrderedDict", Line: 2, From: true}, imports[2])
	assert.Equal(t, Import{Module: "collections", Name: "defaultdict", Line: 2, From: true}, imports[3])
	assert.Equal(t, "utils.helpers", imports[4].Module)
	assert.Equal(t, "first_helper", imports[4].Name)
	assert.Equal(t, "second_helper", imports[5].Name)
}

func TestParseJavaScript(t *testing.T) {
	source := strings.Join([]string{
		"import { readFile } from './utils/files';",
		"import fs from 'fs';",
		"const config = require('./config');",
		"",
		"const MAX_SIZE = 1024;",
		"let counter = 0;",
		"",
		"function processData(input) {",
		"  return input;",
		"}",
		"",
		"const handler = async (req) => {",
		"  return req;",
		"};",
		"",
		"class RequestRouter {",
		"  route() {}",
		"}",
	}, "\n")

	result := Parse(source, lang.JavaScript)
	require.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Equal(t, ModeHeuristic, result.Mode)

	names := func(decls []Decl) []string {
		out := make([]string, len(decls))
		for i, d := range decls {
			out[i] = d.Name
		}
		return out
	}
	assert.Equal(t, []string{"processData", "handler"}, names(result.Summary.Functions))
	assert.Equal(t, []string{"RequestRouter"}, names(result.Summary.Classes))
	assert.Equal(t, []string{"MAX_SIZE"}, names(result.Summary.Constants))

	modules := make([]string, 0, len(result.Summary.Imports))
	for _, imp := range result.Summary.Imports {
		modules = append(modules, imp.Module)
	}
	assert.Equal(t, []string{"./utils/files", "fs", "./config"}, modules)
}

func TestParseJavaScriptUnbalancedBrace(t *testing.T) {
	source := "function missing(a) {\n  return a;\n\nfunction other() {\n  return 1;\n}\n"
	result := Parse(source, lang.JavaScript)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Unbalanced braces: 1 extra opening braces", result.Errors[0])

	// Declarations are still extracted despite the broken brace.
	assert.Len(t, result.Summary.Functions, 2)
}

func TestParseUnsupportedLanguage(t *testing.T) {
	result := Parse("fn main() {}", lang.Unknown)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Unsupported language: unknown", result.Errors[0])
}

func TestParseIdempotent(t *testing.T) {
	first := Parse(validPython, lang.Python)
	second := Parse(validPython, lang.Python)
	assert.Equal(t, first, second)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("x = 1"))
	assert.Equal(t, 1, countLines("x = 1\n"))
	assert.Equal(t, 2, countLines("x = 1\ny = 2"))
}

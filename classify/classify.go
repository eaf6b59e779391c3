// Package classify decides whether a raw model response is a structured
// tool request, a code answer, or plain text, and extracts the relevant
// payloads.
package classify

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/respvet/internal/debug"
)

// Kind is the primary response type.
type Kind string

const (
	KindToolRequest Kind = "tool_request"
	KindCode        Kind = "code"
	KindText        Kind = "text"
)

// CodeBlock is one fenced code block with its declared language tag, or
// "unknown" when the fence carried none.
type CodeBlock struct {
	Language string
	Code     string
}

// Classification is the full result of classifying one response.
type Classification struct {
	Kind         Kind
	Valid        bool
	CodeBlocks   []CodeBlock
	ToolRequests []ToolRequest
	Errors       []string
	Warnings     []string
}

// HasCodeBlocks reports whether any fenced code block was found.
func (c *Classification) HasCodeBlocks() bool { return len(c.CodeBlocks) > 0 }

// HasToolRequests reports whether any valid tool request was found.
func (c *Classification) HasToolRequests() bool { return len(c.ToolRequests) > 0 }

var fencedBlockPattern = regexp.MustCompile("(?s)```([A-Za-z0-9+#._-]*)\r?\n(.*?)```")

// ExtractCodeBlocks returns every fenced code block in the response in
// order of appearance.
func ExtractCodeBlocks(response string) []CodeBlock {
	var blocks []CodeBlock
	for _, m := range fencedBlockPattern.FindAllStringSubmatch(response, -1) {
		tag := m[1]
		if tag == "" {
			tag = "unknown"
		}
		blocks = append(blocks, CodeBlock{
			Language: tag,
			Code:     strings.TrimSpace(m[2]),
		})
	}
	return blocks
}

// Classify determines the primary type of a response. Precedence is tool
// request over code over text; a response carrying both kinds keeps that
// precedence but gains a warning. Empty input is invalid.
func Classify(response string) Classification {
	result := Classification{Kind: KindText, Valid: true}

	if strings.TrimSpace(response) == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Empty response")
		return result
	}

	result.CodeBlocks = ExtractCodeBlocks(response)
	if result.HasCodeBlocks() {
		result.Kind = KindCode
	}

	result.ToolRequests = ExtractToolRequests(response)
	if result.HasToolRequests() {
		result.Kind = KindToolRequest
	}

	if result.HasCodeBlocks() && result.HasToolRequests() {
		result.Warnings = append(result.Warnings,
			"Response contains both code blocks and tool requests - may indicate mixed response type")
	}

	debug.Log("classify", "kind=%s blocks=%d tools=%d\n",
		result.Kind, len(result.CodeBlocks), len(result.ToolRequests))

	return result
}

// Accuracy is the fraction of responses that classify as valid. An empty
// batch scores zero.
func Accuracy(responses []string) float64 {
	if len(responses) == 0 {
		return 0.0
	}
	valid := 0
	for _, response := range responses {
		if Classify(response).Valid {
			valid++
		}
	}
	return float64(valid) / float64(len(responses))
}

// AccuracyConcurrent classifies a batch in parallel. Classification is
// pure, so responses are scored independently with no coordination beyond
// the final tally.
func AccuracyConcurrent(ctx context.Context, responses []string, workers int) (float64, error) {
	if len(responses) == 0 {
		return 0.0, nil
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]bool, len(responses))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, response := range responses {
		i, response := i, response
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Classify(response).Valid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0.0, err
	}

	valid := 0
	for _, ok := range results {
		if ok {
			valid++
		}
	}
	return float64(valid) / float64(len(responses)), nil
}

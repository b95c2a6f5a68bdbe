package tools

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/toolrelay/toolrelay/internal/registry"
)

func textParam(description string) []registry.Param {
	return []registry.Param{
		{Name: "text", Kind: registry.String, Required: true, Description: description},
	}
}

func stringTools() []*registry.Tool {
	return []*registry.Tool{
		{
			Name:        "uppercase",
			Description: "Convert text to uppercase",
			Params:      textParam("Text to convert to uppercase"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return strings.ToUpper(args["text"].(string)), nil
			},
		},
		{
			Name:        "lowercase",
			Description: "Convert text to lowercase",
			Params:      textParam("Text to convert to lowercase"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return strings.ToLower(args["text"].(string)), nil
			},
		},
		{
			Name:        "reverse_string",
			Description: "Reverse a string",
			Params:      textParam("Text to reverse"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return reverse(args["text"].(string)), nil
			},
		},
		{
			Name:        "string_length",
			Description: "Get the length of a string",
			Params:      textParam("Text to measure"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return utf8.RuneCountInString(args["text"].(string)), nil
			},
		},
	}
}

// reverse reverses by rune so multi-byte characters survive intact.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/toolrelay/toolrelay/internal/registry"
)

// urlPattern accepts http/https URLs with a domain, localhost, or an IPv4
// address, an optional port, and an optional path or query.
var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

func webTools(client *http.Client) []*registry.Tool {
	return []*registry.Tool{
		{
			Name:        "validate_url",
			Description: "Validate if a string is a valid URL",
			Params: []registry.Param{
				{Name: "url", Kind: registry.String, Required: true, Description: "URL to validate"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return urlPattern.MatchString(args["url"].(string)), nil
			},
		},
		{
			Name:        "make_request",
			Description: "Make an HTTP request to a URL",
			Params: []registry.Param{
				{Name: "url", Kind: registry.String, Required: true, Description: "URL to request"},
				{Name: "method", Kind: registry.String, Default: "GET", Description: "HTTP method (GET, POST, etc.)"},
				{Name: "headers", Kind: registry.Object, Default: map[string]any{}, Description: "HTTP headers"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return makeRequest(ctx, client, args)
			},
		},
	}
}

func makeRequest(ctx context.Context, client *http.Client, args map[string]any) (any, error) {
	url := args["url"].(string)
	method := strings.ToUpper(args["method"].(string))

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}

	if headers, ok := args["headers"].(map[string]any); ok {
		for name, value := range headers {
			if s, ok := value.(string); ok {
				req.Header.Set(name, s)
			}
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[name] = resp.Header.Get(name)
	}

	return map[string]any{
		"status_code": resp.StatusCode,
		"headers":     headers,
		"content":     string(body),
		"url":         resp.Request.URL.String(),
	}, nil
}

package tools

import (
	"context"
	"time"

	"github.com/toolrelay/toolrelay/internal/registry"
)

func basicTools() []*registry.Tool {
	return []*registry.Tool{
		{
			Name:        "echo",
			Description: "Echo back the input text",
			Params: []registry.Param{
				{Name: "text", Kind: registry.String, Required: true, Description: "Text to echo back"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return args["text"], nil
			},
		},
		{
			Name:        "get_time",
			Description: "Get current server time",
			Handler: func(_ context.Context, _ map[string]any) (any, error) {
				return time.Now().Format(time.RFC3339Nano), nil
			},
		},
	}
}

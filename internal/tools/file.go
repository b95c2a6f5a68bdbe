package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/toolrelay/toolrelay/internal/registry"
)

func fileTools() []*registry.Tool {
	return []*registry.Tool{
		{
			Name:        "read_file",
			Description: "Read contents of a file",
			Params: []registry.Param{
				{Name: "filepath", Kind: registry.String, Required: true, Description: "Path to the file to read"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				path := args["filepath"].(string)

				data, err := os.ReadFile(path)
				if err != nil {
					return nil, fmt.Errorf("error reading file: %w", err)
				}

				return string(data), nil
			},
		},
		{
			Name:        "write_file",
			Description: "Write content to a file",
			Params: []registry.Param{
				{Name: "filepath", Kind: registry.String, Required: true, Description: "Path to the file to write"},
				{Name: "content", Kind: registry.String, Required: true, Description: "Content to write to the file"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				path := args["filepath"].(string)
				content := args["content"].(string)

				if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
					return nil, fmt.Errorf("error writing file: %w", err)
				}

				return fmt.Sprintf("Successfully wrote %d characters to %s", len(content), path), nil
			},
		},
		{
			Name:        "list_directory",
			Description: "List files and directories in a path",
			Params: []registry.Param{
				{Name: "path", Kind: registry.String, Required: true, Description: "Directory path to list"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				path := args["path"].(string)

				entries, err := os.ReadDir(path)
				if err != nil {
					return nil, fmt.Errorf("error listing directory: %w", err)
				}

				items := make([]string, 0, len(entries))
				for _, entry := range entries {
					items = append(items, entry.Name())
				}

				return map[string]any{
					"path":  path,
					"items": items,
					"count": len(items),
				}, nil
			},
		},
	}
}

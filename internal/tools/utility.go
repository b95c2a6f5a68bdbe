package tools

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/toolrelay/toolrelay/internal/registry"
)

func utilityTools() []*registry.Tool {
	return []*registry.Tool{
		{
			Name:        "random_number",
			Description: "Generate a random number between min and max",
			Params: []registry.Param{
				{Name: "min", Kind: registry.Number, Required: true, Description: "Minimum value"},
				{Name: "max", Kind: registry.Number, Required: true, Description: "Maximum value"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				minVal := int(args["min"].(float64))
				maxVal := int(args["max"].(float64))

				if minVal > maxVal {
					return nil, errors.New("minimum value cannot be greater than maximum value")
				}

				// Inclusive on both ends.
				return minVal + rand.IntN(maxVal-minVal+1), nil
			},
		},
		{
			Name:        "generate_uuid",
			Description: "Generate a random UUID",
			Handler: func(_ context.Context, _ map[string]any) (any, error) {
				return uuid.NewString(), nil
			},
		},
		{
			Name:        "hash_md5",
			Description: "Generate MD5 hash of input text",
			Params:      textParam("Text to hash"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				sum := md5.Sum([]byte(args["text"].(string)))

				return hex.EncodeToString(sum[:]), nil
			},
		},
		{
			Name:        "hash_sha256",
			Description: "Generate SHA256 hash of input text",
			Params:      textParam("Text to hash"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				sum := sha256.Sum256([]byte(args["text"].(string)))

				return hex.EncodeToString(sum[:]), nil
			},
		},
	}
}

package tools

import (
	"context"
	"errors"
	"math"

	"github.com/toolrelay/toolrelay/internal/registry"
)

func numberPair(first, second string) []registry.Param {
	return []registry.Param{
		{Name: "a", Kind: registry.Number, Required: true, Description: first},
		{Name: "b", Kind: registry.Number, Required: true, Description: second},
	}
}

func mathTools() []*registry.Tool {
	return []*registry.Tool{
		{
			Name:        "add",
			Description: "Add two numbers together",
			Params:      numberPair("First number", "Second number"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return args["a"].(float64) + args["b"].(float64), nil
			},
		},
		{
			Name:        "subtract",
			Description: "Subtract second number from first number",
			Params:      numberPair("First number", "Second number"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return args["a"].(float64) - args["b"].(float64), nil
			},
		},
		{
			Name:        "multiply",
			Description: "Multiply two numbers",
			Params:      numberPair("First number", "Second number"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return args["a"].(float64) * args["b"].(float64), nil
			},
		},
		{
			Name:        "divide",
			Description: "Divide first number by second number",
			Params:      numberPair("First number", "Second number"),
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				b := args["b"].(float64)
				if b == 0 {
					return nil, errors.New("division by zero is not allowed")
				}

				return args["a"].(float64) / b, nil
			},
		},
		{
			Name:        "power",
			Description: "Raise first number to the power of second number",
			Params: []registry.Param{
				{Name: "base", Kind: registry.Number, Required: true, Description: "Base number"},
				{Name: "exponent", Kind: registry.Number, Required: true, Description: "Exponent"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return math.Pow(args["base"].(float64), args["exponent"].(float64)), nil
			},
		},
		{
			Name:        "sqrt",
			Description: "Calculate square root of a number",
			Params: []registry.Param{
				{Name: "number", Kind: registry.Number, Required: true, Description: "Number to calculate square root of"},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				n := args["number"].(float64)
				if n < 0 {
					return nil, errors.New("cannot calculate square root of negative number")
				}

				return math.Sqrt(n), nil
			},
		},
	}
}

package agent

import (
	"context"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// NewAnalyst returns an expert commenting portfolio return reports. Its
// tools let it compute the returns over other windows.
func NewAnalyst(tools ...Function) *Expert {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a financial analyst commenting the returns of a personal stock portfolio.
			You receive a markdown report: the value of the positions, the net capital
			contributed through orders, the profit and the return over a window, and the
			profit of each month.
			Comment it in a few short paragraphs, in the language of the report's month labels.
			Point out the best and worst months and whether the trend is improving.
			When comparing with another window helps, call the returns function.
			Never give investment advice.
		`}}},
	}
	if len(tools) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: NewDeclaration(tools)}}
	}
	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config:    cfg,
		Library:   NewLibrary(tools),
	}
}

// ReturnsFunc computes the markdown returns report over a compact window like "6m".
type ReturnsFunc func(ctx context.Context, window string) (string, error)

// ReturnsTool exposes a ReturnsFunc to the model.
type ReturnsTool struct {
	Compute ReturnsFunc
}

func (t ReturnsTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "returns",
		Description: "Computes the portfolio returns report over a window counted back from today.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"window": {
					Type:        genai.TypeString,
					Description: `compact window: a count of years, months and days like "1y", "6m", "1y2m15d" or "90d"`,
				},
			},
			Required: []string{"window"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "the markdown report",
		},
	}
}

func (t ReturnsTool) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: "returns"}
	window, _ := args["window"].(string)
	report, err := t.Compute(ctx, window)
	if err != nil {
		fresp.Response = map[string]any{"error": err.Error()}
		return fresp
	}
	fresp.Response = map[string]any{"output": report}
	return fresp
}

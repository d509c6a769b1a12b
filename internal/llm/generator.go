package llm

import (
	"context"

	"go.uber.org/zap"
)

// Generator turns a category into a parsed Generation using one Client.
type Generator struct {
	client Client
	opts   PromptOptions
	logger *zap.Logger
}

func NewGenerator(client Client, opts PromptOptions, logger *zap.Logger) *Generator {
	return &Generator{client: client, opts: opts, logger: logger}
}

// Generate sends one request for the category. Transport errors are returned
// as-is; a reply that does not fit the schema is a *GenerationParseError.
func (g *Generator) Generate(ctx context.Context, category string) (*Generation, error) {
	prompt := BuildMenuPrompt(category, g.opts)

	reply, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	gen, err := ParseGeneration(category, reply)
	if err != nil {
		g.logger.Error("unparseable generation",
			zap.String("category", category),
			zap.String("reply", reply),
			zap.Error(err),
		)
		return nil, err
	}

	g.logger.Info("category generated",
		zap.String("category", category),
		zap.Int("dishes", len(gen.DishTitles)),
	)
	return gen, nil
}

package service

import (
	"context"
)

// Assistant is the conversational collaborator: anything the command parser
// does not recognize is routed here. The ledger core has no dependency on
// its internals.
type Assistant interface {
	Answer(ctx context.Context, query string) (string, error)
	SimplifyNews(ctx context.Context, text string) (string, error)
}

// Canned stands in for the model backend until one is wired up.
type Canned struct{}

func NewCanned() *Canned {
	return &Canned{}
}

func (c *Canned) Answer(_ context.Context, query string) (string, error) {
	return "I don't have the answering model connected yet, so here is the short version: " +
		"for question \"" + truncate(query, 200) + "\" I'd suggest starting with your budget. " +
		"Try 'set budget', 'spent', 'owe', 'bill' or 'summary' to track your money here.", nil
}

func (c *Canned) SimplifyNews(_ context.Context, text string) (string, error) {
	return "I can't summarize news without the model backend. The text started with: \"" +
		truncate(text, 200) + "\"", nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

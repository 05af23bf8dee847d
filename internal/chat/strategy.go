// Package chat keeps a rendered conversation and inbox in step with the backend by polling.
package chat

import "strings"

// Strategy decides how a poll result is folded into the rendered list.
type Strategy string

const (
	// StrategyByID appends only messages newer than the highest id already seen.
	StrategyByID Strategy = "id"
	// StrategyByCount re-renders the whole list when the backend returns more
	// messages than are rendered. Same-count edits are not detected.
	StrategyByCount Strategy = "count"
)

// ParseStrategy reads a configured strategy, defaulting to StrategyByID.
func ParseStrategy(raw string) Strategy {
	if Strategy(strings.ToLower(strings.TrimSpace(raw))) == StrategyByCount {
		return StrategyByCount
	}
	return StrategyByID
}

// Package bandit implements an epsilon-greedy multi-armed bandit over a
// fixed set of prompt templates, used to learn which prompt a language's
// candidate generator responds to best.
package bandit

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

const historyLimit = 100

// HistoryEntry records one pick or update event, in the order it happened.
type HistoryEntry struct {
	Selection int     `json:"selection"`
	Prompt    string  `json:"prompt"`
	Type      string  `json:"type"` // "explore", "exploit", or "update"
	Value     float64 `json:"value,omitempty"`
	Reward    float64 `json:"reward,omitempty"`
	NewValue  float64 `json:"new_value,omitempty"`
	Count     int     `json:"count,omitempty"`
}

// Bandit is an epsilon-greedy multi-armed bandit: with probability Epsilon
// it explores by picking a prompt uniformly at random, and otherwise
// exploits by picking the prompt with the highest current value estimate
// (ties broken in favor of the prompt that appears earliest in Prompts).
//
// Not safe for concurrent use without external locking — callers share one
// Bandit per language and must serialize Pick/Update/state access.
type Bandit struct {
	Prompts []string           `json:"prompts"`
	Epsilon float64            `json:"epsilon"`
	Values  map[string]float64 `json:"values"`
	Counts  map[string]int     `json:"counts"`

	// Selections is the running count of Pick calls. JSON tag matches the
	// reference implementation's on-disk field name so persisted state
	// written by either implementation can be read back by this one.
	Selections int `json:"total_selections"`

	History []HistoryEntry `json:"history"`
}

// New creates a bandit over prompts, all starting at initialValue with zero
// counts. Panics if prompts is empty — a bandit with no arms can't pick.
func New(prompts []string, epsilon float64, initialValue float64) *Bandit {
	if len(prompts) == 0 {
		panic("bandit: at least one prompt is required")
	}
	values := make(map[string]float64, len(prompts))
	counts := make(map[string]int, len(prompts))
	for _, p := range prompts {
		values[p] = initialValue
		counts[p] = 0
	}
	return &Bandit{
		Prompts: prompts,
		Epsilon: epsilon,
		Values:  values,
		Counts:  counts,
	}
}

// Pick selects a prompt using the epsilon-greedy strategy and records the
// selection in history.
func (b *Bandit) Pick() string {
	b.Selections++

	var prompt, selectionType string
	if rand.Float64() < b.Epsilon {
		prompt = b.Prompts[rand.Intn(len(b.Prompts))]
		selectionType = "explore"
	} else {
		prompt = b.best()
		selectionType = "exploit"
	}

	b.appendHistory(HistoryEntry{
		Selection: b.Selections,
		Prompt:    prompt,
		Type:      selectionType,
		Value:     b.Values[prompt],
	})

	return prompt
}

// best returns the prompt with the highest value estimate, breaking ties in
// favor of whichever prompt appears first in Prompts.
func (b *Bandit) best() string {
	best := b.Prompts[0]
	bestValue := b.Values[best]
	for _, p := range b.Prompts[1:] {
		if b.Values[p] > bestValue {
			best = p
			bestValue = b.Values[p]
		}
	}
	return best
}

// Update applies an incremental-mean update to prompt's value estimate
// given an observed reward, and records the update in history.
func (b *Bandit) Update(prompt string, reward float64) error {
	if _, ok := b.Values[prompt]; !ok {
		return fmt.Errorf("bandit: unknown prompt %q", prompt)
	}

	b.Counts[prompt]++
	n := b.Counts[prompt]

	old := b.Values[prompt]
	b.Values[prompt] = old + (reward-old)/float64(n)

	b.appendHistory(HistoryEntry{
		Selection: b.Selections,
		Prompt:    prompt,
		Type:      "update",
		Reward:    reward,
		NewValue:  b.Values[prompt],
		Count:     n,
	})

	return nil
}

// appendHistory appends an entry and trims to the last historyLimit
// entries, matching the reference implementation's ring-buffer-on-save
// behavior but applied eagerly so History never grows unbounded in memory.
func (b *Bandit) appendHistory(entry HistoryEntry) {
	b.History = append(b.History, entry)
	if len(b.History) > historyLimit {
		b.History = b.History[len(b.History)-historyLimit:]
	}
}

// PromptStats is one prompt's performance summary, as returned by Stats.
type PromptStats struct {
	Prompt        string  `json:"prompt"`
	Value         float64 `json:"value"`
	Count         int     `json:"count"`
	SelectionRate float64 `json:"selection_rate"`
}

// Stats is the full snapshot returned by the `/stats/{lang}` endpoint.
type Stats struct {
	TotalSelections int           `json:"total_selections"`
	Epsilon         float64       `json:"epsilon"`
	Prompts         []PromptStats `json:"prompts"`
}

// Stats returns a snapshot of bandit performance, prompts sorted by value
// descending.
func (b *Bandit) Stats() Stats {
	denom := b.Selections
	if denom < 1 {
		denom = 1
	}

	prompts := make([]PromptStats, 0, len(b.Prompts))
	for _, p := range b.Prompts {
		prompts = append(prompts, PromptStats{
			Prompt:        p,
			Value:         b.Values[p],
			Count:         b.Counts[p],
			SelectionRate: float64(b.Counts[p]) / float64(denom),
		})
	}

	for i := 1; i < len(prompts); i++ {
		for j := i; j > 0 && prompts[j].Value > prompts[j-1].Value; j-- {
			prompts[j], prompts[j-1] = prompts[j-1], prompts[j]
		}
	}

	return Stats{
		TotalSelections: b.Selections,
		Epsilon:         b.Epsilon,
		Prompts:         prompts,
	}
}

// SaveState writes the bandit's full state, including only the last
// historyLimit history entries, to filepath as indented JSON.
func (b *Bandit) SaveState(filepath string) error {
	history := b.History
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	state := *b
	state.History = history

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("bandit: failed to marshal state: %w", err)
	}
	if err := os.WriteFile(filepath, data, 0o644); err != nil {
		return fmt.Errorf("bandit: failed to write state to %s: %w", filepath, err)
	}
	return nil
}

// LoadState replaces the bandit's state with what's stored in filepath.
func LoadState(filepath string) (*Bandit, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("bandit: failed to read state from %s: %w", filepath, err)
	}
	var b Bandit
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("bandit: failed to parse state from %s: %w", filepath, err)
	}
	if b.History == nil {
		b.History = []HistoryEntry{}
	}
	return &b, nil
}

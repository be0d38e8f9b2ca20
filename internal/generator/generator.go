// Package generator implements the pluggable candidate-translation
// generators the RLVR pipeline samples from: a deterministic mock, an
// OpenAI-compatible chat-completion client, a direction-auto-detecting
// bidirectional wrapper, and a curated showcase panel.
package generator

import (
	"context"
	"fmt"
	"strings"
)

// Option configures one Generate call. Adapters ignore options they don't
// recognize.
type Option func(*options)

type options struct {
	prompt      string
	temperature float64
	hasTemp     bool
}

// WithPrompt supplies a prompt template containing the literal placeholder
// "{src}". If the placeholder is missing, adapters append an
// "Input: {src}\nOutput:" equivalent.
func WithPrompt(prompt string) Option {
	return func(o *options) { o.prompt = prompt }
}

// WithTemperature supplies a sampling temperature. Adapters that don't use
// temperature (e.g. Mock) ignore it.
func WithTemperature(temperature float64) Option {
	return func(o *options) { o.temperature = temperature; o.hasTemp = true }
}

func resolveOptions(opts []Option) options {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// applyPrompt renders a prompt template against src, substituting the
// literal "{src}" placeholder, or appending an "Input: src\nOutput:" frame
// if template has no placeholder (including an empty template).
func applyPrompt(template, src string) string {
	if !strings.Contains(template, "{src}") {
		return template + fmt.Sprintf("\n\nInput: %s\nOutput:", src)
	}
	return strings.ReplaceAll(template, "{src}", src)
}

// Generator produces up to k candidate translations of src. k is an upper
// bound, not a guarantee: callers must not assume len(result) == k.
//
// Errors from an upstream call are folded into the candidate list as an
// error-string placeholder rather than aborting the whole batch — a single
// bad call must not sink an otherwise-successful request. ctx cancellation
// returns whatever candidates were already produced, plus ctx.Err().
type Generator interface {
	Generate(ctx context.Context, src string, k int, opts ...Option) ([]string, error)
}

// Constructor builds a Generator from an adapter's declared params (the
// language pack's `generator.params` map).
type Constructor func(params map[string]string) (Generator, error)

var registry = map[string]Constructor{}

// Register installs a constructor for adapter kind. Intended to be called
// from each adapter file's init(). Panics on duplicate registration.
func Register(kind string, ctor Constructor) {
	if _, exists := registry[kind]; exists {
		panic(fmt.Sprintf("generator: duplicate registration for kind %q", kind))
	}
	registry[kind] = ctor
}

// New instantiates the generator registered under kind.
func New(kind string, params map[string]string) (Generator, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("generator: unknown kind %q", kind)
	}
	return ctor(params)
}

// dedupePreservingOrder removes duplicate strings, keeping the first
// occurrence's position.
func dedupePreservingOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

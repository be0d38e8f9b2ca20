// Command gym runs a dataset of source segments through one language's
// pipeline in rlvr mode, learning which prompt template scores best and
// writing both a per-example results file and a full audit log.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lokahilabs/rlvr-gym/internal/audit"
	"github.com/lokahilabs/rlvr-gym/internal/bandit"
	"github.com/lokahilabs/rlvr-gym/internal/generator"
	"github.com/lokahilabs/rlvr-gym/internal/langpack"
	"github.com/lokahilabs/rlvr-gym/internal/pipeline"
	"github.com/lokahilabs/rlvr-gym/internal/review"
)

type example struct {
	ID  string `json:"id"`
	Src string `json:"src"`
	Ref string `json:"ref,omitempty"`
}

type scoredCandidate struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	R         float64            `json:"R"`
	Breakdown map[string]float64 `json:"breakdown"`
}

type exampleResult struct {
	ExampleID  string             `json:"example_id"`
	Src        string             `json:"src"`
	Ref        string             `json:"ref,omitempty"`
	Best       scoredCandidate    `json:"best"`
	Candidates []scoredCandidate  `json:"candidates"`
	Prompt     string             `json:"prompt"`
	Weights    map[string]float64 `json:"weights"`
	Timestamp  string             `json:"timestamp"`
}

func main() {
	lang := flag.String("lang", "haw", "language code")
	dataset := flag.String("dataset", "gym/datasets/dev.jsonl", "path to a JSONL dataset of {id, src, ref?}")
	k := flag.Int("k", 12, "number of candidates to generate per example")
	output := flag.String("output", "", "output file path (default: audit/runs/run_<timestamp>.jsonl)")
	genOverride := flag.String("generator", "", "override the language pack's generator kind (llm|mock)")
	epsilon := flag.Float64("epsilon", 0.25, "epsilon for bandit exploration")
	flag.Parse()

	if err := run(*lang, *dataset, *output, *genOverride, *k, *epsilon); err != nil {
		log.Printf("gym: %v", err)
		os.Exit(1)
	}
}

func run(lang, datasetPath, outputPath, genOverride string, k int, epsilon float64) error {
	ctx := context.Background()

	pack, err := langpack.Get(lang)
	if err != nil {
		return fmt.Errorf("load language config: %w", err)
	}
	log.Printf("loaded language config for %s", pack.Code)

	kind := pack.Generator.Kind
	if genOverride != "" {
		kind = genOverride
	}
	gen, err := generator.New(kind, pack.Generator.Params)
	if err != nil {
		return fmt.Errorf("load generator: %w", err)
	}
	log.Printf("loaded generator: %s", kind)

	metricList, err := pack.BuildMetrics()
	if err != nil {
		return fmt.Errorf("load metrics: %w", err)
	}
	for _, m := range metricList {
		log.Printf("loaded metric: %s v%s", m.Name(), m.Version())
	}

	basePrompt := pack.Generator.Params["prompt_template"]
	variants := []string{
		basePrompt,
		basePrompt + "\nBe very careful with diacritics, TAM particles, and articles.",
		basePrompt + "\nStrictly follow Hawaiian grammar rules, especially for negation.",
	}
	b := bandit.New(variants, epsilon, 0.5)
	log.Printf("initialized bandit with %d prompts", len(variants))

	examples, err := loadDataset(datasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	log.Printf("loaded %d examples from %s", len(examples), datasetPath)

	logger, err := audit.New("audit/runs")
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}

	pl := &pipeline.Pipeline{
		Pack:      pack,
		Metrics:   metricList,
		Generator: gen,
		Bandit:    b,
		Reviewer:  review.New(),
		Logger:    logger,
	}

	temperature := 0.7
	if raw, ok := pack.Generator.Params["temperature"]; ok {
		if t, err := parseFloatOr(raw, temperature); err == nil {
			temperature = t
		}
	}

	results := make([]exampleResult, 0, len(examples))
	for i, ex := range examples {
		log.Printf("processing example %d/%d: %s", i+1, len(examples), ex.ID)
		log.Printf("source: %s", ex.Src)

		result, err := pl.Translate(ctx, pipeline.ModeRLVR, ex.ID, ex.Src, k, temperature)
		if err != nil {
			_ = logger.LogError("pipeline", err.Error(), map[string]any{"example_id": ex.ID})
			return fmt.Errorf("example %s: %w", ex.ID, err)
		}

		candidates := make([]scoredCandidate, len(result.Candidates))
		for j, c := range result.Candidates {
			candidates[j] = scoredCandidate{ID: c.ID, Text: c.Text, R: c.R, Breakdown: c.Breakdown}
		}
		best := candidates[0]
		log.Printf("best translation: %s (R=%.3f)", best.Text, best.R)

		results = append(results, exampleResult{
			ExampleID:  ex.ID,
			Src:        ex.Src,
			Ref:        ex.Ref,
			Best:       best,
			Candidates: candidates,
			Prompt:     result.Prompt,
			Weights:    result.Weights,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		})
	}

	if outputPath == "" {
		outputPath = filepath.Join("audit", "runs", fmt.Sprintf("run_%s.jsonl", time.Now().UTC().Format("20060102_150405")))
	}
	if err := writeResults(outputPath, results); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	log.Printf("results saved to: %s", outputPath)

	printSummary(results, b)

	if err := logger.Finalize(map[string]any{"examples": len(results)}); err != nil {
		return fmt.Errorf("finalize audit log: %w", err)
	}
	return nil
}

func loadDataset(path string) ([]example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var examples []example
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var ex example
		if err := json.Unmarshal([]byte(line), &ex); err != nil {
			return nil, fmt.Errorf("parse dataset line: %w", err)
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}

func writeResults(path string, results []exampleResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(results []exampleResult, b *bandit.Bandit) {
	if len(results) == 0 {
		return
	}
	var total float64
	for _, r := range results {
		total += r.Best.R
	}
	log.Printf("=== Summary ===")
	log.Printf("average best score: %.3f", total/float64(len(results)))

	log.Printf("=== Prompt Performance ===")
	for _, stat := range b.Stats().Prompts {
		prompt := stat.Prompt
		if len(prompt) > 50 {
			prompt = prompt[:50]
		}
		log.Printf("value: %.3f | count: %d | prompt: %s...", stat.Value, stat.Count, prompt)
	}
}

func parseFloatOr(raw string, fallback float64) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(raw, "%g", &f)
	if err != nil {
		return fallback, err
	}
	return f, nil
}

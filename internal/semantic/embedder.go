package semantic

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// EmbeddingModelMiniLM is the default local embedding model: small, fast,
// 384-dimensional, and compatible with chromem-go's in-process store.
const EmbeddingModelMiniLM = "sentence-transformers/all-MiniLM-L6-v2"

// DefaultModelPath is the default on-disk location for the embedding model.
const DefaultModelPath = "./models/all-MiniLM-L6-v2"

// embeddingDimension is MiniLM-L6-v2's output width.
const embeddingDimension = 384

// LocalEmbedder generates embeddings with a local ONNX model via hugot. It
// degrades gracefully: construction failures are reported to the caller,
// who is expected to treat a nil *LocalEmbedder as "semantic clustering
// unavailable" rather than a fatal error.
type LocalEmbedder struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	mu       sync.RWMutex
	ready    bool
}

// NewLocalEmbedder loads the embedding model from modelPath. Returns nil
// (not an error) if the model isn't present on disk — semantic clustering
// is an optional diagnostic, not a load-bearing dependency.
func NewLocalEmbedder(modelPath string) *LocalEmbedder {
	if modelPath == "" {
		modelPath = DefaultModelPath
	}
	if _, err := os.Stat(filepath.Join(modelPath, "model.onnx")); err != nil {
		log.Printf("semantic: no embedding model at %s, near-duplicate clustering disabled", modelPath)
		return nil
	}

	e := &LocalEmbedder{}
	if err := e.initialize(modelPath); err != nil {
		log.Printf("semantic: embedding model failed to initialize, near-duplicate clustering disabled: %v", err)
		return nil
	}
	return e
}

func (e *LocalEmbedder) initialize(modelPath string) error {
	session, err := hugot.NewGoSession()
	if err != nil {
		return fmt.Errorf("create hugot session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "rlvr-embedder",
	})
	if err != nil {
		_ = session.Destroy()
		return fmt.Errorf("create embedding pipeline: %w", err)
	}

	e.mu.Lock()
	e.session = session
	e.pipeline = pipeline
	e.ready = true
	e.mu.Unlock()
	return nil
}

// Close releases the underlying ONNX session.
func (e *LocalEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ready = false
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}

// Dimension returns the embedding width.
func (e *LocalEmbedder) Dimension() int { return embeddingDimension }

// Embed generates a single embedding vector for text.
func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.ready {
		return nil, fmt.Errorf("semantic: embedder not ready")
	}

	result, err := e.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("semantic: run embedding pipeline: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("semantic: no embedding returned for text")
	}
	return result.Embeddings[0], nil
}

// Package httpapi exposes the translation gym over HTTP: batch translate
// in standard/rlvr/showcase mode, showcase browsing, language discovery,
// and bandit statistics. Routes are a direct port of the reference
// implementation's FastAPI surface onto fiber v3.
package httpapi

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/lokahilabs/rlvr-gym/internal/audit"
	"github.com/lokahilabs/rlvr-gym/internal/bandit"
	"github.com/lokahilabs/rlvr-gym/internal/generator"
	"github.com/lokahilabs/rlvr-gym/internal/langpack"
	"github.com/lokahilabs/rlvr-gym/internal/metrics"
	"github.com/lokahilabs/rlvr-gym/internal/review"
	"github.com/lokahilabs/rlvr-gym/internal/store"
	"github.com/lokahilabs/rlvr-gym/pkg/config"
)

// languageState bundles the resources one language needs to run the
// pipeline: its pack, instantiated metrics, default generator, and bandit.
type languageState struct {
	pack    *langpack.Pack
	metrics []metrics.Metric
	gen     generator.Generator
	bandit  *bandit.Bandit
}

// Server holds every language's lazily-initialized resources plus the
// cross-cutting adapters (bidirectional, showcase) shared across
// languages.
type Server struct {
	cfg *config.Config

	mu   sync.RWMutex
	lang map[string]*languageState

	banditStore store.BanditStore
	reviewer    review.PostEditReviewer
	logger      *audit.Logger

	bidirectional generator.Generator
	showcase      *generator.Showcase
}

// New builds a Server. The showcase generator is constructed eagerly since
// it requires no per-language resources; every other language is
// initialized lazily on first request, matching the reference
// implementation's on-demand `initialize_language`.
func New(cfg *config.Config, banditStore store.BanditStore, logger *audit.Logger) (*Server, error) {
	showcaseGen, err := generator.New("showcase", nil)
	if err != nil {
		return nil, fmt.Errorf("httpapi: failed to build showcase generator: %w", err)
	}
	sc, _ := showcaseGen.(*generator.Showcase)

	return &Server{
		cfg:         cfg,
		lang:        map[string]*languageState{},
		banditStore: banditStore,
		reviewer:    review.New(),
		logger:      logger,
		showcase:    sc,
	}, nil
}

// ensureLanguage returns the language state for code, initializing it
// (loading its pack, metrics, generator, and bandit) on first use.
func (s *Server) ensureLanguage(ctx context.Context, code string) (*languageState, error) {
	s.mu.RLock()
	st, ok := s.lang[code]
	s.mu.RUnlock()
	if ok {
		return st, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.lang[code]; ok {
		return st, nil
	}

	pack, err := langpack.Get(code)
	if err != nil {
		return nil, fmt.Errorf("httpapi: initialize language %q: %w", code, err)
	}

	ms, err := pack.BuildMetrics()
	if err != nil {
		return nil, fmt.Errorf("httpapi: initialize language %q: %w", code, err)
	}

	gen, err := generator.New(pack.Generator.Kind, pack.Generator.Params)
	if err != nil {
		return nil, fmt.Errorf("httpapi: initialize language %q: %w", code, err)
	}

	b, err := s.loadOrInitBandit(ctx, code, pack)
	if err != nil {
		return nil, err
	}

	st = &languageState{pack: pack, metrics: ms, gen: gen, bandit: b}
	s.lang[code] = st
	return st, nil
}

// loadOrInitBandit restores a language's bandit from durable storage, or
// seeds a fresh one over three prompt variants derived from the pack's
// base template.
func (s *Server) loadOrInitBandit(ctx context.Context, code string, pack *langpack.Pack) (*bandit.Bandit, error) {
	if s.banditStore != nil {
		b, err := s.banditStore.Load(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("httpapi: load bandit state for %q: %w", code, err)
		}
		if b != nil {
			return b, nil
		}
	}

	base := pack.Generator.Params["prompt_template"]
	variants := []string{
		base,
		base + "\nBe very careful with diacritics, TAM particles, and articles.",
		base + "\nStrictly follow Hawaiian grammar rules, especially for negation.",
	}
	return bandit.New(variants, s.cfg.DefaultEpsilon, 0.5), nil
}

// ensureBidirectional lazily builds the shared en<->haw generator once
// both the Hawaiian and English packs are available, wiring each
// direction's prompt template from its own language's config.
func (s *Server) ensureBidirectional(ctx context.Context) (generator.Generator, error) {
	s.mu.RLock()
	if s.bidirectional != nil {
		gen := s.bidirectional
		s.mu.RUnlock()
		return gen, nil
	}
	s.mu.RUnlock()

	hawState, err := s.ensureLanguage(ctx, "haw")
	if err != nil {
		return nil, err
	}
	enState, err := s.ensureLanguage(ctx, "en")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bidirectional != nil {
		return s.bidirectional, nil
	}

	params := map[string]string{}
	for k, v := range hawState.pack.Generator.Params {
		params[k] = v
	}
	params["prompt_template_en_to_haw"] = hawState.pack.Generator.Params["prompt_template"]
	params["prompt_template_haw_to_en"] = enState.pack.Generator.Params["prompt_template"]

	gen, err := generator.New("bidirectional", params)
	if err != nil {
		return nil, fmt.Errorf("httpapi: failed to build bidirectional generator: %w", err)
	}
	s.bidirectional = gen
	return gen, nil
}

// persistBandit writes a language's bandit state back to durable storage,
// if one is configured. Errors are returned to the caller rather than
// swallowed, since a silently-failing save would make the bandit appear to
// learn while discarding every update on restart.
func (s *Server) persistBandit(ctx context.Context, code string, b *bandit.Bandit) error {
	if s.banditStore == nil {
		return nil
	}
	return s.banditStore.Save(ctx, code, b)
}

// kSamples and temperature read their language-pack overrides. When a pack
// doesn't set a usable value, kSamples falls back to the configured
// DefaultKSamples and temperature falls back to a fixed 0.7.
func (s *Server) kSamples(pack *langpack.Pack) int {
	raw, ok := pack.Generator.Params["k_samples"]
	if !ok {
		return s.cfg.DefaultKSamples
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return s.cfg.DefaultKSamples
	}
	return n
}

func (s *Server) temperature(pack *langpack.Pack) float64 {
	raw, ok := pack.Generator.Params["temperature"]
	if !ok {
		return 0.7
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.7
	}
	return t
}

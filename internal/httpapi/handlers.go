package httpapi

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"github.com/lokahilabs/rlvr-gym/internal/generator"
	"github.com/lokahilabs/rlvr-gym/internal/pipeline"
)

// handleRoot is a health check: service name, loaded languages, and
// supported modes.
func (s *Server) handleRoot(c fiber.Ctx) error {
	s.mu.RLock()
	codes := make([]string, 0, len(s.lang))
	for code := range s.lang {
		codes = append(codes, code)
	}
	s.mu.RUnlock()

	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "RLVR Translation API",
		"languages": codes,
		"modes":     []string{"standard", "rlvr", "showcase"},
	})
}

// handleTranslate is the main batch endpoint: it resolves both languages,
// picks a generator (showcase, bidirectional, or the target language's
// default) and runs every segment through the pipeline in the requested
// mode.
func (s *Server) handleTranslate(c fiber.Ctx) error {
	var req TranslateRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	if req.Src == "" {
		req.Src = "en"
	}
	if req.Tgt == "" {
		req.Tgt = "haw"
	}
	if req.Mode == "" {
		req.Mode = "standard"
	}

	ctx := c.Context()

	if _, err := s.ensureLanguage(ctx, req.Src); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	tgtState, err := s.ensureLanguage(ctx, req.Tgt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	direction := req.Src + "_to_" + req.Tgt

	var gen generator.Generator
	switch {
	case req.Mode == "showcase":
		gen = s.showcase
	case direction == "en_to_haw" || direction == "haw_to_en":
		gen, err = s.ensureBidirectional(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
	default:
		gen = tgtState.gen
	}

	pl := &pipeline.Pipeline{
		Pack:                tgtState.pack,
		Metrics:             tgtState.metrics,
		Generator:           gen,
		Bandit:              tgtState.bandit,
		Reviewer:            s.reviewer,
		MinAcceptableReward: s.cfg.MinAcceptableReward,
		Logger:              s.logger,
	}

	mode := pipeline.Mode(req.Mode)
	k := s.kSamples(tgtState.pack)
	temperature := s.temperature(tgtState.pack)

	results := make([]TranslationResult, 0, len(req.Segments))
	for _, seg := range req.Segments {
		result, err := pl.Translate(ctx, mode, seg.ID, seg.Src, k, temperature)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		results = append(results, fromResult(result))
	}

	if mode == pipeline.ModeRLVR {
		if err := s.persistBandit(ctx, req.Tgt, tgtState.bandit); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
	}

	return c.JSON(TranslateResponse{Results: results})
}

// handleShowcaseSentences lists every curated demonstration sentence.
func (s *Server) handleShowcaseSentences(c fiber.Ctx) error {
	if s.showcase == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"detail": "showcase generator not initialized"})
	}
	return c.JSON(ShowcaseListResponse{Sentences: s.showcase.GetShowcaseSentences()})
}

// handleShowcaseLog returns the detailed process walkthrough for one
// showcase sentence. The path parameter is URL-decoded here before lookup,
// matching the reference implementation's explicit URL-unquote step.
func (s *Server) handleShowcaseLog(c fiber.Ctx) error {
	if s.showcase == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"detail": "showcase generator not initialized"})
	}
	sentence, err := url.PathUnescape(c.Params("sentence"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	return c.JSON(s.showcase.GetProcessLog(sentence))
}

// handleLanguages lists every language pack discoverable on disk, not just
// the ones already lazily initialized.
func (s *Server) handleLanguages(c fiber.Ctx) error {
	codes, err := discoverLanguageCodes(s.cfg.LangConfigDir)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	infos := make([]LanguageInfo, 0, len(codes))
	for _, code := range codes {
		ctx := c.Context()
		st, err := s.ensureLanguage(ctx, code)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(st.pack.Metrics))
		for _, m := range st.pack.Metrics {
			names = append(names, m.Name)
		}
		infos = append(infos, LanguageInfo{
			Code:    st.pack.Code,
			Name:    st.pack.DisplayName,
			Metrics: names,
		})
	}

	return c.JSON(LanguagesResponse{Languages: infos})
}

// handleStats returns a language's bandit performance snapshot.
func (s *Server) handleStats(c fiber.Ctx) error {
	code := c.Params("lang_code")

	s.mu.RLock()
	st, ok := s.lang[code]
	s.mu.RUnlock()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": fmt.Sprintf("language %q not initialized", code)})
	}

	return c.JSON(st.bandit.Stats())
}

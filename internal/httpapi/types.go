package httpapi

import (
	"github.com/lokahilabs/rlvr-gym/internal/generator"
	"github.com/lokahilabs/rlvr-gym/internal/pipeline"
)

// Segment is one unit of text to translate, with an id the caller uses to
// correlate it with its result.
type Segment struct {
	ID   string         `json:"id"`
	Src  string         `json:"src"`
	Meta map[string]any `json:"meta,omitempty"`
}

// TranslateRequest is the /translate request body: a batch of segments
// plus the source/target language codes and the operating mode.
type TranslateRequest struct {
	Segments []Segment `json:"segments"`
	Src      string    `json:"src"`
	Tgt      string    `json:"tgt"`
	Mode     string    `json:"mode"`
}

// CandidateResponse is one scored candidate, as returned to the caller.
type CandidateResponse struct {
	ID        string             `json:"id"`
	Tgt       string             `json:"tgt"`
	R         float64            `json:"R"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// TranslationResult is one segment's outcome.
type TranslationResult struct {
	ID          string              `json:"id"`
	Best        map[string]string   `json:"best"`
	Candidates  []CandidateResponse `json:"candidates"`
	Prompt      string              `json:"prompt"`
	Weights     map[string]float64  `json:"weights"`
	NeedsReview bool                `json:"needs_review,omitempty"`
	ProcessLog  any                 `json:"process_log,omitempty"`
}

// TranslateResponse is the /translate response body.
type TranslateResponse struct {
	Results []TranslationResult `json:"results"`
}

// ShowcaseListResponse is the /showcase/sentences response body.
type ShowcaseListResponse struct {
	Sentences []generator.ShowcaseSentence `json:"sentences"`
}

// LanguageInfo summarizes one loaded language pack for /languages.
type LanguageInfo struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Metrics []string `json:"metrics"`
}

// LanguagesResponse is the /languages response body.
type LanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
}

// fromResult converts an internal pipeline.Result into the wire shape the
// API promises its callers, matching the reference implementation's
// `{"best": {"tgt": "..."}}` nesting rather than a bare string.
func fromResult(r pipeline.Result) TranslationResult {
	candidates := make([]CandidateResponse, len(r.Candidates))
	for i, c := range r.Candidates {
		candidates[i] = CandidateResponse{
			ID:        c.ID,
			Tgt:       c.Text,
			R:         c.R,
			Breakdown: c.Breakdown,
		}
	}
	return TranslationResult{
		ID:          r.SegmentID,
		Best:        map[string]string{"tgt": r.Best},
		Candidates:  candidates,
		Prompt:      r.Prompt,
		Weights:     r.Weights,
		NeedsReview: r.NeedsReview,
		ProcessLog:  r.ProcessLog,
	}
}

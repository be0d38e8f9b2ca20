package generator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

func init() {
	Register("bidirectional", newBidirectional)
}

var hawaiianDiacriticMarkers = []string{"ʻ", "ō", "ā", "ē", "ī", "ū", "Ō", "Ā", "Ē", "Ī", "Ū"}

var hawaiianFunctionWords = map[string]struct{}{
	"aloha": {}, "mahalo": {}, "keiki": {}, "ohana": {}, "lei": {}, "hula": {}, "kai": {},
	"mauka": {}, "makai": {}, "pau": {}, "wiki": {}, "lanai": {}, "kokua": {}, "malama": {},
	"ke": {}, "ka": {}, "na": {}, "he": {}, "ua": {}, "e": {}, "i": {}, "o": {}, "no": {}, "ma": {},
}

const (
	directionEnToHaw = "en_to_haw"
	directionHawToEn = "haw_to_en"
)

// Bidirectional wraps the chat-completion endpoint with automatic
// en<->haw direction detection, per-direction fallback prompts, and
// English post-processing for haw_to_en output.
type Bidirectional struct {
	apiKey    string
	endpoint  string
	model     string
	prompts   map[string]string
	defaultTP float64
	maxTokens int
	client    interface {
		complete(ctx context.Context, fullPrompt string, temperature float64) (string, error)
	}
}

func newBidirectional(params map[string]string) (Generator, error) {
	apiKey := params["api_key"]
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("generator: bidirectional adapter requires api_key param or OPENAI_API_KEY env var")
	}

	endpoint := params["endpoint"]
	if endpoint == "" {
		endpoint = defaultLLMEndpoint
	}

	llm := &LLM{
		apiKey:         apiKey,
		endpoint:       endpoint,
		model:          "gpt-5",
		defaultTemp:    0.7,
		topP:           0.9,
		maxTokens:      2000,
		isFixedTempDef: false,
		client:         newHTTPClient(60 * time.Second),
	}

	prompts := map[string]string{
		directionEnToHaw: params["prompt_template_en_to_haw"],
		directionHawToEn: params["prompt_template_haw_to_en"],
	}

	return &Bidirectional{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    "gpt-5",
		prompts:  prompts,
		client:   llm,
	}, nil
}

// detectDirection guesses whether src is Hawaiian or English: any Hawaiian
// diacritic mark settles it immediately; otherwise 20% or more of the
// words matching a small set of common Hawaiian function words does.
func detectDirection(src string) string {
	for _, marker := range hawaiianDiacriticMarkers {
		if strings.Contains(src, marker) {
			return directionHawToEn
		}
	}

	words := strings.Fields(strings.ToLower(src))
	if len(words) == 0 {
		return directionEnToHaw
	}
	hawaiianCount := 0
	for _, w := range words {
		if _, ok := hawaiianFunctionWords[w]; ok {
			hawaiianCount++
		}
	}
	if float64(hawaiianCount)/float64(len(words)) >= 0.2 {
		return directionHawToEn
	}
	return directionEnToHaw
}

func fallbackPrompt(direction string) string {
	if direction == directionHawToEn {
		return "Translate the following Hawaiian text to English:\n\nHawaiian: {src}\nEnglish:"
	}
	return "Translate the following English text to Hawaiian:\n\nEnglish: {src}\nHawaiian:"
}

// postProcessEnglish capitalizes the first letter, ensures terminal
// punctuation, then trims quote characters from both ends of an en output,
// in that order. Because punctuation is added first, a closing quote is
// followed by the added period and is not removed: `"hello"` becomes
// `hello".`. Only a leading quote is stripped, and the word after it is not
// capitalized.
func postProcessEnglish(text string) string {
	if text == "" {
		return text
	}
	if r := rune(text[0]); r >= 'a' && r <= 'z' {
		text = strings.ToUpper(text[:1]) + text[1:]
	}
	if text != "" {
		last := text[len(text)-1]
		if last != '.' && last != '!' && last != '?' {
			text += "."
		}
	}
	text = strings.Trim(text, `"'`)
	return text
}

// Generate auto-detects the translation direction unless overridden via
// WithPrompt (a non-empty prompt short-circuits direction-based prompt
// selection, matching the direct-prompt path of the reference adapter),
// varies temperature per candidate for diversity, post-processes haw_to_en
// output, and deduplicates the result while preserving order.
func (b *Bidirectional) Generate(ctx context.Context, src string, k int, opts ...Option) ([]string, error) {
	o := resolveOptions(opts)
	direction := detectDirection(src)

	prompt := o.prompt
	if prompt == "" {
		prompt = b.prompts[direction]
	}
	if prompt == "" {
		prompt = fallbackPrompt(direction)
	}
	fullPrompt := applyPrompt(prompt, src)

	baseTemp := 0.7
	if o.hasTemp {
		baseTemp = o.temperature
	}

	candidates := make([]string, 0, k)
	for i := 0; i < k; i++ {
		temp := baseTemp + float64(i)*0.05
		if i >= 4 {
			temp = baseTemp + 0.2
		}
		if temp > 1.0 {
			temp = 1.0
		}

		text, err := b.client.complete(ctx, fullPrompt, temp)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return candidates, ctxErr
			}
			candidates = append(candidates, fmt.Sprintf("Error: %s", err))
			continue
		}
		if direction == directionHawToEn {
			text = postProcessEnglish(text)
		}
		candidates = append(candidates, text)
	}

	unique := dedupePreservingOrder(candidates)
	if len(unique) > k {
		unique = unique[:k]
	}
	return unique, nil
}

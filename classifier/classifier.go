package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"glana/config"
)

// Errors distinguishing why a classification attempt failed. The orchestrator
// logs both the same way; handlers must never see either (enrichment is
// best-effort and the ingestion response has already been sent).
var (
	ErrUpstream = errors.New("classifier upstream failure")
	ErrParse    = errors.New("classifier response parse failure")
)

// ThemeHint is an existing theme offered to the model, with its suggested
// tags used to bias classification.
type ThemeHint struct {
	Name          string
	SuggestedTags []string
}

// Result is the structured classification produced for one item's content.
type Result struct {
	SuggestedTheme string   `json:"suggested_theme"`
	SuggestedTags  []string `json:"suggested_tags"`
	HookType       string   `json:"hook_type"`
	Tone           string   `json:"tone"`
	Summary        string   `json:"summary"`
}

// RequestLog captures usage metadata of a single model call for the ai_logs
// audit collection.
type RequestLog struct {
	Prompt       string
	Response     string
	LatencyMs    int64
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	ModelName    string
	ModelVersion string
	GeneratedAt  time.Time
}

// MaxSuggestedTags caps how many tags a single classification may attach.
const MaxSuggestedTags = 5

// Closed enumerations for hook_type and tone. Out-of-set model output is
// dropped, never stored.
var hookTypes = map[string]bool{
	"question":      true,
	"statement":     true,
	"story":         true,
	"statistic":     true,
	"controversial": true,
	"how-to":        true,
	"list":          true,
	"personal":      true,
	"other":         true,
}

var tones = map[string]bool{
	"inspirational": true,
	"educational":   true,
	"humorous":      true,
	"controversial": true,
	"personal":      true,
	"professional":  true,
	"provocative":   true,
}

const SYSTEM_INSTRUCTION = `
You are an assistant that analyzes social media posts for a "swipe file" library (a collection of inspirations for a content creator).
Analyze the post provided by the user and produce a structured classification.
The response MUST be a valid JSON object with five keys:

1. suggested_theme: The name of the most appropriate theme among the AVAILABLE THEMES given by the user,
   OR a newly suggested theme if none fits (max 3 words). Prefer an existing theme when one matches;
   its suggested tags hint at what belongs there.
2. suggested_tags: 2-5 descriptive tags (lowercase, without #).
3. hook_type: The hook used by the post, one of:
   ["question", "statement", "story", "statistic", "controversial", "how-to", "list", "personal", "other"].
4. tone: The overall tone, one of:
   ["inspirational", "educational", "humorous", "controversial", "personal", "professional", "provocative"].
5. summary: A one sentence summary of why this post is inspiring or useful.

Additional constraints:
- You MUST NOT wrap the JSON output in a markdown code block (e.g., ` + "```json ... ```" + `).
- The response should contain ONLY the raw JSON string.
- If no hook_type or tone fits, use null for that field.
`

// Classify sends the content and the available themes to the model and
// returns a clamped, validated result. No retries happen here; retry policy
// belongs to the caller.
func Classify(ctx context.Context, content string, themes []ThemeHint) (*Result, *RequestLog, error) {
	startTime := time.Now()

	apiKey := config.GeminiAPIKey()
	if apiKey == "" {
		return nil, nil, fmt.Errorf("%w: GEMINI_API_KEY environment variable is not set", ErrUpstream)
	}
	modelName := config.GetConfig().GeminiModel

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	prompt := buildPrompt(content, themes)
	result, err := client.Models.GenerateContent(
		ctx,
		modelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var res Result
	if err := json.Unmarshal([]byte(result.Text()), &res); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	sanitize(&res)

	reqLog := &RequestLog{
		Prompt:       prompt,
		Response:     result.Text(),
		LatencyMs:    time.Since(startTime).Milliseconds(),
		ModelName:    modelName,
		ModelVersion: result.ModelVersion,
		GeneratedAt:  time.Now(),
	}
	if result.UsageMetadata != nil {
		reqLog.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		reqLog.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		reqLog.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
	}

	return &res, reqLog, nil
}

// buildPrompt lists the available themes (with their suggested tags) followed
// by the post content to analyze.
func buildPrompt(content string, themes []ThemeHint) string {
	var b strings.Builder
	b.WriteString("AVAILABLE THEMES:\n")
	if len(themes) == 0 {
		b.WriteString("(no existing themes - suggest a new one)\n")
	}
	for _, t := range themes {
		b.WriteString("- ")
		b.WriteString(t.Name)
		if len(t.SuggestedTags) > 0 {
			b.WriteString(" (suggested tags: ")
			b.WriteString(strings.Join(t.SuggestedTags, ", "))
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nPOST TO ANALYZE:\n\"")
	b.WriteString(content)
	b.WriteString("\"\n")
	return b.String()
}

// sanitize clamps model output to the contract: tags lowercased, deduplicated
// and truncated; enum fields zeroed when out of set. Arbitrary model strings
// must never reach enum-typed storage.
func sanitize(r *Result) {
	r.SuggestedTheme = strings.TrimSpace(r.SuggestedTheme)
	r.SuggestedTags = NormalizeTags(r.SuggestedTags, MaxSuggestedTags)
	if !hookTypes[r.HookType] {
		r.HookType = ""
	}
	if !tones[r.Tone] {
		r.Tone = ""
	}
}

// NormalizeTags lowercases, trims, deduplicates and truncates a tag list to
// at most max entries, preserving first-seen order. max <= 0 means no cap.
func NormalizeTags(tags []string, max int) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		tag = strings.TrimPrefix(tag, "#")
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	testCases := []struct {
		name string
		in   []string
		max  int
		want []string
	}{
		{
			name: "lowercases and trims",
			in:   []string{" AI ", "Growth"},
			max:  5,
			want: []string{"ai", "growth"},
		},
		{
			name: "drops duplicates after normalization",
			in:   []string{"ai", "AI", "growth", "growth"},
			max:  5,
			want: []string{"ai", "growth"},
		},
		{
			name: "strips hash prefix",
			in:   []string{"#ai", "#Growth"},
			max:  5,
			want: []string{"ai", "growth"},
		},
		{
			name: "truncates to max preserving order",
			in:   []string{"a", "b", "c", "d", "e", "f", "g"},
			max:  5,
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name: "drops empty entries",
			in:   []string{"", "  ", "ai"},
			max:  5,
			want: []string{"ai"},
		},
		{
			name: "no cap when max is zero",
			in:   []string{"a", "b", "c", "d", "e", "f"},
			max:  0,
			want: []string{"a", "b", "c", "d", "e", "f"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTags(tc.in, tc.max))
		})
	}
}

func TestSanitizeRejectsUnknownEnums(t *testing.T) {
	r := &Result{
		SuggestedTheme: "  Growth  ",
		SuggestedTags:  []string{"AI", "ai", "Startups"},
		HookType:       "clickbait",
		Tone:           "sarcastic",
		Summary:        "s",
	}
	sanitize(r)

	assert.Equal(t, "Growth", r.SuggestedTheme)
	assert.Equal(t, []string{"ai", "startups"}, r.SuggestedTags)
	assert.Empty(t, r.HookType, "out-of-set hook types must not be stored")
	assert.Empty(t, r.Tone, "out-of-set tones must not be stored")
}

func TestSanitizeKeepsValidEnums(t *testing.T) {
	r := &Result{HookType: "how-to", Tone: "educational"}
	sanitize(r)

	assert.Equal(t, "how-to", r.HookType)
	assert.Equal(t, "educational", r.Tone)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("shipping beats planning", []ThemeHint{
		{Name: "Growth", SuggestedTags: []string{"startups", "audience"}},
		{Name: "Craft"},
	})

	assert.Contains(t, prompt, "- Growth (suggested tags: startups, audience)")
	assert.Contains(t, prompt, "- Craft\n")
	assert.Contains(t, prompt, "shipping beats planning")
	assert.False(t, strings.Contains(prompt, "no existing themes"))
}

func TestBuildPromptWithoutThemes(t *testing.T) {
	prompt := buildPrompt("content", nil)
	assert.Contains(t, prompt, "no existing themes - suggest a new one")
}

package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitpulse/profitpulse/internal/shared"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `[{"title":"X"}]`, `[{"title":"X"}]`},
		{"json fence", "```json\n[1,2]\n```", "[1,2]"},
		{"bare fence", "```\n{}\n```", "{}"},
		{"uppercase tag", "```JSON\n{}\n```", "{}"},
		{"surrounding whitespace", "  \n```json\n[]\n```  ", "[]"},
		{"unterminated fence", "```json\n[1]", "[1]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFence(tc.in))
		})
	}
}

func TestParseInsightRepliesFallbacks(t *testing.T) {
	reply := "```json\n" + `[{
		"title": "X",
		"summary": "S",
		"detailedAnalysis": "D",
		"recommendedAction": "A",
		"category": "Bogus",
		"priority": "High",
		"potentialImpact": 500.0
	}]` + "\n```"

	parsed, err := parseInsightReplies(reply)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	assert.Equal(t, "X", parsed[0].Title)
	assert.Equal(t, CategoryRevenue, ParseCategory(parsed[0].Category))
	assert.Equal(t, PriorityHigh, ParsePriority(parsed[0].Priority))
	require.NotNil(t, parsed[0].PotentialImpact)
	assert.Equal(t, 500.0, *parsed[0].PotentialImpact)
}

func TestParseInsightRepliesEmptyArray(t *testing.T) {
	parsed, err := parseInsightReplies("[]")
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestParseInsightRepliesNotJSON(t *testing.T) {
	_, err := parseInsightReplies("Sorry, I cannot help with that.")
	assert.ErrorIs(t, err, shared.ErrBadReply)
}

func TestParseBriefReply(t *testing.T) {
	parsed, err := parseBriefReply("```json\n" +
		`{"summary":"Good week","highlights":"• up","concerns":"• costs","recommendations":"• act"}` +
		"\n```")
	require.NoError(t, err)
	assert.Equal(t, "Good week", parsed.Summary)
	assert.Equal(t, "• up", parsed.Highlights)
}

func TestParseBriefReplyNull(t *testing.T) {
	_, err := parseBriefReply("null")
	assert.ErrorIs(t, err, shared.ErrBadReply)
}

func TestParseCategoryAndPriority(t *testing.T) {
	assert.Equal(t, CategoryMenu, ParseCategory("menu"))
	assert.Equal(t, CategoryWarning, ParseCategory("WARNING"))
	assert.Equal(t, CategoryRevenue, ParseCategory(""))
	assert.Equal(t, PriorityCritical, ParsePriority("critical"))
	assert.Equal(t, PriorityMedium, ParsePriority("urgent"))

	st, ok := ParseStatus("actioned")
	assert.True(t, ok)
	assert.Equal(t, StatusActioned, st)
	_, ok = ParseStatus("Archived")
	assert.False(t, ok)
}

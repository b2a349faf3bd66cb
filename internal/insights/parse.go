package insights

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/profitpulse/profitpulse/internal/shared"
)

type insightReply struct {
	Title             string   `json:"title"`
	Summary           string   `json:"summary"`
	DetailedAnalysis  string   `json:"detailedAnalysis"`
	RecommendedAction string   `json:"recommendedAction"`
	Category          string   `json:"category"`
	Priority          string   `json:"priority"`
	PotentialImpact   *float64 `json:"potentialImpact"`
}

type briefReply struct {
	Summary         string `json:"summary"`
	Highlights      string `json:"highlights"`
	Concerns        string `json:"concerns"`
	Recommendations string `json:"recommendations"`
}

// stripFence removes one enclosing markdown code fence, if present, so
// replies like ```json\n[...]\n``` still parse.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

func parseInsightReplies(text string) ([]insightReply, error) {
	var replies []insightReply
	if err := json.Unmarshal([]byte(stripFence(text)), &replies); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBadReply, err)
	}
	return replies, nil
}

func parseBriefReply(text string) (*briefReply, error) {
	var reply *briefReply
	if err := json.Unmarshal([]byte(stripFence(text)), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBadReply, err)
	}
	if reply == nil {
		return nil, fmt.Errorf("%w: null brief", shared.ErrBadReply)
	}
	return reply, nil
}

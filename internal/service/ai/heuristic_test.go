package ai

import (
	"strings"
	"testing"
)

func TestHeuristicAnswerKeywordMapping(t *testing.T) {
	cases := []struct {
		q        string
		fragment string
	}{
		{"help me with my budget", "budget"},
		{"where does my spending go", "needs, wants, and savings"},
		{"How much can I save this month?", "treat savings like a fixed bill"},
		{"should I invest in an ETF", "diversified"},
		{"what's my runway", "liquid savings"},
		{"thoughts on crypto?", "single-digit percentage"},
		{"hello there", "budgeting, saving, investing"},
		{"", "budgeting, saving, investing"},
	}
	for _, c := range cases {
		got := HeuristicAnswer(c.q)
		if !strings.Contains(got.Text, c.fragment) {
			t.Errorf("HeuristicAnswer(%q) = %q, want fragment %q", c.q, got.Text, c.fragment)
		}
	}
}

func TestHeuristicAnswerShape(t *testing.T) {
	got := HeuristicAnswer("how do I save")
	if got.Confidence != HeuristicConfidence {
		t.Errorf("confidence = %v, want %v", got.Confidence, HeuristicConfidence)
	}
	if got.UsedSearch {
		t.Errorf("heuristic answers never use search")
	}
	if got.Sources == nil || len(got.Sources) != 0 {
		t.Errorf("sources must be an empty slice, got %#v", got.Sources)
	}
}

func TestHeuristicAnswerDeterministic(t *testing.T) {
	a := HeuristicAnswer("can I save more?")
	b := HeuristicAnswer("can I save more?")
	if a.Text != b.Text || a.Confidence != b.Confidence {
		t.Fatalf("same question must yield identical answers")
	}
}

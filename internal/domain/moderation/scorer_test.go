package moderation_test

import (
	"reflect"
	"testing"

	"recovery_notification_engine/internal/domain/moderation"
)

func testGroups() []moderation.KeywordGroup {
	return []moderation.KeywordGroup{
		{Name: "severe", Weight: 0.5, Keywords: []string{"threat one", "threat two"}},
		{Name: "mild", Weight: 0.2, Keywords: []string{"rude"}},
	}
}

func TestScorer_Score(t *testing.T) {
	s := moderation.NewScorer(testGroups())

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty text", text: "", want: 0},
		{name: "whitespace only", text: "   \n\t ", want: 0},
		{name: "no matches", text: "a perfectly pleasant message", want: 0},
		{name: "single mild match", text: "that was rude of you", want: 0.2},
		{name: "case insensitive", text: "THREAT ONE incoming", want: 0.5},
		{name: "weights accumulate across groups", text: "threat one and rude", want: 0.7},
		{name: "per occurrence not per group", text: "rude rude rude", want: 0.6},
		{name: "clamped to one", text: "threat one threat two rude rude", want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Score(tc.text)
			if got != tc.want {
				t.Errorf("Score(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestScorer_ScoreDeterministic(t *testing.T) {
	s := moderation.NewScorer(testGroups())
	const text = "threat one, then some rude words"

	first := s.Score(text)
	for i := 0; i < 5; i++ {
		if got := s.Score(text); got != first {
			t.Fatalf("Score is not deterministic: run %d got %v, first run got %v", i, got, first)
		}
	}
}

func TestScorer_MatchedKeywords(t *testing.T) {
	s := moderation.NewScorer(testGroups())

	got := s.MatchedKeywords("Threat Two was rude, very rude")
	want := []string{"threat two", "rude"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchedKeywords = %v, want %v", got, want)
	}

	if got := s.MatchedKeywords("nothing to see"); len(got) != 0 {
		t.Errorf("MatchedKeywords on clean text = %v, want empty", got)
	}
}

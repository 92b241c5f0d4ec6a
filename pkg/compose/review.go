package compose

import "github.com/artem13815/resumebuilder/pkg/nlp"

// SummaryReview is the heuristic verdict on a summary draft.
type SummaryReview struct {
	Kind        nlp.InputKind `json:"kind"`
	IntentBased bool          `json:"intent_based"`
	LowQuality  bool          `json:"low_quality"`
	Invalid     bool          `json:"invalid"`
	BannedWords []string      `json:"banned_words"`
}

func Review(text string) SummaryReview {
	banned := nlp.BannedWords(text)
	if banned == nil {
		banned = []string{}
	}
	return SummaryReview{
		Kind:        nlp.ClassifyInput(text),
		IntentBased: nlp.IsIntentBased(text),
		LowQuality:  nlp.IsLowQuality(text),
		Invalid:     nlp.IsInvalidSummary(text),
		BannedWords: banned,
	}
}

// Package emotion maps diary text to an emotion label and an
// illustration path. Both functions are pure and total.
package emotion

import "strings"

// Label is a classified emotion.
type Label string

const (
	Joy     Label = "joy"
	Anger   Label = "anger"
	Sadness Label = "sadness"
	Neutral Label = "neutral"
)

type rule struct {
	emotion  Label
	keywords []string
}

// rules are evaluated in declaration order; within a rule, keywords are
// tried in declaration order. The first match wins, so earlier rules
// take precedence over later ones regardless of keyword position in
// the text.
var rules = []rule{
	{emotion: Joy, keywords: []string{"うれし", "嬉", "楽し", "最高", "できた"}},
	{emotion: Anger, keywords: []string{"怒", "むかつく", "イライラ"}},
	{emotion: Sadness, keywords: []string{"悲", "泣", "つらい"}},
}

// Classify returns the emotion label for text. Matching is
// case-sensitive substring containment with no normalization; text
// with no matching keyword classifies as Neutral.
func Classify(text string) Label {
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(text, keyword) {
				return r.emotion
			}
		}
	}
	return Neutral
}

// ImageForEmotion returns the static asset path for a label. Every
// label Classify can return has a corresponding asset.
func ImageForEmotion(label Label) string {
	return "/img/" + string(label) + ".png"
}

// Labels returns every label Classify can produce, in rule order with
// Neutral last.
func Labels() []Label {
	out := make([]Label, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.emotion)
	}
	return append(out, Neutral)
}

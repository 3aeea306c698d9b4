// Package expression holds the closed set of facial moods and the static pose
// table the renderer projects them through.
package expression

import "fmt"

// Expression is one mood from a fixed, closed set
type Expression uint8

const (
	Neutral Expression = iota
	Confusion
	Suspicion
	Delight
	Surprise
	Content
	Stoned
	Angry
	Sleepy
	Excited
	Skeptical
	Scheming
	HeartEyes

	// Count is the number of expressions, must stay last
	Count
)

var names = [Count]string{
	Neutral:   "neutral",
	Confusion: "confusion",
	Suspicion: "suspicion",
	Delight:   "delight",
	Surprise:  "surprise",
	Content:   "content",
	Stoned:    "stoned",
	Angry:     "angry",
	Sleepy:    "sleepy",
	Excited:   "excited",
	Skeptical: "skeptical",
	Scheming:  "scheming",
	HeartEyes: "heart-eyes",
}

// String returns the hyphenated lowercase name
func (e Expression) String() string {
	if e >= Count {
		return fmt.Sprintf("expression(%d)", uint8(e))
	}
	return names[e]
}

// Valid reports whether e is a member of the set
func (e Expression) Valid() bool {
	return e < Count
}

// Parse resolves a name produced by String
func Parse(name string) (Expression, error) {
	for i, n := range names {
		if n == name {
			return Expression(i), nil
		}
	}
	return 0, fmt.Errorf("unknown expression %q", name)
}

// All returns every expression in declaration order
func All() []Expression {
	all := make([]Expression, Count)
	for i := range all {
		all[i] = Expression(i)
	}
	return all
}

// Package normalize canonicalizes raw email text for pattern matching.
//
// Japanese inquiry forms arrive with mixed full-width and half-width
// characters, so everything downstream (relevance scoring, field rules)
// works on a folded representation: NFC-composed, full-width ASCII folded
// to half-width, CJK punctuation variants mapped to their ASCII forms,
// and whitespace collapsed.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Characters width.Fold leaves alone: ideographic punctuation and the
// U+301C wave dash (forms write it interchangeably with U+FF5E).
var punctuation = strings.NewReplacer(
	"、", ",",
	"。", ".",
	"〜", "~",
	"【", "[",
	"】", "]",
)

var (
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
	blankRuns  = regexp.MustCompile(`\n[ \t]*\n\s*`)
	trailingWS = regexp.MustCompile(`[ \t]+\n`)
)

// Text returns the canonical form of s. It is a pure, total function:
// empty input yields empty output and no input can fail.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = width.Fold.String(s)
	s = punctuation.Replace(s)
	s = spaceRuns.ReplaceAllString(s, " ")
	s = trailingWS.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Message folds a subject and body into the single text the scorer and
// extractor operate on, subject first.
func Message(subject, body string) string {
	return Text(subject + "\n" + body)
}

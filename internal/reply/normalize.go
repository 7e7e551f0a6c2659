// Package reply post-processes generated text before it is shown or spoken.
//
// Models drift from the persona's formatting rules no matter how loudly the
// system prompt states them, so every reply is run through Normalize before
// any front end displays it or hands it to speech synthesis.
package reply

import (
	"regexp"
	"strings"
)

// maxSentences caps how many sentences of a reply survive normalization.
const maxSentences = 3

// stageDirection matches a pair of asterisks and everything between them,
// e.g. "*chimes softly*".
var stageDirection = regexp.MustCompile(`\*[^*]+\*`)

// Normalize rewrites raw model output into display form. The steps are
// ordered: stage directions go first so their asterisks are not mistaken for
// stray ones, then lone asterisks, then ellipses, then whitespace collapse,
// then the sentence cap, and finally terminal punctuation.
//
// An empty input stays empty. Normalize is idempotent.
func Normalize(raw string) string {
	s := stageDirection.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "...", "")

	// Collapse all whitespace runs (including newlines) to single spaces.
	s = strings.Join(strings.Fields(s), " ")

	sentences := SplitSentences(s)
	if len(sentences) > maxSentences {
		s = strings.Join(sentences[:maxSentences], " ")
	}

	if s != "" && !strings.ContainsRune(".!?", rune(s[len(s)-1])) {
		s += "."
	}
	return s
}

// SplitSentences splits text on sentence boundaries: a '.', '!', or '?'
// followed by whitespace. The punctuation stays attached to its sentence.
// Text with no boundary is returned as a single sentence.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		if isTerminal(text[i]) && isSpace(text[i+1]) {
			sentences = append(sentences, strings.TrimSpace(text[start:i+1]))
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/eval"
)

// isWordBoundary returns true if the rune ends a word for completion
// purposes. Colons and hyphens belong to words (:set-const).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '(', ')', '#':
		return true
	}

	return false
}

// byteOffset converts a rune position, as reported by the text input, into
// a byte offset within s.
func byteOffset(s string, pos int) int {
	for i := range s {
		if pos <= 0 {
			return i
		}
		pos--
	}
	return len(s)
}

// wordBounds returns the word under the cursor and its byte boundaries
// within input. The cursor is a rune position.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = byteOffset(input, cursor)

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}
		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}
		end += size
	}

	return input[start:end], start, end
}

// operatorPosition reports whether the word starting at wordStart follows an
// open parenthesis, where only operators and directives are accepted.
func operatorPosition(input string, wordStart int) bool {
	prefix := strings.TrimRight(input[:wordStart], " \t\n")
	return strings.HasSuffix(prefix, "(")
}

// candidates returns the words that may complete the word at wordStart:
// operators right after "(", literals and bound names anywhere else.
func candidates(env *eval.Environment, input string, wordStart int) []string {
	if operatorPosition(input, wordStart) {
		return ast.OperatorNames()
	}

	names := []string{ast.True.String(), ast.False.String()}
	if env != nil {
		names = append(names, env.Names()...)
	}
	return names
}

// computeMatches ranks the candidates for the word at the cursor, best
// first. An empty word has no matches, and neither does a word that is
// already complete.
func computeMatches(env *eval.Environment, input string, cursor int) (matches fuzzy.Matches, start, end int) {
	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, start, end
	}

	cands := candidates(env, input, start)
	if slices.Contains(cands, word) {
		return nil, start, end
	}

	return fuzzy.Find(word, cands), start, end
}

// renderCandidateBar renders matches on a single line no wider than width,
// highlighting the selected one.
func renderCandidateBar(matches fuzzy.Matches, selected int, width int) string {
	var b strings.Builder

	used := 0
	for i, match := range matches {
		text := match.Str
		if used+len(text)+1 > width && i > 0 {
			b.WriteString(hintStyle.Render("…"))
			break
		}

		style := suggestionStyle
		if i == selected {
			style = selectedStyle
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(style.Render(text))
		used += len(text) + 1
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/slip/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "reset", "clear", "quit"}

// wordBoundaryChars are the runes that delimit a completable word:
// whitespace plus every operator and punctuation character of the language.
const wordBoundaryChars = " \t()[]{}+-*/%<>=!&|^,;."

func isWordBoundary(r rune) bool {
	return strings.ContainsRune(wordBoundaryChars, r)
}

// wordBounds returns the word under the cursor and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary (after
// a space, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = 0
	// Boundary runes are all single-byte, so the word starts one byte past
	// the nearest one left of the cursor.
	if i := strings.LastIndexFunc(input[:cursor], isWordBoundary); i >= 0 {
		start = i + 1
	}

	end = len(input)
	if i := strings.IndexFunc(input[cursor:], isWordBoundary); i >= 0 {
		end = cursor + i
	}

	return input[start:end], start, end
}

// evalCandidates returns the names that are valid completions in eval mode:
// every name visible in the session environment plus the reserved words of
// the language.
func evalCandidates(env *lang.Env) []string {
	return append(env.Names(), lang.Keywords()...)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list,
// and the word boundaries. When the current word is empty, it returns nil
// matches so the hint text stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	word, start, end := wordBounds(m.input.Value(), m.input.Position())
	if word == "" {
		return nil, nil, start, end
	}

	candidates = ctrlCommands
	if m.mode == modeEval {
		candidates = evalCandidates(m.env)
	}

	if len(candidates) == 0 {
		return nil, nil, start, end
	}

	return fuzzy.Find(word, candidates), candidates, start, end
}

// isFunction checks if a name is bound to a callable value in the session
// environment, so the completion bar can display it with a "()" suffix.
func (m model) isFunction(name string) bool {
	value, err := m.env.Lookup(name)
	if err != nil {
		return false
	}

	_, ok := value.(lang.Function)

	return ok
}

var (
	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedMatchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("4")).
				Bold(true)
)

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit the terminal width. The candidate under the cursor (while cycling)
// uses the selected style.
func (m model) renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	cycling bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	budget := width - lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		entry := m.renderCandidate(match, cycling && i == selected)
		if i > 0 {
			entry = sep + entry
		}

		total := used + lipgloss.Width(entry)

		// Reserve room for the ellipsis unless this is the final candidate
		// and it fits the full width.
		if i > 0 && total > budget &&
			(i < len(matches)-1 || total > width) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		b.WriteString(entry)

		used = total
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Callable names carry a display-only "()" suffix that
// completion never inserts.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	next := 0 // cursor into MatchedIndexes, which ascend

	for i, r := range match.Str {
		style := base

		if next < len(match.MatchedIndexes) &&
			match.MatchedIndexes[next] == i {
			style = highlight
			next++
		}

		b.WriteString(style.Render(string(r)))
	}

	if m.mode == modeEval && m.isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

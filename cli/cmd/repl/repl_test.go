package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiam/minitla/ast"
	"github.com/xiam/minitla/eval"
	"github.com/xiam/minitla/log"
	"github.com/xiam/minitla/parser"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), eval.New(), log.Logger{})
}

func typeText(m model, text string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(model)
}

func press(m model, key tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(model), cmd
}

func TestEvaluate(t *testing.T) {
	m := newTestModel(t)

	out, err := m.evaluate(`(:const x Bool) (:set-const x true) (or false x)`)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Contains(t, out[2], "true")

	out, err = m.evaluate(`(and x missing)`)
	assert.Empty(t, out)
	assert.ErrorIs(t, err, eval.ErrNoValue)
	assert.Contains(t, err.Error(), "evaluation error: no value for missing")

	_, err = m.evaluate(`(xor x)`)
	assert.ErrorIs(t, err, parser.ErrUnexpectedOperator)
	assert.Contains(t, err.Error(), "syntax error: repl:1:")

	_, err = m.evaluate(`(and x`)
	assert.ErrorIs(t, err, parser.ErrUnclosed)
}

func TestExecuteInput(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "(:set-const x (not false))")
	m, cmd := press(m, tea.KeyEnter)
	assert.NotNil(t, cmd)
	assert.Equal(t, "", m.input.Value())

	value, ok := m.ev.Env().Get("x")
	assert.True(t, ok)
	assert.Equal(t, ast.True, value)
	assert.Equal(t, []string{"(:set-const x (not false))"}, m.history)
}

func TestExecuteInputContinuation(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "(:set-const y (or false")
	m, _ = press(m, tea.KeyEnter)
	assert.Len(t, m.pending, 1)
	assert.Equal(t, contPrompt, m.prompt())

	_, ok := m.ev.Env().Get("y")
	assert.False(t, ok)

	m = typeText(m, "true))")
	m, _ = press(m, tea.KeyEnter)
	assert.Empty(t, m.pending)
	assert.Equal(t, evalPrompt, m.prompt())

	value, ok := m.ev.Env().Get("y")
	assert.True(t, ok)
	assert.Equal(t, ast.True, value)

	// Recalled on a single line.
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "(:set-const y (or false true))", m.input.Value())

	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, "", m.input.Value())
}

func TestCtrlCDropsPending(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "(and")
	m, _ = press(m, tea.KeyEnter)
	require.Len(t, m.pending, 1)

	m, _ = press(m, tea.KeyCtrlC)
	assert.Empty(t, m.pending)
	assert.False(t, m.quitting)

	m, _ = press(m, tea.KeyCtrlC)
	assert.True(t, m.quitting)
	assert.Equal(t, "", m.View())
}

func TestCommands(t *testing.T) {
	m := newTestModel(t)

	assert.Contains(t, m.listBindings(), "no constants bound")

	m.ev.Env().Set("b", ast.False)
	m.ev.Env().Set("a", ast.True)
	assert.Contains(t, m.listBindings(), "a = true\nb = false")

	m = typeText(m, ".nope")
	m, cmd := press(m, tea.KeyEnter)
	assert.NotNil(t, cmd)
	assert.False(t, m.quitting)
	assert.Empty(t, m.history)

	m = typeText(m, ".quit")
	m, _ = press(m, tea.KeyEnter)
	assert.True(t, m.quitting)
}

func TestTabCompletion(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "(an")
	require.Len(t, m.matches, 1)
	assert.Equal(t, "and", m.matches[0].Str)

	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, "(and", m.input.Value())
	assert.Empty(t, m.matches)

	// Several candidates are cycled through and Esc restores the input.
	m = newTestModel(t)
	m = typeText(m, "(:c")
	require.Len(t, m.matches, 2)

	m, _ = press(m, tea.KeyTab)
	first := m.input.Value()
	m, _ = press(m, tea.KeyTab)
	second := m.input.Value()
	assert.NotEqual(t, first, second)
	assert.ElementsMatch(t, []string{"(:const", "(:set-const"}, []string{first, second})

	m, _ = press(m, tea.KeyEsc)
	assert.Equal(t, "(:c", m.input.Value())
}

func TestTabCompletionMultibyte(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "(or ü fa")
	require.Len(t, m.matches, 1)

	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, "(or ü false", m.input.Value())
	assert.Equal(t, len([]rune("(or ü false")), m.input.Position())
}

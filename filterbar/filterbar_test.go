package filterbar

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinfilter/annotate"
	nt "joinfilter/entity"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any)              {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

func press(t *testing.T, bar Bar, key string) (Bar, tea.Cmd) {
	t.Helper()

	var msg tea.KeyPressMsg
	switch key {
	case "up":
		msg = tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		msg = tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}

	model, cmd := bar.Update(msg)
	updated, ok := model.(Bar)
	require.True(t, ok)
	return updated, cmd
}

func newBar(fn AnnotateFunc) Bar {

	filters := nt.Filters{
		{"join": map[string]any{"id": "j1"}},
		{"query": "x", "meta": map[string]any{"key": "title", "value": "go"}},
		{"dbfilter": map[string]any{"queryid": "q1"}},
	}
	return New(context.Background(), filters, annotate.Selection{URI: "article/1"}, fn, nopLogger{})
}

func TestToggleAndDelete(t *testing.T) {

	bar := newBar(nil)

	bar, _ = press(t, bar, "down")
	bar, _ = press(t, bar, "t")
	assert.True(t, bar.Filters()[1].Disabled())

	bar, _ = press(t, bar, "t")
	assert.False(t, bar.Filters()[1].Disabled())

	bar, _ = press(t, bar, "down")
	bar, _ = press(t, bar, "d")
	require.Len(t, bar.Filters(), 2)
	assert.Equal(t, 1, bar.selectedIndex)

	bar, _ = press(t, bar, "up")
	bar, _ = press(t, bar, "up")
	assert.Equal(t, 0, bar.selectedIndex)
}

func TestAnnotateCmd(t *testing.T) {

	var got annotate.Selection
	fn := func(ctx context.Context, filters nt.Filters, sel annotate.Selection) (nt.Filters, error) {
		got = sel
		for _, flt := range filters {
			flt.SetMeta(nt.MetaDependsOnSelectedEntities, flt.Kind() == nt.DBFilter)
			flt.SetMeta(nt.MetaMarkDependOnSelectedEntities, true)
		}
		return filters, nil
	}

	bar := newBar(fn)

	bar, cmd := press(t, bar, "e")
	require.NotNil(t, cmd)

	msg := cmd()
	annotated, ok := msg.(AnnotatedMsg)
	require.True(t, ok)
	assert.True(t, got.Disabled)

	model, _ := bar.Update(annotated)
	bar = model.(Bar)

	assert.Contains(t, bar.row(2, bar.Filters()[2]), "*")
	assert.NotContains(t, bar.row(0, bar.Filters()[0]), "*")
}

func kinds(filters nt.Filters) (got []nt.Kind) {
	for _, flt := range filters {
		got = append(got, flt.Kind())
	}
	return
}

func TestDeleteWhileAnnotating(t *testing.T) {

	fn := func(ctx context.Context, filters nt.Filters, sel annotate.Selection) (nt.Filters, error) {
		for _, flt := range filters {
			flt.SetMeta(nt.MetaDependsOnSelectedEntities, flt.Kind() == nt.DBFilter)
		}
		return filters, nil
	}

	bar := newBar(fn)
	original := bar.Filters()

	bar, cmd := press(t, bar, "a")
	require.NotNil(t, cmd)

	bar, _ = press(t, bar, "down")
	bar, _ = press(t, bar, "d")
	require.Len(t, bar.Filters(), 2)

	msg := cmd()

	// annotation ran on a copy
	assert.Nil(t, bar.Filters()[1].Meta())
	assert.Len(t, original, 3)
	assert.Equal(t, []nt.Kind{nt.Join, nt.Plain, nt.DBFilter}, kinds(original))

	model, _ := bar.Update(msg)
	bar = model.(Bar)

	assert.Equal(t, []nt.Kind{nt.Join, nt.DBFilter}, kinds(bar.Filters()))
	assert.Nil(t, bar.Filters()[1].Meta())

	bar, cmd = press(t, bar, "a")
	model, _ = bar.Update(cmd())
	bar = model.(Bar)

	assert.Equal(t, []nt.Kind{nt.Join, nt.DBFilter}, kinds(bar.Filters()))
	assert.True(t, bar.Filters()[1].MetaValue(nt.MetaDependsOnSelectedEntities).Raw.(bool))
}

func TestAnnotateError(t *testing.T) {

	fn := func(ctx context.Context, filters nt.Filters, sel annotate.Selection) (nt.Filters, error) {
		return nil, errors.New("unable to find queries: [q1]")
	}

	bar := newBar(fn)
	msg := bar.Init()()

	model, _ := bar.Update(msg)
	bar = model.(Bar)

	assert.Equal(t, "unable to find queries: [q1]", bar.errorString)
	assert.Len(t, bar.Filters(), 3)
}

func TestQuit(t *testing.T) {

	_, cmd := press(t, newBar(nil), "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestFooter(t *testing.T) {

	bar := newBar(nil)
	footer := renderFooter(1, bar.Filters(), 40)

	assert.Contains(t, footer, "1/3")
	assert.Contains(t, footer, "join 1  join_set 0")
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package view

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/weather-dashboard/internal/presenter"
)

const (
	cardWidth = 14

	DefaultCurrentTemplate = `{{.Current.Location}}{{with .Clock.Date}} | {{.}}{{end}}{{with .Clock.Time}} {{.}}{{end}}
{{.Current.Temperature}}  {{.Current.Condition}}, {{.Current.Description}}
{{loc "apparent"}}: {{.Current.FeelsLike}}
{{loc "humidity"}}: {{.Current.Humidity}}
{{- with .Current.Wind}}
{{loc "wind"}}: {{.}}{{end}}
{{- with .Current.Visibility}}
{{loc "visibility"}}: {{.}}{{end}}
{{- with .Current.Sunrise}}
{{loc "sunrise"}}: {{.}}{{end}}
{{- with .Current.Sunset}}
{{loc "sunset"}}: {{.}}{{end}}
{{loc "moonphase"}}: {{emoji .Current.MoonPhaseIcon}}{{.Current.MoonPhase}}
`
	DefaultForecastTemplate = `{{loc "forecast"}}
{{range .Cards}}{{pad .Weekday}}{{end}}
{{range .Cards}}{{pad .Max}}{{end}}
{{range .Cards}}{{pad .Min}}{{end}}
{{range .Cards}}{{pad (printf "%s %s" .Precipitation (loc "rain"))}}{{end}}
{{.Chart.Title}}
{{range .Chart.Points}}{{.Label}} {{bar .Temperature}} {{.Temperature}}
{{end}}`
)

// Terminal renders the dashboard as plain text.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	current  *template.Template
	forecast *template.Template
	clock    presenter.ClockView
	input    bool
	status   string
}

// NewTerminal parses the templates with the given functions. Empty templates use the defaults.
func NewTerminal(out io.Writer, funcs template.FuncMap, currentTpl, forecastTpl string) (*Terminal, error) {
	if out == nil {
		return nil, fmt.Errorf("output writer is required")
	}
	if currentTpl == "" {
		currentTpl = DefaultCurrentTemplate
	}
	if forecastTpl == "" {
		forecastTpl = DefaultForecastTemplate
	}

	term := &Terminal{out: out, input: true}
	fm := template.FuncMap{
		"pad":   pad,
		"emoji": EmojiWithSpace,
		"bar":   bar,
	}
	for name, fn := range funcs {
		fm[name] = fn
	}
	if _, ok := fm["loc"]; !ok {
		fm["loc"] = func(val string) string { return val }
	}

	var err error
	if term.current, err = template.New("current").Funcs(fm).Parse(currentTpl); err != nil {
		return nil, fmt.Errorf("failed to parse current template: %w", err)
	}
	if term.forecast, err = template.New("forecast").Funcs(fm).Parse(forecastTpl); err != nil {
		return nil, fmt.Errorf("failed to parse forecast template: %w", err)
	}
	return term, nil
}

func (t *Terminal) DisplayCurrent(v presenter.CurrentView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	data := struct {
		Current presenter.CurrentView
		Clock   presenter.ClockView
	}{v, t.clock}
	t.render(t.current, data)
}

func (t *Terminal) DisplayForecast(v presenter.ForecastView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.render(t.forecast, v)
}

// DisplayStatus prints non-empty status messages that differ from the last one.
func (t *Terminal) DisplayStatus(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if msg == t.status {
		return
	}
	t.status = msg
	if msg == "" {
		return
	}
	_, _ = fmt.Fprintf(t.out, "» %s\n", msg)
}

func (t *Terminal) SetInputEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input = enabled
}

// InputEnabled reports the last input state.
func (t *Terminal) InputEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

// DisplayClock keeps the clock for the header of the next current conditions.
func (t *Terminal) DisplayClock(v presenter.ClockView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clock = v
}

func (t *Terminal) render(tpl *template.Template, data any) {
	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, data); err != nil {
		_, _ = fmt.Fprintf(t.out, "failed to render %s: %s\n", tpl.Name(), err)
		return
	}
	_, _ = t.out.Write(buf.Bytes())
}

// EmojiWithSpace pads an emoji so the following text lines up in terminals that draw
// it with double width.
func EmojiWithSpace(emoji string) string {
	if emoji == "" {
		return ""
	}
	width := runewidth.StringWidth(emoji)
	return fmt.Sprintf("%s%s", emoji, strings.Repeat(" ", max(1, 3-width)))
}

func pad(val string) string {
	return runewidth.FillRight(runewidth.Truncate(val, cardWidth-1, "…"), cardWidth)
}

// bar draws a temperature as a row of blocks. Sub-zero values are drawn as a single dot.
func bar(temp int) string {
	if temp <= 0 {
		return "·"
	}
	return strings.Repeat("▇", min(temp, 40))
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-bridge/bridge"
	"github.com/wippyai/wasm-bridge/compute"
	"github.com/wippyai/wasm-bridge/config"
	"github.com/wippyai/wasm-bridge/host"
	"github.com/wippyai/wasm-bridge/layout"
	"github.com/wippyai/wasm-bridge/reinterpret"
	"github.com/wippyai/wasm-bridge/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	consoleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type entryPoint struct {
	name   string
	params []paramInfo
}

type paramInfo struct {
	name    string
	typeStr string
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	cfg      config.Config
	rt       *runtime.Runtime
	caller   *runtime.Caller
	console  *bytes.Buffer
	result   string
	output   string
	entries  []entryPoint
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type loadedMsg struct {
	err     error
	rt      *runtime.Runtime
	caller  *runtime.Caller
	entries []entryPoint
}

type callResultMsg struct {
	err    error
	result string
	output string
}

func newInteractiveModel(cfg config.Config) *interactiveModel {
	return &interactiveModel{
		cfg:     cfg,
		console: &bytes.Buffer{},
		state:   stateSelectFunc,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

// load starts a runtime whose greeting lines are captured for display
// instead of going to the alt screen.
func (m *interactiveModel) load() tea.Msg {
	ctx := context.Background()

	rt, err := runtime.New(ctx, m.cfg, &runtime.Options{
		Console:     bridge.NewConsole(m.console),
		DisableWASI: true,
	})
	if err != nil {
		return loadedMsg{err: err}
	}
	caller, err := rt.Caller(ctx)
	if err != nil {
		rt.Close(ctx)
		return loadedMsg{err: err}
	}

	b := rt.Bridge()
	return loadedMsg{
		rt:     rt,
		caller: caller,
		entries: []entryPoint{
			{name: host.FuncHello, params: shapeParams(b.MessageShape())},
			{name: host.FuncMultiply, params: []paramInfo{{"x", "s32"}, {"y", "s32"}}},
			{name: host.FuncDotProduct, params: shapeParams(b.PlanePairShape())},
		},
	}
}

// shapeParams turns record fields into inputs. Pointer fields are entered
// as the text they reference.
func shapeParams(s *layout.Shape) []paramInfo {
	var params []paramInfo
	for _, f := range s.Fields() {
		typeStr := layout.TypeName(f.Kind.WIT(s.Target()))
		if f.Kind == layout.KindPointer {
			typeStr = "string"
		}
		params = append(params, paramInfo{name: f.Name, typeStr: typeStr})
	}
	return params
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateInputArgs && msg.String() == "q" {
				break
			}
			ctx := context.Background()
			if m.caller != nil {
				m.caller.Close(ctx)
			}
			if m.rt != nil {
				m.rt.Close(ctx)
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.reset()
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.reset()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.rt = msg.rt
		m.caller = msg.caller

	case callResultMsg:
		m.result = msg.result
		m.output = msg.output
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) reset() {
	m.state = stateSelectFunc
	m.result = ""
	m.output = ""
	m.err = nil
}

func (m *interactiveModel) prepareInputs() {
	e := m.entries[m.selected]
	m.inputs = make([]textinput.Model, len(e.params))
	for i, p := range e.params {
		ti := textinput.New()
		ti.Placeholder = p.typeStr
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callFunction() tea.Msg {
	ctx := context.Background()
	m.console.Reset()

	values := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		values[i] = strings.TrimSpace(input.Value())
	}

	switch m.entries[m.selected].name {
	case host.FuncHello:
		number, err := strconv.ParseInt(values[1], 10, 32)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("number: %w", err)}
		}
		status, err := m.caller.Hello(ctx, values[0], int32(number))
		if err != nil {
			return callResultMsg{err: err}
		}
		return callResultMsg{
			result: fmt.Sprintf("status %d (%s)", status, bridge.StatusText(status)),
			output: m.console.String(),
		}

	case host.FuncMultiply:
		var xy [2]int32
		for i := range xy {
			v, err := strconv.ParseInt(values[i], 10, 32)
			if err != nil {
				return callResultMsg{err: fmt.Errorf("%s: %w", m.entries[m.selected].params[i].name, err)}
			}
			xy[i] = int32(v)
		}
		v, err := m.caller.Multiply(ctx, xy[0], xy[1])
		if err != nil {
			return callResultMsg{err: err}
		}
		return callResultMsg{result: strconv.FormatInt(int64(v), 10)}

	case host.FuncDotProduct:
		pp, err := m.planes(values)
		if err != nil {
			return callResultMsg{err: err}
		}
		v, status, err := m.caller.DotProductChecked(ctx, pp)
		if err != nil {
			return callResultMsg{err: err}
		}
		if status != bridge.StatusOK {
			return callResultMsg{result: fmt.Sprintf("status %d (%s)", status, bridge.StatusText(status))}
		}
		return callResultMsg{result: strconv.FormatInt(int64(v), 10)}
	}

	return callResultMsg{err: fmt.Errorf("unknown entry point %q", m.entries[m.selected].name)}
}

// planes fills a plane-pair record from the inputs in field order.
func (m *interactiveModel) planes(values []string) (compute.PlanePair, error) {
	rec := reinterpret.NewRecord(m.rt.Bridge().PlanePairShape())
	for i, p := range m.entries[m.selected].params {
		v, err := strconv.ParseFloat(values[i], 32)
		if err != nil {
			return compute.PlanePair{}, fmt.Errorf("%s: %w", p.name, err)
		}
		if err := rec.SetFloat32(p.name, float32(v)); err != nil {
			return compute.PlanePair{}, err
		}
	}
	var pp compute.PlanePair
	err := rec.Decode(&pp)
	return pp, err
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.entries) == 0 {
		return "Starting bridge..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Bridge"))
	b.WriteString(" ")
	b.WriteString(m.rt.Host().Name())
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select an entry point to call:\n\n")
		for i, e := range m.entries {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatEntry(e)))
			} else {
				b.WriteString("  " + formatEntry(e))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(e.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(e.params[i].typeStr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(e.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
			if m.output != "" {
				b.WriteString("\n\n")
				b.WriteString(consoleStyle.Render(strings.TrimRight(m.output, "\n")))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatEntry(e entryPoint) string {
	var params []string
	for _, p := range e.params {
		params = append(params, p.name+": "+typeStyle.Render(p.typeStr))
	}
	return funcStyle.Render(e.name) + "(" + strings.Join(params, ", ") + ") -> " + typeStyle.Render("s32")
}

func runInteractive(cfg config.Config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/orchestration"
)

// modes is the order in which tab cycles the modes.
var modes = []string{config.ModeTerm, config.ModeFind, config.ModeList}

// Model is the root bubbletea model of the interactive mode.
type Model struct {
	input textinput.Model
	help  help.Model
	keys  KeyMap

	engines []engine.Engine
	current int

	// cfg holds the seed, timeout and limits shared by every computation;
	// Mode is the selected mode.
	cfg       config.AppConfig
	version   string
	parentCtx context.Context
	cancel    context.CancelFunc
	ref       *programRef

	generation uint64
	running    bool
	progress   ProgressMsg

	// last is the configuration of the last submitted computation.
	last     config.AppConfig
	result   *orchestration.CalculationResult
	err      error
	exitCode int
	width    int
}

// NewModel returns a model computing with engines. The backend named by
// cfg.Numeric is selected first; "all" selects the first engine.
func NewModel(parentCtx context.Context, engines []engine.Engine, cfg config.AppConfig, version string) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	if !slices.Contains(modes, cfg.Mode) {
		cfg.Mode = config.ModeTerm
	}
	current := slices.IndexFunc(engines, func(e engine.Engine) bool { return e.Name() == cfg.Numeric })

	m := Model{
		input:     ti,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		engines:   engines,
		current:   max(current, 0),
		cfg:       cfg,
		version:   version,
		parentCtx: parentCtx,
		ref:       &programRef{},
		exitCode:  apperrors.ExitSuccess,
	}
	m.input.Placeholder = m.placeholder()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation && m.running {
			m.progress = msg
		}
		return m, nil

	case ResultMsg:
		if msg.Generation != m.generation {
			return m, nil // stale result from a replaced computation
		}
		m.running = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		res := msg.Result
		m.result = &res
		m.err = res.Err
		m.exitCode = apperrors.ExitCode(res.Err)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMode):
		if m.running {
			return m, nil
		}
		i := slices.Index(modes, m.cfg.Mode)
		m.cfg.Mode = modes[(i+1)%len(modes)]
		m.input.Placeholder = m.placeholder()
		return m, nil

	case key.Matches(msg, m.keys.NextNumeric):
		if m.running || len(m.engines) == 0 {
			return m, nil
		}
		m.current = (m.current + 1) % len(m.engines)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the input and starts a computation.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.running || len(m.engines) == 0 {
		return m, nil
	}

	cfg := m.cfg
	cfg.Numeric = m.engines[m.current].Name()
	if err := cfg.SetArgument(m.input.Value()); err != nil {
		m.result, m.err = nil, err
		return m, nil
	}
	if err := checkRequest(cfg); err != nil {
		m.result, m.err = nil, err
		return m, nil
	}

	m.generation++
	ctx, cancel := context.WithTimeout(m.parentCtx, cfg.Timeout)
	m.cancel = cancel
	m.running = true
	m.progress = ProgressMsg{}
	m.last = cfg
	m.result, m.err = nil, nil

	return m, computeCmd(ctx, m.ref, m.engines[m.current], cfg, m.generation)
}

// checkRequest applies the checks SetArgument leaves to the caller. Positions
// are bounded by MaxN here as well, unlike on the command line.
func checkRequest(cfg config.AppConfig) error {
	if cfg.Mode == config.ModeFind && cfg.Seed.IsNegative() {
		return apperrors.NewConfigError("find mode requires non-negative seeds, got %s", cfg.Seed)
	}
	if cfg.Mode != config.ModeFind && cfg.MaxN > 0 && cfg.N > cfg.MaxN {
		return apperrors.NewConfigError("%d exceeds the maximum allowed value (%d)", cfg.N, cfg.MaxN)
	}
	return nil
}

// placeholder describes what the input expects in the current mode.
func (m Model) placeholder() string {
	switch m.cfg.Mode {
	case config.ModeFind:
		return "value to look up"
	case config.ModeList:
		return "number of terms"
	default:
		return "position"
	}
}

// ExitCode returns the exit code of the last computation.
func (m Model) ExitCode() int { return m.exitCode }

// computeCmd runs one computation through the orchestration and reports its
// result as a ResultMsg.
func computeCmd(ctx context.Context, ref *programRef, e engine.Engine, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &progressReporter{ref: ref, generation: gen}
		results := orchestration.ExecuteCalculations(ctx, []engine.Engine{e}, cfg, reporter, io.Discard)
		return ResultMsg{Generation: gen, Result: results[0]}
	}
}

// statusText renders err the way the command line reports it.
func statusText(err error) string {
	var b strings.Builder
	apperrors.HandleCalculationError(err, 0, &b, nil)
	return strings.TrimRight(b.String(), "\n")
}

// Run starts the interactive program and returns the exit code of the last
// computation.
func Run(ctx context.Context, engines []engine.Engine, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, engines, cfg, version)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		if m.cancel != nil {
			m.cancel()
		}
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

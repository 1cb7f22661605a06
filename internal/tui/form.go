// ABOUTME: Interactive TUI form for adding or editing a bird sighting.
// ABOUTME: Step-wise bubbletea model over species, place, notes, date, and coordinates.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/birdlog/internal/models"
	"github.com/2389-research/birdlog/internal/species"
)

// Step represents the current form step.
type Step int

const (
	StepSpecies Step = iota
	StepPlace
	StepNotes
	StepDate
	StepLat
	StepLng
	StepConfirm
	StepSaving
	StepDone
	StepFailed
)

// inputSteps is the number of steps backed by a text input.
const inputSteps = int(StepLng) + 1

var stepLabels = [inputSteps]string{
	"Species",
	"Place",
	"Notes",
	"Date (d/m/yyyy)",
	"Latitude",
	"Longitude",
}

// saveResultMsg carries the result of an async save attempt.
type saveResultMsg struct {
	bird models.Bird
	err  error
}

// SaveFn persists the finished sighting and returns it as stored.
type SaveFn func(ctx context.Context, bird models.Bird) (models.Bird, error)

// cancelHolder shares a cancel function across bubbletea model copies.
// It must be a pointer field so value-receiver methods can store the cancel
// func and have every copy of the model see it.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SightingForm is the bubbletea model for the sighting form.
type SightingForm struct {
	step      Step
	editing   bool
	bird      models.Bird
	inputs    [inputSteps]textinput.Model
	spinner   spinner.Model
	saveFn    SaveFn
	cancelCtx *cancelHolder
	inputErr  error
	saveErr   error
	quitting  bool
	now       func() time.Time

	cancelRequested bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewSightingForm creates a form pre-filled from bird. A bird with an ID is edited in place.
func NewSightingForm(bird models.Bird, save SaveFn) SightingForm {
	var inputs [inputSteps]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Width = 50
		inputs[i] = in
	}

	inputs[StepSpecies].Placeholder = "e.g. Robin"
	inputs[StepSpecies].ShowSuggestions = true
	inputs[StepSpecies].SetSuggestions(species.All())
	inputs[StepSpecies].SetValue(bird.Species)

	inputs[StepPlace].Placeholder = "where you saw it"
	inputs[StepPlace].SetValue(bird.PlaceName)

	inputs[StepNotes].Placeholder = "behaviour, count, weather..."
	inputs[StepNotes].SetValue(bird.Notes)

	inputs[StepDate].Placeholder = "today"
	inputs[StepDate].SetValue(bird.Date)

	inputs[StepLat].SetValue(formatCoord(bird.GeoLocation.Lat))
	inputs[StepLng].SetValue(formatCoord(bird.GeoLocation.Lng))

	inputs[StepSpecies].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SightingForm{
		step:      StepSpecies,
		editing:   bird.ID != "",
		bird:      bird,
		inputs:    inputs,
		spinner:   s,
		saveFn:    save,
		cancelCtx: &cancelHolder{},
		now:       time.Now,
	}
}

// Init implements tea.Model.
func (m SightingForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SightingForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			// A save in flight may already have reached disk; wait for its result.
			if m.step == StepSaving {
				m.cancelRequested = true
				if m.cancelCtx.cancel != nil {
					m.cancelCtx.cancel()
				}
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}

		switch {
		case int(m.step) < inputSteps:
			return m.updateInput(msg)
		case m.step == StepConfirm:
			return m.updateConfirm(msg)
		case m.step == StepFailed:
			return m.updateFailed(msg)
		}

	case saveResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.bird = msg.bird
			m.step = StepDone
			return m, tea.Quit
		}
		if m.cancelRequested {
			m.quitting = true
			return m, tea.Quit
		}
		m.saveErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SightingForm) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if err := m.commitStep(); err != nil {
			m.inputErr = err
			return m, nil
		}
		m.inputErr = nil

		idx := int(m.step)
		m.inputs[idx].Blur()
		m.step++
		if int(m.step) < inputSteps {
			m.inputs[m.step].Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

// commitStep validates the active input and copies it into the draft sighting.
func (m *SightingForm) commitStep() error {
	val := strings.TrimSpace(m.inputs[m.step].Value())

	switch m.step {
	case StepSpecies:
		if canonical, ok := species.Canonical(val); ok {
			val = canonical
			m.inputs[StepSpecies].SetValue(val)
		}
		draft := m.bird
		draft.Species = val
		if err := draft.Validate(); err != nil {
			return err
		}
		m.bird.Species = val
	case StepPlace:
		m.bird.PlaceName = val
	case StepNotes:
		m.bird.Notes = val
	case StepDate:
		if val == "" {
			val = models.FormatDate(m.now())
			m.inputs[StepDate].SetValue(val)
		}
		m.bird.Date = val
	case StepLat:
		lat, err := parseCoord(val, -90, 90)
		if err != nil {
			return fmt.Errorf("latitude: %w", err)
		}
		m.bird.GeoLocation.Lat = lat
	case StepLng:
		lng, err := parseCoord(val, -180, 180)
		if err != nil {
			return fmt.Errorf("longitude: %w", err)
		}
		m.bird.GeoLocation.Lng = lng
	}
	return nil
}

func (m SightingForm) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.step = StepSaving
		return m, tea.Batch(m.startSave(), m.spinner.Tick)
	case tea.KeyRunes:
		if msg.Runes[0] == 'b' {
			m.step = StepSpecies
			m.inputs[StepSpecies].Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m SightingForm) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepSaving
			m.saveErr = nil
			return m, tea.Batch(m.startSave(), m.spinner.Tick)
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SightingForm) startSave() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	bird := m.bird
	fn := m.saveFn
	return func() tea.Msg {
		saved, err := fn(ctx, bird)
		return saveResultMsg{bird: saved, err: err}
	}
}

// View implements tea.Model.
func (m SightingForm) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   BIRDLOG"))
	if m.editing {
		b.WriteString(titleStyle.Render(" - Edit Bird"))
	} else {
		b.WriteString(titleStyle.Render(" - Add Bird"))
	}
	b.WriteString("\n\n")

	switch {
	case int(m.step) < inputSteps:
		for i := 0; i < int(m.step); i++ {
			b.WriteString(fmt.Sprintf("  %s: %s\n", stepLabels[i], m.inputs[i].Value()))
		}
		if m.step > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d: %s", int(m.step)+1, inputSteps, stepLabels[m.step])))
		b.WriteString("\n")
		if m.step == StepSpecies {
			b.WriteString(promptStyle.Render("(tab completes a known species)"))
			b.WriteString("\n")
		}
		b.WriteString(m.inputs[m.step].View())
		b.WriteString("\n")
		if m.inputErr != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.inputErr)))
			b.WriteString("\n")
		}

	case m.step == StepConfirm:
		b.WriteString(m.summary())
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("[enter] save  [b]ack  [esc] cancel"))
		b.WriteString("\n")

	case m.step == StepSaving:
		b.WriteString(m.summary())
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		if m.cancelRequested {
			b.WriteString(" Cancelling...")
		} else {
			b.WriteString(" Saving...")
		}
		b.WriteString("\n")

	case m.step == StepDone:
		b.WriteString(successStyle.Render(fmt.Sprintf("✓ Saved %s", m.bird.Species)))
		b.WriteString("\n")

	case m.step == StepFailed:
		errMsg := "unknown error"
		if m.saveErr != nil {
			errMsg = m.saveErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Save failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m SightingForm) summary() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Species: %s\n", m.bird.Species))
	b.WriteString(fmt.Sprintf("  Place:   %s\n", m.bird.PlaceName))
	b.WriteString(fmt.Sprintf("  Notes:   %s\n", m.bird.Notes))
	b.WriteString(fmt.Sprintf("  Date:    %s\n", m.bird.Date))
	b.WriteString(fmt.Sprintf("  Where:   %.6f, %.6f\n", m.bird.GeoLocation.Lat, m.bird.GeoLocation.Lng))
	return b.String()
}

// Result returns the sighting as last saved (or drafted, if the form did not finish).
func (m SightingForm) Result() models.Bird {
	return m.bird
}

// Saved returns true if the sighting was stored and the user did not cancel.
func (m SightingForm) Saved() bool {
	return m.step == StepDone && !m.quitting
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseCoord(s string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%v is outside %v..%v", v, lo, hi)
	}
	return v, nil
}

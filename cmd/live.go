package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/storage"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Edit the sheet in a form with live totals",
	Long: `Open a terminal form for the sheet. Totals are recomputed on every key
press; a valid start and end time fill in the duration.

Keys: tab/shift+tab move between fields, ctrl+s saves, esc quits.`,
	Args: cobra.NoArgs,
	RunE: runLive,
}

func runLive(cmd *cobra.Command, args []string) error {
	s := loadSheet()
	save := func(s model.Sheet) error { return storage.SaveSheet(sheetPath, s) }

	p := tea.NewProgram(newLiveModel(s, cfg.Invoice.Currency, save), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fail(exitFailure, err)
	}
	if m, ok := final.(liveModel); ok && m.dirty {
		fmt.Fprintln(cmd.OutOrStdout(), styleYellow.Render("Unsaved changes discarded."))
	}
	return nil
}

type liveField int

const (
	fieldWorker liveField = iota
	fieldClient
	fieldAddress
	fieldRate
	fieldStart
	fieldEnd
	fieldDuration
	fieldCount
)

var liveLabels = [fieldCount]string{
	fieldWorker:   "Your name",
	fieldClient:   "Client",
	fieldAddress:  "Address",
	fieldRate:     "Hourly rate",
	fieldStart:    "Start",
	fieldEnd:      "End",
	fieldDuration: "Duration",
}

var livePlaceholders = [fieldCount]string{
	fieldWorker:   "Jane Doe",
	fieldClient:   "Acme Corp",
	fieldAddress:  `1 Main St\nSpringfield`,
	fieldRate:     "25",
	fieldStart:    "09:00",
	fieldEnd:      "17:30",
	fieldDuration: "8:30 or 8.5",
}

type liveModel struct {
	sheet    model.Sheet
	snap     earnings.Snapshot
	inputs   []textinput.Model
	focus    liveField
	currency string
	save     func(model.Sheet) error

	dirty  bool
	status string
	err    error
}

func newLiveModel(s model.Sheet, currency string, save func(model.Sheet) error) liveModel {
	m := liveModel{
		sheet:    s,
		currency: currency,
		save:     save,
		inputs:   make([]textinput.Model, fieldCount),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 32
		ti.Placeholder = livePlaceholders[i]
		m.inputs[i] = ti
	}
	for f, v := range m.fieldPointers() {
		if f == fieldAddress {
			m.inputs[f].SetValue(escapeNewlines(*v))
			continue
		}
		m.inputs[f].SetValue(*v)
	}
	m.setFocus(fieldWorker)
	m.recompute()
	return m
}

// fieldPointers maps each form field onto the sheet field it edits.
func (m *liveModel) fieldPointers() map[liveField]*string {
	return map[liveField]*string{
		fieldWorker:   &m.sheet.WorkerName,
		fieldClient:   &m.sheet.ClientName,
		fieldAddress:  &m.sheet.ClientAddress,
		fieldRate:     &m.sheet.HourlyRate,
		fieldStart:    &m.sheet.StartTime,
		fieldEnd:      &m.sheet.EndTime,
		fieldDuration: &m.sheet.DurationText,
	}
}

func (m *liveModel) setFocus(f liveField) {
	f = (f + fieldCount) % fieldCount
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	m.inputs[f].Focus()
}

// recompute copies the inputs into the sheet and evaluates it. A rewritten
// duration is pushed back into its input.
func (m *liveModel) recompute() {
	for f, dst := range m.fieldPointers() {
		*dst = m.inputs[f].Value()
	}
	m.sheet.ClientAddress = unescapeNewlines(m.sheet.ClientAddress)
	m.snap = earnings.Evaluate(&m.sheet)
	if m.snap.Rewritten {
		m.inputs[fieldDuration].SetValue(m.sheet.DurationText)
	}
}

func (m liveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down", "enter":
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil
	case "ctrl+s":
		m.recompute()
		if err := m.save(m.sheet); err != nil {
			m.err = err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.dirty = false
		m.status = "Saved."
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.dirty = true
		m.status = ""
		m.recompute()
	}
	return m, cmd
}

func (m liveModel) View() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("HOURLY RATE CALCULATOR"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := fmt.Sprintf("%-12s", liveLabels[i])
		if liveField(i) == m.focus {
			label = styleHeader.Render(label)
		} else {
			label = styleDim.Render(label)
		}
		fmt.Fprintf(&b, "%s %s\n", label, m.inputs[i].View())
	}
	b.WriteString("\n")

	b.WriteString(renderBox("Earnings", summaryLines(m.sheet, m.snap, m.currency)))
	b.WriteString("\n")
	if n := len(m.sheet.Expenses); n > 0 {
		fmt.Fprintf(&b, "%s\n", styleDim.Render(fmt.Sprintf("%d expense item(s); edit them with hrc expense", n)))
	}

	switch {
	case m.err != nil:
		b.WriteString(styleRed.Render("Save failed: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(styleGreen.Render(m.status) + "\n")
	case m.dirty:
		b.WriteString(styleYellow.Render("Modified") + "\n")
	}
	b.WriteString(styleDim.Render("tab next • shift+tab previous • ctrl+s save • esc quit"))
	return b.String()
}

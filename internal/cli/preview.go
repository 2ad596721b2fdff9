package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/pkg/core/chart"
	"github.com/matzehuels/onepercent/pkg/core/dataset"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/pipeline"
	"github.com/matzehuels/onepercent/pkg/render/sink"
)

// frameInterval is the redraw rate while a transition is running.
const frameInterval = time.Second / 30

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		value       float64
		description string
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Show the chart in the terminal and change its value live",
		Long: `Show the chart in the terminal.

Keys: + and - change the value by one, ] and [ by ten, r reloads the file,
q quits. Every change is a chart update, replayed with its transition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.DataView = dataview.FromRow(value, description)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			m, err := newPreviewModel(cmd.Context(), opts, args, value, description)
			if err != nil {
				return err
			}
			defer m.chart.Destroy()

			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(c.out))
			_, err = p.Run()
			return err
		},
	}
	cmd.ValidArgsFunction = completeDataFile
	cmd.Flags().Float64Var(&value, "value", 50, "starting value when no file is given")
	cmd.Flags().StringVar(&description, "description", "", "description when no file is given")
	return cmd
}

// tickMsg advances a running transition.
type tickMsg time.Time

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	ctx         context.Context
	opts        pipeline.Options
	file        string
	value       float64
	description string

	rec     *sink.Recorder
	chart   *chart.Controller
	frame   sink.Frame
	started time.Time
	now     time.Time
	err     error
}

func newPreviewModel(ctx context.Context, opts pipeline.Options, args []string, value float64, description string) (*previewModel, error) {
	rec := sink.NewRecorder()
	m := &previewModel{
		ctx:         ctx,
		opts:        opts,
		value:       value,
		description: description,
		rec:         rec,
		chart:       pipeline.NewChart(rec, opts),
	}
	if len(args) == 1 {
		m.file = args[0]
		if err := m.reload(); err != nil {
			m.chart.Destroy()
			return nil, err
		}
	}
	m.render(time.Now())
	return m, nil
}

// reload reads value and description from the first row of the file.
func (m *previewModel) reload() error {
	dv, err := dataview.Load(m.file)
	if err != nil {
		return err
	}
	row := dv.FirstRow()
	if row == nil {
		return fmt.Errorf("%s has no rows", m.file)
	}
	ds := dataset.Convert(row, dataset.FixedPicker(0))
	m.value = ds.Primary.Value
	m.description = ds.Primary.Description
	return nil
}

// render updates the chart with the current value and restarts the replay.
func (m *previewModel) render(now time.Time) {
	_, err := m.chart.Update(m.ctx, chart.UpdateOptions{
		Viewport:  chart.Viewport{Width: m.opts.Width, Height: m.opts.Height},
		DataViews: []*dataview.DataView{dataview.FromRow(m.value, m.description)},
	})
	m.err = err
	m.frame = m.rec.Frame()
	m.started, m.now = now, now
}

func (m *previewModel) animating() bool {
	return m.now.Sub(m.started) < m.frame.Span()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *previewModel) Init() tea.Cmd { return tick() }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		wasAnimating := m.animating()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=", "up":
			m.setValue(m.value + 1)
		case "-", "_", "down":
			m.setValue(m.value - 1)
		case "]", "right":
			m.setValue(m.value + 10)
		case "[", "left":
			m.setValue(m.value - 10)
		case "r":
			if m.file == "" {
				return m, nil
			}
			if err := m.reload(); err != nil {
				m.err = err
				return m, nil
			}
			m.render(time.Now())
		default:
			return m, nil
		}
		if !wasAnimating {
			return m, tick()
		}
	case tickMsg:
		m.now = time.Time(msg)
		if m.animating() {
			return m, tick()
		}
	}
	return m, nil
}

// setValue clamps v to the chart's range and renders it.
func (m *previewModel) setValue(v float64) {
	m.value = min(max(v, 0), dataset.Total)
	m.render(time.Now())
}

func (m *previewModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName))
	if m.file != "" {
		b.WriteString(" " + StyleDim.Render(m.file))
	}
	b.WriteString("\n\n")

	b.WriteString(sink.RenderText(m.frame.Snapshot(m.now.Sub(m.started))))

	if m.err != nil {
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	b.WriteString("\n")
	help := "+/- 1  ]/[ 10  q quit"
	if m.file != "" {
		help = "+/- 1  ]/[ 10  r reload  q quit"
	}
	b.WriteString(StyleDim.Render(help))
	b.WriteString("\n")
	return b.String()
}

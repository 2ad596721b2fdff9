package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/pkg/errors"
	"github.com/matzehuels/onepercent/pkg/history"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List past renders or show one",
		Long: `List past renders, newest first, or show the render with the given ID.

Reads the MongoDB store named by history.mongo_uri in the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.Config.History.MongoURI == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "no history store configured; set history.mongo_uri in the config file")
			}
			store, err := c.newHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			if len(args) == 1 {
				e, err := store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return c.printJSON(e)
				}
				c.printEntry(e)
				return nil
			}

			if !cmd.Flags().Changed("limit") {
				limit = c.Config.History.Limit
			}
			entries, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return c.printJSON(entries)
			}
			if len(entries) == 0 {
				printInfo(c.out, "No renders recorded")
				return nil
			}
			fmt.Fprintln(c.out, historyTable(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum entries to list (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

func (c *CLI) printEntry(e history.Entry) {
	printKeyValue(c.out, "ID", e.ID)
	printKeyValue(c.out, "Created", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue(c.out, "Source", e.Source)
	printKeyValue(c.out, "Value", fmt.Sprintf("%g%%", e.Value))
	printKeyValue(c.out, "Description", e.Description)
	printKeyValue(c.out, "Color", lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render(e.Color))
	printKeyValue(c.out, "Viewport", fmt.Sprintf("%gx%g", e.Width, e.Height))
	printKeyValue(c.out, "Formats", strings.Join(e.Formats, ", "))
	printKeyValue(c.out, "Frame", e.FrameHash)
	printKeyValue(c.out, "Cached", fmt.Sprint(e.CacheHit))
}

// historyTable renders entries as a bordered table.
func historyTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			shortID(e.ID),
			e.CreatedAt.Local().Format("Jan 2 15:04"),
			fmt.Sprintf("%g%%", e.Value),
			e.Description,
			strings.Join(e.Formats, ","),
			e.Source,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Value", "Description", "Formats", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(entries) {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(entries[row].Color))
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

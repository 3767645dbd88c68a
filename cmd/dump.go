package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/tracklog/pkg/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	onStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 1, 2)
)

// DumpCommand creates the dump command
func DumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Show the rules from the rule file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "label",
				Usage: "Label printed before the state",
				Value: log.DefaultDumpLabel,
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print the single line state dump instead of the styled report",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return dump(c.String("config"), c.String("label"), c.Bool("plain"))
		},
	}
}

func dump(configPath, label string, plain bool) error {
	s, err := loadSettings(configPath, os.Stdout)
	if err != nil {
		return err
	}

	if plain {
		s.Dump(label)
		return nil
	}

	fmt.Print(renderSnapshot(label, s.Snapshot()))
	return nil
}

// renderSnapshot formats a snapshot as a styled report
func renderSnapshot(label string, snap log.Snapshot) string {
	if label == "" {
		label = log.DefaultDumpLabel
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(capitalize(label)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(capitalize("logging")) + " " + state(snap.Enabled) + "\n\n")

	b.WriteString(renderRules("file rules", snap.Files))
	b.WriteString(renderRules("tag rules", snap.Tags))
	b.WriteString(renderList("known files", snap.KnownFiles))
	b.WriteString(renderList("known tags", snap.KnownTags))

	return b.String()
}

func renderRules(title string, rules map[string]bool) string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		display := name
		if name == log.Wildcard {
			display = name + " " + metaStyle.Render("(fallback)")
		}
		lines = append(lines, state(rules[name])+"  "+display)
	}
	return renderSection(title, lines)
}

func renderList(title string, items []string) string {
	return renderSection(title, items)
}

func renderSection(title string, lines []string) string {
	header := headerStyle.Render(fmt.Sprintf("%s (%d)", capitalize(title), len(lines)))
	if len(lines) == 0 {
		return header + "\n" + sectionStyle.Render(metaStyle.Render("none")) + "\n"
	}
	return header + "\n" + sectionStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func state(on bool) string {
	if on {
		return onStyle.Render("on ")
	}
	return offStyle.Render("off")
}

// titleCaser is stateful; reports are rendered on a single goroutine.
var titleCaser = cases.Title(language.English)

func capitalize(s string) string {
	return titleCaser.String(s)
}

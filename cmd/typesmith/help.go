package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/hlop3z/typesmith/internal/ui"
)

// CommandCategory groups related commands in the root help output.
type CommandCategory struct {
	Title    string
	Commands []CommandInfo
}

// CommandInfo is one command line in the help output.
type CommandInfo struct {
	Name        string
	Description string
}

// renderCategoryHelp prints the categorized root help: title, summary,
// command sections, and the global flag set.
func renderCategoryHelp(title, summary string, categories []CommandCategory, flags *pflag.FlagSet) {
	fmt.Println(ui.Header(title))
	fmt.Println(ui.Dim(summary))
	fmt.Println()

	nameWidth := 0
	for _, cat := range categories {
		for _, cmd := range cat.Commands {
			if len(cmd.Name) > nameWidth {
				nameWidth = len(cmd.Name)
			}
		}
	}

	for _, cat := range categories {
		fmt.Println(ui.Header(cat.Title))
		for _, cmd := range cat.Commands {
			// Pad before styling so ANSI escapes don't skew the columns
			fmt.Printf("  %s  %s\n", ui.Info(padRight(cmd.Name, nameWidth)), cmd.Description)
		}
		fmt.Println()
	}

	type flagLine struct {
		name  string
		usage string
	}
	var lines []flagLine
	flagWidth := 0
	flags.VisitAll(func(f *pflag.Flag) {
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		if len(name) > flagWidth {
			flagWidth = len(name)
		}
		lines = append(lines, flagLine{name, f.Usage})
	})

	fmt.Println(ui.Header("Global Flags"))
	for _, l := range lines {
		fmt.Printf("  %s  %s\n", padRight(l.name, flagWidth), l.usage)
	}
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

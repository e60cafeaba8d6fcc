package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hlop3z/typesmith/internal/tserr"
)

// FormatError formats an error for CLI display in Cargo/rustc style.
// Typesmith errors render with their code, context, and help suggestions;
// anything else falls back to a plain error line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var tsErr *tserr.Error
	if errors.As(err, &tsErr) {
		return formatTypesmithError(tsErr)
	}
	return formatGenericError(err)
}

// formatTypesmithError renders:
//
//	error[E2001]: schema file not found
//	  --> appwrite.json
//	   |
//	   | collection: users
//	help: run `typesmith init` to scaffold a project
func formatTypesmithError(err *tserr.Error) string {
	var b strings.Builder

	ctx := err.GetContext()

	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	if file, _ := ctx["file"].(string); file != "" {
		b.WriteString("  ")
		b.WriteString(stylePipeArrow())
		b.WriteString(" ")
		b.WriteString(FilePath(file))
		b.WriteString("\n")
	}

	// Context details, sorted for stable output
	excluded := map[string]bool{"file": true, "helps": true}
	var keys []string
	for k := range ctx {
		if !excluded[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		for _, k := range keys {
			b.WriteString("   ")
			b.WriteString(Pipe())
			b.WriteString(" ")
			b.WriteString(fmt.Sprintf("%s: %v", k, ctx[k]))
			b.WriteString("\n")
		}
	}

	if cause := err.GetCause(); cause != nil {
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(cleanCauseMessage(cause.Error()))
		b.WriteString("\n")
	}

	for _, help := range err.Helps() {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	return b.String()
}

func stylePipeArrow() string {
	if !EnableColors() {
		return "-->"
	}
	return stylePipe.Render("-->")
}

// cleanCauseMessage strips Goja stack frames from cause lines.
func cleanCauseMessage(msg string) string {
	if idx := strings.Index(msg, " at github.com"); idx != -1 {
		msg = strings.TrimSpace(msg[:idx])
	}
	return msg
}

// formatGenericError formats a non-typesmith error.
func formatGenericError(err error) string {
	var b strings.Builder
	b.WriteString(Error("error"))
	b.WriteString(": ")
	b.WriteString(err.Error())
	b.WriteString("\n")
	return b.String()
}

// FormatSuccess formats a success message.
func FormatSuccess(msg string) string {
	return Success("success") + ": " + msg + "\n"
}

// FormatWarning formats a warning message.
func FormatWarning(msg string) string {
	return Warning("warning") + ": " + msg + "\n"
}

// FormatNote formats a note message.
func FormatNote(msg string) string {
	return Note("note") + ": " + msg + "\n"
}

// FormatHelp formats a help message.
func FormatHelp(msg string) string {
	return Help("help") + ": " + msg + "\n"
}

// FormatKeyValue formats a key-value pair.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", Dim(key), value)
}

// FormatCount formats a count with singular/plural form.
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

package export

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var formatLabels = map[Format]string{
	FormatMarkdown: "Markdown outline",
	FormatSQLite:   "SQLite adjacency list (readable by bwtree)",
	FormatSVG:      "SVG image",
	FormatPNG:      "PNG image",
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// RunWizard asks for the export format, output path and whether to open
// every node. defaults pre-fill the answers.
func RunWizard(defaults Options) (Options, error) {
	opts := defaults
	format := string(opts.Format)
	if format == "" {
		format = string(FormatMarkdown)
	}

	options := make([]huh.Option[string], len(Formats))
	for i, f := range Formats {
		options[i] = huh.NewOption(formatLabels[f], string(f))
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(options...).
				Value(&format),
			huh.NewConfirm().
				Title("Open every node?").
				Description("No exports the rows currently visible").
				Value(&opts.OpenAll),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output path").
				Description("Empty uses tree.md, tree.db, tree.svg or tree.png").
				Value(&opts.Path),
		),
	)
	if err := form.Run(); err != nil {
		return defaults, err
	}

	opts.Format = Format(format)
	if strings.TrimSpace(opts.Path) == "" {
		opts.Path = DefaultPath(opts.Format)
	}
	return opts, validate(opts)
}

func validate(opts Options) error {
	if opts.Path == "" {
		return errors.New("output path is required")
	}
	if _, ok := formatLabels[opts.Format]; !ok {
		return ErrUnsupportedFormat
	}
	return nil
}

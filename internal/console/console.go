// Package console prints the human-facing status lines of the tracker.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const banner = `
                 __|__
          --o--o--(_)--o--o--
     _____________________________
    |  ____   _   _   _           |
    | |  _ \ | | | | | |          |
    | | | | || |_| | | |          |
    | | |_| ||  _  | | |___       |
    | |____/ |_| |_| |_____|      |
    |_____________________________|
`

var (
	dhlRed    = lipgloss.Color("#D40511")
	dhlYellow = lipgloss.Color("#FFCC00")
)

// Printer writes status lines to an output stream. Colors are applied only
// when the stream is a terminal and color is enabled.
type Printer struct {
	out    io.Writer
	alert  lipgloss.Style
	quiet  lipgloss.Style
	banner lipgloss.Style
}

// New creates a Printer writing to w.
func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)

	p := &Printer{
		out:    w,
		alert:  r.NewStyle(),
		quiet:  r.NewStyle(),
		banner: r.NewStyle(),
	}
	if color {
		p.alert = p.alert.Foreground(dhlRed).Bold(true)
		p.quiet = p.quiet.Foreground(dhlYellow)
		p.banner = p.banner.Foreground(dhlYellow).Bold(true)
	}
	return p
}

// Banner prints the startup art and the start message.
func (p *Printer) Banner() {
	p.print(p.banner, banner)
	p.Info(" === DHL tracker will start...soon! === ")
}

// Alert prints msg highlighted, for updates and errors.
func (p *Printer) Alert(msg string) {
	p.print(p.alert, msg)
}

// Quiet prints msg de-emphasized, for "nothing happened" lines.
func (p *Printer) Quiet(msg string) {
	p.print(p.quiet, msg)
}

// Info prints msg without styling.
func (p *Printer) Info(msg string) {
	_, _ = fmt.Fprintln(p.out, msg)
}

// print styles each line on its own so multi-line messages are not padded
// to a common width.
func (p *Printer) print(style lipgloss.Style, msg string) {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	_, _ = fmt.Fprintln(p.out, strings.Join(lines, "\n"))
}

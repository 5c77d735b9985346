package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/awb-tracker/pkg/tracking"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// checkReport is the result of a one-shot check.
type checkReport struct {
	AWB         string                `json:"awb"`
	Latest      *tracking.Checkpoint  `json:"latest"`
	Checkpoints []tracking.Checkpoint `json:"checkpoints"`
}

func newCheckReport(awb string, cps []tracking.Checkpoint) checkReport {
	r := checkReport{AWB: awb, Checkpoints: cps}
	if latest, err := tracking.Latest(cps); err == nil {
		r.Latest = &latest
	}
	return r
}

func printCheckJSON(w io.Writer, r checkReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// printCheckTable lists every checkpoint and marks the latest one with "*".
func printCheckTable(w io.Writer, r checkReport) error {
	tw := newTabWriter(w)
	tw.writef(" \tSTEP\tDATE\tTIME\tLOCATION\tDESCRIPTION\n")
	for i := range r.Checkpoints {
		cp := &r.Checkpoints[i]
		marker := " "
		if r.Latest != nil && cp.Counter == r.Latest.Counter {
			marker = "*"
		}
		tw.writef("%s\t%d\t%s\t%s\t%s\t%s\n",
			marker,
			cp.Counter,
			orDash(cp.Date),
			orDash(cp.Time),
			orDash(cp.Location),
			cp.Description,
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if r.Latest == nil {
		_, err := fmt.Fprintf(w, "\nno checkpoint has step %d, the history may be incomplete\n", len(r.Checkpoints))
		return err
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

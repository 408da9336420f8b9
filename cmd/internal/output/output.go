package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"meety/cmd/internal/domain/entity"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) MeetingTable(meetings []*entity.Meeting) {
	if len(meetings) == 0 {
		f.Info("No meetings found")
		return
	}

	tw := tabwriter.NewWriter(f.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tATTENDEE\tTITLE\tSTATUS")
	for _, m := range meetings {
		status := string(m.Status)
		if m.IsConflict {
			status += " ⚠️"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s-%s\t%s <%s>\t%s\t%s\n", m.MeetingID, m.Date, m.StartTime, m.EndTime, m.AttendeeName, m.Email, m.Title, status)
	}
	_ = tw.Flush()
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/illarion/sealnote/internal/core"
)

// List shows stored notes, newest first. Does not require a password.
func List(ctx context.Context, limit int) {
	box := OpenBox()
	defer box.Close()

	summaries, err := box.List(ctx, limit)
	if err != nil {
		HandleError(err)
	}

	total, err := box.Count()
	if err != nil {
		HandleError(err)
	}

	if len(summaries) == 0 {
		fmt.Println("No sealed notes")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEALED\tEMOTIONS")
	for _, s := range summaries {
		emotions := core.FormatLabels(s.Emotions, s.ConfidenceScores)
		if emotions == "" {
			emotions = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, humanize.Time(s.Timestamp), emotions)
	}
	w.Flush()

	if total > len(summaries) {
		fmt.Printf("\nshowing %d of %d notes\n", len(summaries), total)
	}
}

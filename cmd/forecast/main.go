// Command forecast prints the projected review schedule for a word with
// only successful reviews, starting from a fixed day. It is a sanity
// check of the decay table's shape, not a service endpoint: the reference
// date stays pinned at creation, so each interval should stretch as the
// elapsed time crosses slower decay buckets.
package main

import (
	"fmt"
	"time"

	"github.com/example/vocabhub/internal/retention"
)

func main() {
	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	fmt.Printf("Word created %s, all reviews successful\n\n", created.Format("2006-01-02"))
	fmt.Printf("%-8s %-12s %-10s %-10s %s\n", "review", "date", "interval", "day", "retention")

	anchor := created
	for n := 1; n <= 7; n++ {
		p := retention.Project(anchor, created)
		fmt.Printf("%-8d %-12s %-10d %-10d %.4f\n",
			n,
			p.NextReviewDate.Format("2006-01-02"),
			p.DaysElapsed,
			retention.DaysBetween(created, p.NextReviewDate),
			p.Retention)
		anchor = p.NextReviewDate
	}
}

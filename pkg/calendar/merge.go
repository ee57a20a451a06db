// Package calendar reconciles a participant's busy time from two calendar
// sources into one normalized busy set and resolves it against business
// hours into free intervals.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/korjavin/introscheduler/pkg/interval"
)

// Source identifies which calendar a busy interval came from.
type Source string

const (
	// SourcePrimary is the host organization's calendar.
	SourcePrimary Source = "primary"
	// SourceOverride is the external (client) calendar. When a span of time
	// is contested between sources, the override interval is the one
	// attributed as the reason the participant is busy.
	SourceOverride Source = "override"
)

// ErrInvalidInterval marks busy input whose start is not before its end.
// Such input is rejected at ingestion, never silently corrected.
var ErrInvalidInterval = errors.New("invalid busy interval")

// Busy is one busy interval tagged with the calendar it came from and the
// participant it belongs to.
type Busy struct {
	Window  interval.Interval `json:"window"`
	Source  Source            `json:"source"`
	OwnerID string            `json:"owner_id"`
	Title   string            `json:"title,omitempty"`
}

// NewBusy builds a validated busy interval.
func NewBusy(start, end time.Time, source Source, ownerID, title string) (Busy, error) {
	w, err := interval.New(start, end)
	if err != nil {
		return Busy{}, fmt.Errorf("%w: %s", ErrInvalidInterval, err)
	}
	return Busy{Window: w, Source: source, OwnerID: ownerID, Title: title}, nil
}

// MergeBusy reconciles the two calendar sources of one participant into a
// sorted, non-overlapping busy set.
//
// Busy is busy regardless of source, so the covered time is always the
// union of both inputs. The Source tag on a merged record carries the
// attribution rule: any span that involved an override interval is
// reported as override-sourced.
func MergeBusy(primary, override []Busy) ([]Busy, error) {
	all := make([]Busy, 0, len(primary)+len(override))
	for _, b := range append(append([]Busy{}, primary...), override...) {
		if !b.Window.Start.Before(b.Window.End) {
			return nil, fmt.Errorf("%w: start %s is not before end %s (owner %s)",
				ErrInvalidInterval, b.Window.Start, b.Window.End, b.OwnerID)
		}
		all = append(all, b)
	}

	if len(all) == 0 {
		return []Busy{}, nil
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Window.Start.Equal(all[j].Window.Start) {
			return all[i].Window.End.Before(all[j].Window.End)
		}
		return all[i].Window.Start.Before(all[j].Window.Start)
	})

	merged := []Busy{all[0]}
	for _, b := range all[1:] {
		last := &merged[len(merged)-1]
		if last.Window.Overlaps(b.Window) || last.Window.Adjacent(b.Window) {
			w, err := last.Window.Merge(b.Window)
			if err != nil {
				return nil, err
			}
			last.Window = w
			if b.Source == SourceOverride {
				last.Source = SourceOverride
				last.Title = b.Title
			}
		} else {
			merged = append(merged, b)
		}
	}

	return merged, nil
}

// Windows strips the source tags off a busy set, leaving bare intervals for
// subtraction.
func Windows(busy []Busy) []interval.Interval {
	out := make([]interval.Interval, len(busy))
	for i, b := range busy {
		out[i] = b.Window
	}
	return out
}

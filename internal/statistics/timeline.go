package statistics

import (
	"fmt"
	"sort"

	"github.com/kestrelworks/redline/internal/comparisons"
	"github.com/kestrelworks/redline/internal/versions"
)

// buildTimeline merges version-creation and comparison events into one
// chronological sequence. Ties keep version events ahead of the comparisons
// that reference them.
func buildTimeline(chain []versions.DocumentVersion, cmps []comparisons.Comparison) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(chain)+len(cmps))

	for _, v := range chain {
		ver := v
		num := ver.VersionNumber
		events = append(events, TimelineEvent{
			Type:          EventVersionCreated,
			Timestamp:     ver.UploadedAt,
			VersionID:     &ver.ID,
			VersionNumber: &num,
			Description:   fmt.Sprintf("Version %d uploaded as %s", num, ver.Filename),
		})
	}

	for _, c := range cmps {
		cmp := c
		events = append(events, TimelineEvent{
			Type:         EventComparison,
			Timestamp:    cmp.ComparedAt,
			ComparisonID: &cmp.ID,
			Description:  cmp.Impact.Summary,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Type == EventVersionCreated && events[j].Type == EventComparison
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return events
}

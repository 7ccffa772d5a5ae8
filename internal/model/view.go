package model

import (
	"github.com/ecodeclub/ekit/set"
	"github.com/ecodeclub/ekit/slice"
)

// ExcerptLength is the rune budget of a listing excerpt.
const ExcerptLength = 200

// JobView is a job as the job list renders it.
type JobView struct {
	Job
	Chips      []string `json:"chips"`
	Excerpt    string   `json:"excerpt"`
	DetailPath string   `json:"detailPath"`
	Applied    bool     `json:"applied"`
}

// NewJobViews decorates jobs with their chips, excerpt and detail path, and
// flags the ones whose id is in applied. Order is preserved.
func NewJobViews(jobs []Job, chipKeys []string, applied []int64) []JobView {
	done := set.NewMapSet[int64](len(applied))
	for _, id := range applied {
		done.Add(id)
	}
	return slice.Map(jobs, func(_ int, j Job) JobView {
		return JobView{
			Job:        j,
			Chips:      j.Chips(chipKeys),
			Excerpt:    j.Excerpt(ExcerptLength),
			DetailPath: DetailPath(j.ID),
			Applied:    done.Exist(j.ID),
		}
	})
}

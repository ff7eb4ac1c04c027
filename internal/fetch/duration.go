package fetch

import (
	"github.com/gnzdotmx/ytpappend/internal/utils"
	"github.com/sosodev/duration"
)

// ParseDuration converts an ISO-8601 duration such as "PT2M31S" to whole
// seconds. Empty and unparseable values yield 0.
func ParseDuration(iso string) int64 {
	if iso == "" {
		return 0
	}

	d, err := duration.Parse(iso)
	if err != nil {
		utils.LogWarning("Ignoring invalid duration %q: %v", iso, err)
		return 0
	}

	return int64(d.ToTimeDuration().Seconds())
}

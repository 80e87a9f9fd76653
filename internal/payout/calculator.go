// Package payout implements the deterministic hold/release date engine used
// to decide when funds for a completed pitch become payable.
package payout

import (
	"time"

	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// ReleaseDate computes the hold release timestamp for the given policy,
// workflow type and current time.
//
// When the policy is disabled, or the hold-day table yields zero days, the
// minimum-hold-hours floor applies and the time of day is left untouched.
// Otherwise hold days are added to now (skipping Saturdays and Sundays when
// the policy is business-days-only; the start day itself never counts) and
// the clock component is normalized to the policy's processing time.
func ReleaseDate(policy *entity.PayoutHoldPolicy, workflowType string, now time.Time) time.Time {
	minimumHold := now.Add(time.Duration(policy.MinimumHoldHours) * time.Hour)

	if !policy.Enabled {
		return minimumHold
	}

	holdDays := policy.HoldDaysFor(workflowType)
	if holdDays == 0 {
		return minimumHold
	}

	var release time.Time
	if policy.BusinessDaysOnly {
		release = now
		for counted := 0; counted < holdDays; {
			release = release.AddDate(0, 0, 1)
			if isBusinessDay(release) {
				counted++
			}
		}
	} else {
		release = now.AddDate(0, 0, holdDays)
	}

	return atProcessingTime(release, policy.ProcessingTimeOfDay)
}

// isBusinessDay reports whether t falls on Monday through Friday.
func isBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// atProcessingTime replaces the clock component of t with the "HH:MM"
// processing time, keeping t's date and location. A missing or malformed
// processing time leaves t unchanged.
func atProcessingTime(t time.Time, processingTime string) time.Time {
	parsed, err := time.Parse("15:04", processingTime)
	if err != nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), parsed.Hour(), parsed.Minute(), 0, 0, t.Location())
}

package payout

import (
	"strings"

	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// CanBypass reports whether the actor may skip the payout hold. Bypass
// requires both the policy allowing it and the actor holding the admin
// capability.
func CanBypass(policy *entity.PayoutHoldPolicy, actor *entity.Actor) bool {
	if policy == nil || actor == nil {
		return false
	}
	return policy.AllowAdminBypass && actor.IsAdmin
}

// NormalizeBypassReason trims the reason and reports whether it satisfies
// the policy's reason requirement.
func NormalizeBypassReason(policy *entity.PayoutHoldPolicy, reason string) (string, bool) {
	trimmed := strings.TrimSpace(reason)
	if policy != nil && policy.RequireBypassReason && trimmed == "" {
		return "", false
	}
	return trimmed, true
}

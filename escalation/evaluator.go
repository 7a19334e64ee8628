package escalation

import (
	"time"

	"forumguard/models"
)

// Action is the escalation decision for one thread on one tick.
type Action int

const (
	ActionNone Action = iota
	ActionFireTier1
	ActionFireTier2
)

func (a Action) String() string {
	switch a {
	case ActionFireTier1:
		return "fire_tier_1"
	case ActionFireTier2:
		return "fire_tier_2"
	default:
		return "none"
	}
}

// Evaluate decides which alert tier, if any, is due for a thread of the
// given age. Tier 2 is checked before tier 1 so a very old thread seen
// for the first time jumps straight to the urgent alert without also
// firing the nudge, and a thread whose tier 2 already fired stays quiet
// until its state is reset. holdoff raises the minimum age for both
// tiers; it is zero outside hybrid behavior.
func Evaluate(age, holdoff time.Duration, state models.ThreadEscalationState, settings models.EscalationSettings) Action {
	if age < holdoff {
		return ActionNone
	}

	switch state.Stage() {
	case models.StageTier2:
		return ActionNone
	case models.StageTier1:
		if age >= settings.Tier2Threshold() {
			return ActionFireTier2
		}
		return ActionNone
	default:
		if age >= settings.Tier2Threshold() {
			return ActionFireTier2
		}
		if age >= settings.Tier1Threshold() {
			return ActionFireTier1
		}
		return ActionNone
	}
}

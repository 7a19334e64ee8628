package models

import "time"

// Behavior selects how replies in a thread affect escalation suppression.
type Behavior string

const (
	// BehaviorSupportOnly suppresses escalation only when a support-role
	// member has replied.
	BehaviorSupportOnly Behavior = "support_only"
	// BehaviorCommunityFriendly suppresses escalation when anyone other
	// than the thread owner has replied.
	BehaviorCommunityFriendly Behavior = "community_friendly"
	// BehaviorHybrid suppresses on support replies and defers the tier
	// thresholds after community replies.
	BehaviorHybrid Behavior = "hybrid"
)

// Valid reports whether b is one of the known behaviors.
func (b Behavior) Valid() bool {
	switch b {
	case BehaviorSupportOnly, BehaviorCommunityFriendly, BehaviorHybrid:
		return true
	}
	return false
}

// EscalationSettings is the per-guild escalation configuration. A guild
// without a settings row has escalation disabled.
type EscalationSettings struct {
	GuildID             string
	Tier1Hours          int
	Tier1RoleID         string
	Tier2Hours          int
	Tier2RoleID         string
	EscalationChannelID string
	Enabled             bool
	Behavior            Behavior
	CommunityDelayHours int
	MaxThreadAgeDays    int
}

// Tier1Threshold returns the tier-1 staleness threshold as a duration.
func (s EscalationSettings) Tier1Threshold() time.Duration {
	return time.Duration(s.Tier1Hours) * time.Hour
}

// Tier2Threshold returns the tier-2 staleness threshold as a duration.
func (s EscalationSettings) Tier2Threshold() time.Duration {
	return time.Duration(s.Tier2Hours) * time.Hour
}

// CommunityDelay returns the hybrid-mode deferral window as a duration.
func (s EscalationSettings) CommunityDelay() time.Duration {
	return time.Duration(s.CommunityDelayHours) * time.Hour
}

// MaxThreadAge returns the age cap beyond which threads are no longer
// swept, or zero when no cap is configured.
func (s EscalationSettings) MaxThreadAge() time.Duration {
	if s.MaxThreadAgeDays <= 0 {
		return 0
	}
	return time.Duration(s.MaxThreadAgeDays) * 24 * time.Hour
}

// EscalationStage is the escalation progress of a thread since its last
// reset. It exists so that "tier 2 fired" always reads as terminal, even
// for threads that jumped straight to tier 2.
type EscalationStage int

const (
	// StageNone means no tier has fired.
	StageNone EscalationStage = iota
	// StageTier1 means tier 1 fired and tier 2 is still pending.
	StageTier1
	// StageTier2 means tier 2 fired; escalation is exhausted until reset.
	StageTier2
)

// ThreadEscalationState is the persisted escalation state of one thread.
// An absent row reads as the zero value with only ThreadID set.
type ThreadEscalationState struct {
	ThreadID             string
	GuildID              string
	Tier1Executed        bool
	Tier2Executed        bool
	LastCommunityReplyAt time.Time
}

// Stage collapses the tier flags into the thread's escalation stage.
func (t ThreadEscalationState) Stage() EscalationStage {
	switch {
	case t.Tier2Executed:
		return StageTier2
	case t.Tier1Executed:
		return StageTier1
	default:
		return StageNone
	}
}

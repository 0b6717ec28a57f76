// Package onboarding implements the top-level onboarding flow: the session
// resolver that decides where a returning user resumes, and the controller
// state machine that sequences screens, drives calibration sessions, and
// commits results to the identity store.
package onboarding

// State identifies the current onboarding screen. Exactly one state is
// current at any time.
type State int

const (
	StateUnspecified State = iota
	// StatePortal is the logged-out entry screen.
	StatePortal
	// StateShowcase presents the archetype roster before calibration.
	StateShowcase
	// StateCalibrateIdentity runs the archetype quiz session.
	StateCalibrateIdentity
	// StateRevealIdentity presents the calibrated archetype for acceptance.
	StateRevealIdentity
	// StateCalibrateSkill runs the skill quiz session.
	StateCalibrateSkill
	// StateSynthesize presents the combined archetype + skill identity.
	StateSynthesize
	// StateBuildAvatar hands off to the avatar collaborator.
	StateBuildAvatar
	// StateComplete is the terminal state: onboarding is done.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePortal:
		return "PORTAL"
	case StateShowcase:
		return "SHOWCASE"
	case StateCalibrateIdentity:
		return "CALIBRATE_IDENTITY"
	case StateRevealIdentity:
		return "REVEAL_IDENTITY"
	case StateCalibrateSkill:
		return "CALIBRATE_SKILL"
	case StateSynthesize:
		return "SYNTHESIZE"
	case StateBuildAvatar:
		return "BUILD_AVATAR"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNSPECIFIED"
	}
}

// Cue describes how a state became current. Transition and warp wrappers are
// resolved synchronously by the controller; any pacing they imply belongs to
// the presenter.
type Cue int

const (
	// CueNone is a direct state change.
	CueNone Cue = iota
	// CueTransition is the slow cosmetic wrapper.
	CueTransition
	// CueWarp is the fast cosmetic wrapper.
	CueWarp
)

func (c Cue) String() string {
	switch c {
	case CueTransition:
		return "TRANSITION"
	case CueWarp:
		return "WARP"
	default:
		return "NONE"
	}
}

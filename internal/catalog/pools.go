package catalog

// Option is one selectable answer; it maps to exactly one category.
type Option struct {
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Category Category `json:"category"`
}

// Question is one calibration prompt with its answers.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// ArchetypePool is the archetype-mode master pool. Authored once, never
// mutated at runtime; calibration samples a subset of it per session.
var ArchetypePool = []Question{
	{
		ID:     "arch-01",
		Prompt: "A sealed vault stands between you and the score. First instinct?",
		Options: []Option{
			{Label: "Study the locking protocol until it confesses", Icon: "opt-magnifier", Category: ArchetypeCipher},
			{Label: "Find whoever built it and walk in as them", Icon: "opt-mask", Category: ArchetypeSpecter},
			{Label: "Hit the hinges, not the lock", Icon: "opt-hammer", Category: ArchetypeBreaker},
		},
	},
	{
		ID:     "arch-02",
		Prompt: "Your crew is pinned and the clock is bleeding out. You...",
		Options: []Option{
			{Label: "Call the next three moves before anyone panics", Icon: "opt-eye", Category: ArchetypeOracle},
			{Label: "Carve an exit nobody mapped", Icon: "opt-route", Category: ArchetypeCourier},
			{Label: "Collapse the corridor you pre-rigged last week", Icon: "opt-grid", Category: ArchetypeArchitect},
		},
	},
	{
		ID:     "arch-03",
		Prompt: "A stranger hands you an encrypted drive. What happens tonight?",
		Options: []Option{
			{Label: "It's plaintext by dawn", Icon: "opt-key", Category: ArchetypeCipher},
			{Label: "I trace who touched it before me", Icon: "opt-ghost", Category: ArchetypeSpecter},
			{Label: "I model what they expect me to do with it", Icon: "opt-orrery", Category: ArchetypeOracle},
		},
	},
	{
		ID:     "arch-04",
		Prompt: "Pick the tool you'd keep if you could keep only one.",
		Options: []Option{
			{Label: "A debugger that never lies", Icon: "opt-lens", Category: ArchetypeCipher},
			{Label: "A crowbar with sentimental value", Icon: "opt-crowbar", Category: ArchetypeBreaker},
			{Label: "A bike faster than the response time", Icon: "opt-wing", Category: ArchetypeCourier},
		},
	},
	{
		ID:     "arch-05",
		Prompt: "The city grid goes dark. Your first feeling is...",
		Options: []Option{
			{Label: "Freedom — nobody can see me now", Icon: "opt-mist", Category: ArchetypeSpecter},
			{Label: "Curiosity — who benefits from this?", Icon: "opt-question", Category: ArchetypeOracle},
			{Label: "Professional offense — my grid wouldn't do that", Icon: "opt-tower", Category: ArchetypeArchitect},
		},
	},
	{
		ID:     "arch-06",
		Prompt: "How do you win an argument you can't win?",
		Options: []Option{
			{Label: "Change the terms until the argument is a different one", Icon: "opt-scroll", Category: ArchetypeArchitect},
			{Label: "Escalate until the table flips", Icon: "opt-surge", Category: ArchetypeBreaker},
			{Label: "Leave with the thing being argued over", Icon: "opt-satchel", Category: ArchetypeCourier},
		},
	},
	{
		ID:     "arch-07",
		Prompt: "A rival leaves a taunt in your inbox. Your reply is...",
		Options: []Option{
			{Label: "Their own message, decrypted twice over", Icon: "opt-cipherwheel", Category: ArchetypeCipher},
			{Label: "Nothing. They'll never prove I read it", Icon: "opt-seal", Category: ArchetypeSpecter},
			{Label: "A prediction of their next mistake, timestamped", Icon: "opt-hourglass", Category: ArchetypeOracle},
		},
	},
	{
		ID:     "arch-08",
		Prompt: "The plan survived contact with reality for six minutes. Now what?",
		Options: []Option{
			{Label: "The plan had a plan for this", Icon: "opt-blueprint", Category: ArchetypeArchitect},
			{Label: "Improvise a route through the wreckage", Icon: "opt-compass", Category: ArchetypeCourier},
			{Label: "Reality gets renegotiated, loudly", Icon: "opt-shard", Category: ArchetypeBreaker},
		},
	},
	{
		ID:     "arch-09",
		Prompt: "What do you notice first in a crowded room?",
		Options: []Option{
			{Label: "The pattern in who talks to whom", Icon: "opt-web", Category: ArchetypeOracle},
			{Label: "The exits, ranked by speed", Icon: "opt-door", Category: ArchetypeCourier},
			{Label: "The one camera with a blind spot", Icon: "opt-camera", Category: ArchetypeSpecter},
		},
	},
	{
		ID:     "arch-10",
		Prompt: "Your ideal monument, centuries from now:",
		Options: []Option{
			{Label: "An unbroken code nobody knows I wrote", Icon: "opt-tablet", Category: ArchetypeCipher},
			{Label: "A structure still standing, still strange", Icon: "opt-arch", Category: ArchetypeArchitect},
			{Label: "A wall with a hole shaped like me", Icon: "opt-silhouette", Category: ArchetypeBreaker},
		},
	},
}

// SkillPool is the skill-mode master pool. It is generic across archetypes:
// options map to skill lanes, and the winning lane indexes the archetype's
// skill table row.
var SkillPool = []Question{
	{
		ID:     "skill-01",
		Prompt: "When the job gets hard, you reach for...",
		Options: []Option{
			{Label: "More force", Icon: "opt-fist", Category: LanePower},
			{Label: "A lighter touch", Icon: "opt-feather", Category: LaneFinesse},
			{Label: "More time", Icon: "opt-candle", Category: LaneFocus},
		},
	},
	{
		ID:     "skill-02",
		Prompt: "Your best work happens...",
		Options: []Option{
			{Label: "In one overwhelming push", Icon: "opt-wave", Category: LanePower},
			{Label: "In a single precise moment", Icon: "opt-needle", Category: LaneFinesse},
			{Label: "Across a patient month", Icon: "opt-moon", Category: LaneFocus},
		},
	},
	{
		ID:     "skill-03",
		Prompt: "The mistake you forgive fastest in others:",
		Options: []Option{
			{Label: "Too much, too loud", Icon: "opt-drum", Category: LanePower},
			{Label: "Clever past the point of useful", Icon: "opt-knot", Category: LaneFinesse},
			{Label: "Slow past the point of safe", Icon: "opt-snail", Category: LaneFocus},
		},
	},
}

package bandit

import "strings"

// Profile bundles the epsilon and initial-value settings a bandit is
// constructed with, so callers can pick a named exploration posture instead
// of hand-tuning both numbers.
type Profile struct {
	Name         string
	Description  string
	Epsilon      float64
	InitialValue float64
}

// ProfileExploratory favors discovering which prompt performs best over
// exploiting the current leader — appropriate for a fresh language pack
// with no prior bandit state.
var ProfileExploratory = &Profile{
	Name:         "exploratory",
	Description:  "High exploration rate, suited to a language with no prior bandit history.",
	Epsilon:      0.4,
	InitialValue: 0.5,
}

// ProfileBalanced is the default: the reference implementation's epsilon.
var ProfileBalanced = &Profile{
	Name:         "balanced",
	Description:  "Default exploration/exploitation balance.",
	Epsilon:      0.2,
	InitialValue: 0.5,
}

// ProfileGreedy mostly exploits the current best prompt, appropriate once a
// language pack has accumulated enough selections to trust its estimates.
var ProfileGreedy = &Profile{
	Name:         "greedy",
	Description:  "Low exploration rate, suited to a mature bandit with stable value estimates.",
	Epsilon:      0.05,
	InitialValue: 0.5,
}

// GetProfile returns a named profile, defaulting to ProfileBalanced for an
// unrecognized or empty name.
func GetProfile(name string) *Profile {
	switch strings.ToLower(name) {
	case "exploratory", "explore":
		return ProfileExploratory
	case "balanced", "default", "":
		return ProfileBalanced
	case "greedy", "exploit":
		return ProfileGreedy
	default:
		return ProfileBalanced
	}
}

// NewFromProfile constructs a Bandit over prompts using profile's epsilon
// and initial value.
func NewFromProfile(prompts []string, profile *Profile) *Bandit {
	if profile == nil {
		profile = ProfileBalanced
	}
	return New(prompts, profile.Epsilon, profile.InitialValue)
}

package models

type Profile string

const (
	ProfileBreadth Profile = "bedrock-haiku3" // broad exploration, cheap tokens
	ProfilePremium Profile = "premium"        // confirmation-oriented reasoning
)

// DefaultProfiles is the comparison order used when no config overrides it.
// The first entry is the baseline every other profile is diffed against.
var DefaultProfiles = []Profile{ProfileBreadth, ProfilePremium}

// Record is one (target, profile) benchmark outcome as written by the harness.
type Record struct {
	Target           string   `json:"target"`
	Profile          Profile  `json:"profile"`
	Findings         []string `json:"findings"`
	TokensUsed       int64    `json:"tokens_used"`
	EstimatedCostUSD float64  `json:"estimated_cost_usd"`
}

func (r Record) Key() string {
	return r.Target + "/" + string(r.Profile)
}

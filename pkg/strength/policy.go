package strength

// DefaultAccountType is used when the caller names no account type or an unknown one.
const DefaultAccountType = "general"

// Policy is the minimum-security ruleset for an account tier.
type Policy struct {
	Name              string `json:"name" yaml:"name"`
	MinScore          int    `json:"min_score" yaml:"min_score"`
	MinLength         int    `json:"min_length" yaml:"min_length"`
	RequiresUppercase bool   `json:"requires_uppercase" yaml:"requires_uppercase"`
	RequiresLowercase bool   `json:"requires_lowercase" yaml:"requires_lowercase"`
	RequiresNumbers   bool   `json:"requires_numbers" yaml:"requires_numbers"`
	RequiresSymbols   bool   `json:"requires_symbols" yaml:"requires_symbols"`
}

var policyKeys = []string{"general", "social", "financial", "critical"}

var policies = map[string]Policy{
	"general": {
		Name:              "General",
		MinScore:          30,
		MinLength:         8,
		RequiresLowercase: true,
	},
	"social": {
		Name:              "Social Media",
		MinScore:          50,
		MinLength:         10,
		RequiresUppercase: true,
		RequiresLowercase: true,
		RequiresNumbers:   true,
	},
	"financial": {
		Name:              "Financial/Banking",
		MinScore:          80,
		MinLength:         12,
		RequiresUppercase: true,
		RequiresLowercase: true,
		RequiresNumbers:   true,
		RequiresSymbols:   true,
	},
	"critical": {
		Name:              "Critical Infrastructure",
		MinScore:          90,
		MinLength:         16,
		RequiresUppercase: true,
		RequiresLowercase: true,
		RequiresNumbers:   true,
		RequiresSymbols:   true,
	},
}

// Policies returns a snapshot of the account policy table. Mutating the
// returned map does not affect later lookups.
func Policies() map[string]Policy {
	out := make(map[string]Policy, len(policies))
	for k, p := range policies {
		out[k] = p
	}
	return out
}

// PolicyKeys lists the account types from least to most strict.
func PolicyKeys() []string {
	keys := make([]string, len(policyKeys))
	copy(keys, policyKeys)
	return keys
}

// PolicyFor resolves an account type to its policy, falling back to
// DefaultAccountType. The resolved key is returned alongside.
func PolicyFor(accountType string) (Policy, string) {
	if p, ok := policies[accountType]; ok {
		return p, accountType
	}
	return policies[DefaultAccountType], DefaultAccountType
}

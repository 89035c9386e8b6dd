package enums

import "fmt"

// SubscriptionPlan identifies a billing tier.
type SubscriptionPlan string

const (
	SubscriptionPlanStarter    SubscriptionPlan = "starter"
	SubscriptionPlanPro        SubscriptionPlan = "pro"
	SubscriptionPlanEnterprise SubscriptionPlan = "enterprise"
)

var validSubscriptionPlans = []SubscriptionPlan{
	SubscriptionPlanStarter,
	SubscriptionPlanPro,
	SubscriptionPlanEnterprise,
}

// planRank orders plans for upgrade/downgrade comparison.
var planRank = map[SubscriptionPlan]int{
	SubscriptionPlanStarter:    1,
	SubscriptionPlanPro:        2,
	SubscriptionPlanEnterprise: 3,
}

// String implements fmt.Stringer.
func (p SubscriptionPlan) String() string {
	return string(p)
}

// IsValid reports whether the value is a known SubscriptionPlan.
func (p SubscriptionPlan) IsValid() bool {
	for _, candidate := range validSubscriptionPlans {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsUpgradeFrom reports whether p is a strictly higher tier than other.
func (p SubscriptionPlan) IsUpgradeFrom(other SubscriptionPlan) bool {
	return planRank[p] > planRank[other]
}

// ParseSubscriptionPlan converts raw input into a SubscriptionPlan.
func ParseSubscriptionPlan(value string) (SubscriptionPlan, error) {
	for _, candidate := range validSubscriptionPlans {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription plan %q", value)
}

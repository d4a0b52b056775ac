package billing

// Plan describes a purchasable credit package.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	PriceUSD int      `json:"price_usd"`
	Credits  int      `json:"credits"`
	Monthly  bool     `json:"monthly"`
	Features []string `json:"features"`
}

// Plans is the static catalog shown on the billing page. Payment capture
// happens with the external payment provider; this service only records the
// resulting credit grant.
var Plans = []Plan{
	{
		ID:       "free",
		Name:     "Free",
		PriceUSD: 0,
		Credits:  10,
		Monthly:  false,
		Features: []string{"10 lifetime credits", "Basic search", "Personal lists"},
	},
	{
		ID:       "pro",
		Name:     "Pro",
		PriceUSD: 29,
		Credits:  500,
		Monthly:  true,
		Features: []string{"500 monthly credits", "Advanced filters", "Team sharing", "CSV export"},
	},
	{
		ID:       "growth",
		Name:     "Growth",
		PriceUSD: 99,
		Credits:  2000,
		Monthly:  true,
		Features: []string{"2000 monthly credits", "All features", "Priority support", "API access"},
	},
	{
		ID:       "enterprise",
		Name:     "Enterprise",
		PriceUSD: 299,
		Credits:  10000,
		Monthly:  true,
		Features: []string{"10000 monthly credits", "Custom integrations", "Dedicated support", "White-label"},
	},
}

// PlanByID returns the plan for the given id, or nil.
func PlanByID(id string) *Plan {
	for i := range Plans {
		if Plans[i].ID == id {
			return &Plans[i]
		}
	}
	return nil
}

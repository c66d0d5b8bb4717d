package domain

// SponsorDeal is a fixed sponsorship tier.
type SponsorDeal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DurationDays int     `json:"duration_days"`
	PriceUSD     float64 `json:"price_usd"`
}

// VerificationDeal is a fixed verification badge tier.
type VerificationDeal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CostUSD      float64 `json:"cost_usd"`
	DurationDays int     `json:"duration_days"`
}

var SponsorDeals = []SponsorDeal{
	{ID: "deal-1", Name: "1 Week Standard", DurationDays: 7, PriceUSD: 100.00},
	{ID: "deal-2", Name: "2 Week Premium", DurationDays: 14, PriceUSD: 180.00},
	{ID: "deal-3", Name: "1 Month Platinum", DurationDays: 30, PriceUSD: 350.00},
}

var VerificationDeals = []VerificationDeal{
	{ID: "badge-1", Name: "1 Year Standard Badge", CostUSD: 25.00, DurationDays: 365},
	{ID: "badge-2", Name: "Lifetime Badge", CostUSD: 150.00, DurationDays: 9999},
}

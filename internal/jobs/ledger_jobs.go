package jobs

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"kindnessconnect-backend/internal/domain"
)

// ReconcileLedger compares every campaign's collected amount with the sum of its donations
// and logs each mismatch. Amounts are compared in cents.
func (jr *JobRunner) ReconcileLedger() {
	jr.runWithRecovery("ReconcileLedger", func(ctx context.Context) {
		drifts, err := jr.FindLedgerDrift(ctx)
		if err != nil {
			jr.log.ErrorContext(ctx, "Failed to reconcile ledger", "error", err)
			return
		}
		for _, d := range drifts {
			jr.log.WarnContext(ctx, "Collected amount does not match donations",
				"campaign_id", d.CampaignID,
				"collected", d.Collected,
				"donations_total", d.DonationsTotal,
				"donation_count", d.DonationCount)
		}
		jr.log.InfoContext(ctx, "Ledger reconciliation finished", "drifted_campaigns", len(drifts))
	})
}

// FindLedgerDrift returns the campaigns whose collected amount differs from the total of
// their donations, in campaign listing order.
func (jr *JobRunner) FindLedgerDrift(ctx context.Context) ([]domain.LedgerDrift, error) {
	campaigns, err := jr.repos.Campaigns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	var drifts []domain.LedgerDrift
	for _, c := range campaigns {
		donations, err := jr.repos.Donations.ListByCampaign(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list donations for %s: %w", c.ID, err)
		}

		total := decimal.Zero
		for _, d := range donations {
			total = total.Add(decimal.NewFromFloat(d.Amount))
		}

		collected := decimal.NewFromFloat(c.CollectedAmount).Round(2)
		if collected.Equal(total.Round(2)) {
			continue
		}
		drifts = append(drifts, domain.LedgerDrift{
			CampaignID:     c.ID,
			Collected:      collected.InexactFloat64(),
			DonationsTotal: total.Round(2).InexactFloat64(),
			DonationCount:  len(donations),
		})
	}
	return drifts, nil
}

package jobs

import (
	"context"
	"fmt"
)

// AuditThemeExclusivity logs when more than one sponsor theme is active. Sponsor
// activation is not atomic, so a failed deactivation can leave a second theme on.
func (jr *JobRunner) AuditThemeExclusivity() {
	jr.runWithRecovery("AuditThemeExclusivity", func(ctx context.Context) {
		ids, err := jr.ActiveThemeConflicts(ctx)
		if err != nil {
			jr.log.ErrorContext(ctx, "Failed to audit sponsor themes", "error", err)
			return
		}
		if len(ids) > 0 {
			jr.log.WarnContext(ctx, "Multiple sponsor themes are active", "sponsor_ids", ids)
		}
	})
}

// ActiveThemeConflicts returns the ids of the active sponsors when there is more than one.
func (jr *JobRunner) ActiveThemeConflicts(ctx context.Context) ([]string, error) {
	active, err := jr.repos.Sponsors.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active sponsors: %w", err)
	}
	if len(active) <= 1 {
		return nil, nil
	}
	ids := make([]string, 0, len(active))
	for _, s := range active {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

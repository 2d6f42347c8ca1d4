package processors

import (
	"strings"

	"github.com/username/fundfolio/backend/src/models"
)

// The fund's ledger labels movements inconsistently: Spanish and English
// spellings, diacritics present or stripped, hyphens for spaces, and a
// long-standing "comission" typo on referral rows. Classification happens
// here once so the aggregators only ever see canonical kinds.

// ClassifyMovement maps a raw movement label to its canonical kind.
// Unrecognized labels map to MovementOther; the function never fails.
func ClassifyMovement(raw string) models.MovementKind {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "depósito", "deposito", "deposit":
		return models.MovementDeposit
	case "retiro", "withdrawal", "withdraw":
		return models.MovementWithdrawal
	case "operating_result":
		return models.MovementOperatingResult
	}
	collapsed := collapseSeparators(normalized)
	if collapsed == "referral commission" || collapsed == "referral comission" {
		return models.MovementReferralCommission
	}
	return models.MovementOther
}

// ClassifyStatus maps a raw status label to its canonical kind.
func ClassifyStatus(raw string) models.StatusKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completado", "completed":
		return models.StatusCompleted
	case "pendiente", "pending":
		return models.StatusPending
	default:
		return models.StatusOther
	}
}

// collapseSeparators rewrites hyphens and underscores as spaces and squeezes
// runs of whitespace down to a single space.
func collapseSeparators(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

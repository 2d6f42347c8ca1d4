package processors

import (
	"testing"

	"github.com/username/fundfolio/backend/src/models"
)

func TestClassifyMovement(t *testing.T) {
	tests := []struct {
		raw  string
		want models.MovementKind
	}{
		{"depósito", models.MovementDeposit},
		{"deposito", models.MovementDeposit},
		{"deposit", models.MovementDeposit},
		{"DEPOSIT", models.MovementDeposit},
		{"  Depósito  ", models.MovementDeposit},
		{"retiro", models.MovementWithdrawal},
		{"withdrawal", models.MovementWithdrawal},
		{"withdraw", models.MovementWithdrawal},
		{"RETIRO", models.MovementWithdrawal},
		{"operating_result", models.MovementOperatingResult},
		{"OPERATING_RESULT", models.MovementOperatingResult},
		{"Operating_Result", models.MovementOperatingResult},
		{"referral commission", models.MovementReferralCommission},
		{"referral comission", models.MovementReferralCommission},
		{"Referral-Commission", models.MovementReferralCommission},
		{"REFERRAL_COMISSION", models.MovementReferralCommission},
		{"referral   commission", models.MovementReferralCommission},
		{"bonus", models.MovementOther},
		{"", models.MovementOther},
		{"depósitos", models.MovementOther},
	}
	for _, tt := range tests {
		if got := ClassifyMovement(tt.raw); got != tt.want {
			t.Errorf("ClassifyMovement(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.StatusKind
	}{
		{"completado", models.StatusCompleted},
		{"completed", models.StatusCompleted},
		{"COMPLETED", models.StatusCompleted},
		{" Completado ", models.StatusCompleted},
		{"pendiente", models.StatusPending},
		{"pending", models.StatusPending},
		{"PENDIENTE", models.StatusPending},
		{"cancelled", models.StatusOther},
		{"", models.StatusOther},
	}
	for _, tt := range tests {
		if got := ClassifyStatus(tt.raw); got != tt.want {
			t.Errorf("ClassifyStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

package enums

import (
	"testing"
	"time"

	"github.com/delanoso/safetyhub/pkg/types"
)

func TestDesignationListIsFixed(t *testing.T) {
	if len(ValidDesignations) != 35 {
		t.Fatalf("expected 35 designations, got %d", len(ValidDesignations))
	}
	if !Designation("First Aider").IsValid() {
		t.Fatalf("First Aider must be a valid designation")
	}
	if Designation("Chief Fun Officer").IsValid() {
		t.Fatalf("unknown designation accepted")
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	if err != nil || role != RoleAdmin {
		t.Fatalf("unexpected parse result %v %v", role, err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if RoleUser.CanManage() || !RoleSuper.CanManage() {
		t.Fatalf("unexpected CanManage result")
	}
}

func TestElectionStatusOnlyMovesForward(t *testing.T) {
	cases := []struct {
		from, to ElectionStatus
		ok       bool
	}{
		{ElectionStatusDraft, ElectionStatusVotingOpen, true},
		{ElectionStatusVotingOpen, ElectionStatusVotingClosed, true},
		{ElectionStatusDraft, ElectionStatusVotingClosed, false},
		{ElectionStatusVotingClosed, ElectionStatusVotingOpen, false},
		{ElectionStatusVotingOpen, ElectionStatusDraft, false},
		{ElectionStatusDraft, "archived", false},
	}
	for _, tc := range cases {
		if got := tc.from.CanMoveTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestMaintenanceFrequencyNext(t *testing.T) {
	from, _ := types.ParseDate("2024-01-15")
	cases := map[MaintenanceFrequency]string{
		FrequencyWeekly:     "2024-01-22",
		FrequencyMonthly:    "2024-02-15",
		FrequencyQuarterly:  "2024-04-15",
		FrequencyBiannually: "2024-07-15",
		FrequencyAnnually:   "2025-01-15",
	}
	for freq, want := range cases {
		if got := freq.Next(from).String(); got != want {
			t.Fatalf("%s: expected %s got %s", freq, want, got)
		}
	}
}

func TestNormalizeRiskLevel(t *testing.T) {
	if NormalizeRiskLevel(" HIGH ") != RiskLevelHigh {
		t.Fatalf("expected high")
	}
	if NormalizeRiskLevel("critical") != RiskLevelExtreme {
		t.Fatalf("expected critical to map to extreme")
	}
	if NormalizeRiskLevel("unclear") != RiskLevelMedium {
		t.Fatalf("expected fallback to medium")
	}
}

func TestSigningPartyPendingStatus(t *testing.T) {
	if SigningPartyAppointer.PendingStatus() != AppointmentStatusPendingAppointer {
		t.Fatalf("unexpected appointer pending status")
	}
	if SigningPartyAppointee.PendingStatus() != AppointmentStatusPendingAppointee {
		t.Fatalf("unexpected appointee pending status")
	}
}

func TestParseUploadFolder(t *testing.T) {
	got, err := ParseUploadFolder("")
	if err != nil || got != UploadFolderGeneral {
		t.Fatalf("expected default folder, got %q err %v", got, err)
	}
	if _, err := ParseUploadFolder("../etc"); err == nil {
		t.Fatalf("expected unknown folder to be rejected")
	}
}

func TestExpiryStatusOn(t *testing.T) {
	today := types.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	cases := []struct {
		expiry types.Date
		want   ExpiryStatus
	}{
		{today.AddDays(-1), ExpiryStatusExpired},
		{today, ExpiryStatusExpiring},
		{today.AddDays(30), ExpiryStatusExpiring},
		{today.AddDays(31), ExpiryStatusValid},
	}
	for _, tc := range cases {
		if got := ExpiryStatusOn(tc.expiry, today); got != tc.want {
			t.Errorf("expiry %s: got %s want %s", tc.expiry, got, tc.want)
		}
	}
}

func TestInspectionEffectiveStatus(t *testing.T) {
	today := types.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if got := InspectionStatusScheduled.Effective(today.AddDays(-1), today); got != InspectionStatusOverdue {
		t.Fatalf("expected overdue, got %s", got)
	}
	if got := InspectionStatusScheduled.Effective(today, today); got != InspectionStatusScheduled {
		t.Fatalf("expected scheduled for today, got %s", got)
	}
	if got := InspectionStatusCompleted.Effective(today.AddDays(-10), today); got != InspectionStatusCompleted {
		t.Fatalf("completed must stay completed, got %s", got)
	}
}

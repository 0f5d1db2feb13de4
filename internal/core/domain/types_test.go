package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"employee", RoleEmployee, false},
		{"manager", RoleManager, false},
		{"", RoleEmployee, false},
		{"admin", "", true},
		{"Employee", "", true},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseRole(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestParseClientType(t *testing.T) {
	cases := []struct {
		in      string
		want    ClientType
		wantErr bool
	}{
		{"direct", ClientTypeDirect, false},
		{"employee_registered", ClientTypeEmployeeRegistered, false},
		{"", ClientTypeDirect, false},
		{"walkin", "", true},
	}

	for _, tc := range cases {
		got, err := ParseClientType(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClientType(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseClientType(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestApprovalTransitions(t *testing.T) {
	cases := []struct {
		from ApprovalStatus
		to   ApprovalStatus
		want bool
	}{
		{ApprovalPending, ApprovalApproved, true},
		{ApprovalPending, ApprovalRejected, true},
		{ApprovalPending, ApprovalPending, true},
		{ApprovalApproved, ApprovalRejected, false},
		{ApprovalApproved, ApprovalPending, false},
		{ApprovalRejected, ApprovalApproved, false},
		{ApprovalPending, ApprovalStatus("cancelled"), false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCompletenessError(t *testing.T) {
	err := &CompletenessError{Missing: []string{"cibil_score", "pan_card"}}

	completeness, ok := AsCompleteness(err)
	if !ok {
		t.Fatal("AsCompleteness failed on a completeness error")
	}
	if len(completeness.Missing) != 2 {
		t.Fatalf("missing = %v", completeness.Missing)
	}

	if _, ok := AsCompleteness(ErrNotFound); ok {
		t.Fatal("AsCompleteness matched an unrelated error")
	}
}

package model

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role    string
		minimum string
		want    bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleGuest, true},
		{RoleLeader, RoleAdmin, false},
		{RoleLeader, RoleMember, true},
		{RoleMember, RoleLeader, false},
		{RoleGuest, RoleGuest, true},
		{"", RoleGuest, false},
		{"", RoleAdmin, false},
		{"bogus", RoleGuest, false},
	}

	for _, tt := range tests {
		if got := RoleAtLeast(tt.role, tt.minimum); got != tt.want {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.want)
		}
	}
}

func TestFullName(t *testing.T) {
	u := &User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}
	if got := u.FullName(); got != "Jane Doe" {
		t.Errorf("expected 'Jane Doe', got %q", got)
	}

	// Falls back to the username when the profile has no name.
	u = &User{Username: "jdoe"}
	if got := u.FullName(); got != "jdoe" {
		t.Errorf("expected 'jdoe', got %q", got)
	}

	u = &User{Username: "jdoe", FirstName: "Jane"}
	if got := u.FullName(); got != "Jane" {
		t.Errorf("expected 'Jane', got %q", got)
	}
}

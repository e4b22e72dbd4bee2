package models

import "testing"

func TestUserModelValid(t *testing.T) {
	t.Parallel()
	if !UserModelUser.Valid() || !UserModelTeamMember.Valid() {
		t.Error("known discriminators rejected")
	}
	for _, bad := range []UserModel{"", "user", "Admin"} {
		if bad.Valid() {
			t.Errorf("UserModel(%q).Valid() = true", bad)
		}
	}
}

func TestPrincipalVariant(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		p    Principal
		want PrincipalVariant
	}{
		{
			"user is always admin-or-manager",
			Principal{Model: UserModelUser, User: &User{Role: RoleManager}},
			VariantAdminOrManager,
		},
		{
			"member with manager role is promoted",
			Principal{Model: UserModelTeamMember, Member: &TeamMember{Role: RoleManager}},
			VariantAdminOrManager,
		},
		{
			"member with employee role",
			Principal{Model: UserModelTeamMember, Member: &TeamMember{Role: RoleEmployee}},
			VariantEmployee,
		},
	}
	for _, tt := range tests {
		if got := tt.p.Variant(); got != tt.want {
			t.Errorf("%s: Variant() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPrincipalAccessorsFollowModel(t *testing.T) {
	t.Parallel()
	p := Principal{
		Model: UserModelTeamMember,
		Member: &TeamMember{
			Email:    "ana@example.com",
			Role:     RoleEmployee,
			Password: "$2a$10$hash",
		},
	}
	if p.Email() != "ana@example.com" {
		t.Errorf("Email() = %q", p.Email())
	}
	if p.Role() != RoleEmployee {
		t.Errorf("Role() = %q", p.Role())
	}
	if p.HashedPassword() != "$2a$10$hash" {
		t.Errorf("HashedPassword() = %q", p.HashedPassword())
	}

	var empty Principal
	if empty.Email() != "" || empty.Role() != "" || !empty.ID().IsZero() {
		t.Error("zero principal leaked data")
	}
}

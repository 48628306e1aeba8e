package authz

import "testing"

func TestMatchPattern_Exact(t *testing.T) {
	if !MatchPattern("article:read", "article:read") {
		t.Error("exact pattern should match")
	}
	if MatchPattern("article:read", "article:write") {
		t.Error("different action should not match")
	}
}

func TestMatchPattern_Wildcards(t *testing.T) {
	cases := []struct {
		pattern  string
		required string
		want     bool
	}{
		{"*:*", "article:read", true},
		{"*", "anything", true},
		{"article:*", "article:write", true},
		{"article:*", "media:write", false},
		{"*:read", "article:read", true},
		{"*:read", "article:write", false},
		{"admin", "admin", true},
		{"admin", "editor", false},
	}
	for _, tc := range cases {
		if got := MatchPattern(tc.pattern, tc.required); got != tc.want {
			t.Errorf("MatchPattern(%q, %q) = %v, want %v", tc.pattern, tc.required, got, tc.want)
		}
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"article:*", "media:read"}
	if !MatchAny(patterns, "article:delete") {
		t.Error("expected article:* to match article:delete")
	}
	if MatchAny(patterns, "media:write") {
		t.Error("media:write should not match")
	}
}

func TestMapChecker_HasPermission(t *testing.T) {
	checker := NewMapChecker(map[string][]string{
		"admin":  {"*:*"},
		"editor": {"article:*", "media:read"},
	})
	if !checker.HasPermission("admin", "article:delete") {
		t.Error("admin should have article:delete")
	}
	if !checker.HasPermission("editor", "article:write") {
		t.Error("editor should have article:write")
	}
	if checker.HasPermission("editor", "media:write") {
		t.Error("editor should not have media:write")
	}
	if checker.HasPermission("unknown", "article:read") {
		t.Error("unknown subject should have nothing")
	}
}

func TestCheckerFunc_Adapter(t *testing.T) {
	var checker Checker = CheckerFunc(func(subject, permission string) bool {
		return subject == "root"
	})
	if !checker.HasPermission("root", "anything") {
		t.Error("root should pass")
	}
	if checker.HasPermission("guest", "anything") {
		t.Error("guest should fail")
	}
}

func TestDenyAllChecker(t *testing.T) {
	var checker Checker = DenyAllChecker{}
	if checker.HasPermission("admin", "*:*") {
		t.Error("DenyAllChecker should deny everything")
	}
}

func TestHasRole_PrefixApplied(t *testing.T) {
	granted := []string{"ROLE_ADMIN", "ROLE_AUDIT"}
	if !HasRole(granted, "ADMIN", DefaultRolePrefix) {
		t.Error("bare name should match prefixed grant")
	}
	if !HasRole(granted, "ROLE_ADMIN", DefaultRolePrefix) {
		t.Error("already-prefixed name should not be double-prefixed")
	}
	if HasRole(granted, "USER", DefaultRolePrefix) {
		t.Error("USER is not granted")
	}
}

func TestHasRole_EmptyPrefix(t *testing.T) {
	granted := []string{"admin"}
	if !HasRole(granted, "admin", "") {
		t.Error("empty prefix should compare names as-is")
	}
	if HasRole(granted, "ROLE_admin", "") {
		t.Error("no implicit prefixing with empty prefix")
	}
}

func TestHasAnyRole(t *testing.T) {
	granted := []string{"ROLE_USER"}
	if !HasAnyRole(granted, []string{"ADMIN", "USER"}, DefaultRolePrefix) {
		t.Error("expected USER to match")
	}
	if HasAnyRole(granted, []string{"ADMIN", "AUDIT"}, DefaultRolePrefix) {
		t.Error("no listed role is granted")
	}
}

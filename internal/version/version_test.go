package version

import "testing"

func TestSupportedDeclKinds(t *testing.T) {
	got := SupportedDeclKinds()
	want := "access_provider, collection, function, role"
	if got != want {
		t.Errorf("SupportedDeclKinds() = %q, want %q", got, want)
	}
}

func TestInfo_IncludesSupportedDeclKinds(t *testing.T) {
	out := Info()
	if !contains(out, "supported declarations: access_provider") {
		t.Errorf("Info() = %q, want it to include the supported declaration kinds", out)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

package version

import "testing"

func withBuild(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	t.Cleanup(func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, Commit, BuildTime = version, commit, buildTime
}

func TestString(t *testing.T) {
	withBuild(t, "1.2.3", "abc1234", "2024-01-01T00:00:00Z")

	want := "1.2.3 (abc1234) built 2024-01-01T00:00:00Z"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLabels(t *testing.T) {
	withBuild(t, "dev", "unknown", "unknown")

	labels := Labels()
	if len(labels) != 3 {
		t.Fatalf("len(Labels()) = %d, want 3", len(labels))
	}
	if labels["version"] != "dev" {
		t.Errorf("version = %q, want %q", labels["version"], "dev")
	}
	if labels["commit"] != "unknown" {
		t.Errorf("commit = %q, want %q", labels["commit"], "unknown")
	}
}

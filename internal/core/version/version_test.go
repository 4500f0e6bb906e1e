package version

import (
	"testing"

	kit "rolegate/internal/platform/testkit"
)

func TestInfo(t *testing.T) {
	kit.Swap(t, &version, "v1.2.3")
	kit.Swap(t, &commit, "abc123")

	bi := Info("rolegate-api")
	if bi.Service != "rolegate-api" || bi.Version != "v1.2.3" || bi.Commit != "abc123" {
		t.Fatalf("Info mismatch: %+v", bi)
	}
}

func TestInfoFallsBackToVCS(t *testing.T) {
	kit.Swap(t, &commit, "none")
	if bi := Info("x"); bi.Commit == "" {
		t.Fatalf("commit should never be empty")
	}
}

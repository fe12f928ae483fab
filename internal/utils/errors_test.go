package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorKindThroughWrapping(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("set filter: %w", NewAppError("dashboard.SetFilter", KindInvalid, "unknown field", base))

	if KindOf(err) != KindInvalid {
		t.Fatalf("expected invalid kind, got %s", KindOf(err))
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected cause to unwrap")
	}
	if KindOf(base) != KindInternal {
		t.Fatalf("plain errors should classify as internal")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("WARNING").String() != "WARN" {
		t.Fatalf("expected warn level")
	}
	if ParseLevel("bogus").String() != "INFO" {
		t.Fatalf("expected default info level")
	}
}

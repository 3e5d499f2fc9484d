//go:build linux

package bench

import "testing"

func TestTimedRunCapturesExitStatus(t *testing.T) {
	wall, _, _, _, status, err := TimedRun([]string{"/bin/sh", "-c", "exit 0"})
	if err != nil {
		t.Fatal(err)
	}
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if wall <= 0 {
		t.Fatalf("wall = %v, want > 0", wall)
	}

	_, _, _, _, status, err = TimedRun([]string{"/bin/sh", "-c", "exit 3"})
	if err != nil {
		t.Fatal(err)
	}
	if status != 3 {
		t.Fatalf("status = %d, want 3", status)
	}
}

func TestTimedRunEmptyCommand(t *testing.T) {
	if _, _, _, _, _, err := TimedRun(nil); err == nil {
		t.Fatal("empty command accepted")
	}
}

func TestRunVariantFailsOnNonZeroExit(t *testing.T) {
	v := Variant{Name: "fails", Command: []string{"/bin/sh", "-c", "exit 1"}}
	if _, err := RunVariant(v, 1, nil, ""); err == nil {
		t.Fatal("non-zero exit not reported")
	}
}

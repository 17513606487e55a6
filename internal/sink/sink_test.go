package sink

import (
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
)

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "sink-*")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func sameTargets(a, b Targets) bool {
	return a.Stdout == b.Stdout && a.Stderr == b.Stderr &&
		a.ColorOutput == b.ColorOutput && a.ColorError == b.ColorError
}

func TestAcquireInstallRelease(t *testing.T) {
	before := Current()

	slot, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer slot.Release()
	if !sameTargets(slot.Saved(), before) {
		t.Fatal("Saved() does not match the targets at acquisition")
	}

	out, errFile := tempFile(t), tempFile(t)
	slot.Install(out, errFile)
	if os.Stdout != out || os.Stderr != errFile {
		t.Fatal("Install did not replace os.Stdout/os.Stderr")
	}
	if color.Output != out || color.Error != errFile {
		t.Fatal("Install did not replace color.Output/color.Error")
	}

	// A second install must not disturb the snapshot.
	out2, errFile2 := tempFile(t), tempFile(t)
	slot.Install(out2, errFile2)
	if !sameTargets(slot.Saved(), before) {
		t.Fatal("Saved() changed after a second Install")
	}

	slot.Release()
	if !sameTargets(Current(), before) {
		t.Fatal("Release did not restore the original targets")
	}
}

func TestAcquireWhileHeld(t *testing.T) {
	slot, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer slot.Release()

	if _, err := Acquire(); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Acquire error = %v, want ErrBusy", err)
	}
}

func TestReleaseTwice(t *testing.T) {
	before := Current()
	slot, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	slot.Release()

	other, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire after Release: %v", err)
	}
	defer other.Release()
	other.Install(tempFile(t), tempFile(t))

	// The stale slot must neither restore targets nor free the new claim.
	slot.Release()
	slot.Install(tempFile(t), tempFile(t))
	if os.Stdout == before.Stdout {
		t.Fatal("stale Release restored targets owned by another slot")
	}
	if _, err := Acquire(); !errors.Is(err, ErrBusy) {
		t.Fatalf("stale Release freed the slot: %v", err)
	}
}

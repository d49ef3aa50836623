package fsop

import (
	"errors"
	"io/fs"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{nil, nil},
		{fs.ErrNotExist, ErrNotFound},
		{fs.ErrPermission, ErrPermission},
		{fs.ErrExist, ErrAlreadyExists},
		{errors.New("disk fell over"), ErrIO},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := fs.ErrPermission
	err := Wrap(ErrPermission, "move", "a.png", cause)
	if !errors.Is(err, ErrPermission) {
		t.Fatal("marker lost")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
}

func TestWrapNilMarkerFallsBackToIO(t *testing.T) {
	err := Wrap(nil, "move", "a.png", nil)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO fallback, got %v", err)
	}
}

func TestReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{Wrap(ErrNotFound, "move", "a", nil), "not_found"},
		{Wrap(ErrPermission, "move", "a", nil), "permission_denied"},
		{Wrap(ErrAlreadyExists, "move", "a", nil), "already_exists"},
		{Wrap(ErrIO, "move", "a", nil), "io_failure"},
	}
	for _, tc := range cases {
		if got := Reason(tc.err); got != tc.want {
			t.Fatalf("Reason(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad id"), 400},
		{Authentication("no token"), 401},
		{Authorization("not the owner"), 403},
		{NotFound("video not found"), 404},
		{Conflict("user name taken"), 409},
		{Dependency("insert failed", errors.New("boom")), 500},
		{errors.New("unclassified"), 500},
	}

	for _, c := range cases {
		if got := Status(c.err); got != c.want {
			t.Errorf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("toggle like: %w", NotFound("video not found"))
	if KindOf(err) != KindNotFound {
		t.Errorf("wrapped kind = %v, want KindNotFound", KindOf(err))
	}
	if Status(err) != 404 {
		t.Errorf("wrapped status = %d, want 404", Status(err))
	}
}

func TestDependencyMessageNeverLeaksCause(t *testing.T) {
	err := Dependency("media upload failed", errors.New("s3: access denied for key xyz"))
	if msg := Message(err); msg != "Something went wrong" {
		t.Errorf("dependency message = %q, leaked internal cause", msg)
	}
}

func TestMessagePassthroughForClientKinds(t *testing.T) {
	err := fmt.Errorf("update playlist: %w", Authorization("You are not the owner of this playlist"))
	if msg := Message(err); msg != "You are not the owner of this playlist" {
		t.Errorf("message = %q, want owner message", msg)
	}
}

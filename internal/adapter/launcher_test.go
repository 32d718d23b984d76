package adapter

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"
)

func TestLauncher_ConfiguredCommand(t *testing.T) {
	l := NewLauncher("firefox --new-tab", NullLogger())

	var got []string
	l.start = func(cmd *exec.Cmd) error {
		got = cmd.Args
		return nil
	}

	if err := l.Open("https://www.themoviedb.org/movie/42"); err != nil {
		t.Fatalf("open: %v", err)
	}

	want := []string{"firefox", "--new-tab", "https://www.themoviedb.org/movie/42"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestLauncher_EmptyURL(t *testing.T) {
	l := NewLauncher("firefox", NullLogger())
	if err := l.Open(""); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestLauncher_NoOpener(t *testing.T) {
	l := NewLauncher("", NullLogger())
	l.goos = "plan9"
	l.start = func(cmd *exec.Cmd) error { return errors.New("refused") }

	if err := l.Open("https://example.test"); err == nil {
		t.Fatalf("expected error when every opener fails")
	}
}

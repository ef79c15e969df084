package cli

import (
	"bytes"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHire_RefusesWithoutYes(t *testing.T) {
	t.Parallel()

	// Hiring rejects every sibling bid with no undo; the gate must trip
	// before any network traffic.
	_, err := runCmd(t, "hire", "b1", "--api", "http://127.0.0.1:1")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("err = %v; want a refusal pointing at --yes", err)
	}
}

func TestGigsCreate_ValidatesBeforeNetwork(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"missing title", []string{"gigs", "create", "--description", "d", "--budget", "10"}, "Title is required"},
		{"missing description", []string{"gigs", "create", "--title", "t", "--budget", "10"}, "Description is required"},
		{"zero budget", []string{"gigs", "create", "--title", "t", "--description", "d"}, "Budget must be a positive number"},
		{"negative budget", []string{"gigs", "create", "--title", "t", "--description", "d", "--budget", "-5"}, "Budget must be a positive number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			args := append(tc.args, "--api", "http://127.0.0.1:1")
			_, err := runCmd(t, args...)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("err = %v; want %q", err, tc.want)
			}
		})
	}
}

func TestBidsSubmit_ValidatesBeforeNetwork(t *testing.T) {
	t.Parallel()

	_, err := runCmd(t, "bids", "submit", "g1", "--message", "hi", "--api", "http://127.0.0.1:1")
	if err == nil || err.Error() != "Price must be a positive number" {
		t.Fatalf("err = %v; want price validation", err)
	}

	_, err = runCmd(t, "bids", "submit", "g1", "--price", "50", "--message", "   ", "--api", "http://127.0.0.1:1")
	if err == nil || err.Error() != "Message is required" {
		t.Fatalf("err = %v; want message validation", err)
	}
}

func TestLogin_RequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := runCmd(t, "login", "--api", "http://127.0.0.1:1")
	if err == nil || err.Error() != "Email and password are required" {
		t.Fatalf("err = %v; want credential validation", err)
	}
}

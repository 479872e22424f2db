package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValueRedactsSecrets(t *testing.T) {
	cases := []struct {
		key  string
		val  interface{}
		want interface{}
	}{
		{key: "access_token", val: "abc", want: "[REDACTED]"},
		{key: "password", val: "hunter2", want: "[REDACTED]"},
		{key: "email", val: "a@b.c", want: "[REDACTED]"},
		{key: "path_id", val: "p1", want: "p1"},
		{key: "status", val: 200, want: 200},
	}
	for _, tc := range cases {
		if got := sanitizeValue(tc.key, tc.val); got != tc.want {
			t.Fatalf("sanitizeValue(%q): got=%v want=%v", tc.key, got, tc.want)
		}
	}
}

func TestSanitizeValueHashesUserIDs(t *testing.T) {
	got, ok := sanitizeValue("user_id", "3f0c2a4e-0000-4000-8000-000000000001").(string)
	if !ok || !strings.HasPrefix(got, "hash:") || len(got) != len("hash:")+12 {
		t.Fatalf("unexpected hashed value: %v", got)
	}
	again := sanitizeValue("user_id", "3f0c2a4e-0000-4000-8000-000000000001")
	if again != got {
		t.Fatalf("hash not stable: %v vs %v", again, got)
	}
}

func TestSanitizeValueCatchesBareJWT(t *testing.T) {
	jwt := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"
	if got := sanitizeValue("detail", jwt); got != "[REDACTED]" {
		t.Fatalf("expected jwt-shaped value to be redacted, got %v", got)
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"path", "/api", "orphan"})
	if len(out) != 3 || out[2] != "orphan" {
		t.Fatalf("unexpected kvs: %v", out)
	}
}

func TestNewTestModeIsSilent(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("component", "x").Info("dropped", "k", "v")
}

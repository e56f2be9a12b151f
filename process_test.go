package process

import (
	"encoding/json"
	stdruntime "runtime"
	"testing"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if stdruntime.GOOS == "windows" {
		t.Skip("facade tests use POSIX fixtures")
	}
}

func TestExecReturnsContractRecord(t *testing.T) {
	skipOnWindows(t)

	res, err := Exec("/bin/echo", []string{"hello"}, nil)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if res.ExitCode != 0 || res.Stdout != "hello\n" || res.Stderr != "" {
		t.Fatalf("result = %+v", res)
	}
}

func TestExecCommandRunsThroughShell(t *testing.T) {
	skipOnWindows(t)

	// Unquoted arguments are shell-parsed, so the glob-free echo pipeline
	// below exercises real interpreter involvement.
	res, err := ExecCommand("echo", []string{"one", "&&", "echo", "two"}, nil)
	if err != nil {
		t.Fatalf("exec-command: %v", err)
	}
	if res.Stdout != "one\ntwo\n" {
		t.Fatalf("stdout = %q", res.Stdout)
	}
}

func TestExecRejectsMalformedEnv(t *testing.T) {
	if _, err := Exec("/bin/echo", nil, []string{"NOT_AN_ASSIGNMENT"}); err == nil {
		t.Fatal("expected error for malformed env entry")
	}
}

func TestResultJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(&Result{ExitCode: 3, Stdout: "hello", Stderr: "oops"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"exit-code":3,"stdout":"hello","stderr":"oops"}`
	if string(data) != want {
		t.Fatalf("record = %s, want %s", data, want)
	}
}

func TestRegistryDispatch(t *testing.T) {
	skipOnWindows(t)

	reg := NewRegistry()

	fn, ok := reg.Lookup("exec")
	if !ok {
		t.Fatal("exec not registered")
	}
	res, err := fn("/bin/echo", []string{"via registry"}, nil)
	if err != nil {
		t.Fatalf("dispatch exec: %v", err)
	}
	if res.Stdout != "via registry\n" {
		t.Fatalf("stdout = %q", res.Stdout)
	}

	if _, ok := reg.Lookup("exec-command"); !ok {
		t.Fatal("exec-command not registered")
	}
	if _, ok := reg.Lookup("no-such-function"); ok {
		t.Fatal("unexpected hit for unknown local name")
	}
}

func TestRegistryRegisterValidation(t *testing.T) {
	reg := NewRegistry()

	mustPanic := func(name string, fn ExecFunc) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		reg.Register(name, fn)
	}

	mustPanic("", Exec)
	mustPanic("custom", nil)
}

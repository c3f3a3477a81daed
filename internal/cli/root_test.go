package cli

import (
	"bytes"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	for _, name := range []string{"server", "db", "config"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	root := NewRootCmd()

	want := []string{"serve", "list", "show", "cities", "compare", "lead", "leads", "version"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q command to be registered", name)
		}
	}
}

func TestCompareSubcommands(t *testing.T) {
	root := NewRootCmd()

	var compareCmd = root
	for _, cmd := range root.Commands() {
		if cmd.Name() == "compare" {
			compareCmd = cmd
			break
		}
	}
	if compareCmd == root {
		t.Fatal("expected compare command to be registered")
	}

	want := []string{"add", "remove", "list", "clear"}
	for _, name := range want {
		found := false
		for _, cmd := range compareCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected compare %s to be registered", name)
		}
	}
}

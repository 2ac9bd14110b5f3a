package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	var stdout bytes.Buffer

	cmd := rootCmd
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command --help returned error: %v", err)
	}

	output := stdout.String()

	expectedStrings := []string{
		"connectproxy",
		"CONNECT",
		"Usage:",
		"Available Commands:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("help output missing expected string %q\nGot: %s", expected, output)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	var stdout bytes.Buffer

	cmd := rootCmd
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command --version returned error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "connectproxy") {
		t.Errorf("version output missing 'connectproxy'\nGot: %s", output)
	}
}

func TestRootCommand_ServeHasListenFlag(t *testing.T) {
	if serveCmd.Flags().Lookup("listen") == nil {
		t.Error("serve command missing --listen flag")
	}
}

func TestRootCommand_ConfigSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range configCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"show", "path", "init"} {
		if !names[want] {
			t.Errorf("config command missing subcommand %q", want)
		}
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/yildizm/CalcBuilder/internal/calculator"
	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/formatter"
	"github.com/yildizm/CalcBuilder/internal/session"
)

// testEnv is a config, session file and journal inside a temp dir
type testEnv struct {
	dir     string
	config  string
	state   string
	journal string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		config:  filepath.Join(dir, "config.yaml"),
		state:   filepath.Join(dir, "state.json"),
		journal: filepath.Join(dir, "journal.jsonl"),
	}

	content := fmt.Sprintf(`storage:
  path: %s
journal:
  enabled: true
  path: %s
output:
  default_format: text
`, env.state, env.journal)
	if err := os.WriteFile(env.config, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return env
}

func (e *testEnv) run(args ...string) (string, string, error) {
	cmd := NewRootCommand("test", "abc123", "today")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.config, "--no-emoji"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := e.run(args...)
	if err != nil {
		t.Fatalf("%v failed: %v\nstderr: %s", args, err, stderr)
	}
	return stdout
}

func TestPressAndShow(t *testing.T) {
	env := newTestEnv(t)

	if got := env.mustRun(t, "press", "12+3="); got != "15\n" {
		t.Errorf("Expected display 15, got %q", got)
	}
	if got := env.mustRun(t, "press", "*", "2", "="); got != "30\n" {
		t.Errorf("Expected display 30, got %q", got)
	}

	var decoded formatter.JSONOutput
	if err := json.Unmarshal([]byte(env.mustRun(t, "show", "-o", "json")), &decoded); err != nil {
		t.Fatalf("show -o json is not valid JSON: %v", err)
	}
	if decoded.Display != "30" {
		t.Errorf("Expected saved display 30, got %s", decoded.Display)
	}
	if !decoded.History.CanUndo {
		t.Error("Expected saved history to allow undo")
	}
}

func TestPressRejectsUnknownKeysWithoutSaving(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("press", "1x")
	var symErr *calculator.SymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("Expected SymbolError, got %v", err)
	}
	if _, statErr := os.Stat(env.state); !os.IsNotExist(statErr) {
		t.Error("Expected no session file after a rejected press")
	}
}

func TestPressJSONOutput(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "-o", "json", "press", "7/")
	var decoded formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Expected JSON output, got %q", out)
	}
	if decoded.State.Pending == nil || decoded.State.Pending.Operation != "/" {
		t.Errorf("Expected pending division, got %+v", decoded.State)
	}
}

func TestUndoRedoCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "press", "42")

	if got := env.mustRun(t, "undo"); got != "4\n" {
		t.Errorf("Expected 4 after undo, got %q", got)
	}

	stdout, stderr, err := env.run("undo", "-n", "5")
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if stdout != "0\n" {
		t.Errorf("Expected 0 after undoing everything, got %q", stdout)
	}
	if !strings.Contains(stderr, "nothing more to undo (1 of 5 applied)") {
		t.Errorf("Expected exhausted history notice, got %q", stderr)
	}

	if got := env.mustRun(t, "redo", "--steps", "2"); got != "42\n" {
		t.Errorf("Expected 42 after redo, got %q", got)
	}

	if _, _, err := env.run("redo", "-n", "0"); err == nil {
		t.Error("Expected error for zero steps")
	}
}

func TestTilesCommands(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun(t, "tiles", "add", "7", "*", "6", "=")

	list := env.mustRun(t, "tiles", "list")
	if lines := strings.Split(strings.TrimSpace(list), "\n"); len(lines) != 4 {
		t.Fatalf("Expected 4 tiles, got:\n%s", list)
	}
	if !strings.HasPrefix(list, " 1. [#] 7") {
		t.Errorf("Expected first tile 7, got:\n%s", list)
	}

	moved := env.mustRun(t, "tiles", "move", "4", "1")
	if !strings.HasPrefix(moved, " 1. [CALC] =") {
		t.Errorf("Expected = moved to the front, got:\n%s", moved)
	}

	if got := env.mustRun(t, "tiles", "press", "2", "3", "4", "1"); got != "42\n" {
		t.Errorf("Expected tiles to compute 42, got %q", got)
	}

	_, stderr, err := env.run("tiles", "remove", "1")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if !strings.Contains(stderr, "removed = (3 left)") {
		t.Errorf("Expected removal notice, got %q", stderr)
	}

	if _, _, err := env.run("tiles", "add", "%"); !errors.Is(err, components.ErrUnknownTile) {
		t.Errorf("Expected ErrUnknownTile, got %v", err)
	}
	if _, _, err := env.run("tiles", "remove", "9"); !errors.Is(err, components.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
}

func TestTilesPalette(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "tiles", "palette")
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != len(components.Palette()) {
		t.Errorf("Expected one line per palette tile, got:\n%s", out)
	}
}

func TestResetCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "tiles", "add", "1", "+")
	env.mustRun(t, "press", "5+")

	if got := env.mustRun(t, "reset", "--keep-tiles"); got != "0\n" {
		t.Errorf("Expected 0 after reset, got %q", got)
	}
	if list := env.mustRun(t, "tiles", "list"); !strings.Contains(list, " 2. ") {
		t.Errorf("Expected tiles kept, got:\n%s", list)
	}

	env.mustRun(t, "reset")
	_, stderr, err := env.run("tiles", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "no tiles placed") {
		t.Errorf("Expected empty builder after full reset, got %q", stderr)
	}
}

func TestReplayJournal(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "press", "9*9=")
	env.mustRun(t, "undo")
	env.mustRun(t, "redo")

	stdout, stderr, err := env.run("replay", "--verify", "--dry-run", env.journal)
	if err != nil {
		t.Fatalf("replay failed: %v\n%s", err, stderr)
	}
	if stdout != "81\n" {
		t.Errorf("Expected replay to reach 81, got %q", stdout)
	}
	if !strings.Contains(stderr, "replayed 6 actions") {
		t.Errorf("Expected replay notice, got %q", stderr)
	}
}

func TestReplayVerifyReportsMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "press", "8/0=")

	data, err := os.ReadFile(env.journal)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), `"display":"Error"`, `"display":"Infinity"`, 1)
	if tampered == string(data) {
		t.Fatalf("journal does not record the error display:\n%s", data)
	}
	path := filepath.Join(env.dir, "tampered.jsonl")
	if err := os.WriteFile(path, []byte(tampered), 0o600); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := env.run("replay", "--verify", path)
	if err == nil || !strings.Contains(err.Error(), "1 of 4 actions") {
		t.Fatalf("Expected one mismatch, got %v", err)
	}
	if !strings.Contains(stderr, `journal shows "Infinity", replay shows "Error"`) {
		t.Errorf("Expected mismatch details, got %q", stderr)
	}
}

func TestReplayMissingJournal(t *testing.T) {
	env := newTestEnv(t)

	if _, _, err := env.run("replay", filepath.Join(env.dir, "missing.jsonl")); err == nil {
		t.Error("Expected error for a missing journal")
	}
}

func TestStateFlagOverridesConfig(t *testing.T) {
	env := newTestEnv(t)
	other := filepath.Join(env.dir, "other.json")

	env.mustRun(t, "--state", other, "press", "7")

	if _, err := os.Stat(other); err != nil {
		t.Errorf("Expected session at --state path: %v", err)
	}
	if _, err := os.Stat(env.state); !os.IsNotExist(err) {
		t.Error("Expected configured session file to be untouched")
	}
}

func TestCorruptSessionFile(t *testing.T) {
	env := newTestEnv(t)
	if err := os.WriteFile(env.state, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := env.run("press", "1"); err == nil {
		t.Error("Expected error for a corrupt session file")
	}
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "config", "validate")
	if !strings.Contains(out, "Configuration is valid") || !strings.Contains(out, env.state) {
		t.Errorf("Unexpected validate output:\n%s", out)
	}

	var shown map[string]interface{}
	if err := json.Unmarshal([]byte(env.mustRun(t, "config", "show", "-f", "json")), &shown); err != nil {
		t.Fatalf("config show -f json is not valid JSON: %v", err)
	}

	target := filepath.Join(env.dir, "new", "calcbuilder.yaml")
	env.mustRun(t, "config", "init", "-o", target, "--minimal")
	if !fileExists(target) {
		t.Fatal("Expected config init to create the file")
	}
	if _, _, err := env.run("config", "init", "-o", target); err == nil {
		t.Error("Expected error when the config exists without --force")
	}
	env.mustRun(t, "config", "init", "-o", target, "--force")

	out = env.mustRun(t, "config", "path")
	if !strings.Contains(out, "Session file: "+env.state+" [ERR] (not found)") {
		t.Errorf("Expected the missing session file in config path output:\n%s", out)
	}
	if !strings.Contains(out, "Journal file: "+env.journal) {
		t.Errorf("Expected the journal file in config path output:\n%s", out)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	env := newTestEnv(t)
	if err := os.WriteFile(env.config, []byte("ui:\n  columns: 99\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := env.run("show"); err == nil {
		t.Error("Expected invalid configuration to fail")
	}
	if _, _, err := env.run("config", "validate"); err == nil {
		t.Error("Expected config validate to report the error")
	}
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "version")
	if !strings.HasPrefix(out, "CalcBuilder test (abc123) built on today") {
		t.Errorf("Unexpected version output:\n%s", out)
	}
}

func TestWatchSessionPrintsChanges(t *testing.T) {
	cmd := &cobra.Command{}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	records := func() []session.Record {
		s := session.New()
		var out []session.Record
		for _, k := range []string{"4", "2"} {
			_, _ = s.Press(k)
			out = append(out, s.Export())
		}
		// Unchanged display is printed once
		out = append(out, s.Export())

		bad := s.Export()
		bad.CurrentHistoryIndex = 7
		return append(out, bad)
	}()

	fakeWatch := func(ctx context.Context, onChange func(*session.Record)) error {
		for i := range records {
			onChange(&records[i])
		}
		return nil
	}

	if err := watchSession(context.Background(), cmd, fakeWatch); err != nil {
		t.Fatalf("watchSession failed: %v", err)
	}
	if got := stdout.String(); got != "4  [undo]\n42  [undo]\n" {
		t.Errorf("Unexpected watch output %q", got)
	}
	if !strings.Contains(stderr.String(), "ignoring invalid session") {
		t.Errorf("Expected invalid record warning, got %q", stderr.String())
	}
}

func TestSplitSymbols(t *testing.T) {
	tests := []struct {
		args    []string
		want    []string
		wantErr bool
	}{
		{[]string{"12+3="}, []string{"1", "2", "+", "3", "="}, false},
		{[]string{"7", " * ", "C"}, []string{"7", "*", "C"}, false},
		{[]string{"1", "a"}, nil, true},
		{[]string{" "}, nil, true},
	}

	for _, tt := range tests {
		got, err := splitSymbols(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitSymbols(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("splitSymbols(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestResolveTile(t *testing.T) {
	ids := []string{"abc-1", "abd-2", "xyz-3"}
	n := 0
	sess := session.New(session.WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))
	for _, v := range []string{"1", "+", "2"} {
		if _, err := sess.AddTile(v); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		ref     string
		wantID  string
		wantErr error
	}{
		{"1", "abc-1", nil},
		{"3", "xyz-3", nil},
		{"abd-2", "abd-2", nil},
		{"xy", "xyz-3", nil},
		{"4", "", components.ErrOutOfRange},
		{"0", "", components.ErrOutOfRange},
		{"nope", "", components.ErrNotFound},
	}

	for _, tt := range tests {
		tile, _, err := resolveTile(sess, tt.ref)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("resolveTile(%q) error = %v, want %v", tt.ref, err, tt.wantErr)
			}
			continue
		}
		if err != nil || tile.ID != tt.wantID {
			t.Errorf("resolveTile(%q) = %s, %v; want %s", tt.ref, tile.ID, err, tt.wantID)
		}
	}

	if _, _, err := resolveTile(sess, "ab"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("Expected ambiguous prefix error, got %v", err)
	}
}

package journal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/yildizm/CalcBuilder/internal/calculator"
	"github.com/yildizm/CalcBuilder/internal/session"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func recordSession(t *testing.T, keys ...string) (*session.Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	w.now = fixedClock()

	s := session.New()
	Attach(s, w)
	for _, k := range keys {
		switch k {
		case "undo":
			s.Undo()
		case "redo":
			s.Redo()
		default:
			if _, err := s.Press(k); err != nil {
				t.Fatalf("Press(%q) failed: %v", k, err)
			}
		}
	}
	return s, &buf
}

func TestWriterFormat(t *testing.T) {
	g := NewWithT(t)
	_, buf := recordSession(t, "4", "+", "undo")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	g.Expect(lines).To(HaveLen(3))
	g.Expect(lines[0]).To(Equal(`{"timestamp":"2024-03-01T12:00:01Z","level":"info","message":"press 4","symbol":"4","display":"4"}`))
	g.Expect(lines[1]).To(ContainSubstring(`"message":"press +"`))
	g.Expect(lines[1]).To(ContainSubstring(`"display":"4 +"`))
	g.Expect(lines[2]).To(ContainSubstring(`"message":"undo"`))
	g.Expect(lines[2]).NotTo(ContainSubstring(`"symbol"`))
}

func TestWriterSkipsTileEvents(t *testing.T) {
	var buf bytes.Buffer
	s := session.New()
	Attach(s, NewWriter(&buf, nil))

	if _, err := s.AddTile("1"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected tile edits to be skipped, got %q", buf.String())
	}
}

func TestReadAndReplay(t *testing.T) {
	g := NewWithT(t)
	original, buf := recordSession(t, "1", "2", "*", "3", "=", "undo", "redo", "-", "6", "=")
	g.Expect(original.Display()).To(Equal("30"))

	actions, err := Read(buf)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(actions).To(HaveLen(10))
	g.Expect(actions[0]).To(And(
		HaveField("Kind", ActionPress),
		HaveField("Symbol", "1"),
		HaveField("Display", "1"),
	))
	g.Expect(actions[5].Kind).To(Equal(ActionUndo))
	g.Expect(actions[6].Kind).To(Equal(ActionRedo))

	replayed := session.New()
	g.Expect(Replay(replayed, actions)).To(Succeed())
	g.Expect(replayed.State()).To(Equal(original.State()))
	g.Expect(replayed.Export().CalculationHistory).To(Equal(original.Export().CalculationHistory))
}

func TestReadFallsBackToMessage(t *testing.T) {
	g := NewWithT(t)
	input := strings.Join([]string{
		`{"timestamp":"2024-03-01T12:00:00Z","level":"info","message":"press 9"}`,
		`{"timestamp":"2024-03-01T12:00:01Z","level":"info","message":"something else"}`,
		`{"timestamp":"2024-03-01T12:00:02Z","level":"info","message":"reset"}`,
	}, "\n")

	actions, err := Read(strings.NewReader(input))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(actions).To(HaveLen(2))
	g.Expect(actions[0].Symbol).To(Equal("9"))
	g.Expect(actions[1].Kind).To(Equal(ActionReset))
}

func TestReadEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n", `{"level":"info","message":"hello"}`} {
		if _, err := Read(strings.NewReader(input)); !errors.Is(err, ErrEmptyJournal) {
			t.Errorf("Read(%q) error = %v, want ErrEmptyJournal", input, err)
		}
	}
}

func TestReplayRejectsUnknownSymbol(t *testing.T) {
	s := session.New()
	err := Replay(s, []Action{
		{Kind: ActionPress, Symbol: "1"},
		{Kind: ActionPress, Symbol: "x"},
		{Kind: ActionPress, Symbol: "2"},
	})

	if !errors.Is(err, calculator.ErrUnknownSymbol) {
		t.Fatalf("Expected ErrUnknownSymbol, got %v", err)
	}
	if s.Display() != "1" {
		t.Errorf("Expected replay to stop after the first action, got display %q", s.Display())
	}
}

func TestVerify(t *testing.T) {
	g := NewWithT(t)
	actions := []Action{
		{Kind: ActionPress, Symbol: "8", Display: "8"},
		{Kind: ActionPress, Symbol: "/", Display: "8 /"},
		{Kind: ActionPress, Symbol: "0", Display: "0"},
		{Kind: ActionPress, Symbol: "=", Display: "Infinity"},
	}

	mismatches, err := Verify(session.New(), actions)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mismatches).To(ConsistOf(Mismatch{Index: 3, Want: "Infinity", Got: calculator.ErrorDisplay}))
}

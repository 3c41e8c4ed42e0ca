package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"

	"github.com/yildizm/CalcBuilder/internal/session"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "state.json"), "", nil)
}

func sampleSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New()
	if _, err := s.AddTile("8"); err != nil {
		t.Fatalf("AddTile failed: %v", err)
	}
	for _, k := range []string{"8", "/", "2", "="} {
		if _, err := s.Press(k); err != nil {
			t.Fatalf("Press(%q) failed: %v", k, err)
		}
	}
	s.Undo()
	return s
}

func TestLoadMissingFile(t *testing.T) {
	store := newStore(t)

	_, err := store.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)
	want := sampleSession(t).Export()

	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(want, *got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	restored := session.New()
	if err := restored.Restore(*got); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Display() != "2" || !restored.CanRedo() {
		t.Errorf("Expected restored display 2 with redo available, got %q", restored.Display())
	}
}

func TestSaveWritesNamespacedLayout(t *testing.T) {
	g := NewWithT(t)
	store := newStore(t)

	g.Expect(store.Save(session.NewRecord())).To(Succeed())

	data, err := os.ReadFile(store.Path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(gjson.GetBytes(data, "calculator-storage.version").Int()).To(BeEquivalentTo(0))
	g.Expect(gjson.GetBytes(data, "calculator-storage.state.displayValue").String()).To(Equal("0"))
	g.Expect(gjson.GetBytes(data, "calculator-storage.state.currentHistoryIndex").Int()).To(BeEquivalentTo(-1))
	g.Expect(gjson.GetBytes(data, "calculator-storage.state.previousValue").Type).To(Equal(gjson.Null))
}

func TestSavePreservesOtherNamespaces(t *testing.T) {
	g := NewWithT(t)
	store := newStore(t)

	g.Expect(os.WriteFile(store.Path, []byte(`{"theme":{"state":{"dark":true},"version":0}}`), 0o600)).To(Succeed())
	g.Expect(store.Save(session.NewRecord())).To(Succeed())

	data, err := os.ReadFile(store.Path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(gjson.GetBytes(data, "theme.state.dark").Bool()).To(BeTrue())

	g.Expect(store.Clear()).To(Succeed())
	data, err = os.ReadFile(store.Path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(gjson.GetBytes(data, "theme.state.dark").Bool()).To(BeTrue())
	g.Expect(gjson.GetBytes(data, "calculator-storage").Exists()).To(BeFalse())

	_, err = store.Load()
	g.Expect(err).To(MatchError(ErrNotFound))
}

func TestDottedNamespace(t *testing.T) {
	g := NewWithT(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"), "calc.v1", nil)

	g.Expect(store.Save(session.NewRecord())).To(Succeed())

	data, err := os.ReadFile(store.Path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(gjson.GetBytes(data, `calc\.v1.version`).Exists()).To(BeTrue())
	g.Expect(gjson.GetBytes(data, "calc").Exists()).To(BeFalse())

	rec, err := store.Load()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec.DisplayValue).To(Equal("0"))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty file", "", ErrNotFound},
		{"not json", "{oops", ErrCorrupt},
		{"other namespace only", `{"theme":{"state":{},"version":0}}`, ErrNotFound},
		{"future version", `{"calculator-storage":{"state":{"displayValue":"1"},"version":3}}`, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			if err := os.WriteFile(store.Path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := store.Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRefusesCorruptFile(t *testing.T) {
	store := newStore(t)
	if err := os.WriteFile(store.Path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := store.Save(session.NewRecord()); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Expected ErrCorrupt, got %v", err)
	}
}

func TestClearMissingFile(t *testing.T) {
	if err := newStore(t).Clear(); err != nil {
		t.Errorf("Expected no error clearing a missing file, got %v", err)
	}
}

func TestAutosave(t *testing.T) {
	g := NewWithT(t)
	store := newStore(t)
	s := session.New()

	unsubscribe := store.Autosave(s)
	_, err := s.Press("7")
	g.Expect(err).NotTo(HaveOccurred())

	rec, err := store.Load()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec.DisplayValue).To(Equal("7"))

	unsubscribe()
	_, err = s.Press("3")
	g.Expect(err).NotTo(HaveOccurred())

	rec, err = store.Load()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec.DisplayValue).To(Equal("7"))
}

func TestWatch(t *testing.T) {
	g := NewWithT(t)
	store := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *session.Record, 16)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func(rec *session.Record) { changes <- rec })
	}()

	s := session.New()
	_, err := s.Press("5")
	g.Expect(err).NotTo(HaveOccurred())

	// The watcher registers asynchronously, so keep saving until it reports
	g.Eventually(func() string {
		if err := store.Save(s.Export()); err != nil {
			return err.Error()
		}
		select {
		case rec := <-changes:
			return rec.DisplayValue
		case <-time.After(50 * time.Millisecond):
			return ""
		}
	}).WithTimeout(5 * time.Second).Should(Equal("5"))

	cancel()
	g.Eventually(done).WithTimeout(2 * time.Second).Should(Receive(BeNil()))
}

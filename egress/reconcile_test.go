package egress

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/kuberdock/kcli/models"
)

type fakeLister struct {
	pods []models.Pod
	err  error
}

func (f *fakeLister) ListPods() ([]models.Pod, error) {
	return f.pods, f.err
}

// fakeFirewall keeps rules in listed order and mimics iptables positional
// deletes: removing a rule shifts the positions of the rules after it.
type fakeFirewall struct {
	rules      []Rule
	failDelete map[string]bool // destination -> delete always fails
	inserts    int
}

func (f *fakeFirewall) renumber() {
	for i := range f.rules {
		f.rules[i].Position = i + 1
	}
}

func (f *fakeFirewall) ListRules() ([]Rule, error) {
	f.renumber()
	out := make([]Rule, len(f.rules))
	copy(out, f.rules)
	return out, nil
}

func (f *fakeFirewall) HasRule(uid, destination string) bool {
	for _, r := range f.rules {
		if r.OwnerUID == uid && r.Destination == destination {
			return true
		}
	}
	return false
}

func (f *fakeFirewall) InsertRule(uid, destination string) error {
	f.inserts++
	f.rules = append([]Rule{{OwnerUID: uid, Destination: destination}}, f.rules...)
	f.renumber()
	return nil
}

func (f *fakeFirewall) DeleteRule(position int) error {
	idx := position - 1
	if idx < 0 || idx >= len(f.rules) {
		return errors.New("no rule at position")
	}
	if f.failDelete[f.rules[idx].Destination] {
		return errors.New("permission denied")
	}
	f.rules = append(f.rules[:idx], f.rules[idx+1:]...)
	f.renumber()
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func destinations(rules []Rule) []string {
	out := []string{}
	for _, r := range rules {
		out = append(out, r.Destination)
	}
	return out
}

func TestReconcileActiveBranchInsertsOnce(t *testing.T) {
	pods := &fakeLister{pods: []models.Pod{{Name: "web", PodIP: "10.0.0.5"}}}
	fw := &fakeFirewall{}
	r := NewReconciler(pods, fw, quietLogger())

	if err := r.Reconcile("web", "1000"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(fw.rules) != 1 || fw.rules[0].Destination != "10.0.0.5" || fw.rules[0].OwnerUID != "1000" {
		t.Fatalf("rules = %+v", fw.rules)
	}

	// Re-running must not duplicate the rule.
	if err := r.Reconcile("web", "1000"); err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if len(fw.rules) != 1 || fw.inserts != 1 {
		t.Fatalf("rules = %+v, inserts = %d", fw.rules, fw.inserts)
	}
}

func TestReconcileActiveBranchNoIPIsNoop(t *testing.T) {
	pods := &fakeLister{pods: []models.Pod{{Name: "web"}}} // scheduled, no IP yet
	fw := &fakeFirewall{rules: []Rule{{OwnerUID: "1000", Destination: "10.0.0.5"}}}
	r := NewReconciler(pods, fw, quietLogger())

	if err := r.Reconcile("web", "1000"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(fw.rules) != 1 || fw.inserts != 0 {
		t.Fatalf("no-op branch touched rules: %+v", fw.rules)
	}
}

func TestReconcileInactiveBranchDeletesStaleRules(t *testing.T) {
	pods := &fakeLister{pods: []models.Pod{{Name: "other", PodIP: "10.0.0.9"}}}
	fw := &fakeFirewall{rules: []Rule{
		{OwnerUID: "1000", Destination: "10.0.0.5"},
		{OwnerUID: "1000", Destination: "10.0.0.9"},
	}}
	r := NewReconciler(pods, fw, quietLogger())

	if err := r.Reconcile("web", "1000"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	want := []string{"10.0.0.9"}
	got := destinations(fw.rules)
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("rules = %v, want %v", got, want)
	}
}

func TestReconcileInactiveBranchSparesOtherOwners(t *testing.T) {
	pods := &fakeLister{}
	fw := &fakeFirewall{rules: []Rule{
		{OwnerUID: "1000", Destination: "10.0.0.5"},
		{OwnerUID: "1001", Destination: "10.0.0.6"},
	}}
	r := NewReconciler(pods, fw, quietLogger())

	if err := r.Reconcile("web", "1000"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	got := destinations(fw.rules)
	if len(got) != 1 || got[0] != "10.0.0.6" {
		t.Fatalf("rules = %v, want only the other owner's", got)
	}
}

func TestReconcileInactiveBranchSurvivesDeleteFailures(t *testing.T) {
	pods := &fakeLister{}
	fw := &fakeFirewall{
		rules: []Rule{
			{OwnerUID: "1000", Destination: "10.0.0.5"},
			{OwnerUID: "1000", Destination: "10.0.0.6"},
			{OwnerUID: "1000", Destination: "10.0.0.7"},
		},
		failDelete: map[string]bool{"10.0.0.6": true},
	}
	r := NewReconciler(pods, fw, quietLogger())

	if err := r.Reconcile("web", "1000"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	got := destinations(fw.rules)
	if len(got) != 1 || got[0] != "10.0.0.6" {
		t.Fatalf("rules = %v, want only the undeletable one left", got)
	}
}

// Deleting several rules positionally only works when the scan runs from the
// end of the listing backwards; this pins that order.
func TestReconcileDeletesBackwards(t *testing.T) {
	pods := &fakeLister{}
	fw := &fakeFirewall{rules: []Rule{
		{OwnerUID: "1000", Destination: "10.0.0.1"},
		{OwnerUID: "1000", Destination: "10.0.0.2"},
		{OwnerUID: "1000", Destination: "10.0.0.3"},
	}}
	r := NewReconciler(pods, fw, quietLogger())

	if err := r.Reconcile("web", "1000"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(fw.rules) != 0 {
		t.Fatalf("stale rules left: %+v", fw.rules)
	}
}

func TestReconcileNormalizesUIDComparison(t *testing.T) {
	pods := &fakeLister{}
	fw := &fakeFirewall{rules: []Rule{
		{OwnerUID: "1000", Destination: "10.0.0.5"},
	}}
	r := NewReconciler(pods, fw, quietLogger())

	// Leading zeros must not hide the match.
	if err := r.Reconcile("web", "01000"); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(fw.rules) != 0 {
		t.Fatalf("numeric uid mismatch left rules: %+v", fw.rules)
	}
}

func TestReconcileListFailureIsFatal(t *testing.T) {
	pods := &fakeLister{err: errors.New("server down")}
	r := NewReconciler(pods, &fakeFirewall{}, quietLogger())
	if err := r.Reconcile("web", "1000"); err == nil {
		t.Fatal("reconcile succeeded with an unreachable pod API")
	}
}

func TestSameUID(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1000", "1000", true},
		{"1000", "01000", true},
		{"1000", "1001", false},
		{"abc", "abc", true},
		{"abc", "1000", false},
	}
	for _, tt := range tests {
		if got := sameUID(tt.a, tt.b); got != tt.want {
			t.Errorf("sameUID(%q, %q) = %t, want %t", tt.a, tt.b, got, tt.want)
		}
	}
}

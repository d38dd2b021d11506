// egress/reconcile.go
package egress

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kuberdock/kcli/models"
)

// PodLister is the remote-state dependency of the reconciler.
type PodLister interface {
	ListPods() ([]models.Pod, error)
}

// Reconciler converges the host's DNAT exemption rules for one owner with
// the set of that owner's currently active pod IPs. It is idempotent and
// re-entrant: every run re-reads live state, so it can be re-invoked by any
// external scheduler regardless of what has happened since it was scheduled.
type Reconciler struct {
	pods PodLister
	fw   Firewall
	log  *logrus.Logger
}

func NewReconciler(pods PodLister, fw Firewall, log *logrus.Logger) *Reconciler {
	if log == nil {
		log = logrus.New()
	}
	return &Reconciler{pods: pods, fw: fw, log: log}
}

// Reconcile runs one convergence pass for the named pod and owner uid.
//
// If the pod is active with an assigned IP, exactly one exemption rule for
// (uid, ip) must exist afterwards; check-then-insert keeps re-runs from
// duplicating it. If the pod is gone, every rule of this owner whose
// destination is no longer an active pod IP is removed, scanning backwards
// so line numbers of not-yet-visited rules stay valid after each delete.
func (r *Reconciler) Reconcile(podName, uid string) error {
	pods, err := r.pods.ListPods()
	if err != nil {
		return fmt.Errorf("failed to read pod state: %w", err)
	}

	for _, pod := range pods {
		if pod.Name != podName {
			continue
		}
		if pod.PodIP == "" {
			// Scheduled but no IP assigned yet; a later run converges.
			return nil
		}
		if r.fw.HasRule(uid, pod.PodIP) {
			return nil
		}
		return r.fw.InsertRule(uid, pod.PodIP)
	}

	active := map[string]bool{}
	for _, ip := range models.ActiveIPs(pods) {
		active[ip] = true
	}

	rules, err := r.fw.ListRules()
	if err != nil {
		return err
	}
	for i := len(rules) - 1; i >= 0; i-- {
		rule := rules[i]
		if !sameUID(rule.OwnerUID, uid) {
			continue
		}
		if active[rule.Destination] {
			continue
		}
		if err := r.fw.DeleteRule(rule.Position); err != nil {
			// One undeletable rule must not block the rest.
			r.log.WithFields(logrus.Fields{
				"uid":         uid,
				"destination": rule.Destination,
				"position":    rule.Position,
			}).Warnf("could not delete rule: %v", err)
		}
	}
	return nil
}

// sameUID compares owner uids numerically when both sides parse as
// integers, falling back to exact string equality otherwise.
func sameUID(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		return na == nb
	}
	return a == b
}

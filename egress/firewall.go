// egress/firewall.go
package egress

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Pod egress is redirected to this sentinel by a default rule; per-pod
// exemption rules DNAT the owner's traffic past it.
const sentinelAddr = "233.252.0.254"

// Rule is one owner-tagged DNAT exemption rule in the nat OUTPUT chain.
type Rule struct {
	Position    int    // 1-based line number within the chain
	OwnerUID    string // uid from the "! owner UID match <uid>" predicate
	Destination string
}

// Firewall is the capability the reconciler needs from the host firewall.
// The production implementation shells out to iptables; tests use a fake.
type Firewall interface {
	// ListRules returns the owner-tagged rules of the nat OUTPUT chain in
	// listed order. Rules without an owner match predicate are not included.
	ListRules() ([]Rule, error)
	// HasRule reports whether the exemption rule for (uid, destination)
	// already exists. A check failure means "absent", not an error.
	HasRule(uid, destination string) bool
	// InsertRule adds the exemption rule at the head of the chain.
	InsertRule(uid, destination string) error
	// DeleteRule removes the rule at the given position.
	DeleteRule(position int) error
}

// ownerPattern matches the owner-uid predicate in iptables -L output.
var ownerPattern = regexp.MustCompile(`^!\sowner\sUID\smatch\s(\d+)`)

// IPTables drives the host iptables binary. All rules live in the nat
// table's OUTPUT chain.
type IPTables struct{}

func NewIPTables() *IPTables {
	return &IPTables{}
}

func ruleArgs(op, uid, destination string) []string {
	return []string{
		"-t", "nat", op, "OUTPUT",
		"-d", destination,
		"-m", "owner", "!", "--uid-owner", uid,
		"-j", "DNAT", "--to-destination", sentinelAddr,
	}
}

func (t *IPTables) HasRule(uid, destination string) bool {
	// iptables -C exits non-zero when the rule is absent; that is the
	// expected signal driving insertion, not an error.
	return exec.Command("iptables", ruleArgs("-C", uid, destination)...).Run() == nil
}

func (t *IPTables) InsertRule(uid, destination string) error {
	out, err := exec.Command("iptables", ruleArgs("-I", uid, destination)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to insert rule for %s: %v: %s", destination, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (t *IPTables) DeleteRule(position int) error {
	out, err := exec.Command("iptables",
		"-t", "nat", "-D", "OUTPUT", strconv.Itoa(position)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to delete rule %d: %v: %s", position, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (t *IPTables) ListRules() ([]Rule, error) {
	out, err := exec.Command("iptables",
		"-t", "nat", "-L", "OUTPUT", "-n", "--line-numbers").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list nat OUTPUT rules: %w", err)
	}
	return parseRules(string(out)), nil
}

// parseRules reads `iptables -L OUTPUT -n --line-numbers` output. The first
// two lines are headers; each rule line is
//
//	num  target  prot  opt  source  destination  <extra predicates>
//
// Only rules whose predicates carry an owner UID match are kept.
func parseRules(out string) []Rule {
	lines := strings.Split(out, "\n")
	if len(lines) <= 2 {
		return nil
	}

	rules := []Rule{}
	for _, line := range lines[2:] {
		fields := strings.Fields(line)
		if len(fields) < 7 {
			continue
		}
		extra := strings.Join(fields[6:], " ")
		m := ownerPattern.FindStringSubmatch(extra)
		if m == nil {
			continue
		}
		position, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		rules = append(rules, Rule{
			Position:    position,
			OwnerUID:    m[1],
			Destination: fields[5],
		})
	}
	return rules
}

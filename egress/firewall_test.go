package egress

import (
	"reflect"
	"testing"
)

const natOutputListing = `Chain OUTPUT (policy ACCEPT)
num  target     prot opt source               destination
1    DNAT       all  --  0.0.0.0/0            10.0.0.5             ! owner UID match 1000 to:233.252.0.254
2    DNAT       all  --  0.0.0.0/0            10.0.0.9             ! owner UID match 1001 to:233.252.0.254
3    MASQUERADE  all  --  10.244.0.0/16        0.0.0.0/0
4    DNAT       all  --  0.0.0.0/0            192.168.1.7          ! owner UID match 1000 to:233.252.0.254
`

func TestParseRules(t *testing.T) {
	got := parseRules(natOutputListing)
	want := []Rule{
		{Position: 1, OwnerUID: "1000", Destination: "10.0.0.5"},
		{Position: 2, OwnerUID: "1001", Destination: "10.0.0.9"},
		{Position: 4, OwnerUID: "1000", Destination: "192.168.1.7"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseRules = %+v, want %+v", got, want)
	}
}

func TestParseRulesEmptyChain(t *testing.T) {
	out := "Chain OUTPUT (policy ACCEPT)\nnum  target  prot opt source  destination\n"
	if got := parseRules(out); len(got) != 0 {
		t.Fatalf("parseRules on empty chain = %+v", got)
	}
	if got := parseRules(""); len(got) != 0 {
		t.Fatalf("parseRules on no output = %+v", got)
	}
}

func TestRuleArgs(t *testing.T) {
	got := ruleArgs("-I", "1000", "10.0.0.5")
	want := []string{
		"-t", "nat", "-I", "OUTPUT",
		"-d", "10.0.0.5",
		"-m", "owner", "!", "--uid-owner", "1000",
		"-j", "DNAT", "--to-destination", sentinelAddr,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ruleArgs = %v, want %v", got, want)
	}
}

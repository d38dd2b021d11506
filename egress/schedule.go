// egress/schedule.go
package egress

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Scheduler defers a reconciliation run. The remote side effect of a pod
// create/delete is not confirmed at command-return time, so reconciliation
// runs a fixed delay later, as a fresh process, against then-current state.
type Scheduler interface {
	ScheduleReconcile(podName, uid string) error
}

// AtScheduler queues the reconcile subcommand through the host's at(1)
// daemon. Scheduling is best effort; there is no cancellation, a stale run
// simply converges to whatever is true when it fires.
type AtScheduler struct {
	Delay string // at(1) time offset, e.g. "2 minutes"
}

func NewAtScheduler() *AtScheduler {
	return &AtScheduler{Delay: "2 minutes"}
}

func (s *AtScheduler) ScheduleReconcile(podName, uid string) error {
	binary, err := os.Executable()
	if err != nil {
		binary = "kcli"
	}
	delay := s.Delay
	if delay == "" {
		delay = "2 minutes"
	}

	line := fmt.Sprintf("echo %s reconcile %s --uid %s | at now + %s > /dev/null 2>&1",
		shellQuote(binary), shellQuote(podName), shellQuote(uid), delay)
	if err := exec.Command("/bin/sh", "-c", line).Run(); err != nil {
		return fmt.Errorf("failed to schedule reconciliation for %q: %w", podName, err)
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

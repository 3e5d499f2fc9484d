// Package bench times transform variants as external processes, collecting
// wall-clock time plus kernel-reported CPU and memory usage per run, and
// summarizes the runs into comparable per-variant statistics.
package bench

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"
)

// Variant is one transform implementation under test.
type Variant struct {
	Name    string   `json:"name"`
	Command []string `json:"command"` // argv; input/output paths appended per run
}

// RunMetrics is one timed execution of a variant.
type RunMetrics struct {
	Variant    string  `json:"variant"`
	Run        int     `json:"run"`
	WallSec    float64 `json:"wall_sec"`
	UserSec    float64 `json:"user_sec"`
	SysSec     float64 `json:"sys_sec"`
	MaxRSSKB   int64   `json:"max_rss_kb"`
	ExitStatus int     `json:"exit_status"`
	OutputPath string  `json:"output_path"`
}

// TimedRun starts argv as a child process and reaps it directly with wait4 so
// the rusage accounting covers exactly this child. The exec.Cmd must not be
// Wait()ed afterwards.
func TimedRun(argv []string) (wall, user, sys float64, maxRSSKB int64, exitStatus int, err error) {
	if len(argv) == 0 {
		return 0, 0, 0, 0, 0, fmt.Errorf("bench: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("bench: start %s: %w", argv[0], err)
	}

	var ws unix.WaitStatus
	var ru unix.Rusage
	for {
		_, werr := unix.Wait4(cmd.Process.Pid, &ws, 0, &ru)
		if werr == unix.EINTR {
			continue
		}
		if werr != nil {
			return 0, 0, 0, 0, 0, fmt.Errorf("bench: wait4: %w", werr)
		}
		break
	}
	wall = time.Since(start).Seconds()
	user = tvSeconds(ru.Utime)
	sys = tvSeconds(ru.Stime)
	maxRSSKB = ru.Maxrss
	if ws.Exited() {
		exitStatus = ws.ExitStatus()
	} else if ws.Signaled() {
		exitStatus = 128 + int(ws.Signal())
	}
	return wall, user, sys, maxRSSKB, exitStatus, nil
}

func tvSeconds(tv unix.Timeval) float64 {
	return float64(tv.Sec) + float64(tv.Usec)/1e6
}

// RunVariant executes one timed run of a variant, appending the run's
// input/output arguments to its base command.
func RunVariant(v Variant, run int, extraArgs []string, outputPath string) (RunMetrics, error) {
	argv := append(append([]string{}, v.Command...), extraArgs...)
	log.Printf("bench: variant=%s run=%d cmd=%v", v.Name, run, argv)

	wall, user, sys, rss, status, err := TimedRun(argv)
	if err != nil {
		return RunMetrics{}, err
	}
	m := RunMetrics{
		Variant:    v.Name,
		Run:        run,
		WallSec:    wall,
		UserSec:    user,
		SysSec:     sys,
		MaxRSSKB:   rss,
		ExitStatus: status,
		OutputPath: outputPath,
	}
	if status != 0 {
		return m, fmt.Errorf("bench: variant %s run %d exited with status %d", v.Name, run, status)
	}
	log.Printf("bench: variant=%s run=%d wall=%.3fs user=%.3fs sys=%.3fs max_rss_kb=%d",
		v.Name, run, wall, user, sys, rss)
	return m, nil
}

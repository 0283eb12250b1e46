package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"

	gopsutil "github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// Child is the single console process managed per run. Its handle is only
// read after Start, so the exit handlers and the tray click path may all
// query it concurrently without coordination.
type Child struct {
	cmd      *exec.Cmd
	done     chan struct{}
	killOnce sync.Once
	logger   *zap.Logger
}

// Start spawns the console application described by spec and begins waiting
// for its exit.
func Start(spec Spec, logger *zap.Logger) (*Child, error) {
	if _, err := os.Stat(spec.Program); err != nil {
		return nil, fmt.Errorf("program not found: %s: %w", spec.Program, err)
	}

	program, args := EffectiveTarget(spec, windowsBuild())
	if program == conhostExe {
		if dir, err := windows.GetSystemDirectory(); err == nil {
			program = filepath.Join(dir, conhostExe)
		}
	}

	cmd := exec.Command(program)
	cmd.Dir = spec.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: commandLine(program, args),
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", spec.Program, err)
	}

	c := &Child{
		cmd:    cmd,
		done:   make(chan struct{}),
		logger: logger,
	}
	go func() {
		_ = cmd.Wait()
		close(c.done)
	}()

	logger.Info("child started",
		zap.String("program", program),
		zap.Int("pid", cmd.Process.Pid))
	return c, nil
}

// PID returns the child's process identifier.
func (c *Child) PID() uint32 {
	return uint32(c.cmd.Process.Pid)
}

// Done is closed once the child has exited.
func (c *Child) Done() <-chan struct{} {
	return c.done
}

// Kill forcibly terminates the child. Safe to call at any time, including
// after the child has already exited; a kill against a dead process is a
// tolerated no-op.
func (c *Child) Kill() {
	c.killOnce.Do(func() {
		if err := c.cmd.Process.Kill(); err != nil {
			c.logger.Debug("kill child", zap.Error(err))
		}
	})
}

// Name returns the child's executable base name, best effort.
func (c *Child) Name() string {
	p, err := gopsutil.NewProcess(int32(c.cmd.Process.Pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}

func windowsBuild() uint32 {
	_, _, build := windows.RtlGetNtVersionNumbers()
	return build
}

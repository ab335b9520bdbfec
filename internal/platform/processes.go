package platform

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// InstanceRecord is a running process that looks like this program.
type InstanceRecord struct {
	PID  int32
	Name string
	Path string
}

// ProcessInfo is a running process. Every lookup may fail if the process
// exits, is a zombie, or belongs to another user.
type ProcessInfo interface {
	PID() int32
	Name() (string, error)
	Exe() (string, error)
	Cmdline() ([]string, error)
	Cwd() (string, error)
}

// ProcessLister enumerates running processes.
type ProcessLister interface {
	Processes(ctx context.Context) ([]ProcessInfo, error)
}

// NewProcessLister returns a lister backed by gopsutil.
func NewProcessLister() ProcessLister {
	return gopsutilLister{}
}

type gopsutilLister struct{}

func (gopsutilLister) Processes(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]ProcessInfo, 0, len(procs))
	for _, proc := range procs {
		infos = append(infos, gopsutilProcess{ctx: ctx, proc: proc})
	}
	return infos, nil
}

type gopsutilProcess struct {
	ctx  context.Context
	proc *process.Process
}

func (info gopsutilProcess) PID() int32 {
	return info.proc.Pid
}

func (info gopsutilProcess) Name() (string, error) {
	return info.proc.NameWithContext(info.ctx)
}

func (info gopsutilProcess) Exe() (string, error) {
	return info.proc.ExeWithContext(info.ctx)
}

func (info gopsutilProcess) Cmdline() ([]string, error) {
	return info.proc.CmdlineSliceWithContext(info.ctx)
}

func (info gopsutilProcess) Cwd() (string, error) {
	return info.proc.CwdWithContext(info.ctx)
}

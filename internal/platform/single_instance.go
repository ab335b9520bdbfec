package platform

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// linuxCommLimit is the length at which /proc truncates process names.
const linuxCommLimit = 15

// HelperCommands are subcommands that run without opening the overlay.
// Processes running one of them are not instances.
var HelperCommands = map[string]bool{
	"status":     true,
	"reset":      true,
	"autostart":  true,
	"help":       true,
	"completion": true,
}

// valueFlags take their value as the next argument.
var valueFlags = map[string]bool{
	"--dir":       true,
	"--log-level": true,
}

// Identity describes the current process as other instances would see it.
type Identity struct {
	PID  int32
	Name string
	Path string
}

// CurrentIdentity resolves the identity of this process.
func CurrentIdentity() (Identity, error) {
	execPath, err := os.Executable()
	if err != nil {
		return Identity{}, fmt.Errorf("resolve executable: %w", err)
	}
	return Identity{
		PID:  int32(os.Getpid()),
		Name: filepath.Base(execPath),
		Path: resolvePath(execPath, ""),
	}, nil
}

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance aborts with ErrAlreadyRunning when another process
// runs the same executable, then binds a deterministic localhost port so a
// launch racing this one fails too.
func AcquireSingleInstance(ctx context.Context, appName string, logger *slog.Logger) (*InstanceGuard, error) {
	self, err := CurrentIdentity()
	if err != nil {
		return nil, err
	}
	return acquireSingleInstance(ctx, appName, NewProcessLister(), self, logger)
}

func acquireSingleInstance(ctx context.Context, appName string, lister ProcessLister, self Identity, logger *slog.Logger) (*InstanceGuard, error) {
	if logger == nil {
		logger = slog.Default()
	}

	record, found, err := FindInstance(ctx, lister, self)
	if err != nil {
		logger.Warn("process scan failed, relying on port lock", "error", err)
	}
	if found {
		logger.Info("found running instance", "pid", record.PID, "path", record.Path)
		return nil, ErrAlreadyRunning
	}

	port := portFromName(appName + "|" + self.Path)
	address := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// FindInstance scans running processes for another overlay started from the
// same executable. Helper subcommands and processes that vanish or deny
// access during the scan are skipped.
func FindInstance(ctx context.Context, lister ProcessLister, self Identity) (InstanceRecord, bool, error) {
	processes, err := lister.Processes(ctx)
	if err != nil {
		return InstanceRecord{}, false, fmt.Errorf("list processes: %w", err)
	}

	for _, proc := range processes {
		if proc.PID() == self.PID {
			continue
		}
		name, err := proc.Name()
		if err != nil || !sameName(name, self.Name) {
			continue
		}
		path, ok := processPath(proc)
		if !ok || !samePath(path, self.Path) {
			continue
		}
		if cmdline, err := proc.Cmdline(); err == nil && IsHelperInvocation(cmdline) {
			continue
		}
		return InstanceRecord{PID: proc.PID(), Name: name, Path: path}, true, nil
	}
	return InstanceRecord{}, false, nil
}

// IsHelperInvocation reports whether argv runs a helper subcommand. The
// subcommand is the first argument after argv[0] that is neither a flag nor
// a flag value.
func IsHelperInvocation(argv []string) bool {
	if len(argv) < 2 {
		return false
	}
	args := argv[1:]
	for index := 0; index < len(args); index++ {
		arg := args[index]
		switch {
		case arg == "--":
			return index+1 < len(args) && HelperCommands[args[index+1]]
		case arg == "-h" || arg == "--help" || arg == "--version":
			return true
		case strings.HasPrefix(arg, "-"):
			if valueFlags[arg] {
				index++
			}
		default:
			return HelperCommands[arg]
		}
	}
	return false
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func processPath(proc ProcessInfo) (string, bool) {
	if exe, err := proc.Exe(); err == nil && exe != "" {
		return resolvePath(exe, ""), true
	}

	cmdline, err := proc.Cmdline()
	if err != nil || len(cmdline) == 0 || cmdline[0] == "" {
		return "", false
	}
	cwd, err := proc.Cwd()
	if err != nil {
		cwd = ""
	}
	return resolvePath(cmdline[0], cwd), true
}

func resolvePath(path, cwd string) string {
	if !filepath.IsAbs(path) && cwd != "" {
		path = filepath.Join(cwd, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Clean(path)
}

func sameName(name, self string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(name, self)
	}
	if name == self {
		return true
	}
	return len(name) == linuxCommLimit && strings.HasPrefix(self, name)
}

func samePath(path, self string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(path, self)
	}
	return path == self
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}

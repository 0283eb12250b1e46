// Package launch starts the wrapped console application and ties its
// lifetime to the wrapper's: when either side ends, the other is taken down
// with it.
package launch

import "strings"

// Spec describes the console application to wrap. It is filled from the
// command line once and never mutated afterwards.
type Spec struct {
	Program      string // path to the console executable
	Args         string // raw argument string, passed through verbatim
	Dir          string // working directory, empty to inherit
	Icon         string // tray icon image path, empty for the default
	Tooltip      string // tray tooltip, empty to use the child's window title
	Minimized    bool   // hide the console shortly after startup
	PreventSleep bool   // keep the system awake while running
}

// conhostExe is the classic Windows console host.
const conhostExe = "conhost.exe"

// conhostMinBuild is the first Windows build where the default terminal may
// not be the classic console host. Launching the target directly there can
// produce a process without a console window to toggle, so the classic host
// is interposed and handed the target as its leading argument.
const conhostMinBuild = 22000

// EffectiveTarget returns the image to execute and the argument string to
// hand it, for the given Windows build number.
func EffectiveTarget(s Spec, build uint32) (program, args string) {
	if build < conhostMinBuild {
		return s.Program, s.Args
	}
	args = s.Program
	if s.Args != "" {
		args += " " + s.Args
	}
	return conhostExe, args
}

// commandLine assembles the raw command line for CreateProcess. The program
// is quoted when needed; the argument string is appended verbatim, never
// re-tokenized.
func commandLine(program, args string) string {
	line := program
	if strings.ContainsAny(program, " \t") {
		line = `"` + program + `"`
	}
	if args != "" {
		line += " " + args
	}
	return line
}

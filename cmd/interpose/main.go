//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd
// +build darwin dragonfly freebsd linux openbsd solaris netbsd

// Command interpose runs a target program with an interposition unit
// preloaded ahead of its libraries:
//
//	interpose -lib ./unameversion.so uname -a
//
// It only places the unit in the platform's preload variable and execs the
// target; the OS loader does the injection and the preloaded unit does the
// interception.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/xyproto/env/v2"
	"golang.org/x/sys/unix"
)

func preloadVar() string {
	if runtime.GOOS == "darwin" {
		return "DYLD_INSERT_LIBRARIES"
	}
	return "LD_PRELOAD"
}

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

	lib := flag.String("lib", "", "path to the interposition unit (.so / .dylib)")
	flag.Parse()
	args := flag.Args()
	if *lib == "" || len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s -lib unit.so command [args...]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	libPath, err := filepath.Abs(*lib)
	if err != nil {
		level.Error(logger).Log("msg", "resolve unit path", "lib", *lib, "err", err)
		os.Exit(1)
	}
	if _, err := os.Stat(libPath); err != nil {
		level.Error(logger).Log("msg", "interposition unit not found", "path", libPath, "err", err)
		os.Exit(1)
	}

	name := preloadVar()
	value := libPath
	if prev := env.Str(name); prev != "" {
		value = libPath + ":" + prev
	}
	if err := os.Setenv(name, value); err != nil {
		level.Error(logger).Log("msg", "set preload variable", "var", name, "err", err)
		os.Exit(1)
	}

	target, err := exec.LookPath(args[0])
	if err != nil {
		level.Error(logger).Log("msg", "target not found", "target", args[0], "err", err)
		os.Exit(1)
	}
	if err := unix.Exec(target, args, os.Environ()); err != nil {
		level.Error(logger).Log("msg", "exec failed", "target", target, "err", err)
		os.Exit(1)
	}
}

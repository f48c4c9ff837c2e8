//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

type goOptions struct {
	dir   string
	env   []string
	quiet bool
}

type goOption func(*goOptions)

// inDir runs the go command from dir, relative to the module root.
func inDir(dir string) goOption {
	return func(o *goOptions) {
		o.dir = dir
	}
}

// withEnv adds KEY=VALUE pairs on top of the current environment.
func withEnv(env ...string) goOption {
	return func(o *goOptions) {
		o.env = append(o.env, env...)
	}
}

// quiet keeps the output unless the command fails or mage runs verbose.
func quiet() goOption {
	return func(o *goOptions) {
		o.quiet = true
	}
}

// runGo runs the go tool with args and streams its output.
func runGo(args []string, options ...goOption) error {
	opts := &goOptions{}
	for _, o := range options {
		o(opts)
	}

	fmt.Printf("> go %s\n", strings.Join(args, " "))
	cmd := exec.Command("go", args...)
	cmd.Dir = opts.dir
	if len(opts.env) > 0 {
		cmd.Env = append(os.Environ(), opts.env...)
	}

	var out bytes.Buffer
	if opts.quiet && !mg.Verbose() {
		cmd.Stdout = &out
		cmd.Stderr = &out
	} else {
		cmd.Stdout = io.MultiWriter(&out, os.Stdout)
		cmd.Stderr = io.MultiWriter(&out, os.Stderr)
	}
	if err := cmd.Run(); err != nil {
		if opts.quiet && !mg.Verbose() {
			fmt.Print(out.String())
		}
		return fmt.Errorf("go %s: %w", args[0], err)
	}
	return nil
}

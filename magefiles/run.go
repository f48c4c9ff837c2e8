//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds the packages and then runs the driver with lotus.toml.
func (Run) Driver() error {
	mg.Deps(Build.All)
	fmt.Println("Run driver...")
	return runGo([]string{"run", ".", "-config", "lotus.toml"})
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/slip/pkg"
)

// Version prints version information.
type Version struct{}

// Run executes the version command.
func (Version) Run(context.Context) error {
	// The embedded VERSION file ends with a newline.
	fmt.Printf("%s version %s\n", pkg.Name, strings.TrimSpace(pkg.Version))

	return nil
}

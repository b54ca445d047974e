package main

import (
	"fmt"

	"github.com/pproszowski/tagstrip"
)

// Run executes the tags command.
func (c *TagsCmd) Run(deps *Dependencies) error {
	opts, err := deps.Config.Options()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagstrip.ErrorMessage(err))
		return err
	}

	for _, name := range opts.Tags.Names() {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/pproszowski/tagstrip"
)

// Run executes the strip command.
func (c *StripCmd) Run(deps *Dependencies) error {
	opts, err := c.buildOptions(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagstrip.ErrorMessage(err))
		return err
	}

	// Configuration errors surface here, before any file is touched.
	req, err := tagstrip.NewBatchRequest(c.Paths, c.Recursive, c.Out, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagstrip.ErrorMessage(err))
		return err
	}

	progress := func(p tagstrip.Progress) {
		if p.Task.State == tagstrip.StateFailed {
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", p.Task.Path, p.Task.Reason)
			return
		}
		if c.Quiet {
			return
		}
		note := ""
		if p.Task.Unchanged {
			note = " (unchanged)"
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s%s\n", p.Completed, p.Total, p.Task.Path, note)
	}

	tasks, err := deps.Runner.Run(deps.Ctx, req, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagstrip.ErrorMessage(err))
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(deps.Stdout, "No supported files found in the given paths.")
		return nil
	}

	summary := tagstrip.Summarize(tasks)
	fmt.Fprintln(deps.Stdout, summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

// buildOptions merges config-file values with flags. Flags win.
func (c *StripCmd) buildOptions(deps *Dependencies) (tagstrip.StripOptions, error) {
	opts, err := deps.Config.Options()
	if err != nil {
		return tagstrip.StripOptions{}, err
	}

	if len(c.Tags) > 0 {
		tags, err := tagstrip.NewTagSet(c.Tags...)
		if err != nil {
			return tagstrip.StripOptions{}, err
		}
		opts.Tags = tags
	}
	if len(c.AddTags) > 0 {
		extra, err := tagstrip.NewTagSet(c.AddTags...)
		if err != nil {
			return tagstrip.StripOptions{}, err
		}
		opts.Tags = opts.Tags.Union(extra)
	}

	if c.Unwrap {
		opts.Mode = tagstrip.UnwrapOnly
	}

	if c.CleanAttrs != "" {
		mode, err := tagstrip.ParseAttrMode(c.CleanAttrs)
		if err != nil {
			return tagstrip.StripOptions{}, err
		}
		opts.AttrMode = mode
	}
	if len(c.AttrTags) > 0 {
		attrTags, err := tagstrip.NewTagSet(c.AttrTags...)
		if err != nil {
			return tagstrip.StripOptions{}, err
		}
		opts.AttrTags = attrTags
	}

	return opts, nil
}

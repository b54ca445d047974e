package main

import (
	"context"
	"io"

	"github.com/pproszowski/tagstrip"
	"github.com/pproszowski/tagstrip/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *yaml.Config
	Runner tagstrip.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Strip StripCmd `cmd:"" help:"Strip tags from HTML and text files"`
	Tags  TagsCmd  `cmd:"" help:"Print the effective tag set"`
}

// StripCmd is the "strip" subcommand.
type StripCmd struct {
	Paths []string `arg:"" name:"path" help:"Files or directories to process" type:"path"`

	Tags        []string `short:"t" help:"Tag names to remove, replacing the configured set"`
	AddTags     []string `name:"add-tags" help:"Tag names to add to the configured set"`
	Recursive   bool     `short:"r" help:"Descend into subdirectories"`
	Unwrap      bool     `short:"u" help:"Remove tag markers only, keeping content in place"`
	CleanAttrs  string   `name:"clean-attrs" enum:",none,all,selected,except" default:"" help:"Attribute cleaning mode (none|all|selected|except)"`
	AttrTags    []string `name:"attr-tags" help:"Tag names scoping --clean-attrs selected/except"`
	Out         string   `short:"o" type:"path" help:"Write output under this directory instead of in place"`
	Concurrency int      `short:"c" default:"1" help:"Files processed in parallel"`
	Quiet       bool     `short:"q" help:"Suppress per-file progress lines"`
}

// TagsCmd is the "tags" subcommand.
type TagsCmd struct{}

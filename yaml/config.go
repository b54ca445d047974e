// Package yaml loads tagstrip configuration from YAML files.
package yaml

import (
	"os"

	"github.com/pproszowski/tagstrip"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape.
type Config struct {
	// Tags replace the built-in default tag set when non-empty.
	Tags []string `yaml:"tags"`

	// Unwrap selects UnwrapOnly mode instead of RemoveSubtree.
	Unwrap bool `yaml:"unwrap"`

	// CleanAttrs is one of none, all, selected, except.
	CleanAttrs string `yaml:"clean_attrs"`

	// AttrTags scopes the selected and except cleaning modes.
	AttrTags []string `yaml:"attr_tags"`
}

// LoadConfig reads and parses the config file at path. A missing file is
// not an error and returns an empty config, so the default path works
// without setup. Returns EREAD on other I/O failures and EINVALID when
// the YAML cannot be parsed.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, tagstrip.Errorf(tagstrip.EREAD, "cannot read config %s: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, tagstrip.Errorf(tagstrip.EINVALID, "cannot parse config %s: %v", path, err)
	}
	return &cfg, nil
}

// Options converts the config into validated strip options. Invalid tag
// names and unknown mode strings surface as EINVALID before any file is
// processed.
func (c *Config) Options() (tagstrip.StripOptions, error) {
	opts := tagstrip.StripOptions{
		Mode:     tagstrip.RemoveSubtree,
		AttrMode: tagstrip.AttrKeep,
	}

	if len(c.Tags) > 0 {
		tags, err := tagstrip.NewTagSet(c.Tags...)
		if err != nil {
			return tagstrip.StripOptions{}, err
		}
		opts.Tags = tags
	} else {
		opts.Tags = tagstrip.DefaultTags()
	}

	if c.Unwrap {
		opts.Mode = tagstrip.UnwrapOnly
	}

	attrMode, err := tagstrip.ParseAttrMode(c.CleanAttrs)
	if err != nil {
		return tagstrip.StripOptions{}, err
	}
	opts.AttrMode = attrMode

	if len(c.AttrTags) > 0 {
		attrTags, err := tagstrip.NewTagSet(c.AttrTags...)
		if err != nil {
			return tagstrip.StripOptions{}, err
		}
		opts.AttrTags = attrTags
	}

	return opts, nil
}

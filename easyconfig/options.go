package easyconfig

import "sort"

// Category groups easyconfig options when they are listed.
type Category int

const (
	Mandatory Category = iota
	Build
	Toolchain
	Custom
)

func (c Category) String() string {
	switch c {
	case Mandatory:
		return "MANDATORY"
	case Build:
		return "BUILD"
	case Toolchain:
		return "TOOLCHAIN"
	case Custom:
		return "CUSTOM"
	}
	return "UNKNOWN"
}

// Option declares an easyconfig parameter.
type Option struct {
	Default  any
	Help     string
	Category Category
}

// Options maps parameter names to their declarations.
type Options map[string]Option

// Merge returns a new set holding o and extra. Declarations in extra win.
func (o Options) Merge(extra Options) Options {
	out := make(Options, len(o)+len(extra))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Names returns the declared parameter names, sorted.
func (o Options) Names() []string {
	names := make([]string, 0, len(o))
	for k := range o {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Base returns the parameters every easyconfig understands.
func Base() Options {
	return Options{
		"name":          {Default: "", Help: "Name of software", Category: Mandatory},
		"version":       {Default: "", Help: "Version of software", Category: Mandatory},
		"versionsuffix": {Default: "", Help: "Additional suffix for software version", Category: Mandatory},
		"homepage":      {Default: "", Help: "The homepage of the software", Category: Mandatory},
		"description":   {Default: "", Help: "A short description of the software", Category: Mandatory},
		"easyblock":     {Default: "", Help: "EasyBlock to use for building", Category: Build},
		"toolchain":     {Default: nil, Help: "Name and version of toolchain", Category: Toolchain},
		"toolchainopts": {Default: nil, Help: "Extra options for compilers", Category: Toolchain},
		"installdir":    {Default: "", Help: "Installation prefix, overrides the default location", Category: Build},
		"srcdir":        {Default: "", Help: "Source directory location, relative to the unpacked sources", Category: Build},
		"preconfigopts": {Default: "", Help: "Environment assignments for the configure command", Category: Build},
		"configopts":    {Default: "", Help: "Extra options passed to configure", Category: Build},
		"buildopts":     {Default: "", Help: "Extra options passed to the build command", Category: Build},
		"parallel":      {Default: 0, Help: "Number of parallel build jobs, 0 lets the build tool decide", Category: Build},
		"runtest":       {Default: "", Help: "Target that runs the test suite, empty skips tests", Category: Build},
		"testopts":      {Default: "", Help: "Extra options passed to the test command", Category: Build},
		"installopts":   {Default: "", Help: "Extra options passed to the install command", Category: Build},
	}
}

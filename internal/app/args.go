package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"tmenu/internal/terminal"
)

const progName = "tmenu"

// Arguments is the parsed command line
type Arguments struct {
	Placement    terminal.Placement
	PlacementSet bool
	ConfigPath   string
	Help         bool
}

// ParseArguments parses args (without the program name). Placement flags
// override each other, the last one wins. Positional arguments are rejected.
func ParseArguments(args []string) (*Arguments, *pflag.FlagSet, error) {
	a := &Arguments{}
	fs := newFlagSet(a)

	if err := fs.Parse(args); err != nil {
		return nil, fs, &ArgumentError{Err: err}
	}
	if fs.NArg() > 0 {
		return nil, fs, &ArgumentError{Err: fmt.Errorf("unexpected argument %q", fs.Arg(0))}
	}
	return a, fs, nil
}

func newFlagSet(a *Arguments) *pflag.FlagSet {
	fs := pflag.NewFlagSet(progName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	placementFlag(fs, a, "top", "t", terminal.PlaceTop, "draw on the top row of the screen")
	placementFlag(fs, a, "bottom", "b", terminal.PlaceBottom, "draw on the bottom row of the screen")
	placementFlag(fs, a, "default", "T", terminal.PlaceDefault, "draw at the cursor position")
	fs.StringVarP(&a.ConfigPath, "config", "c", "", "read configuration from `path`")
	fs.BoolVarP(&a.Help, "help", "h", false, "show this help")
	return fs
}

func placementFlag(fs *pflag.FlagSet, a *Arguments, name, short string, p terminal.Placement, usage string) {
	f := fs.VarPF(&placementValue{args: a, value: p}, name, short, usage)
	f.NoOptDefVal = "true"
}

// placementValue is a boolean flag that writes its placement into the
// shared Arguments, so flags given later override earlier ones
type placementValue struct {
	args  *Arguments
	value terminal.Placement
}

func (v *placementValue) String() string { return "false" }
func (v *placementValue) Type() string   { return "bool" }

func (v *placementValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		v.args.Placement = v.value
		v.args.PlacementSet = true
	}
	return nil
}

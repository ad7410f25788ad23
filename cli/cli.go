package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/duck/cli/cmd"
	"github.com/ardnew/duck/pkg"
)

// configFile is the base name of the YAML configuration file.
const configFile = "config.yaml"

// CLI is the top-level command-line interface for duck.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Vars []string `help:"YAML file(s) of variable bindings or '-' for stdin" name:"vars" short:"f" type:"existingfile"`

	Eval   cmd.Eval   `cmd:"" default:"withargs" help:"Evaluate expressions"`
	Assign cmd.Assign `cmd:""                    help:"Assign a value through an expression"`
	Fmt    cmd.Fmt    `cmd:""                    help:"Print the evaluation tree of expressions"`
	Tokens cmd.Tokens `cmd:""                    help:"Print the tokens found in text"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run parses args and runs the selected command.
// Kong calls exit after printing help or version, or on a usage error.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cli CLI

	// Logger flags apply before parsing so that parse errors are reported
	// with the requested format regardless of where the flags appear.
	cli.Log.scan(args)

	// Commands receive ctx as it is when they run, after the values below
	// have been added.
	provide := func() context.Context { return ctx }

	parser, err := cli.parser(ctx, provide, exit, pkg.ConfigPath(configFile))
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithBindingFiles(ctx, cli.Vars)

	cli.Log.start(ctx)
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

func (c *CLI) parser(
	ctx context.Context,
	provide func() context.Context,
	exit func(int),
	config string,
) (*kong.Kong, error) {
	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: config,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}

	return kong.New(c,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{c.Log.group(), c.Pprof.group()}),
		kong.BindSingletonProvider(provide),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(resolve(ctx), config),
		vars.CloneWith(c.Log.vars()).CloneWith(c.Pprof.vars()),
	)
}

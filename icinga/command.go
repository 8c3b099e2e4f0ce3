package icinga

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Overridden in tests.
var (
	stdout io.Writer = os.Stdout
	osExit           = os.Exit
)

// ArgumentDescription describes one plugin flag.
type ArgumentDescription struct {
	Name         string // long flag name without dashes
	Value        string // Icinga custom variable name
	Description  string
	IsFlag       bool // boolean switch, rendered as set_if
	DefaultValue string
	HasDefault   bool
}

// CommandDescription describes the flags of a plugin.
type CommandDescription struct {
	Arguments []ArgumentDescription
}

// FromFlagSet describes every visible flag of fs except help.
func FromFlagSet(fs *pflag.FlagSet) (*CommandDescription, error) {
	if fs == nil {
		return nil, ErrNilFlagSet
	}

	desc := &CommandDescription{}
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		desc.Arguments = append(desc.Arguments, describeFlag(f))
	})
	return desc, nil
}

// FromCommand describes the flags of cmd, including persistent flags
// inherited from its parents.
func FromCommand(cmd *cobra.Command) (*CommandDescription, error) {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.AddFlagSet(cmd.Flags())
	fs.AddFlagSet(cmd.InheritedFlags())
	return FromFlagSet(fs)
}

func describeFlag(f *pflag.Flag) ArgumentDescription {
	arg := ArgumentDescription{
		Name:        f.Name,
		Value:       strings.ReplaceAll(f.Name, "-", "_"),
		Description: f.Usage,
		IsFlag:      f.Value.Type() == "bool",
	}
	if !arg.IsFlag && !zeroDefaults[f.DefValue] {
		arg.DefaultValue = f.DefValue
		arg.HasDefault = true
	}
	return arg
}

// pflag renders an undeclared default as the type's zero value. Passing it
// as a var would set the flag on every run.
var zeroDefaults = map[string]bool{
	"":      true,
	"0":     true,
	"0s":    true,
	"[]":    true,
	"map[]": true,
}

// Render returns the CheckCommand object for the plugin at executable.
func (d *CommandDescription) Render(name, executable string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "object CheckCommand \"%s\" {\n", escape(name))
	fmt.Fprintf(&b, "  command = [ \"%s\" ]\n", escape(executable))
	b.WriteString("  arguments = {\n")
	for _, arg := range d.Arguments {
		fmt.Fprintf(&b, "    \"--%s\" = {\n", arg.Name)
		if arg.IsFlag {
			fmt.Fprintf(&b, "      set_if = \"$%s$\"\n", arg.Value)
		} else {
			fmt.Fprintf(&b, "      value = \"$%s$\"\n", arg.Value)
		}
		if arg.Description != "" {
			fmt.Fprintf(&b, "      description = \"%s\"\n", escape(arg.Description))
		}
		b.WriteString("    }\n")
	}
	b.WriteString("  }\n")

	var vars []string
	for _, arg := range d.Arguments {
		if arg.HasDefault {
			vars = append(vars, fmt.Sprintf("  vars.%s = \"%s\"\n", arg.Value, escape(arg.DefaultValue)))
		}
	}
	if len(vars) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(vars, ""))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToCheckCommand renders the CheckCommand object for the running executable.
func (d *CommandDescription) ToCheckCommand(name string) (string, error) {
	exe, err := os.Executable()
	if err != nil || exe == "" {
		return "", fmt.Errorf("%w: %v", ErrInvalidExecutablePath, err)
	}
	return d.Render(name, exe), nil
}

// PrintIfEnvAndExit prints the CheckCommand object for fs and exits with
// status 0 when GENERATE_ICINGA_COMMAND is set. Otherwise it does nothing.
func PrintIfEnvAndExit(name string, fs *pflag.FlagSet) error {
	if _, ok := os.LookupEnv(EnvGenerate); !ok {
		return nil
	}

	desc, err := FromFlagSet(fs)
	if err != nil {
		return err
	}
	out, err := desc.ToCheckCommand(name)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(stdout, strings.TrimSpace(out)); err != nil {
		return err
	}
	osExit(0)
	return nil
}

// Icinga strings are double quoted and expand $macros$.
var escaper = strings.NewReplacer(`"`, `\"`, `$`, `\$`)

func escape(s string) string {
	return escaper.Replace(s)
}

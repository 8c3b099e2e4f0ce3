// Package icinga generates Icinga 2 CheckCommand definitions from a plugin's
// command line flags.
//
// A plugin calls PrintIfEnvAndExit early in main. When the
// GENERATE_ICINGA_COMMAND environment variable is set, the plugin prints a
// CheckCommand object describing its own flags and exits, so the Icinga
// configuration never drifts from the binary:
//
//	fs := pflag.NewFlagSet("check_disk", pflag.ExitOnError)
//	fs.String("path", "/", "Filesystem to check")
//	if err := icinga.PrintIfEnvAndExit("disk", fs); err != nil {
//	    log.Fatal(err)
//	}
//
// Flags of type bool map to set_if, everything else to value. Defaults
// become vars.
package icinga

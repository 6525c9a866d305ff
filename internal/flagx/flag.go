// Package flagx lets independent components parse their own subset of the
// process command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in owned, together with their
// values. Both "-n 10" and "-n=10" forms are understood. A token following an
// owned flag is taken as its value unless it starts with a dash.
func FilterArgs(args []string, owned []string) []string {
	set := make(map[string]bool, len(owned))
	for _, name := range owned {
		set[name] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if set[name] {
				out = append(out, arg)
			}
			continue
		}

		if !set[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// ConfigFileFlag returns the path given with -c or -config, or "" when the
// process was started without one. When both are present the last wins.
func ConfigFileFlag() string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to configuration file (.json, .yaml)")
	fs.StringVar(&path, "c", "", "path to configuration file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config"}))

	return path
}

// Package flagx contains helpers for working with command line flags.
package flagx

import "strings"

// ConfigFileFlags lists the flag names that select an alternative
// configuration file. Both the short and the long form are recognized.
func ConfigFileFlags() []string {
	return []string{"c", "config"}
}

// Subset returns the items of args that belong to one of the wanted
// flags, keeping separate values ("-c file.json") attached to their flag.
// It is used to parse the config file location before the full flag set
// is known, so that values from the file can act as defaults.
func Subset(args []string, wanted []string) []string {
	names := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		names["-"+w] = struct{}{}
		names["--"+w] = struct{}{}
	}

	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		name := arg
		if j := strings.IndexByte(arg, '='); j >= 0 {
			name = arg[:j]
		}
		if _, ok := names[name]; !ok {
			continue
		}

		out = append(out, arg)

		// A flag without "=" takes the next item as its value.
		if name == arg && i+1 < len(args) {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

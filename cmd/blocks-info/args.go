package main

import "regexp"

// Range specs such as "-10" or "-100+10" look like short options to the flag
// parser. Such arguments are moved behind a "--" separator.
var rangeLike = regexp.MustCompile(`^-[0-9]`)

func splitArgs(args []string) []string {
	var opts, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if rangeLike.MatchString(a) {
			positional = append(positional, a)
			continue
		}
		opts = append(opts, a)
	}
	if len(positional) == 0 {
		return opts
	}
	return append(append(opts, "--"), positional...)
}

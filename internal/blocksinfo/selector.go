package blocksinfo

import (
	"fmt"
	"slices"
	"strings"
)

// SelectFields resolves a field specification into the active columns:
// "" for the defaults, "all", "none", "a,b", "+a,b" (defaults plus) or
// "-a,b" (defaults minus). The miner column is appended when minerInfo is set.
func SelectFields(spec string, minerInfo bool) ([]Field, error) {
	fields, err := selectSet(spec, LookupField, defaultFields, int(numFields), ErrUnknownField)
	if err != nil {
		return nil, err
	}
	if minerInfo && !slices.Contains(fields, FieldMiner) {
		fields = append(fields, FieldMiner)
	}
	return fields, nil
}

// SelectStats resolves a statistics specification using the same grammar as SelectFields.
func SelectStats(spec string) ([]Stat, error) {
	return selectSet(spec, LookupStat, defaultStats, int(numStats), ErrUnknownStat)
}

func selectSet[T ~uint8](
	spec string,
	lookup func(string) (T, bool),
	defaults []T,
	count int,
	errUnknown error,
) ([]T, error) {
	spec = strings.TrimSpace(spec)

	var chosen []T
	switch spec {
	case "":
		chosen = defaults
	case "all":
		chosen = make([]T, count)
		for i := range chosen {
			chosen[i] = T(i)
		}
	case "none":
		return []T{}, nil
	default:
		mode := spec[0]
		names := spec
		if mode == '+' || mode == '-' {
			names = spec[1:]
		}
		listed, err := lookupAll(names, lookup, errUnknown)
		if err != nil {
			return nil, err
		}
		switch mode {
		case '+':
			chosen = append(slices.Clone(defaults), listed...)
		case '-':
			for _, v := range defaults {
				if !slices.Contains(listed, v) {
					chosen = append(chosen, v)
				}
			}
		default:
			chosen = listed
		}
	}

	out := slices.Clone(chosen)
	slices.Sort(out)
	return slices.Compact(out), nil
}

func lookupAll[T any](names string, lookup func(string) (T, bool), errUnknown error) ([]T, error) {
	var out []T
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		v, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, errUnknown)
		}
		out = append(out, v)
	}
	return out, nil
}

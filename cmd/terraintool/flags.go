package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// tierList parses a comma-separated list of tier resolutions.
type tierList []int

func (t *tierList) String() string {
	parts := make([]string, len(*t))
	for i, v := range *t {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (t *tierList) Set(s string) error {
	*t = (*t)[:0]
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("tier %q: %w", part, err)
		}
		*t = append(*t, v)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

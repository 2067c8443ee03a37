package scoring

import (
	"strconv"
	"strings"
)

// CompareIDs orders question ids by their dot-separated components, numeric
// components compared as integers ("2.2" < "2.10"). Missing trailing
// components count as zero. Non-numeric components sort after numeric ones
// and compare as strings. Ids that are equal component-wise fall back to a
// plain string comparison so the order is total.
func CompareIDs(a, b string) int {
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")

	n := len(ap)
	if len(bp) > n {
		n = len(bp)
	}

	for i := 0; i < n; i++ {
		if c := compareComponent(component(ap, i), component(bp, i)); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

func component(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}

func compareComponent(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)

	switch {
	case aErr == nil && bErr == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

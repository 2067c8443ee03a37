package scoring

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric minor", "2.2", "2.10", -1},
		{"numeric major", "10.1", "9.99", 1},
		{"equal", "1.02", "1.02", 0},
		{"leading zeros compare numerically", "1.02", "1.2", -1},
		{"missing component is zero", "2", "2.0", -1},
		{"shorter prefix first", "2", "2.1", -1},
		{"numeric before text", "3.1", "3.a", -1},
		{"text ids", "cloud-aws", "backup-immutable", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareIDs(tt.a, tt.b))
			assert.Equal(t, -tt.want, CompareIDs(tt.b, tt.a))
		})
	}
}

func TestCompareIDs_SortsNumerically(t *testing.T) {
	ids := []string{"2.10", "1.02", "2.2", "10.1", "2.1", "1.10"}
	sort.SliceStable(ids, func(i, j int) bool { return CompareIDs(ids[i], ids[j]) < 0 })

	assert.Equal(t, []string{"1.02", "1.10", "2.1", "2.2", "2.10", "10.1"}, ids)
}

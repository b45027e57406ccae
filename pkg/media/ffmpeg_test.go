package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		name  string
		probe string
		want  int64
		ok    bool
	}{
		{"string rounds up", `{"format":{"duration":"12.500000"}}`, 13, true},
		{"string rounds down", `{"format":{"duration":"12.4"}}`, 12, true},
		{"number", `{"format":{"duration":3.6}}`, 4, true},
		{"zero", `{"format":{"duration":"0.000000"}}`, 0, true},
		{"missing field", `{"format":{"size":"1000"}}`, 0, false},
		{"missing format", `{"streams":[]}`, 0, false},
		{"non numeric", `{"format":{"duration":"N/A"}}`, 0, false},
		{"negative", `{"format":{"duration":"-1"}}`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDuration(tc.probe)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want VND
	}{
		{"50000", 50000},
		{"50000.00", 50000},
		{"29999.5", 30000},
		{" 120000 ", 120000},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), tt.in)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var out struct {
		A VND `json:"a"`
		B VND `json:"b"`
		C VND `json:"c"`
		D VND `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 30000, "b": "50000.00", "c": null, "d": ""}`), &out)
	require.NoError(t, err)

	assert.Equal(t, VND(30000), out.A)
	assert.Equal(t, VND(50000), out.B)
	assert.Equal(t, VND(0), out.C)
	assert.Equal(t, VND(0), out.D)

	b, err := json.Marshal(out.B)
	require.NoError(t, err)
	assert.Equal(t, "50000", string(b))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0₫", VND(0).String())
	assert.Equal(t, "999₫", VND(999).String())
	assert.Equal(t, "100.000₫", VND(100000).String())
	assert.Equal(t, "130.000₫", VND(130000).String())
	assert.Equal(t, "1.250.000₫", VND(1250000).String())
	assert.Equal(t, "-30.000₫", VND(-30000).String())
}

func TestMul(t *testing.T) {
	assert.Equal(t, VND(100000), VND(50000).Mul(2))
}

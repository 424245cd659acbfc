package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Gado-Gado Spesial":  "gado-gado-spesial",
		"  Nasi   Merah  ":   "nasi-merah",
		"Ayam Bakar (Pedas)": "ayam-bakar-pedas",
		"!!!":                "menu",
		"":                   "menu",
	}
	for input, want := range cases {
		assert.Equal(t, want, Make(input), "input %q", input)
	}
}

func TestUniqueSuffixesOnCollision(t *testing.T) {
	taken := map[string]bool{"gado-gado": true, "gado-gado-2": true}
	exists := func(s string) (bool, error) { return taken[s], nil }

	got, err := Unique("Gado-Gado", exists)
	require.NoError(t, err)
	assert.Equal(t, "gado-gado-3", got)
}

func TestUniqueNoCollision(t *testing.T) {
	exists := func(s string) (bool, error) { return false, nil }

	got, err := Unique("Sop Buntut", exists)
	require.NoError(t, err)
	assert.Equal(t, "sop-buntut", got)
}

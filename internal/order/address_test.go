package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeAddress(t *testing.T) {
	got := ComposeAddress("https://maps.app.goo.gl/abc", "Pagar hijau depan masjid")
	assert.Equal(t, "https://maps.app.goo.gl/abc\n\nPatokan: Pagar hijau depan masjid", got)
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		maps    string
		display string
	}{
		{
			name:    "Composed",
			address: ComposeAddress("https://maps.app.goo.gl/abc", "Rumah cat biru"),
			maps:    "https://maps.app.goo.gl/abc",
			display: "Patokan: Rumah cat biru",
		},
		{
			name:    "LinkOnly",
			address: "https://maps.app.goo.gl/abc",
			maps:    "https://maps.app.goo.gl/abc",
			display: "",
		},
		{
			name:    "PlainText",
			address: "Jl. Merdeka No. 1\nRT 02",
			maps:    "",
			display: "Jl. Merdeka No. 1\nRT 02",
		},
		{
			name:    "Empty",
			address: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maps, display := SplitAddress(tt.address)
			assert.Equal(t, tt.maps, maps)
			assert.Equal(t, tt.display, display)
		})
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhatsAppLink(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", DefaultWhatsAppLink},
		{"   ", DefaultWhatsAppLink},
		{"https://wa.me/556799998888", "https://wa.me/556799998888"},
		{"http://wa.me/556799998888", "http://wa.me/556799998888"},
		{"wa.me/556799998888", "https://wa.me/556799998888"},
		{"556799998888", "https://wa.me/556799998888"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeWhatsAppLink(tc.in), "input %q", tc.in)
	}
}

func TestDefaultContactBlock(t *testing.T) {
	assert.Equal(t, DefaultWhatsAppLink, DefaultContactBlock.WhatsAppLink)
	assert.NotEmpty(t, DefaultContactBlock.Address)
	assert.NotEmpty(t, DefaultContactBlock.Phone)
	assert.NotEmpty(t, DefaultContactBlock.WhatsAppText)
}

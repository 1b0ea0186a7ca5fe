package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPYG(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 150000, want: "Gs. 150.000"},
		{amount: 0, want: "Gs. 0"},
		{amount: 45.6, want: "Gs. 46"},
		{amount: 1250000, want: "Gs. 1.250.000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPYG(tt.amount))
		})
	}
}

func TestParsePYG(t *testing.T) {
	assert.Equal(t, int64(150000), ParsePYG("Gs. 150.000"))
	assert.Equal(t, int64(70), ParsePYG("70"))
	assert.Equal(t, int64(0), ParsePYG("gratis"))
	assert.Equal(t, int64(0), ParsePYG(""))
}

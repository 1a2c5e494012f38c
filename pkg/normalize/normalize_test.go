package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gfsilva/setup-rastreio/pkg/normalize"
)

func TestSearch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Periférico", "periferico"},
		{"SAÍDA", "saida"},
		{"  Caixa de Som  ", "caixa de som"},
		{"ção", "cao"},
		{"sem acento", "sem acento"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.Search(tc.in), tc.in)
	}
}

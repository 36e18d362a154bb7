package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"box":        "box",
		"100%":       `100\%`,
		"snake_case": `snake\_case`,
		`C:\path`:    `C:\\path`,
		"":           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeLike(in), "input %q", in)
	}
}

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BF667/bfrvc/internal/envvar"
)

func TestFromEnv(t *testing.T) {
	cases := []struct {
		value string
		want  Environment
	}{
		{"", Development},
		{"development", Development},
		{"production", Production},
		{"prod", Production},
		{"PRODUCTION", Production},
		{"staging", Development},
	}

	for _, c := range cases {
		t.Setenv(envvar.BfrvcEnv, c.value)
		assert.Equal(t, c.want, FromEnv(), "BFRVC_ENV=%q", c.value)
	}
}

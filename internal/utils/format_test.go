package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{8192, "8,192"},
		{128000, "128,000"},
		{131072, "131,072"},
		{1048576, "1,048,576"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatThousands(tt.in))
	}
}

func TestDetach(t *testing.T) {
	buf := Get()
	buf.WriteString("hello")
	out := Detach(buf)
	Put(buf)

	reused := Get()
	reused.WriteString("XXXXX")
	defer Put(reused)

	assert.Equal(t, "hello", string(out))
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickFiles(t *testing.T) {
	files := []IncludedFile{{Path: "a"}, {Path: "b"}, {Path: "c"}}

	assert.Equal(t, []IncludedFile{{Path: "a"}, {Path: "c"}}, pickFiles(files, []int{2, 0}))
	assert.Empty(t, pickFiles(files, nil))
}

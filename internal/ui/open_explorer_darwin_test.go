//go:build darwin

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinderArgs(t *testing.T) {
	assert.Equal(t, []string{"-a", "Finder", "/Users/me/app.app"}, finderArgs("/Users/me/app.app"))
}

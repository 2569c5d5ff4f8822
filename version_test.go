package swapsies_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swapsies/swapsies"
)

func TestVersion(t *testing.T) {
	defer func(prev string) { swapsies.GitCommit = prev }(swapsies.GitCommit)

	swapsies.GitCommit = "1234abcd"
	assert.Equal(t, swapsies.Release+" 1234abcd", swapsies.Version())

	swapsies.GitCommit = "0123456789abcdef0123"
	assert.Equal(t, swapsies.Release+" 0123456789ab", swapsies.Version())

	swapsies.GitCommit = ""
	assert.True(t, strings.HasPrefix(swapsies.Version(), swapsies.Release))
}

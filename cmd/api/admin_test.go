package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	names, err := parseCatalog(strings.NewReader("items:\n  - Tomato\n  - green chilli\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato", "green chilli"}, names)
}

func TestParseCatalogRejectsEmptyFile(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("items: []\n"))
	assert.Error(t, err)
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	root := newRootCommand()

	names := []string{}
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(
		t,
		[]string{"user", "product", "cart", "wishlist", "order", "notification", "seed"},
		names,
	)

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	file := seed.Flags().Lookup("file")
	require.NotNil(t, file)
	assert.Equal(t, "seed/products.json", file.DefValue)

	env := root.PersistentFlags().Lookup("env")
	require.NotNil(t, env)
	assert.Equal(t, "development", env.DefValue)
}

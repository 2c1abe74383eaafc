package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("PROJECT_CONFIG_POLICY", "")
	t.Setenv("PROJECT_LISTING_POLICY", "")
	opts, err := OptionsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, Options{}, opts)

	t.Setenv("PROJECT_CONFIG_POLICY", "merge")
	t.Setenv("PROJECT_LISTING_POLICY", "page")
	opts, err = OptionsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, normalize.MergeProjectConfig, opts.AllPolicy)
	assert.Equal(t, normalize.ProjectConfigAsPage, opts.ProjectPolicy)

	t.Setenv("PROJECT_LISTING_POLICY", "both")
	_, err = OptionsFromEnv()
	assert.ErrorContains(t, err, "PROJECT_LISTING_POLICY")
}

package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/kontentgen/pkg/types"
)

func TestIndexLookups(t *testing.T) {
	idx := New(
		[]types.ContentType{{ID: "c1", Codename: "movie"}},
		[]types.ContentTypeSnippet{{ID: "s1", Codename: "seo"}},
		[]types.TaxonomyGroup{{ID: "t1", Codename: "genres"}},
	)

	ct, err := idx.ContentType("c1")
	require.NoError(t, err)
	assert.Equal(t, "movie", ct.Codename)

	sn, err := idx.Snippet("s1")
	require.NoError(t, err)
	assert.Equal(t, "seo", sn.Codename)

	tx, err := idx.Taxonomy("t1")
	require.NoError(t, err)
	assert.Equal(t, "genres", tx.Codename)
}

func TestIndexUnresolved(t *testing.T) {
	idx := FromSnapshot(&types.Snapshot{})

	_, err := idx.ContentType("missing")
	var unresolved *UnresolvedReferenceError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, KindContentType, unresolved.Kind)
	assert.Equal(t, "missing", unresolved.ID)
	assert.Contains(t, err.Error(), "missing")

	_, err = idx.Snippet("x")
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, KindSnippet, unresolved.Kind)

	_, err = idx.Taxonomy("y")
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, KindTaxonomy, unresolved.Kind)
}

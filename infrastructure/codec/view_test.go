package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/criteria/domain/criteria"
	"github.com/helixml/criteria/domain/document"
	"github.com/helixml/criteria/infrastructure/identity"
)

func TestNewView(t *testing.T) {
	c := criteria.New(document.NewType("Tab", nil)).
		Where("pinned", true).
		Descending("opened_at").
		Limit(3).
		Enslave()

	v := NewView(c)
	assert.Equal(t, "Tab", v.Target)
	assert.Equal(t, "tab", v.Collection)
	assert.Equal(t, map[string]any{"pinned": true}, v.Selector)
	assert.Equal(t, []SortView{{Field: "opened_at", Direction: "desc"}}, v.Sort)
	require.NotNil(t, v.Limit)
	assert.Equal(t, 3, *v.Limit)
	assert.Nil(t, v.Skip)
	assert.False(t, v.Cache)
	assert.True(t, v.Enslave)
}

func TestEncode(t *testing.T) {
	typ := document.NewType("Browser", identity.ObjectID{}, document.WithCollection("browsers"))
	c, err := criteria.New(typ).ForIDs("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	data, err := Encode(c.Skip(2))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"target": "Browser",
		"collection": "browsers",
		"selector": {"_id": "507f1f77bcf86cd799439011"},
		"skip": 2,
		"cache": false,
		"enslave": false
	}`, string(data))
}

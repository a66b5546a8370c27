package codec

import (
	"strings"
	"testing"

	"github.com/globalsign/mgo/bson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/criteria/domain/criteria"
	"github.com/helixml/criteria/domain/document"
	"github.com/helixml/criteria/infrastructure/identity"
)

const browserDoc = `
target: {name: Browser, id: object_id, collection: browsers}
ids: [507f1f77bcf86cd799439011, 507f191e810c19729de860ea]
types: [Firefox, Chrome]
where: {vendor: mozilla}
not_in: {platform: [ios]}
excludes: {status: retired}
descending: [created_at]
order_by:
  version: desc
  name: asc
limit: 10
skip: 5
cache: true
extras: {hint: {name: 1}}
`

func TestDecoder_Decode(t *testing.T) {
	c, err := NewDecoder().Decode([]byte(browserDoc))
	require.NoError(t, err)

	assert.Equal(t, "Browser", c.Target().Name())
	assert.Equal(t, "browsers", c.Target().Collection())
	assert.Equal(t, bson.M{
		"_id":      bson.M{"$in": []any{bson.ObjectIdHex("507f1f77bcf86cd799439011"), bson.ObjectIdHex("507f191e810c19729de860ea")}},
		"_type":    bson.M{"$in": []any{"Firefox", "Chrome"}},
		"vendor":   "mozilla",
		"platform": bson.M{"$nin": []any{"ios"}},
		"status":   bson.M{"$ne": "retired"},
	}, c.Selector())

	sort, ok := c.Sort()
	require.True(t, ok)
	assert.Equal(t, criteria.Sort{
		{Field: "created_at", Direction: criteria.SortDesc},
		{Field: "version", Direction: criteria.SortDesc},
		{Field: "name", Direction: criteria.SortAsc},
	}, sort)

	limit, _ := c.LimitValue()
	skip, _ := c.SkipValue()
	assert.Equal(t, 10, limit)
	assert.Equal(t, 5, skip)
	assert.True(t, c.Cached())
	assert.False(t, c.Enslaved())
	assert.Equal(t, map[string]any{"hint": map[string]any{"name": 1}}, c.ExtraOptions())
}

func TestDecoder_DecodeJSON(t *testing.T) {
	c, err := NewDecoder().Decode([]byte(`{"target": {"name": "Tab"}, "ids": [7], "limit": "default"}`))
	require.NoError(t, err)

	assert.Equal(t, bson.M{"_id": 7}, c.Selector())
	limit, ok := c.LimitValue()
	assert.True(t, ok)
	assert.Equal(t, criteria.DefaultLimit, limit)
}

func TestDecoder_ConfiguredDefaultLimit(t *testing.T) {
	c, err := NewDecoder(WithDefaultLimit(50)).Decode([]byte("target: {name: Tab}\nlimit: default\n"))
	require.NoError(t, err)

	limit, _ := c.LimitValue()
	assert.Equal(t, 50, limit)
}

func TestDecoder_OrderBySequence(t *testing.T) {
	c, err := NewDecoder().Decode([]byte(`
target: {name: Tab}
order_by:
  - title
  - opened_at desc
  - {pinned: -1}
`))
	require.NoError(t, err)

	sort, _ := c.Sort()
	assert.Equal(t, criteria.Sort{
		{Field: "title", Direction: criteria.SortAsc},
		{Field: "opened_at", Direction: criteria.SortDesc},
		{Field: "pinned", Direction: criteria.SortDesc},
	}, sort)
}

func TestDecoder_EmptyIDsMatchNothing(t *testing.T) {
	c, err := NewDecoder().Decode([]byte("target: {name: Tab}\nids: []\n"))
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": bson.M{"$in": []any{}}}, c.Selector())
}

func TestDecoder_Registry(t *testing.T) {
	reg := document.NewRegistry(document.NewType("Browser", identity.ObjectID{}, document.WithIDField("uid")))
	dec := NewDecoder(WithRegistry(reg))

	c, err := dec.Decode([]byte("target: {name: Browser}\nids: [507f1f77bcf86cd799439011]\n"))
	require.NoError(t, err)
	assert.Equal(t, bson.M{"uid": bson.ObjectIdHex("507f1f77bcf86cd799439011")}, c.Selector())

	_, err = dec.Decode([]byte("target: {name: Browser}\nids: [nope]\n"))
	require.ErrorIs(t, err, document.ErrInvalidIdentifier)
}

func TestDecoder_StrictExtras(t *testing.T) {
	dec := NewDecoder(WithOptionFilter(criteria.NewStrictFilter()))
	_, err := dec.Decode([]byte("target: {name: Tab}\nextras: {bogus: 1}\n"))
	require.ErrorIs(t, err, criteria.ErrUnsupportedOption)
}

func TestDecoder_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not yaml", "target: ["},
		{"missing target", "limit: 3\n"},
		{"unknown key", "target: {name: Tab}\nwhere_not: {a: 1}\n"},
		{"unknown id kind", "target: {name: Tab, id: guid}\n"},
		{"negative limit", "target: {name: Tab}\nlimit: -1\n"},
		{"bad limit word", "target: {name: Tab}\nlimit: all\n"},
		{"bad direction", "target: {name: Tab}\norder_by: {title: sideways}\n"},
		{"bad sort term", "target: {name: Tab}\norder_by: [\"a b c\"]\n"},
		{"any_in not a list", "target: {name: Tab}\nany_in: {tags: x}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder().Decode([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestDecoder_Read(t *testing.T) {
	c, err := NewDecoder().Read(strings.NewReader("target: {name: Tab}\nwhere: {pinned: true}\n"))
	require.NoError(t, err)
	assert.Equal(t, bson.M{"pinned": true}, c.Selector())
}

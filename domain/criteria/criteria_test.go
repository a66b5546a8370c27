package criteria

import (
	"fmt"
	"testing"

	"github.com/globalsign/mgo/bson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/helixml/criteria/domain/document"
	"github.com/helixml/criteria/infrastructure/identity"
)

var browsers = document.NewType("Browser", identity.ObjectID{}, document.WithCollection("browsers"))

const (
	idX = "507f1f77bcf86cd799439011"
	idY = "507f191e810c19729de860ea"
)

func TestNew(t *testing.T) {
	c := New(browsers)

	assert.Equal(t, "Browser", c.Target().Name())
	assert.Empty(t, c.Selector())
	_, sorted := c.Sort()
	assert.False(t, sorted)
	_, limited := c.LimitValue()
	assert.False(t, limited)
	_, skipped := c.SkipValue()
	assert.False(t, skipped)
	assert.False(t, c.Cached())
	assert.False(t, c.Enslaved())
	assert.Nil(t, c.ExtraOptions())
}

func TestNew_WithSelector(t *testing.T) {
	seed := bson.M{"vendor": "mozilla"}
	c := New(browsers, WithSelector(seed))

	seed["vendor"] = "changed"
	assert.Equal(t, bson.M{"vendor": "mozilla"}, c.Selector())
}

func TestCriteria_ZeroValue(t *testing.T) {
	var c Criteria

	next := c.Where("name", "chrome").Ascending("name")
	assert.Equal(t, bson.M{"name": "chrome"}, next.Selector())
	assert.Equal(t, document.DefaultIDField, next.Target().IDField())

	withID, err := c.ForIDs("raw")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": "raw"}, withID.Selector())
}

func TestCriteria_CloneIsolation(t *testing.T) {
	base := New(browsers).Where("vendor", "mozilla").Ascending("name").Limit(5)
	extra, err := base.Extras(map[string]any{"hint": bson.M{"name": 1}})
	require.NoError(t, err)

	left := extra.Where("channel", "beta").Descending("version").Skip(10).Cache()
	right := extra.Type("Firefox").Ascending("released_at").Limit(1).Enslave()
	rightExtra, err := right.Extras(map[string]any{"comment": "right"})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"vendor": "mozilla"}, base.Selector())
	sort, _ := base.Sort()
	assert.Equal(t, Sort{{"name", SortAsc}}, sort)
	limit, _ := base.LimitValue()
	assert.Equal(t, 5, limit)
	assert.Nil(t, base.ExtraOptions())

	assert.Equal(t, map[string]any{"hint": bson.M{"name": 1}}, extra.ExtraOptions())
	assert.False(t, extra.Cached())
	assert.False(t, extra.Enslaved())

	leftSort, _ := left.Sort()
	assert.Equal(t, Sort{{"name", SortAsc}, {"version", SortDesc}}, leftSort)
	assert.Equal(t, bson.M{"vendor": "mozilla", "channel": "beta"}, left.Selector())

	rightSort, _ := rightExtra.Sort()
	assert.Equal(t, Sort{{"name", SortAsc}, {"released_at", SortAsc}}, rightSort)
	assert.Equal(t, bson.M{"vendor": "mozilla", "_type": bson.M{"$in": []any{"Firefox"}}}, rightExtra.Selector())
	assert.Equal(t, map[string]any{"hint": bson.M{"name": 1}, "comment": "right"}, rightExtra.ExtraOptions())
	assert.Equal(t, map[string]any{"hint": bson.M{"name": 1}}, right.ExtraOptions())
}

func TestCriteria_AccessorsReturnCopies(t *testing.T) {
	c := New(browsers).Where("name", "chrome").Ascending("name").Limit(3)
	c, err := c.Extras(map[string]any{"comment": "x"})
	require.NoError(t, err)

	c.Selector()["name"] = "mutated"
	sort, _ := c.Sort()
	sort[0].Field = "mutated"
	opts := c.Options()
	*opts.Limit = 99
	opts.Extra["comment"] = "mutated"
	c.ExtraOptions()["comment"] = "mutated"

	assert.Equal(t, bson.M{"name": "chrome"}, c.Selector())
	sort, _ = c.Sort()
	assert.Equal(t, "name", sort[0].Field)
	limit, _ := c.LimitValue()
	assert.Equal(t, 3, limit)
	assert.Equal(t, map[string]any{"comment": "x"}, c.ExtraOptions())
}

func TestCriteria_ExtrasCopiesCallerValues(t *testing.T) {
	hint := map[string]any{"name": 1}
	c, err := New(browsers).Extras(map[string]any{"hint": hint})
	require.NoError(t, err)

	hint["name"] = -1
	assert.Equal(t, map[string]any{"hint": map[string]any{"name": 1}}, c.ExtraOptions())
}

func TestCriteria_ConcurrentBranches(t *testing.T) {
	root := New(browsers).Where("vendor", "mozilla").Ascending("name")

	results := make([]Criteria, 16)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			next := root.Descending(fmt.Sprintf("f%d", i)).Limit(i)
			next, err := next.Extras(map[string]any{"comment": i})
			if err != nil {
				return err
			}
			results[i] = next
			return nil
		})
	}
	require.NoError(t, g.Wait())

	rootSort, _ := root.Sort()
	assert.Equal(t, Sort{{"name", SortAsc}}, rootSort)
	assert.Nil(t, root.ExtraOptions())

	for i, c := range results {
		sort, _ := c.Sort()
		assert.Equal(t, Sort{{"name", SortAsc}, {fmt.Sprintf("f%d", i), SortDesc}}, sort)
		limit, _ := c.LimitValue()
		assert.Equal(t, i, limit)
		assert.Equal(t, map[string]any{"comment": i}, c.ExtraOptions())
	}
}

func TestCriteria_Flags(t *testing.T) {
	c := New(browsers)
	assert.False(t, c.Cached())
	assert.False(t, c.Enslaved())

	cached := c.Cache()
	assert.True(t, cached.Cached())
	assert.False(t, c.Cached())
	assert.Equal(t, cached.Options(), cached.Cache().Options())
	assert.Equal(t, cached.Selector(), cached.Cache().Selector())

	enslaved := c.Enslave()
	assert.True(t, enslaved.Enslaved())
	assert.False(t, enslaved.Cached())
	assert.Equal(t, enslaved.Options(), enslaved.Enslave().Options())
}

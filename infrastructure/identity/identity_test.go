package identity

import (
	"testing"

	"github.com/globalsign/mgo/bson"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/criteria/domain/document"
)

const hexID = "507f1f77bcf86cd799439011"

func TestObjectID_CoerceID(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    any
		wantErr bool
	}{
		{"hex string", hexID, bson.ObjectIdHex(hexID), false},
		{"object id", bson.ObjectIdHex(hexID), bson.ObjectIdHex(hexID), false},
		{"raw bytes", []byte(string(bson.ObjectIdHex(hexID))), bson.ObjectIdHex(hexID), false},
		{"short string", "507f1f77", nil, true},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", nil, true},
		{"integer", 42, nil, true},
		{"nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectID{}.CoerceID(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, document.ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectID_CoerceIDs_CollectsAllErrors(t *testing.T) {
	_, err := ObjectID{}.CoerceIDs([]any{hexID, "bad-one", "bad-two"})

	require.ErrorIs(t, err, document.ErrInvalidIdentifier)
	assert.Contains(t, err.Error(), "bad-one")
	assert.Contains(t, err.Error(), "bad-two")
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestObjectID_CoerceIDs(t *testing.T) {
	other := "507f191e810c19729de860ea"
	ids, err := ObjectID{}.CoerceIDs([]any{hexID, other})

	require.NoError(t, err)
	assert.Equal(t, []any{bson.ObjectIdHex(hexID), bson.ObjectIdHex(other)}, ids)
}

func TestUUID_CoerceID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	got, err := UUID{}.CoerceID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = UUID{}.CoerceID([16]byte(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = UUID{}.CoerceID(id[:])
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = UUID{}.CoerceID("not-a-uuid")
	require.ErrorIs(t, err, document.ErrInvalidIdentifier)
}

func TestInteger_CoerceID(t *testing.T) {
	tests := []struct {
		raw     any
		want    int64
		wantErr bool
	}{
		{7, 7, false},
		{int32(7), 7, false},
		{uint8(7), 7, false},
		{7.0, 7, false},
		{" 12 ", 12, false},
		{7.5, 0, true},
		{"twelve", 0, true},
		{uint64(1 << 63), 0, true},
	}

	for _, tt := range tests {
		got, err := Integer{}.CoerceID(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, document.ErrInvalidIdentifier, "raw %#v", tt.raw)
			continue
		}
		require.NoError(t, err, "raw %#v", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestText_CoerceID(t *testing.T) {
	got, err := Text{}.CoerceID("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	got, err = Text{}.CoerceID(12)
	require.NoError(t, err)
	assert.Equal(t, "12", got)

	_, err = Text{}.CoerceID("")
	require.ErrorIs(t, err, document.ErrInvalidIdentifier)

	_, err = Text{}.CoerceID(nil)
	require.ErrorIs(t, err, document.ErrInvalidIdentifier)
}

func TestForKind(t *testing.T) {
	for kind, want := range map[string]document.IDCoercer{
		"":          document.Passthrough{},
		"object_id": ObjectID{},
		"ObjectId":  ObjectID{},
		"uuid":      UUID{},
		"integer":   Integer{},
		"string":    Text{},
	} {
		got, err := ForKind(kind)
		require.NoError(t, err, kind)
		assert.IsType(t, want, got, kind)
	}

	_, err := ForKind("snowflake")
	require.ErrorIs(t, err, ErrUnknownKind)
}

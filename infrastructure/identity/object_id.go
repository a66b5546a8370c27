package identity

import "github.com/globalsign/mgo/bson"

// ObjectID coerces identifiers into BSON object ids. It accepts
// bson.ObjectId values, 24 character hex strings and 12 byte slices.
type ObjectID struct{}

// CoerceID converts raw into a bson.ObjectId.
func (ObjectID) CoerceID(raw any) (any, error) {
	switch v := raw.(type) {
	case bson.ObjectId:
		if v.Valid() {
			return v, nil
		}
	case string:
		if bson.IsObjectIdHex(v) {
			return bson.ObjectIdHex(v), nil
		}
	case []byte:
		if len(v) == 12 {
			return bson.ObjectId(v), nil
		}
	}
	return nil, invalid(raw, "object id")
}

// CoerceIDs converts every element of raw.
func (o ObjectID) CoerceIDs(raw []any) ([]any, error) {
	return coerceAll(o.CoerceID, raw)
}

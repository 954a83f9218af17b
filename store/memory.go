package store

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store used by the test suite. Documents round-trip
// through bson so field names and value types match what the Mongo gateway
// would produce.
type Memory struct {
	mu    sync.Mutex
	colls map[string][]bson.M
}

func NewMemory() *Memory {
	return &Memory{colls: make(map[string][]bson.M)}
}

func toDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// normalize maps bson value types onto a small comparable set: float64 for
// numbers, time.Time for dates, plus string, bool and ObjectID.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case primitive.ObjectID:
		return t
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

func compare(a, b interface{}) (int, bool) {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0, true
		}
		if a == nil {
			return -1, true
		}
		return 1, true
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case av.Before(bv):
			return -1, true
		case av.After(bv):
			return 1, true
		}
		return 0, true
	case primitive.ObjectID:
		bv, ok := b.(primitive.ObjectID)
		if !ok {
			return 0, false
		}
		switch {
		case av.Hex() < bv.Hex():
			return -1, true
		case av.Hex() > bv.Hex():
			return 1, true
		}
		return 0, true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		if !av {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func equal(a, b interface{}) bool {
	if c, ok := compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(normalize(a), normalize(b))
}

func matchesCondition(docVal interface{}, cond interface{}) bool {
	var ops map[string]interface{}
	switch t := cond.(type) {
	case bson.M:
		ops = t
	case map[string]interface{}:
		ops = t
	default:
		return equal(docVal, cond)
	}
	if len(ops) == 0 {
		return equal(docVal, cond)
	}
	for op, arg := range ops {
		switch op {
		case "$gte":
			if c, ok := compare(docVal, arg); !ok || c < 0 {
				return false
			}
		case "$lte":
			if c, ok := compare(docVal, arg); !ok || c > 0 {
				return false
			}
		case "$gt":
			if c, ok := compare(docVal, arg); !ok || c <= 0 {
				return false
			}
		case "$lt":
			if c, ok := compare(docVal, arg); !ok || c >= 0 {
				return false
			}
		case "$ne":
			if equal(docVal, arg) {
				return false
			}
		case "$in":
			rv := reflect.ValueOf(arg)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return false
			}
			found := false
			for i := 0; i < rv.Len(); i++ {
				if equal(docVal, rv.Index(i).Interface()) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			// value is a plain sub-document, not an operator map
			return equal(docVal, cond)
		}
	}
	return true
}

func matches(doc bson.M, filter Filter) bool {
	for field, cond := range filter {
		if !matchesCondition(doc[field], cond) {
			return false
		}
	}
	return true
}

func decodeInto(doc bson.M, result interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, result)
}

func (m *Memory) find(collection string, q Query) []bson.M {
	var out []bson.M
	for _, doc := range m.colls[collection] {
		if matches(doc, q.Filter) {
			out = append(out, doc)
		}
	}
	if q.Sort != "" {
		field, dir := sortSpec(q.Sort)
		sort.SliceStable(out, func(i, j int) bool {
			c, ok := compare(out[i][field], out[j][field])
			if !ok {
				return false
			}
			if dir < 0 {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (m *Memory) Find(ctx context.Context, collection string, q Query, results interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return errors.New("results must be a pointer to a slice")
	}
	docs := m.find(collection, q)
	slice := reflect.MakeSlice(rv.Elem().Type(), 0, len(docs))
	for _, doc := range docs {
		elem := reflect.New(rv.Elem().Type().Elem())
		if err := decodeInto(doc, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	rv.Elem().Set(slice)
	return nil
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter Filter, result interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			return decodeInto(doc, result)
		}
	}
	return ErrNotFound
}

func (m *Memory) InsertOne(ctx context.Context, collection string, doc interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := toDoc(doc)
	if err != nil {
		return "", err
	}
	id, ok := d["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		d["_id"] = id
	}
	m.colls[collection] = append(m.colls[collection], d)
	return id.Hex(), nil
}

func (m *Memory) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	for _, doc := range docs {
		if _, err := m.InsertOne(ctx, collection, doc); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) UpdateOne(ctx context.Context, collection string, filter Filter, set map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	normalized, err := toDoc(set)
	if err != nil {
		return err
	}
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			for k, v := range normalized {
				doc[k] = v
			}
			return nil
		}
	}
	return nil
}

func (m *Memory) IncOne(ctx context.Context, collection string, filter Filter, field string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			current := 0.0
			if f, ok := normalize(doc[field]).(float64); ok {
				current = f
			}
			doc[field] = current + delta
			return nil
		}
	}
	return nil
}

func (m *Memory) DeleteOne(ctx context.Context, collection string, filter Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.colls[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			m.colls[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return nil
}

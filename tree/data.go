package tree

// Data is an ordered bag of values attached to a route. It plays no part
// in routing.
type Data struct {
	keys   []string
	values map[string]any
}

func newData() *Data {
	return &Data{values: make(map[string]any)}
}

// Get returns the value stored under name, nil if unset.
func (d *Data) Get(name string) any {
	return d.values[name]
}

// Set stores a value.
func (d *Data) Set(name string, value any) *Data {
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}

	d.values[name] = value

	return d
}

// SetAll stores every entry of values.
func (d *Data) SetAll(values map[string]any) *Data {
	for k, v := range values {
		d.Set(k, v)
	}

	return d
}

// Isset reports whether name holds a non-nil value.
func (d *Data) Isset(name string) bool {
	return d.values[name] != nil
}

// Unset removes a value.
func (d *Data) Unset(name string) *Data {
	if _, ok := d.values[name]; !ok {
		return d
	}

	delete(d.values, name)

	for i, k := range d.keys {
		if k == name {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}

	return d
}

// Clear removes every value.
func (d *Data) Clear() *Data {
	d.keys = d.keys[:0]
	d.values = make(map[string]any)

	return d
}

// Keys returns the names in insertion order.
func (d *Data) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)

	return keys
}

// All returns a copy of the stored values.
func (d *Data) All() map[string]any {
	all := make(map[string]any, len(d.values))
	for k, v := range d.values {
		all[k] = v
	}

	return all
}

// Len returns the number of stored values.
func (d *Data) Len() int {
	return len(d.keys)
}

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Store used by tests and by local runs with
// DOCSTORE_DRIVER=memory. Documents round-trip through JSON exactly like the
// Postgres adapter.
type Memory struct {
	mu   sync.Mutex
	seq  int64
	docs map[string]memoryDoc
}

type memoryDoc struct {
	coll Collection
	seq  int64
	data map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]memoryDoc)}
}

func (m *Memory) Get(ctx context.Context, ref Ref, dst any) error {
	m.mu.Lock()
	d, ok := m.docs[ref.Path()]
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	body, err := json.Marshal(d.data)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

func (m *Memory) Set(ctx context.Context, ref Ref, doc any) error {
	fields, err := toFields(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ref.Path(), err)
	}
	m.write(ref, fields, false)
	return nil
}

func (m *Memory) Merge(ctx context.Context, ref Ref, fields map[string]any) error {
	encoded, err := toFields(fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ref.Path(), err)
	}
	m.write(ref, encoded, true)
	return nil
}

func (m *Memory) write(ref Ref, fields map[string]json.RawMessage, merge bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.docs[ref.Path()]
	if !ok {
		m.seq++
		d = memoryDoc{coll: ref.Collection, seq: m.seq, data: map[string]json.RawMessage{}}
	}
	if !merge {
		d.data = map[string]json.RawMessage{}
	}
	for k, v := range fields {
		d.data[k] = v
	}
	m.docs[ref.Path()] = d
}

func (m *Memory) Delete(ctx context.Context, ref Ref) error {
	m.mu.Lock()
	delete(m.docs, ref.Path())
	m.mu.Unlock()
	return nil
}

func (m *Memory) List(ctx context.Context, coll Collection, filter Filter, dst any) error {
	m.mu.Lock()
	matched := make([]memoryDoc, 0)
	for _, d := range m.docs {
		if d.coll != coll {
			continue
		}
		if !filter.IsZero() {
			raw, ok := d.data[filter.Field]
			if !ok {
				continue
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil || fmt.Sprint(v) != fmt.Sprint(filter.Value) {
				continue
			}
		}
		matched = append(matched, d)
	}
	m.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	out := make([]map[string]json.RawMessage, 0, len(matched))
	for _, d := range matched {
		out = append(out, d.data)
	}
	body, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

func toFields(doc any) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

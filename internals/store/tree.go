package store

import (
	"strings"

	"github.com/bytedance/sonic"
)

// toTree turns any JSON-encodable value into its generic shape
// (map[string]any / []any / string / float64 / bool / nil).
// Empty objects collapse to nil, like the remote database does.
func toTree(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return prune(out), nil
}

func prune(node any) any {
	m, ok := node.(map[string]any)
	if !ok {
		return node
	}
	for k, child := range m {
		child = prune(child)
		if child == nil {
			delete(m, k)
			continue
		}
		m[k] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// decodeInto re-encodes a generic node into the caller's type.
func decodeInto(node any, v any) error {
	raw, err := sonic.Marshal(node)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(raw, v)
}

func lookup(root any, keys []string) any {
	cur := root
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[k]
		if !ok {
			return nil
		}
	}
	return cur
}

// setAt writes value at keys below root, creating parents as needed.
// A nil value removes the node and any parents left empty.
func setAt(root map[string]any, keys []string, value any) {
	if value == nil {
		deleteAt(root, keys)
		return
	}
	cur := root
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[k] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = value
}

func deleteAt(root map[string]any, keys []string) {
	if len(keys) == 0 {
		return
	}
	parent := root
	if len(keys) > 1 {
		p, ok := lookup(root, keys[:len(keys)-1]).(map[string]any)
		if !ok {
			return
		}
		parent = p
	}
	delete(parent, keys[len(keys)-1])
	if len(parent) == 0 && len(keys) > 1 {
		deleteAt(root, keys[:len(keys)-1])
	}
}

// flatten lists every leaf below node keyed by its path relative to prefix.
func flatten(prefix string, node any, out map[string]any) {
	m, ok := node.(map[string]any)
	if !ok {
		if node != nil {
			out[prefix] = node
		}
		return
	}
	for k, child := range m {
		p := k
		if prefix != "" {
			p = prefix + "/" + k
		}
		flatten(p, child, out)
	}
}

// ancestors returns every proper prefix path of keys ("a", "a/b" for a/b/c).
func ancestors(keys []string) []string {
	out := make([]string, 0, len(keys))
	for i := 1; i < len(keys); i++ {
		out = append(out, strings.Join(keys[:i], "/"))
	}
	return out
}

package engine

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
)

// ExecuteStarlark runs script with the given predeclared names and returns
// its global variables converted to native Go values.
func ExecuteStarlark(threadName, script string, predeclared starlark.StringDict, print func(string)) (map[string]any, error) {
	thread := &starlark.Thread{Name: threadName}
	if print != nil {
		thread.Print = func(_ *starlark.Thread, msg string) { print(msg) }
	}

	globals, err := starlark.ExecFile(thread, threadName, script, predeclared)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(globals))
	for k, v := range globals {
		if _, isBuiltin := v.(*starlark.Builtin); isBuiltin {
			continue
		}
		out[k] = FromStarlarkValue(v)
	}
	return out, nil
}

// ToStarlarkValue converts a native value into a Starlark value.
func ToStarlarkValue(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case starlark.Value:
		return val, nil
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	case []string:
		items := make([]starlark.Value, len(val))
		for i, s := range val {
			items[i] = starlark.String(s)
		}
		return starlark.NewList(items), nil
	case []any:
		items := make([]starlark.Value, 0, len(val))
		for _, e := range val {
			sv, err := ToStarlarkValue(e)
			if err != nil {
				return nil, err
			}
			items = append(items, sv)
		}
		return starlark.NewList(items), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := starlark.NewDict(len(val))
		for _, k := range keys {
			sv, err := ToStarlarkValue(val[k])
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

// FromStarlarkValue converts a Starlark value into a native one. Values
// without a native form become nil.
func FromStarlarkValue(v starlark.Value) any {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	case *starlark.List:
		out := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			out[i] = FromStarlarkValue(val.Index(i))
		}
		return out
	case starlark.Tuple:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = FromStarlarkValue(e)
		}
		return out
	case *starlark.Dict:
		out := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			if k, ok := item[0].(starlark.String); ok {
				out[string(k)] = FromStarlarkValue(item[1])
			}
		}
		return out
	}
	return nil
}

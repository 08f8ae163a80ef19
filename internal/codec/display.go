package codec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
)

// FormatValue converts a decoded call value into a display-friendly shape:
// big integers become decimal strings, addresses and byte blobs become hex
// strings, tuples become name-keyed maps, slices stay ordered.
func FormatValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case *big.Int:
		return t.String()
	case common.Address:
		return t.Hex()
	case common.Hash:
		return t.Hex()
	case bool, string:
		return t
	case []byte:
		return "0x" + hex.EncodeToString(t)
	case uint8, uint16, uint32, uint64, int8, int16, int32, int64:
		return fmt.Sprintf("%d", t)
	case map[string]interface{}:
		return CollapseArrayLike(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return "0x" + hex.EncodeToString(b)
		}
		fallthrough
	case reflect.Slice:
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = FormatValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		// Tuples decode into geth-built structs; expose them as maps keyed
		// by the original component name.
		out := make(map[string]interface{}, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			name := fieldName(rv.Type().Field(i).Name)
			out[name] = FormatValue(rv.Field(i).Interface())
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return FormatValue(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", v)
}

// FormatOutputs renders decoded outputs as one display string per output.
// Scalars print directly; structured values print as compact JSON.
func FormatOutputs(fn abi.Entry, vals []interface{}) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		fv := FormatValue(v)
		switch s := fv.(type) {
		case string:
			out[i] = s
		case bool:
			out[i] = strconv.FormatBool(s)
		case nil:
			out[i] = ""
		default:
			b, err := json.Marshal(fv)
			if err != nil {
				out[i] = fmt.Sprintf("%v", fv)
				continue
			}
			out[i] = string(b)
		}
	}
	return out
}

// CollapseArrayLike rewrites array-like maps — purely numeric keys plus an
// optional "length" — into conventional ordered slices, recursively. Other
// maps pass through with their values collapsed.
func CollapseArrayLike(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		if arr, ok := asArrayLike(t); ok {
			return arr
		}
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = CollapseArrayLike(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = CollapseArrayLike(val)
		}
		return out
	default:
		return v
	}
}

func asArrayLike(m map[string]interface{}) ([]interface{}, bool) {
	if len(m) == 0 {
		return nil, false
	}
	idx := make([]int, 0, len(m))
	for k := range m {
		if k == "length" {
			continue
		}
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return nil, false
		}
		idx = append(idx, n)
	}
	if len(idx) == 0 {
		return nil, false
	}
	sort.Ints(idx)
	// Indices must be dense from zero, otherwise this is a real map.
	for i, n := range idx {
		if n != i {
			return nil, false
		}
	}
	out := make([]interface{}, len(idx))
	for i := range idx {
		out[i] = CollapseArrayLike(m[strconv.Itoa(i)])
	}
	return out, true
}

// fieldName lowercases the first rune of a struct field name, undoing the
// capitalization geth applies when it builds tuple struct types.
func fieldName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

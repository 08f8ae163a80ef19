package codec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
)

// Arguments builds go-ethereum ABI arguments from our parameter model.
// The geth codec does all the actual encoding, including nested tuples.
func Arguments(params []abi.Param) (ethabi.Arguments, error) {
	args := make(ethabi.Arguments, 0, len(params))
	for i, p := range params {
		t, err := ethabi.NewType(p.Type, "", components(p.Components))
		if err != nil {
			return nil, fmt.Errorf("parameter %d (%s): %w", i, p.Type, err)
		}
		args = append(args, ethabi.Argument{Name: p.Name, Type: t})
	}
	return args, nil
}

// components converts nested parameters for geth's type builder. Unnamed
// tuple components get synthetic names so geth can build the struct type.
func components(params []abi.Param) []ethabi.ArgumentMarshaling {
	if len(params) == 0 {
		return nil
	}
	out := make([]ethabi.ArgumentMarshaling, len(params))
	for i, p := range params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		out[i] = ethabi.ArgumentMarshaling{
			Name:       name,
			Type:       p.Type,
			Components: components(p.Components),
		}
	}
	return out
}

// EncodeCall builds calldata for a function: 4-byte selector + packed args.
// values are the generic values produced by ParseLeaf / assembled from the
// form draft; count must match the input list. Errors name the offending
// argument so failures stay attributable to a single field.
func EncodeCall(fn abi.Entry, values []interface{}) ([]byte, error) {
	if len(values) != len(fn.Inputs) {
		return nil, fmt.Errorf("argument count mismatch: got %d, want %d", len(values), len(fn.Inputs))
	}
	args, err := Arguments(fn.Inputs)
	if err != nil {
		return nil, err
	}

	conv := make([]interface{}, len(values))
	for i := range values {
		conv[i], err = toGoValue(args[i].Type, values[i])
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", argLabel(fn.Inputs[i], i), err)
		}
	}

	packed, err := args.Pack(conv...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", fn.Signature(), err)
	}

	sel, err := hex.DecodeString(strings.TrimPrefix(fn.Selector(), "0x"))
	if err != nil {
		return nil, err
	}
	return append(sel, packed...), nil
}

// DecodeOutput unpacks a raw call result against a function's output list.
func DecodeOutput(fn abi.Entry, data []byte) ([]interface{}, error) {
	args, err := Arguments(fn.Outputs)
	if err != nil {
		return nil, err
	}
	vals, err := args.UnpackValues(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", fn.Signature(), err)
	}
	return vals, nil
}

func argLabel(p abi.Param, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%d", i)
}

// toGoValue converts a generic parsed value into the concrete Go value the
// geth encoder expects for t. JSON-derived shapes ([]interface{},
// map[string]interface{}, json.Number) and codec outputs (*big.Int, bool,
// string) are all accepted.
func toGoValue(t ethabi.Type, v interface{}) (interface{}, error) {
	switch t.T {
	case ethabi.TupleTy:
		return tupleValue(t, v)

	case ethabi.SliceTy:
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected JSON array for %s, got %T", t.String(), v)
		}
		out := reflect.MakeSlice(t.GetType(), len(items), len(items))
		for i, item := range items {
			ev, err := toGoValue(*t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(ev))
		}
		return out.Interface(), nil

	case ethabi.ArrayTy:
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected JSON array for %s, got %T", t.String(), v)
		}
		if len(items) != t.Size {
			return nil, fmt.Errorf("expected %d elements for %s, got %d", t.Size, t.String(), len(items))
		}
		out := reflect.New(t.GetType()).Elem()
		for i, item := range items {
			ev, err := toGoValue(*t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(ev))
		}
		return out.Interface(), nil

	case ethabi.AddressTy:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address: %q", s)
		}
		return common.HexToAddress(s), nil

	case ethabi.UintTy, ethabi.IntTy:
		n, err := asBigInt(v)
		if err != nil {
			return nil, err
		}
		return sizedInt(t, n), nil

	case ethabi.BoolTy:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return b == "true" || b == "1", nil
		default:
			return nil, fmt.Errorf("expected bool, got %T", v)
		}

	case ethabi.StringTy:
		return asString(v)

	case ethabi.BytesTy:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return common.FromHex(s), nil

	case ethabi.FixedBytesTy:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		b := common.FromHex(s)
		if len(b) > t.Size {
			return nil, fmt.Errorf("value too long for %s: %d bytes", t.String(), len(b))
		}
		out := reflect.New(t.GetType()).Elem()
		reflect.Copy(out.Slice(0, t.Size), reflect.ValueOf(b))
		return out.Interface(), nil

	case ethabi.HashTy:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return common.HexToHash(s), nil

	default:
		return nil, fmt.Errorf("unsupported ABI type: %s", t.String())
	}
}

// tupleValue fills the struct type geth built for a tuple. Input is either
// a JSON array (positional) or a JSON object keyed by component name.
func tupleValue(t ethabi.Type, v interface{}) (interface{}, error) {
	rv := reflect.New(t.TupleType).Elem()

	member := func(i int) (interface{}, bool) {
		switch src := v.(type) {
		case []interface{}:
			if i < len(src) {
				return src[i], true
			}
			return nil, false
		case map[string]interface{}:
			m, ok := src[t.TupleRawNames[i]]
			return m, ok
		default:
			return nil, false
		}
	}

	for i := range t.TupleElems {
		m, ok := member(i)
		if !ok {
			return nil, fmt.Errorf("tuple field %q missing", t.TupleRawNames[i])
		}
		fv, err := toGoValue(*t.TupleElems[i], m)
		if err != nil {
			return nil, fmt.Errorf("tuple field %q: %w", t.TupleRawNames[i], err)
		}
		rv.Field(i).Set(reflect.ValueOf(fv))
	}
	return rv.Interface(), nil
}

func asString(v interface{}) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func asBigInt(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case json.Number:
		return ParseBigInt(n.String())
	case string:
		return ParseBigInt(strings.TrimSpace(n))
	case float64:
		// Only reachable when a draft was decoded without UseNumber.
		bi, acc := new(big.Float).SetFloat64(n).Int(nil)
		if acc != big.Exact {
			return nil, fmt.Errorf("non-integer number: %v", n)
		}
		return bi, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

// sizedInt narrows a big.Int to the native width geth expects. Sizes other
// than 8/16/32/64 stay *big.Int, matching geth's own type mapping.
func sizedInt(t ethabi.Type, n *big.Int) interface{} {
	if t.T == ethabi.UintTy {
		switch t.Size {
		case 8:
			return uint8(n.Uint64())
		case 16:
			return uint16(n.Uint64())
		case 32:
			return uint32(n.Uint64())
		case 64:
			return n.Uint64()
		}
		return n
	}
	switch t.Size {
	case 8:
		return int8(n.Int64())
	case 16:
		return int16(n.Int64())
	case 32:
		return int32(n.Int64())
	case 64:
		return n.Int64()
	}
	return n
}

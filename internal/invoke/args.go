package invoke

import (
	"fmt"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/codec"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
)

// Assemble walks a function's parameter tree and converts the draft's
// entered text into call-ready argument values, one per top-level input.
// Parse failures carry the offending field's label and path.
func Assemble(fn abi.Entry, draft template.MethodDraft) ([]interface{}, error) {
	nodes := abi.BuildTree(fn.Inputs)
	out := make([]interface{}, len(nodes))
	for i, node := range nodes {
		v, err := assembleNode(node, draft.Values, draft.Exponents, draft.TupleArrays)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func assembleNode(node abi.Node, values map[string]string, exponents map[string]int, tupleArrays map[string][]template.RowDraft) (interface{}, error) {
	switch node.Kind {
	case abi.Leaf:
		exp := 0
		if node.Scalable() {
			exp = exponents[node.Path]
		}
		v, err := codec.ParseLeaf(node.Param.Type, values[node.Path], exp)
		if err != nil {
			return nil, fmt.Errorf("field %s [%s]: %w", node.Label(), node.Path, err)
		}
		return v, nil

	case abi.Tuple:
		// A JSON literal stored at the tuple's own path wins over
		// per-field values. The CLI uses this for positional arguments.
		if text := values[node.Path]; text != "" {
			return codec.ParseJSON(text)
		}
		vals := make([]interface{}, len(node.Children))
		for i, child := range node.Children {
			v, err := assembleNode(child, values, exponents, tupleArrays)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return vals, nil

	case abi.TupleArray:
		rows := tupleArrays[node.Path]
		if len(rows) == 0 {
			if text := values[node.Path]; text != "" {
				return codec.ParseJSON(text)
			}
		}
		vals := make([]interface{}, len(rows))
		for r, row := range rows {
			// Row children carry root-relative paths, so each row reuses
			// the same keys against its own value maps.
			rowVals := make([]interface{}, len(node.Children))
			for i, child := range node.Children {
				v, err := assembleNode(child, row.Values, row.Exponents, nil)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", r, err)
				}
				rowVals[i] = v
			}
			vals[r] = rowVals
		}
		return vals, nil

	default:
		return nil, fmt.Errorf("unknown node kind at %s", node.Path)
	}
}

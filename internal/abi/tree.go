package abi

import (
	"strconv"
	"strings"
)

// NodeKind tags a parameter tree node.
type NodeKind int

const (
	// Leaf is a scalar, array or otherwise unstructured input awaiting one
	// text value.
	Leaf NodeKind = iota
	// Tuple is a fixed group of child nodes.
	Tuple
	// TupleArray is a repeatable row of tuple children.
	TupleArray
)

// Node is one node of the parameter tree derived from a function's inputs.
// The tree mirrors the ABI's shape; it is purely derived data with no
// identity beyond Path.
type Node struct {
	Kind NodeKind
	// Path is the dot-joined index path from the root, e.g. "2.0.1".
	// It is the storage key for the node's form value. Children of a
	// TupleArray node carry paths relative to the array node itself, so
	// per-row field keys are reusable across repeated rows.
	Path     string
	Param    Param
	Children []Node
}

// BuildTree turns a function's input list into a parameter node tree.
// Pure and idempotent: the same inputs always produce the same tree.
func BuildTree(inputs []Param) []Node {
	return buildNodes(inputs, "")
}

func buildNodes(params []Param, prefix string) []Node {
	nodes := make([]Node, 0, len(params))
	for i, p := range params {
		nodes = append(nodes, buildNode(p, joinPath(prefix, i)))
	}
	return nodes
}

func buildNode(p Param, path string) Node {
	switch {
	case p.IsTupleArray():
		// Row fields restart from the array node: each row re-renders the
		// same child template, keyed relative to the row.
		return Node{
			Kind:     TupleArray,
			Path:     path,
			Param:    p,
			Children: buildNodes(p.Components, ""),
		}
	case p.IsTuple():
		return Node{
			Kind:     Tuple,
			Path:     path,
			Param:    p,
			Children: buildNodes(p.Components, path),
		}
	default:
		return Node{Kind: Leaf, Path: path, Param: p}
	}
}

func joinPath(prefix string, i int) string {
	if prefix == "" {
		return strconv.Itoa(i)
	}
	return prefix + "." + strconv.Itoa(i)
}

// CountLeaves returns the total number of leaf nodes in the tree. For a
// TupleArray node the row template counts once: it is the number of scalar
// fields one row contributes.
func CountLeaves(nodes []Node) int {
	n := 0
	for _, node := range nodes {
		switch node.Kind {
		case Leaf:
			n++
		default:
			n += CountLeaves(node.Children)
		}
	}
	return n
}

// Scalable reports whether a leaf offers the decimal exponent control.
// Only the wide unsigned integer types commonly used for token amounts do.
func (n Node) Scalable() bool {
	if n.Kind != Leaf {
		return false
	}
	return n.Param.Type == "uint256" || n.Param.Type == "uint128"
}

// Label returns a human label for the node: "name (type)" or just the type.
func (n Node) Label() string {
	if n.Param.Name == "" {
		return n.Param.Type
	}
	return n.Param.Name + " (" + n.Param.Type + ")"
}

// PathIndices splits a dot-joined path back into indices. Malformed
// segments map to -1 rather than failing; paths are machine-generated.
func PathIndices(path string) []int {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			v = -1
		}
		out[i] = v
	}
	return out
}

package lang

import (
	"github.com/goccy/go-yaml"
)

// MarshalYAML renders the program AST as YAML for debug dumping. The
// rendering is a collaborator-layer concern: evaluation never depends on
// it.
func MarshalYAML(prog *Program) ([]byte, error) {
	stmts := make([]any, len(prog.Statements))
	for i, stmt := range prog.Statements {
		stmts[i] = nodeTree(stmt)
	}

	return yaml.Marshal(stmts)
}

// nodeTree converts a node to nested maps keyed by field name, with the
// variant recorded under "kind". Operator kinds render as their token
// names.
func nodeTree(node Node) map[string]any {
	tree := map[string]any{"kind": string(node.Kind())}

	switch n := node.(type) {
	case NumberNode:
		tree["value"] = n.Value

	case FloatNode:
		tree["value"] = n.Value

	case BoolNode:
		tree["value"] = n.Value

	case CharNode:
		tree["code"] = int64(n.Code)
		tree["char"] = string(n.Code)

	case StringNode:
		tree["value"] = n.Value

	case IdentifierNode:
		tree["name"] = n.Name

	case UnaryOpNode:
		tree["op"] = kindNames[n.Op]
		tree["operand"] = nodeTree(n.Operand)

	case BinaryOpNode:
		tree["op"] = kindNames[n.Op]
		tree["left"] = nodeTree(n.Left)
		tree["right"] = nodeTree(n.Right)

	case ArrayNode:
		tree["elements"] = nodeTrees(n.Elements)

	case ArrayAccessNode:
		tree["array"] = nodeTree(n.Array)
		tree["index"] = nodeTree(n.Index)

	case ArrayAssignmentNode:
		tree["array"] = nodeTree(n.Array)
		tree["index"] = nodeTree(n.Index)
		tree["value"] = nodeTree(n.Value)

	case FunctionCallNode:
		tree["name"] = n.Name
		tree["args"] = nodeTrees(n.Args)

	case FunctionDeclNode:
		tree["name"] = n.Name
		tree["params"] = n.Params
		tree["body"] = nodeTrees(n.Body)

	case VariableDeclNode:
		tree["name"] = n.Name
		tree["value"] = nodeTree(n.Value)

	case VariableAssignNode:
		tree["name"] = n.Name
		tree["value"] = nodeTree(n.Value)

	case ReturnNode:
		tree["value"] = nodeTree(n.Value)

	case IfNode:
		tree["cond"] = nodeTree(n.Cond)
		tree["body"] = nodeTrees(n.Body)

		if n.Else != nil {
			tree["else"] = nodeTrees(n.Else)
		}

	case WhileNode:
		tree["cond"] = nodeTree(n.Cond)
		tree["body"] = nodeTrees(n.Body)
	}

	return tree
}

func nodeTrees(nodes []Node) []any {
	trees := make([]any, len(nodes))
	for i, node := range nodes {
		trees[i] = nodeTree(node)
	}

	return trees
}

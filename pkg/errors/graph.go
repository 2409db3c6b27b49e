package errors

import (
	"fmt"
	"net/http"
)

// Error codes for graph schema violations. Handlers map these onto the
// standard response envelope; callers use the code to distinguish which
// rule was broken.
const (
	CodeUnknownNodeType   = "UNKNOWN_NODE_TYPE"
	CodeUnknownEdgeType   = "UNKNOWN_EDGE_TYPE"
	CodeIllegalConnection = "ILLEGAL_CONNECTION"
	CodeProtectedNode     = "PROTECTED_NODE"
)

// NewUnknownNodeTypeError reports a node type with no registered archetype
func NewUnknownNodeTypeError(nodeType string) *AppError {
	return NewValidationError(fmt.Sprintf("unknown node type '%s'", nodeType)).
		WithCode(CodeUnknownNodeType)
}

// NewUnknownEdgeTypeError reports an edge type with no registered taxonomy
func NewUnknownEdgeTypeError(edgeType string) *AppError {
	return NewValidationError(fmt.Sprintf("unknown edge type '%s'", edgeType)).
		WithCode(CodeUnknownEdgeType)
}

// NewIllegalConnectionError reports an edge whose taxonomy nature forbids
// connecting the two archetypes
func NewIllegalConnectionError(edgeType, sourceType, targetType string) *AppError {
	return NewValidationError(fmt.Sprintf(
		"edge '%s' cannot connect '%s' to '%s'", edgeType, sourceType, targetType)).
		WithCode(CodeIllegalConnection).
		WithDetails(map[string]interface{}{
			"edgeType":   edgeType,
			"sourceType": sourceType,
			"targetType": targetType,
		})
}

// NewProtectedNodeError reports an attempt to delete the root node.
// Non-retryable by design: the root anchors the project graph.
func NewProtectedNodeError(nodeID string) *AppError {
	return &AppError{
		Type:       ErrorTypeProtected,
		Message:    fmt.Sprintf("node '%s' is protected and cannot be deleted", nodeID),
		Code:       CodeProtectedNode,
		HTTPStatus: http.StatusForbidden,
		StackTrace: captureStackTrace(),
	}
}

// IsProtected checks if an error is a protected node error
func IsProtected(err error) bool {
	return IsType(err, ErrorTypeProtected)
}

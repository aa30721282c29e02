package lifecycle

import "strings"

// CodeScope selects which rows participate in code uniqueness checks.
type CodeScope int

const (
	// CodeScopeLive ignores soft-deleted rows so their codes can be reused.
	CodeScopeLive CodeScope = iota
	// CodeScopeAll keeps soft-deleted codes reserved.
	CodeScopeAll
)

// CodePolicy describes the human chosen key an entity carries.
type CodePolicy struct {
	Enabled  bool
	Generate bool
	Prefix   string
	Scope    CodeScope
}

// Definition binds an entity type to its rules. Services for different entity
// types share a Store and are told apart by EntityType.
type Definition[B any, V any] struct {
	EntityType          string
	Code                CodePolicy
	RequireDisplayOrder bool
	RequireMedia        bool
	// Parent names the owning entity type. When set every record must
	// reference a live parent of that type.
	Parent string
	// Children lists entity types whose live records block soft deletion.
	Children []string
	// LineItem entities are owned rows removed by HardDelete.
	LineItem        bool
	ValidateFields  func(B) error
	ValidateVariant func(V) error
}

func (d Definition[B, V]) normalized() Definition[B, V] {
	d.EntityType = strings.TrimSpace(d.EntityType)
	d.Parent = strings.TrimSpace(d.Parent)
	d.Code.Prefix = strings.TrimSpace(d.Code.Prefix)
	if d.Code.Prefix == "" {
		d.Code.Prefix = d.EntityType
	}
	children := make([]string, 0, len(d.Children))
	for _, child := range d.Children {
		if child = strings.TrimSpace(child); child != "" {
			children = append(children, child)
		}
	}
	d.Children = children
	return d
}

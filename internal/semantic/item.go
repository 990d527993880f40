// Package semantic owns the facts extracted from one file: an arena of
// items addressed by generation-checked ids, and a position-sorted
// index over the ranges those items occupy.
package semantic

import "svindex/internal/position"

// ItemKind tags the variant of an Item.
type ItemKind uint8

const (
	// KindModuleIdentifier is a module name occurrence, used both for
	// declarations and for type references at instantiation sites.
	KindModuleIdentifier ItemKind = iota
	// KindModuleInstance ties an instantiation's type reference and
	// instance name together.
	KindModuleInstance
	// KindUnknownIdentifier is an identifier occurrence without full
	// semantic treatment yet; today, instance names.
	KindUnknownIdentifier
)

func (k ItemKind) String() string {
	switch k {
	case KindModuleIdentifier:
		return "module identifier"
	case KindModuleInstance:
		return "module instance"
	case KindUnknownIdentifier:
		return "unknown identifier"
	}
	return "invalid item"
}

// Item is one semantic fact. Which fields are meaningful depends on
// Kind; cross-item references are always ids into the same store.
type Item struct {
	Kind     ItemKind
	Location position.Range

	// Name is the module name of a KindModuleIdentifier or the token
	// text of a KindUnknownIdentifier.
	Name string

	// ModuleName and InstanceName are set on KindModuleInstance: the
	// type-name occurrence and the instance's own name token.
	ModuleName   ItemID
	InstanceName ItemID

	// Parameters and Ports are reserved; always empty for now.
	Parameters []ItemID
	Ports      []ItemID
}

// ModuleIdentifier builds a module name occurrence item.
func ModuleIdentifier(name string, loc position.Range) Item {
	return Item{Kind: KindModuleIdentifier, Name: name, Location: loc}
}

// UnknownIdentifier builds a placeholder identifier item.
func UnknownIdentifier(name string, loc position.Range) Item {
	return Item{Kind: KindUnknownIdentifier, Name: name, Location: loc}
}

// ModuleInstance builds an instantiation item linking the type-name
// and instance-name items by id.
func ModuleInstance(moduleName, instanceName ItemID, loc position.Range) Item {
	return Item{
		Kind:         KindModuleInstance,
		ModuleName:   moduleName,
		InstanceName: instanceName,
		Location:     loc,
	}
}

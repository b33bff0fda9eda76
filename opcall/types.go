package opcall

// ParamType is a caller-declared parameter type tag. The set is closed;
// tags are not discovered from a server schema.
type ParamType string

const (
	TypeBoolean          ParamType = "Boolean"
	TypeDateTime         ParamType = "DateTime"
	TypeDecimal          ParamType = "Decimal"
	TypeEntity           ParamType = "Entity"
	TypeEntityCollection ParamType = "EntityCollection"
	TypeEntityReference  ParamType = "EntityReference"
	TypeFloat            ParamType = "Float"
	TypeInteger          ParamType = "Integer"
	TypeMoney            ParamType = "Money"
	TypePicklist         ParamType = "Picklist"
	TypeString           ParamType = "String"
)

// ValueKind is the host value kind a tag expects.
type ValueKind string

const (
	KindString  ValueKind = "string"
	KindNumber  ValueKind = "number"
	KindBoolean ValueKind = "boolean"
	KindObject  ValueKind = "object"
)

// Structural property codes from the host protocol.
const (
	StructuralPrimitive  = 1
	StructuralCollection = 4
	StructuralEntity     = 5
)

// Descriptor maps one tag onto the host wire contract.
type Descriptor struct {
	WireName           string
	StructuralProperty int
	Kind               ValueKind
}

// Parameter is one named, typed operation argument.
type Parameter struct {
	Name  string
	Type  ParamType
	Value any
}

// EntityRef identifies one platform record. It serves both as a parameter
// value and as the bound entity of a bound operation.
type EntityRef struct {
	ID         string `json:"id"`
	EntityType string `json:"entityType"`
	Name       string `json:"name,omitempty"`
}

// OperationKind separates side-effecting actions from read-only functions.
// The integer value is the wire discriminator.
type OperationKind int

const (
	Action OperationKind = iota
	Function
)

func (k OperationKind) String() string {
	switch k {
	case Action:
		return "action"
	case Function:
		return "function"
	}
	return "unknown"
}

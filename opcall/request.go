package opcall

// boundParameterName is the synthetic parameter carrying the bound entity
// of a bound operation.
const boundParameterName = "entity"

// WireType is one parameterTypes entry in call metadata.
type WireType struct {
	TypeName           string `json:"typeName"`
	StructuralProperty int    `json:"structuralProperty"`
}

// Metadata describes one operation call for the host endpoint.
// BoundParameter is empty for unbound calls and omitted from the envelope.
type Metadata struct {
	BoundParameter string              `json:"boundParameter,omitempty"`
	OperationType  int                 `json:"operationType"`
	OperationName  string              `json:"operationName"`
	ParameterTypes map[string]WireType `json:"parameterTypes"`
}

// Request carries call metadata together with the flattened parameter
// values, as one envelope the host binding serializes.
type Request struct {
	Metadata Metadata       `json:"metadata"`
	Values   map[string]any `json:"values"`
}

// BuildRequest validates every parameter in order and assembles the call
// envelope. The first validation failure aborts; no partial request is
// ever produced. A bound entity is appended as the synthetic "entity"
// parameter to an internal copy of the list, so the caller's slice is
// never modified. Two parameters sharing a name resolve last-write-wins.
func BuildRequest(name string, kind OperationKind, params []Parameter, bound *EntityRef) (*Request, error) {
	list := params
	if bound != nil {
		list = make([]Parameter, 0, len(params)+1)
		list = append(list, params...)
		list = append(list, Parameter{
			Name:  boundParameterName,
			Type:  TypeEntityReference,
			Value: bound,
		})
	}

	req := &Request{
		Metadata: Metadata{
			OperationType:  int(kind),
			OperationName:  name,
			ParameterTypes: make(map[string]WireType, len(list)),
		},
		Values: make(map[string]any, len(list)),
	}
	if bound != nil {
		req.Metadata.BoundParameter = boundParameterName
	}

	for _, p := range list {
		if err := CheckRequestParameterType(p); err != nil {
			return nil, err
		}
		d, err := resolve(p)
		if err != nil {
			return nil, err
		}
		req.Metadata.ParameterTypes[p.Name] = WireType{
			TypeName:           d.WireName,
			StructuralProperty: d.StructuralProperty,
		}
		req.Values[p.Name] = p.Value
	}
	return req, nil
}

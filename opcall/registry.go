package opcall

// entityWirePrefix qualifies entity-shaped wire names with the concrete
// entity logical name.
const entityWirePrefix = "mscrm"

// descriptors is the closed tag table. It is never written after init;
// entity-shaped resolution returns a per-call copy instead of rewriting
// the shared slot.
var descriptors = map[ParamType]Descriptor{
	TypeBoolean:          {WireName: "Edm.Boolean", StructuralProperty: StructuralPrimitive, Kind: KindBoolean},
	TypeDateTime:         {WireName: "Edm.DateTimeOffset", StructuralProperty: StructuralPrimitive, Kind: KindObject},
	TypeDecimal:          {WireName: "Edm.Decimal", StructuralProperty: StructuralPrimitive, Kind: KindNumber},
	TypeEntity:           {WireName: entityWirePrefix + ".crmbaseentity", StructuralProperty: StructuralEntity, Kind: KindObject},
	TypeEntityCollection: {WireName: "Collection(" + entityWirePrefix + ".crmbaseentity)", StructuralProperty: StructuralCollection, Kind: KindObject},
	TypeEntityReference:  {WireName: entityWirePrefix + ".crmbaseentity", StructuralProperty: StructuralEntity, Kind: KindObject},
	TypeFloat:            {WireName: "Edm.Double", StructuralProperty: StructuralPrimitive, Kind: KindNumber},
	TypeInteger:          {WireName: "Edm.Int32", StructuralProperty: StructuralPrimitive, Kind: KindNumber},
	TypeMoney:            {WireName: "Edm.Decimal", StructuralProperty: StructuralPrimitive, Kind: KindNumber},
	TypePicklist:         {WireName: "Edm.Int32", StructuralProperty: StructuralPrimitive, Kind: KindNumber},
	TypeString:           {WireName: "Edm.String", StructuralProperty: StructuralPrimitive, Kind: KindString},
}

// lookup returns the registered descriptor for a tag. The parameter name
// travels with the failure so callers see which argument declared the
// unknown tag.
func lookup(param string, tag ParamType) (Descriptor, error) {
	d, ok := descriptors[tag]
	if !ok {
		return Descriptor{}, &UnsupportedTypeError{Param: param, Type: tag}
	}
	return d, nil
}

// resolve returns the wire descriptor for one validated parameter. For
// Entity and EntityReference the wire name carries the value's concrete
// entity logical name; the shared table is left untouched, so concurrent
// calls never observe each other's entity types.
func resolve(p Parameter) (Descriptor, error) {
	d, err := lookup(p.Name, p.Type)
	if err != nil {
		return Descriptor{}, err
	}
	if p.Type == TypeEntity || p.Type == TypeEntityReference {
		if ref, ok := entityRefOf(p.Value); ok {
			d.WireName = entityWirePrefix + "." + ref.EntityType
		}
	}
	return d, nil
}

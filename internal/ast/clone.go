package ast

// CloneName returns a deep, independent copy of a Name node. Back-reference
// resolution always clones rather than aliasing the referenced node: the
// tree invariant that every node has exactly one parent would otherwise be
// violated the moment a back-reference and its original were printed with
// different flag stacks in scope.
func CloneName(n Name) Name {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *Identifier:
		c := *v
		return &c
	case *AnonymousNamespace:
		c := *v
		return &c
	case *LexicalFrame:
		c := *v
		return &c
	case *Template:
		c := *v
		c.Name = CloneName(v.Name)
		c.Args = make([]TemplateArg, len(v.Args))
		for i, a := range v.Args {
			c.Args[i] = CloneTemplateArg(a)
		}
		return &c
	case *Operator:
		c := *v
		return &c
	case *CastOperator:
		c := *v
		c.TargetType = CloneType(v.TargetType)
		return &c
	case *Constructor:
		c := *v
		return &c
	case *Destructor:
		c := *v
		return &c
	case *Special:
		c := *v
		if v.Target != nil {
			c.Target = CloneQualifiedName(v.Target)
		}
		return &c
	case *SpecialQualifier:
		c := *v
		if v.Inner != nil {
			c.Inner = CloneSymbol(v.Inner)
		}
		return &c
	case *TemplateParameterName:
		c := *v
		return &c
	case *RTTIDescriptor:
		c := *v
		c.DescribedType = CloneType(v.DescribedType)
		return &c
	default:
		return n
	}
}

// CloneQualifiedName deep-copies a QualifiedName and every qualifier in it.
func CloneQualifiedName(n *QualifiedName) *QualifiedName {
	if n == nil {
		return nil
	}
	c := *n
	c.Terminal = CloneName(n.Terminal)
	c.Qualifiers = make([]Name, len(n.Qualifiers))
	for i, q := range n.Qualifiers {
		c.Qualifiers[i] = CloneName(q)
	}
	return &c
}

// CloneType returns a deep, independent copy of a Type node.
func CloneType(t Type) Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *PrimitiveType:
		c := *v
		return &c
	case *CompoundType:
		c := *v
		c.Name = CloneQualifiedName(v.Name)
		return &c
	case *EnumType:
		c := *v
		c.Name = CloneQualifiedName(v.Name)
		return &c
	case *PointerType:
		c := *v
		c.Pointee = CloneType(v.Pointee)
		if v.MemberOf != nil {
			c.MemberOf = CloneQualifiedName(v.MemberOf)
		}
		return &c
	case *ReferenceType:
		c := *v
		c.Referent = CloneType(v.Referent)
		return &c
	case *RValueReferenceType:
		c := *v
		c.Referent = CloneType(v.Referent)
		return &c
	case *FunctionType:
		c := *v
		c.ReturnType = CloneType(v.ReturnType)
		c.Params = make([]Type, len(v.Params))
		for i, p := range v.Params {
			c.Params[i] = CloneType(p)
		}
		return &c
	case *NullPtrType:
		c := *v
		return &c
	case *ArrayType:
		c := *v
		c.Element = CloneType(v.Element)
		c.Extents = append([]int(nil), v.Extents...)
		return &c
	case *BackReferenceType:
		c := *v
		return &c
	case *IntegerLiteral:
		c := *v
		return &c
	case *FloatLiteral:
		c := *v
		return &c
	case *AddressOfSymbol:
		c := *v
		if v.Target != nil {
			c.Target = CloneSymbol(v.Target)
		}
		c.Name = CloneQualifiedName(v.Name)
		return &c
	default:
		return t
	}
}

// CloneTemplateArg deep-copies any node eligible to appear in a template
// argument list, dispatching to CloneType or CloneName as the concrete
// type demands, with CurlyValue handled directly.
func CloneTemplateArg(a TemplateArg) TemplateArg {
	if a == nil {
		return nil
	}
	switch v := a.(type) {
	case *CurlyValue:
		c := *v
		c.Children = make([]Node, len(v.Children))
		for i, child := range v.Children {
			c.Children[i] = cloneNode(child)
		}
		return &c
	case *TemplateParameterName:
		c := *v
		return &c
	case *Symbol:
		return CloneSymbol(v)
	default:
		if t, ok := a.(Type); ok {
			return CloneType(t)
		}
		if n, ok := a.(Name); ok {
			return CloneName(n)
		}
		return a
	}
}

func cloneNode(n Node) Node {
	switch v := n.(type) {
	case *QualifiedName:
		return CloneQualifiedName(v)
	default:
		if t, ok := n.(Type); ok {
			return CloneType(t)
		}
		if nm, ok := n.(Name); ok {
			return CloneName(nm)
		}
		return n
	}
}

// CloneSymbol deep-copies a full Symbol, including its name, function or
// variable payload, and RTTI payload where present.
func CloneSymbol(s *Symbol) *Symbol {
	if s == nil {
		return nil
	}
	c := *s
	c.Name = CloneQualifiedName(s.Name)
	if s.Function != nil {
		fn := *s.Function
		fn.ReturnType = CloneType(s.Function.ReturnType)
		fn.Params = make([]Type, len(s.Function.Params))
		for i, p := range s.Function.Params {
			fn.Params[i] = CloneType(p)
		}
		c.Function = &fn
	}
	if s.Variable != nil {
		v := *s.Variable
		v.Type = CloneType(s.Variable.Type)
		c.Variable = &v
	}
	if s.RTTI != nil {
		r := *s.RTTI
		c.RTTI = &r
	}
	if s.VTableTarget != nil {
		c.VTableTarget = CloneQualifiedName(s.VTableTarget)
	}
	return &c
}

package realize

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/schema"
)

// checkGlobal runs the non-tree-shaped global checks of spec §4.7 phase 7
// against every realized schema, fieldset, and field in res.
func checkGlobal(res *Result, collector *diag.Collector) {
	for _, s := range res.RealizedSchemas {
		checkLanguage(s, collector)
		checkSchemaGUID(s, res.GUIDIndex, collector)
	}

	allFieldsets := append(append([]*schema.Definition{}, res.ToplevelFieldsets...), res.EmbeddedFieldsets...)
	for _, fi := range allFieldsets {
		checkNonEmptyFieldset(fi, collector)
		checkFlagProperties(fi, collector)
		checkCluster(fi, collector)
		checkIndexFieldsRealized(fi, collector)
		checkOnAction(fi, collector)
	}
	for _, fi := range res.ToplevelFieldsets {
		checkFieldsetGUID(fi, res.GUIDIndex, collector)
		checkMultipleCopyRisk(fi, collector)
	}

	for _, f := range res.RealizedFields {
		checkOutermostFieldRequired(f, collector)
		checkFieldType(f, collector)
		checkSizePrecision(f, collector)
		checkFlagProperties(f, collector)
		checkReqLevel(f, collector)
		checkOnAction(f, collector)
		checkCluster(f, collector)
	}
	for _, fi := range allFieldsets {
		for c := range fi.Body() {
			if c.Tag() == schema.TagField && c.Realized() {
				checkNeedIndex(c, fi, collector)
			}
			if c.Tag() == schema.TagIndex {
				checkFlagProperties(c, collector)
			}
		}
	}
}

// checkNonEmptyFieldset enforces spec §4.7.1: a realized fieldset,
// toplevel or embedded, must contain at least one realized field member.
func checkNonEmptyFieldset(fi *schema.Definition, collector *diag.Collector) {
	for _, name := range fi.MemberNames() {
		entry, ok := fi.Member(name)
		if ok && entry.Final != nil && entry.Final.Tag() == schema.TagField && entry.Final.Realized() {
			return
		}
	}
	collector.Collect(diag.NewIssue(diag.Error, diag.E_EMPTY_FIELDSET,
		`"`+fi.String()+`" is realized but has no realized field`).
		WithSpan(fi.Span()).
		Build())
}

// checkOutermostFieldRequired enforces spec §4.7.2: an outermost field
// definition should not itself carry `required` (warning only).
func checkOutermostFieldRequired(f *schema.Definition, collector *diag.Collector) {
	if f.IsOutermost() && f.Modifiers().Required() {
		collector.Collect(diag.NewIssue(diag.Warning, diag.W_OUTERMOST_FIELD_REQUIRED,
			`"`+f.String()+`" is an outermost field and should not carry required`).
			WithSpan(f.Span()).
			Build())
	}
}

// checkMultipleCopyRisk enforces spec §4.7.3: a realized toplevel fieldset
// with a non-outermost specification risks being generated more than once.
func checkMultipleCopyRisk(fi *schema.Definition, collector *diag.Collector) {
	for _, spec := range fi.Specifications() {
		if !spec.IsOutermost() {
			collector.Collect(diag.NewIssue(diag.Notice, diag.N_MULTIPLE_COPY_RISK,
				`"`+fi.String()+`" has non-outermost specification "`+spec.String()+`"`).
				WithSpan(fi.Span()).
				Build())
		}
	}
}

// checkFieldType enforces spec §4.7.4: `type` is a single string or unset;
// a field referencing a concrete fieldset must have type unset or
// "identifier"; a universally-referencing field must have no type; every
// other realized field must declare a type.
func checkFieldType(f *schema.Definition, collector *diag.Collector) {
	refKind := 0 // 0 = none, 1 = concrete, 2 = universal
	if refProp, ok := f.Property("references"); ok && refProp.ArgsLen() == 1 {
		a, _ := refProp.SoleArg()
		switch a.Kind() {
		case schema.ArgDefinition:
			refKind = 1
		case schema.ArgAll:
			refKind = 2
		}
	}

	typeProp, hasType := f.Property("type")
	var typeVal string
	if hasType {
		if typeProp.ArgsLen() != 1 {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_TYPE,
				`"`+f.String()+`" type takes exactly one argument`).
				WithSpan(typeProp.Span()).
				Build())
			return
		}
		a, _ := typeProp.SoleArg()
		if a.Kind() != schema.ArgString {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_TYPE,
				`"`+f.String()+`" type argument must be a string`).
				WithSpan(typeProp.Span()).
				Build())
			return
		}
		typeVal = a.String()
	}

	switch refKind {
	case 1:
		if hasType && typeVal != "identifier" {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_TYPE,
				`"`+f.String()+`" references a concrete fieldset, so type must be unset or "identifier"`).
				WithSpan(typeProp.Span()).
				Build())
		}
	case 2:
		if hasType {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_TYPE,
				`"`+f.String()+`" is a universal reference and must have no type`).
				WithSpan(typeProp.Span()).
				Build())
		}
	default:
		if !hasType {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_TYPE,
				`"`+f.String()+`" is realized and must declare a type`).
				WithSpan(f.Span()).
				Build())
		}
	}
}

// checkSizePrecision enforces spec §4.7.5: `size` and `precision` each take
// a single integer argument.
func checkSizePrecision(f *schema.Definition, collector *diag.Collector) {
	for _, name := range []string{"size", "precision"} {
		p, ok := f.Property(name)
		if !ok {
			continue
		}
		if p.ArgsLen() != 1 {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_SIZE_PRECISION,
				`"`+f.String()+`" `+name+` takes exactly one argument`).
				WithSpan(p.Span()).
				Build())
			continue
		}
		if a, _ := p.SoleArg(); a.Kind() != schema.ArgInt {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_SIZE_PRECISION,
				`"`+f.String()+`" `+name+` argument must be an integer`).
				WithSpan(p.Span()).
				Build())
		}
	}
}

// checkFlagProperties enforces spec §4.7.6: `notnull` is valid only on a
// field, `unique`/`immutable` only on an index, and each takes a single
// boolean argument.
func checkFlagProperties(d *schema.Definition, collector *diag.Collector) {
	check := func(name string, allowed schema.Tag) {
		p, ok := d.Property(name)
		if !ok {
			return
		}
		if d.Tag() != allowed {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_FLAG_PROPERTY,
				`"`+d.String()+`" `+name+` is only valid on a `+allowed.String()).
				WithSpan(p.Span()).
				Build())
			return
		}
		if p.ArgsLen() != 1 {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_FLAG_PROPERTY,
				`"`+d.String()+`" `+name+` takes exactly one boolean argument`).
				WithSpan(p.Span()).
				Build())
			return
		}
		if a, _ := p.SoleArg(); a.Kind() != schema.ArgBool {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_FLAG_PROPERTY,
				`"`+d.String()+`" `+name+` argument must be a boolean`).
				WithSpan(p.Span()).
				Build())
		}
	}
	check("notnull", schema.TagField)
	check("unique", schema.TagIndex)
	check("immutable", schema.TagIndex)
}

// checkSchemaGUID and checkFieldsetGUID enforce spec §4.7.7: a single
// non-empty string, globally unique, mandatory on every schema and on
// every realized toplevel fieldset.
func checkSchemaGUID(s *schema.Schema, index map[string]*schema.Definition, collector *diag.Collector) {
	checkGUID(s.Root(), index, collector)
}

func checkFieldsetGUID(fi *schema.Definition, index map[string]*schema.Definition, collector *diag.Collector) {
	checkGUID(fi, index, collector)
}

func checkGUID(d *schema.Definition, index map[string]*schema.Definition, collector *diag.Collector) {
	p, ok := d.Property("guid")
	if !ok {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_MISSING_GUID,
			`"`+d.String()+`" is missing a required guid`).
			WithSpan(d.Span()).
			Build())
		return
	}
	if p.ArgsLen() != 1 {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_MISSING_GUID,
			`"`+d.String()+`" guid must be a single string argument`).
			WithSpan(p.Span()).
			Build())
		return
	}
	a, _ := p.SoleArg()
	if a.Kind() != schema.ArgString || !schema.ValidGUID(a.String()) {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_MISSING_GUID,
			`"`+d.String()+`" guid must be a non-empty string`).
			WithSpan(p.Span()).
			Build())
		return
	}
	guid := schema.CanonicalGUID(a.String())
	if prev, exists := index[guid]; exists && prev != d {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_DUPLICATE_GUID,
			`guid "`+guid+`" is used by both "`+prev.String()+`" and "`+d.String()+`"`).
			WithSpan(p.Span()).
			Build())
		return
	}
	index[guid] = d
}

// checkOnAction enforces spec §4.7.8: `ondelete`/`onupdate` each take a
// single string in {"cascade", "setnull", "noaction"}, are valid only in
// fieldset context, and `notnull true` together with `setnull` is an error.
func checkOnAction(d *schema.Definition, collector *diag.Collector) {
	for _, name := range []string{"ondelete", "onupdate"} {
		p, ok := d.Property(name)
		if !ok {
			continue
		}
		if d.Tag() != schema.TagFieldset {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_ONACTION,
				`"`+d.String()+`" `+name+` is only valid on a fieldset`).
				WithSpan(p.Span()).
				Build())
			continue
		}
		if p.ArgsLen() != 1 {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_ONACTION,
				`"`+d.String()+`" `+name+` takes exactly one string argument`).
				WithSpan(p.Span()).
				Build())
			continue
		}
		a, _ := p.SoleArg()
		if a.Kind() != schema.ArgString {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_ONACTION,
				`"`+d.String()+`" `+name+` argument must be a string`).
				WithSpan(p.Span()).
				Build())
			continue
		}
		switch a.String() {
		case "cascade", "setnull", "noaction":
		default:
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_ONACTION,
				`"`+d.String()+`" `+name+` must be one of cascade, setnull, noaction`).
				WithSpan(p.Span()).
				Build())
			continue
		}
		if a.String() == "setnull" {
			if np, ok2 := d.Property("notnull"); ok2 {
				if na, ok3 := np.SoleArg(); ok3 && na.Kind() == schema.ArgBool && na.Bool() {
					collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_ONACTION,
						`"`+d.String()+`" cannot combine notnull true with `+name+` setnull`).
						WithSpan(p.Span()).
						Build())
				}
			}
		}
	}
}

// checkLanguage applies spec §4.7.9 to a schema's `language` property:
// absence keeps the default "en" and warns, and a sole string argument is
// installed as the schema's language. The form of the tag is not checked,
// and a `language` property on a fieldset or field is not reported.
func checkLanguage(s *schema.Schema, collector *diag.Collector) {
	root := s.Root()
	p, ok := root.Property("language")
	if !ok {
		collector.Collect(diag.NewIssue(diag.Warning, diag.W_MISSING_LANGUAGE,
			`schema "`+s.Name()+`" has no language, defaulting to "en"`).
			WithSpan(root.Span()).
			Build())
		return
	}
	if a, ok2 := p.SoleArg(); ok2 && a.Kind() == schema.ArgString {
		s.SetLanguage(a.String())
	}
}

// checkCluster enforces spec §4.7.10: `cluster` is fieldset-level only,
// zero or one argument referencing an index defined at the same level.
func checkCluster(fi *schema.Definition, collector *diag.Collector) {
	p, ok := fi.Property("cluster")
	if !ok {
		return
	}
	if fi.Tag() != schema.TagFieldset {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_CLUSTER,
			`"`+fi.String()+`" cluster is only valid on a fieldset`).
			WithSpan(p.Span()).
			Build())
		return
	}
	if p.ArgsLen() > 1 {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_CLUSTER,
			`"`+fi.String()+`" cluster takes at most one argument`).
			WithSpan(p.Span()).
			Build())
		return
	}
	if p.ArgsLen() == 0 {
		return
	}
	a, _ := p.SoleArg()
	if a.Kind() != schema.ArgDefinition {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_CLUSTER,
			`"`+fi.String()+`" cluster argument did not bind to an index`).
			WithSpan(a.Span()).
			Build())
		return
	}
	target := a.Definition()
	if target.Tag() != schema.TagIndex || target.StaticParent() != fi {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_CLUSTER,
			`"`+fi.String()+`" cluster must reference an index defined at the same level`).
			WithSpan(a.Span()).
			Build())
	}
}

// checkReqLevel enforces spec §4.7.11: `reqlevel` ∈ {"optional", "desired",
// "required"}; "required" without `notnull true` emits a notice.
func checkReqLevel(d *schema.Definition, collector *diag.Collector) {
	p, ok := d.Property("reqlevel")
	if !ok {
		return
	}
	if p.ArgsLen() != 1 {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_REQLEVEL,
			`"`+d.String()+`" reqlevel takes exactly one argument`).
			WithSpan(p.Span()).
			Build())
		return
	}
	a, _ := p.SoleArg()
	if a.Kind() != schema.ArgString {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_REQLEVEL,
			`"`+d.String()+`" reqlevel argument must be a string`).
			WithSpan(p.Span()).
			Build())
		return
	}
	switch a.String() {
	case "optional", "desired", "required":
	default:
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_REQLEVEL,
			`"`+d.String()+`" reqlevel must be one of optional, desired, required`).
			WithSpan(p.Span()).
			Build())
		return
	}
	if a.String() != "required" {
		return
	}
	notnullTrue := false
	if np, ok2 := d.Property("notnull"); ok2 {
		if na, ok3 := np.SoleArg(); ok3 && na.Kind() == schema.ArgBool && na.Bool() {
			notnullTrue = true
		}
	}
	if !notnullTrue {
		collector.Collect(diag.NewIssue(diag.Notice, diag.N_REQLEVEL_WITHOUT_NOTNULL,
			`"`+d.String()+`" is reqlevel required without notnull true`).
			WithSpan(p.Span()).
			Build())
	}
}

// checkIndexFieldsRealized enforces spec §4.7.12: every index defined at
// the outermost level of a realized final fieldset must have all its field
// arguments realized.
func checkIndexFieldsRealized(fi *schema.Definition, collector *diag.Collector) {
	for c := range fi.Body() {
		if c.Tag() != schema.TagIndex {
			continue
		}
		p, ok := c.Property("fields")
		if !ok {
			continue
		}
		for i := 0; i < p.ArgsLen(); i++ {
			a := p.Arg(i)
			if a.Kind() != schema.ArgDefinition {
				continue
			}
			if target := a.Definition(); !target.Realized() {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_UNREALIZED_INDEX_FIELD,
					`index "`+c.String()+`" references unrealized field "`+target.String()+`"`).
					WithSpan(a.Span()).
					Build())
			}
		}
	}
}

// checkNeedIndex applies the supplemented `need_index` property (spec
// §4.7.2's foreign-key notice, bound in phase 4): a realized field with a
// concrete `references` target and no explicit `need_index false` is
// expected to be covered by an index in its enclosing fieldset fi.
func checkNeedIndex(f *schema.Definition, fi *schema.Definition, collector *diag.Collector) {
	refProp, ok := f.Property("references")
	if !ok || refProp.ArgsLen() != 1 {
		return
	}
	a, _ := refProp.SoleArg()
	if a.Kind() != schema.ArgDefinition {
		return
	}
	if p, ok := f.Property("need_index"); ok {
		if sole, ok2 := p.SoleArg(); ok2 && sole.Kind() == schema.ArgBool && !sole.Bool() {
			return
		}
	}
	for c := range fi.Body() {
		if c.Tag() != schema.TagIndex {
			continue
		}
		fp, ok := c.Property("fields")
		if !ok {
			continue
		}
		for i := 0; i < fp.ArgsLen(); i++ {
			if fa := fp.Arg(i); fa.Kind() == schema.ArgDefinition && fa.Definition() == f {
				return
			}
		}
	}
	collector.Collect(diag.NewIssue(diag.Notice, diag.N_MISSING_NEED_INDEX,
		`"`+f.String()+`" references a fieldset but is not covered by any index`).
		WithSpan(f.Span()).
		Build())
}

package geodesy

// OpParameter is one entry in an operator's parameter gamut: the schema
// an operator constructor declares up front, so that ParsedParameters can
// validate, type-coerce and default every key the constructor needs
// before the constructor body runs.
type OpParameter interface {
	paramKey() string
}

// Flag declares an optional boolean switch, present (true) or absent
// (false) — never a required parameter, since an absent flag is always
// false by definition.
type Flag struct {
	Key string
}

func (p Flag) paramKey() string { return p.Key }

// Natural declares an unsigned integer parameter such as a UTM zone
// number. Default is nil for a required parameter.
type Natural struct {
	Key     string
	Default *uint
}

func (p Natural) paramKey() string { return p.Key }

// Integer declares a signed integer parameter.
type Integer struct {
	Key     string
	Default *int64
}

func (p Integer) paramKey() string { return p.Key }

// Real declares a floating-point parameter such as a latitude of origin
// or scale factor.
type Real struct {
	Key     string
	Default *float64
}

func (p Real) paramKey() string { return p.Key }

// Series declares a comma-separated list of floating-point values, such
// as a Helmert transform's 7 parameters packed into one key.
type Series struct {
	Key     string
	Default *string
}

func (p Series) paramKey() string { return p.Key }

// Text declares a free-form string parameter such as an ellipsoid name.
type Text struct {
	Key     string
	Default *string
}

func (p Text) paramKey() string { return p.Key }

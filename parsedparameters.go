package geodesy

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParsedParameters is the validated, type-coerced form of an Op's
// RawParameters: every key an operator's gamut declares has been located
// (by chasing '^' indirection and falling back on '*' defaults),
// coerced to its declared type, and filed into the appropriate bin.
// Commonly used geodetic quantities get hard-coded 4-element slots so
// that the projection kernels can refer to "the first latitude" etc.
// without a map lookup on every point in a batch.
type ParsedParameters struct {
	Name string

	ellps [2]Ellipsoid
	lat   [4]float64
	lon   [4]float64
	x     [4]float64
	y     [4]float64
	k     [4]float64

	boolean map[string]bool
	natural map[string]uint
	integer map[string]int64
	real    map[string]float64
	series  map[string][]float64
	text    map[string]string
	uuid    map[string]uuid.UUID

	fourierCoefficients map[string]FourierSeries

	ignored []string

	globals []KV
	locals  []KV
}

// NewParsedParameters resolves raw against gamut: every declared
// parameter is located, type-checked, and either stored or defaulted;
// any required parameter absent with no default is a MissingParamError,
// and any present-but-uncoercible value is a BadParamError.
func NewParsedParameters(raw *RawParameters, gamut []OpParameter) (*ParsedParameters, error) {
	locals := splitIntoParameters(raw.Definition)
	globals := raw.Globals

	p := &ParsedParameters{
		boolean: map[string]bool{},
		natural: map[string]uint{},
		integer: map[string]int64{},
		real:    map[string]float64{},
		series:  map[string][]float64{},
		text:    map[string]string{},
		uuid:    map[string]uuid.UUID{},

		fourierCoefficients: map[string]FourierSeries{},

		globals: globals,
		locals:  locals,
	}

	for _, param := range gamut {
		switch v := param.(type) {
		case Flag:
			value, ok, err := chase(globals, locals, v.Key)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if value == "" || strings.EqualFold(value, "true") {
				p.boolean[v.Key] = true
				continue
			}
			p.boolean[v.Key] = false

		case Natural:
			value, ok, err := chase(globals, locals, v.Key)
			if err != nil {
				return nil, err
			}
			if ok {
				n, err := strconv.ParseUint(value, 10, 64)
				if err != nil {
					return nil, &BadParamError{Key: v.Key, Value: value}
				}
				p.natural[v.Key] = uint(n)
				continue
			}
			if v.Default != nil {
				p.natural[v.Key] = *v.Default
				continue
			}
			return nil, &MissingParamError{Key: v.Key}

		case Integer:
			value, ok, err := chase(globals, locals, v.Key)
			if err != nil {
				return nil, err
			}
			if ok {
				n, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return nil, &BadParamError{Key: v.Key, Value: value}
				}
				p.integer[v.Key] = n
				continue
			}
			if v.Default != nil {
				p.integer[v.Key] = *v.Default
				continue
			}
			return nil, &MissingParamError{Key: v.Key}

		case Real:
			value, ok, err := chase(globals, locals, v.Key)
			if err != nil {
				return nil, err
			}
			if ok {
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, &BadParamError{Key: v.Key, Value: value}
				}
				p.real[v.Key] = f
				continue
			}
			if v.Default != nil {
				p.real[v.Key] = *v.Default
				continue
			}
			return nil, &MissingParamError{Key: v.Key}

		case Series:
			value, ok, err := chase(globals, locals, v.Key)
			if err != nil {
				return nil, err
			}
			if ok {
				elements, err := parseSeries(v.Key, value)
				if err != nil {
					return nil, err
				}
				p.series[v.Key] = elements
				continue
			}
			if v.Default != nil {
				if *v.Default == "" {
					continue
				}
				elements, err := parseSeries(v.Key, *v.Default)
				if err != nil {
					return nil, err
				}
				p.series[v.Key] = elements
				continue
			}
			return nil, &MissingParamError{Key: v.Key}

		case Text:
			value, ok, err := chase(globals, locals, v.Key)
			if err != nil {
				return nil, err
			}
			if ok {
				p.text[v.Key] = value
				continue
			}
			if v.Default != nil {
				p.text[v.Key] = *v.Default
				continue
			}
			return nil, &MissingParamError{Key: v.Key}
		}
	}

	p.ellps[0] = DefaultEllipsoid()
	p.ellps[1] = DefaultEllipsoid()

	p.Name = "unknown"
	for _, kv := range locals {
		if kv.Key == "name" {
			p.Name = kv.Value
		}
	}

	used := map[string]bool{"name": true}
	for key := range p.boolean {
		used[key] = true
	}
	for key := range p.natural {
		used[key] = true
	}
	for key := range p.integer {
		used[key] = true
	}
	for key := range p.real {
		used[key] = true
	}
	for key := range p.series {
		used[key] = true
	}
	for key := range p.text {
		used[key] = true
	}
	for _, kv := range locals {
		if !used[kv.Key] {
			p.ignored = append(p.ignored, kv.Key)
		}
	}

	return p, nil
}

func parseSeries(key, value string) ([]float64, error) {
	parts := strings.Split(value, ",")
	elements := make([]float64, 0, len(parts))
	for _, element := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(element), 64)
		if err != nil {
			return nil, &BadParamError{Key: key, Value: value}
		}
		elements = append(elements, f)
	}
	return elements, nil
}

// ResolveEllipsoid fills ellipsoid slot index by chasing key ("ellps" by
// default) among this Op's parameters, falling back to fallback when the
// key is absent. Kernels that need an ellipsoid (cart, tmerc, btmerc,
// laea) call this explicitly after NewParsedParameters, since the
// ellipsoid is looked up by name against the builtin table rather than
// coerced like a plain scalar.
func (p *ParsedParameters) ResolveEllipsoid(index int, key string, fallback Ellipsoid) error {
	value, ok, err := chase(p.globals, p.locals, key)
	if err != nil {
		return err
	}
	if !ok {
		p.ellps[index] = fallback
		return nil
	}
	e, err := Named(value)
	if err != nil {
		return &BadParamError{Key: key, Value: value}
	}
	p.ellps[index] = e
	return nil
}

func (p *ParsedParameters) Boolean(key string) bool { return p.boolean[key] }

func (p *ParsedParameters) Natural(key string) (uint, error) {
	if v, ok := p.natural[key]; ok {
		return v, nil
	}
	return 0, &MissingParamError{Key: key}
}

func (p *ParsedParameters) Integer(key string) (int64, error) {
	if v, ok := p.integer[key]; ok {
		return v, nil
	}
	return 0, &MissingParamError{Key: key}
}

func (p *ParsedParameters) RealParam(key string) (float64, error) {
	if v, ok := p.real[key]; ok {
		return v, nil
	}
	return 0, &MissingParamError{Key: key}
}

func (p *ParsedParameters) SeriesParam(key string) ([]float64, error) {
	if v, ok := p.series[key]; ok {
		return v, nil
	}
	return nil, &MissingParamError{Key: key}
}

func (p *ParsedParameters) Text(key string) (string, error) {
	if v, ok := p.text[key]; ok {
		return v, nil
	}
	return "", &MissingParamError{Key: key}
}

func (p *ParsedParameters) UUID(key string) (uuid.UUID, error) {
	if v, ok := p.uuid[key]; ok {
		return v, nil
	}
	return uuid.UUID{}, &MissingParamError{Key: key}
}

func (p *ParsedParameters) SetUUID(key string, id uuid.UUID) { p.uuid[key] = id }

// SetAspectFlag records a derived boolean outside the gamut-resolution
// loop, for kernels like laea whose aspect (polar/equatorial/oblique)
// is computed from other parameters rather than chased directly.
func (p *ParsedParameters) SetAspectFlag(key string) { p.boolean[key] = true }

func (p *ParsedParameters) Ignored() []string { return p.ignored }

// SetReal stores a precomputed scalar, such as a kernel's amortized
// scaled radius, under key so later Apply calls can retrieve it via
// RealParam without recomputing it per point.
func (p *ParsedParameters) SetReal(key string, v float64) { p.real[key] = v }

// SetSeries stores a precomputed vector of floats under key, the series
// analogue of SetReal.
func (p *ParsedParameters) SetSeries(key string, v []float64) { p.series[key] = v }

// SetFourierCoefficients stores a precomputed FourierSeries (the result
// of FourierCoefficients or one of the Ellipsoid latitude-series
// methods) under key.
func (p *ParsedParameters) SetFourierCoefficients(key string, fs FourierSeries) {
	p.fourierCoefficients[key] = fs
}

// FourierCoefficientsParam retrieves a FourierSeries stashed by
// SetFourierCoefficients during precompute.
func (p *ParsedParameters) FourierCoefficientsParam(key string) (FourierSeries, error) {
	if v, ok := p.fourierCoefficients[key]; ok {
		return v, nil
	}
	return FourierSeries{}, &MissingParamError{Key: key}
}

func (p *ParsedParameters) Ellps(index int) Ellipsoid { return p.ellps[index] }
func (p *ParsedParameters) X(index int) float64       { return p.x[index] }
func (p *ParsedParameters) Y(index int) float64       { return p.y[index] }
func (p *ParsedParameters) Lat(index int) float64     { return p.lat[index] }
func (p *ParsedParameters) Lon(index int) float64     { return p.lon[index] }
func (p *ParsedParameters) K(index int) float64       { return p.k[index] }

func (p *ParsedParameters) SetX(index int, v float64)   { p.x[index] = v }
func (p *ParsedParameters) SetY(index int, v float64)   { p.y[index] = v }
func (p *ParsedParameters) SetLat(index int, v float64) { p.lat[index] = v }
func (p *ParsedParameters) SetLon(index int, v float64) { p.lon[index] = v }
func (p *ParsedParameters) SetK(index int, v float64)   { p.k[index] = v }

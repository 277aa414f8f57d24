package emuconfig

import (
	"strings"
)

const (
	paramSeparator = ','
	paramKeyValue  = ':'
)

var (
	paramEscaper   = strings.NewReplacer("$", "$2", ",", "$1", ":", "$0")
	paramUnescaper = strings.NewReplacer("$0", ":", "$1", ",", "$2", "$")
)

// ParamPackage is an ordered set of key/value parameters describing an input device,
// serialized as "key:value,key:value".
type ParamPackage struct {
	keys   []string
	values map[string]string
}

// NewParamPackage creates a package from alternating key/value pairs.
// A trailing key without a value is ignored.
func NewParamPackage(kv ...string) *ParamPackage {
	p := &ParamPackage{values: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// ParseParamPackage decodes a serialized package. Malformed segments are skipped.
func ParseParamPackage(serialized string) *ParamPackage {
	p := NewParamPackage()
	if serialized == "" {
		return p
	}
	for _, pair := range strings.Split(serialized, string(paramSeparator)) {
		key, value, ok := strings.Cut(pair, string(paramKeyValue))
		if !ok || key == "" {
			continue
		}
		p.Set(paramUnescaper.Replace(key), paramUnescaper.Replace(value))
	}
	return p
}

// Set adds or replaces key. New keys keep insertion order.
func (p *ParamPackage) Set(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key, or def when absent.
func (p *ParamPackage) Get(key, def string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (p *ParamPackage) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Serialize encodes the package, escaping separator characters in keys and values.
func (p *ParamPackage) Serialize() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte(paramSeparator)
		}
		b.WriteString(paramEscaper.Replace(k))
		b.WriteByte(paramKeyValue)
		b.WriteString(paramEscaper.Replace(p.values[k]))
	}
	return b.String()
}

func (p *ParamPackage) String() string {
	return p.Serialize()
}

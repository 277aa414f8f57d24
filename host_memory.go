// FILE: lixenwraith/emuconfig/host_memory.go
package emuconfig

import (
	"fmt"
	"maps"
	"math"
	"sync"
	"sync/atomic"

	"github.com/spf13/cast"
)

// ScaledFloatDivisor converts stored integer percentages into scaled floats.
const ScaledFloatDivisor = 100

// providerObject is what a provider handle resolves to.
type providerObject struct {
	name string
}

// getter describes one provider method.
type getter struct {
	id      MethodID
	name    string
	returns Kind
}

var getters = []getter{
	{1, MethodGetBoolean, KindBoolean},
	{2, MethodGetInt, KindInteger},
	{3, MethodGetString, KindString},
	{4, MethodGetScaledFloat, KindFloat},
	{5, MethodGetFloat, KindFloat},
}

// MemoryHost is an in-process settings provider backed by a key/value map.
// It serves any provider name and can simulate resolution failures.
type MemoryHost struct {
	mu       sync.RWMutex
	values   map[string]any
	disabled map[string]bool // Getter names that fail to resolve
	offline  bool            // Provider fails to resolve

	// zeroDefaults makes unknown keys answer with zero values, as platform
	// providers without an absence signal do.
	zeroDefaults bool

	refs     *refTable
	envCount atomic.Int64
}

// NewMemoryHost creates a host serving a copy of values.
func NewMemoryHost(values map[string]any) *MemoryHost {
	h := &MemoryHost{
		values:   make(map[string]any, len(values)),
		disabled: make(map[string]bool),
		refs:     newRefTable(),
	}
	maps.Copy(h.values, values)
	return h
}

// Set stores a value under key.
func (h *MemoryHost) Set(key string, value any) {
	h.mu.Lock()
	h.values[key] = value
	h.mu.Unlock()
}

// Delete removes key.
func (h *MemoryHost) Delete(key string) {
	h.mu.Lock()
	delete(h.values, key)
	h.mu.Unlock()
}

// Replace swaps the whole value set.
func (h *MemoryHost) Replace(values map[string]any) {
	fresh := make(map[string]any, len(values))
	maps.Copy(fresh, values)
	h.mu.Lock()
	h.values = fresh
	h.mu.Unlock()
}

// Values returns a copy of the stored values.
func (h *MemoryHost) Values() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.values)
}

// SetOffline makes provider resolution fail.
func (h *MemoryHost) SetOffline(offline bool) {
	h.mu.Lock()
	h.offline = offline
	h.mu.Unlock()
}

// SetMethodAvailable enables or disables resolution of a getter.
func (h *MemoryHost) SetMethodAvailable(name string, available bool) {
	h.mu.Lock()
	h.disabled[name] = !available
	h.mu.Unlock()
}

// SetZeroDefaults makes unknown keys return false, 0, 0.0 or "" instead of not-found.
func (h *MemoryHost) SetZeroDefaults(enabled bool) {
	h.mu.Lock()
	h.zeroDefaults = enabled
	h.mu.Unlock()
}

// LiveRefs reports handles handed out and not yet released.
func (h *MemoryHost) LiveRefs() int {
	return h.refs.live()
}

// EnvCount reports how many execution contexts were requested.
func (h *MemoryHost) EnvCount() int64 {
	return h.envCount.Load()
}

// Env returns a fresh context; contexts are never shared between lookups.
func (h *MemoryHost) Env() (Env, error) {
	h.envCount.Add(1)
	return &memoryEnv{host: h}, nil
}

// lookup returns the raw stored value.
func (h *MemoryHost) lookup(key string) (any, bool, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.values[key]
	return v, ok, h.zeroDefaults
}

type memoryEnv struct {
	host *MemoryHost
}

func (e *memoryEnv) NewString(s string) (Ref, error) {
	return e.host.refs.put(s), nil
}

func (e *memoryEnv) String(ref Ref) (string, error) {
	obj, err := e.host.refs.get(ref)
	if err != nil {
		return "", err
	}
	s, ok := obj.(string)
	if !ok {
		return "", fmt.Errorf("%w: handle %d is %T, not a string", ErrTypeMismatch, ref, obj)
	}
	return s, nil
}

func (e *memoryEnv) FindProvider(name string) (Ref, error) {
	e.host.mu.RLock()
	offline := e.host.offline
	e.host.mu.RUnlock()
	if offline {
		return 0, fmt.Errorf("%w: %s", ErrProviderUnavailable, name)
	}
	return e.host.refs.put(providerObject{name: name}), nil
}

func (e *memoryEnv) Method(provider Ref, name string, returns Kind) (MethodID, error) {
	if _, err := e.provider(provider); err != nil {
		return 0, err
	}
	e.host.mu.RLock()
	disabled := e.host.disabled[name]
	e.host.mu.RUnlock()
	if disabled {
		return 0, fmt.Errorf("%w: %s", ErrMethodUnavailable, name)
	}
	for _, g := range getters {
		if g.name == name && g.returns == returns {
			return g.id, nil
		}
	}
	return 0, fmt.Errorf("%w: %s returning %s", ErrMethodUnavailable, name, returns)
}

func (e *memoryEnv) Call(provider Ref, method MethodID, key Ref) (Result, error) {
	if _, err := e.provider(provider); err != nil {
		return Result{}, err
	}
	g, ok := getterByID(method)
	if !ok {
		return Result{}, fmt.Errorf("%w: method id %d", ErrMethodUnavailable, method)
	}
	k, err := e.String(key)
	if err != nil {
		return Result{}, err
	}

	raw, found, zeroDefaults := e.host.lookup(k)
	if !found {
		if !zeroDefaults {
			if g.returns == KindString {
				return Result{Kind: KindString}, nil // null
			}
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, k)
		}
		raw = zeroFor(g.returns)
	}
	return marshalResult(e.host.refs, g, raw)
}

func (e *memoryEnv) Release(ref Ref) {
	e.host.refs.release(ref)
}

func (e *memoryEnv) provider(ref Ref) (providerObject, error) {
	obj, err := e.host.refs.get(ref)
	if err != nil {
		return providerObject{}, err
	}
	p, ok := obj.(providerObject)
	if !ok {
		return providerObject{}, fmt.Errorf("%w: handle %d is not a provider", ErrInvalidRef, ref)
	}
	return p, nil
}

// marshalResult converts a stored value into the getter's return kind.
// String results are allocated in refs and must be released by the caller.
func marshalResult(refs *refTable, g getter, raw any) (Result, error) {
	res := Result{Kind: g.returns}
	switch g.returns {
	case KindBoolean:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		res.Bool = b
	case KindInteger:
		i, err := cast.ToInt64E(raw)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return Result{}, fmt.Errorf("%w: %d overflows int32", ErrTypeMismatch, i)
		}
		res.Int = int32(i)
	case KindFloat:
		f, err := scaledFloat(g.name, raw)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		res.Float = f
	case KindString:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		res.Ref = refs.put(s)
	}
	return res, nil
}

// scaledFloat applies the provider's percentage scaling to integer-stored scaled floats.
func scaledFloat(method string, raw any) (float32, error) {
	if method == MethodGetScaledFloat {
		switch raw.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			i, err := cast.ToInt64E(raw)
			if err != nil {
				return 0, err
			}
			return float32(i) / ScaledFloatDivisor, nil
		}
	}
	return cast.ToFloat32E(raw)
}

func getterByID(id MethodID) (getter, bool) {
	for _, g := range getters {
		if g.id == id {
			return g, true
		}
	}
	return getter{}, false
}

func zeroFor(k Kind) any {
	switch k {
	case KindBoolean:
		return false
	case KindString:
		return ""
	case KindFloat:
		return float32(0)
	default:
		return int32(0)
	}
}

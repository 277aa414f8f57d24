// FILE: lixenwraith/emuconfig/adapter.go
package emuconfig

import (
	"errors"
	"fmt"
	"runtime"

	logging "github.com/ipfs/go-log/v2"
)

var adapterLog = logging.Logger("emuconfig/adapter")

// DefaultProvider is the name of the host's native settings provider.
const DefaultProvider = "org/citra/citra_emu/features/settings/model/NativeSettings"

// Getter names exposed by the settings provider.
const (
	MethodGetBoolean     = "getBooleanSetting"
	MethodGetInt         = "getIntSetting"
	MethodGetString      = "getStringSetting"
	MethodGetScaledFloat = "getScaledFloatSetting"
	MethodGetFloat       = "getFloatSetting"
)

// Kind is the return kind of a provider getter.
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the marshalled return value of a provider call.
// For KindString, Ref holds the returned string object; a null Ref means no value.
type Result struct {
	Kind  Kind
	Bool  bool
	Int   int32
	Float float32
	Ref   Ref
}

// Env is an execution context bound to the OS thread that obtained it.
// An Env must not be retained past the lookup that acquired it.
type Env interface {
	// NewString creates a host string object.
	NewString(s string) (Ref, error)

	// String reads back a host string object.
	String(ref Ref) (string, error)

	// FindProvider resolves the named settings provider.
	FindProvider(name string) (Ref, error)

	// Method resolves a getter on the provider by name and return kind.
	Method(provider Ref, name string, returns Kind) (MethodID, error)

	// Call invokes a getter with a single key argument.
	Call(provider Ref, method MethodID, key Ref) (Result, error)

	// Release frees a handle obtained from this Env.
	Release(ref Ref)
}

// Host is the foreign-call mechanism giving access to the platform's settings.
type Host interface {
	// Env returns a context for the calling OS thread. Callers lock their goroutine
	// to the thread for as long as they use it.
	Env() (Env, error)
}

// ZeroPolicy decides whether a zero primitive result counts as "not set".
type ZeroPolicy int

const (
	// ZeroAsAbsent treats false, 0 and 0.0 as unavailable. Hosts whose getters
	// return zero values for unknown keys need this.
	ZeroAsAbsent ZeroPolicy = iota

	// ZeroAsValue keeps zero results. Absence must be signalled with ErrNotFound.
	ZeroAsValue
)

// Adapter performs single round trips to the host settings provider.
// Every fetch reports either a value or "unavailable"; no error escapes.
type Adapter struct {
	host     Host
	provider string
	policy   ZeroPolicy
	metrics  *Metrics
}

// NewAdapter creates an adapter for the named provider on host.
// An empty provider name selects DefaultProvider.
func NewAdapter(host Host, provider string, policy ZeroPolicy) *Adapter {
	if provider == "" {
		provider = DefaultProvider
	}
	return &Adapter{
		host:     host,
		provider: provider,
		policy:   policy,
	}
}

// SetMetrics attaches lookup counters.
func (a *Adapter) SetMetrics(m *Metrics) {
	a.metrics = m
}

// FetchBoolean reads a boolean setting.
func (a *Adapter) FetchBoolean(key string) (bool, bool) {
	res, ok := a.fetch(key, MethodGetBoolean, KindBoolean, nil)
	if !ok {
		return false, false
	}
	if !res.Bool && a.policy == ZeroAsAbsent {
		a.metrics.lookup(KindBoolean, outcomeZero)
		return false, false
	}
	a.metrics.lookup(KindBoolean, outcomeFound)
	return res.Bool, true
}

// FetchInteger reads an integer setting.
func (a *Adapter) FetchInteger(key string) (int, bool) {
	res, ok := a.fetch(key, MethodGetInt, KindInteger, nil)
	if !ok {
		return 0, false
	}
	if res.Int == 0 && a.policy == ZeroAsAbsent {
		a.metrics.lookup(KindInteger, outcomeZero)
		return 0, false
	}
	a.metrics.lookup(KindInteger, outcomeFound)
	return int(res.Int), true
}

// FetchScaledFloat reads a float setting whose stored form the provider rescales.
func (a *Adapter) FetchScaledFloat(key string) (float32, bool) {
	res, ok := a.fetch(key, MethodGetScaledFloat, KindFloat, nil)
	if !ok {
		return 0, false
	}
	if res.Float == 0 && a.policy == ZeroAsAbsent {
		a.metrics.lookup(KindFloat, outcomeZero)
		return 0, false
	}
	a.metrics.lookup(KindFloat, outcomeFound)
	return res.Float, true
}

// FetchFloat reads an unscaled float setting. No provider getter backs it yet,
// so it always reports unavailable without crossing the boundary.
func (a *Adapter) FetchFloat(key string) (float32, bool) {
	a.metrics.lookup(KindFloat, outcomeUnavailable)
	return 0, false
}

// FetchString reads a string setting. An empty string is a value; only a null
// result or an explicit not-found counts as unavailable.
func (a *Adapter) FetchString(key string) (string, bool) {
	var out string
	_, ok := a.fetch(key, MethodGetString, KindString, func(env Env, res Result) error {
		if res.Ref == 0 {
			return ErrNotFound
		}
		defer env.Release(res.Ref)
		s, err := env.String(res.Ref)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if !ok {
		return "", false
	}
	a.metrics.lookup(KindString, outcomeFound)
	return out, true
}

// fetch performs one round trip. extract, when set, runs while the Env is still
// valid so object results can be read and released.
func (a *Adapter) fetch(key, getter string, kind Kind, extract func(Env, Result) error) (Result, bool) {
	if a == nil || a.host == nil {
		return Result{}, false
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	env, err := a.host.Env()
	if err != nil {
		a.unavailable(kind, key, "env", err)
		return Result{}, false
	}

	keyRef, err := env.NewString(key)
	if err != nil {
		a.unavailable(kind, key, "key", err)
		return Result{}, false
	}
	defer env.Release(keyRef)

	provider, err := env.FindProvider(a.provider)
	if err == nil && provider == 0 {
		err = ErrProviderUnavailable
	}
	if err != nil {
		a.unavailable(kind, key, "provider", err)
		return Result{}, false
	}
	defer env.Release(provider)

	method, err := env.Method(provider, getter, kind)
	if err != nil {
		a.unavailable(kind, key, "method", err)
		return Result{}, false
	}

	res, err := env.Call(provider, method, keyRef)
	if err != nil {
		a.unavailable(kind, key, "call", err)
		return Result{}, false
	}
	if res.Kind != kind {
		if res.Ref != 0 {
			env.Release(res.Ref)
		}
		a.unavailable(kind, key, "call", fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, kind, res.Kind))
		return Result{}, false
	}

	if extract != nil {
		if err := extract(env, res); err != nil {
			a.unavailable(kind, key, "result", err)
			return Result{}, false
		}
	}
	return res, true
}

func (a *Adapter) unavailable(kind Kind, key, stage string, err error) {
	outcome := outcomeError
	if errors.Is(err, ErrNotFound) {
		outcome = outcomeUnavailable
	}
	a.metrics.lookup(kind, outcome)
	adapterLog.Debugw("setting unavailable", "key", key, "kind", kind.String(), "stage", stage, "error", err)
}

package emuconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// NativeBridge carries method calls to native platform code.
type NativeBridge interface {
	// InvokeMethod calls a method on the native side.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

// MessageCodec encodes and decodes messages crossing the bridge.
type MessageCodec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONCodec implements MessageCodec using JSON.
type JSONCodec struct{}

// Encode serializes the value to JSON bytes.
func (JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode deserializes JSON bytes. Empty input decodes to nil.
func (JSONCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Error codes a native settings provider may return.
const (
	ChannelErrNotFound       = "not_found"
	ChannelErrMethodNotFound = "method_not_found"
)

// ChannelError is an error reported by native code.
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ChannelError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// NewChannelError creates a ChannelError.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}

// ChannelHost reaches the settings provider through a native method channel.
// The provider name is used as the channel name and each getter as the method.
// Arguments are sent as {"key": <setting key>}; a null reply means no value.
type ChannelHost struct {
	mu     sync.RWMutex
	bridge NativeBridge
	codec  MessageCodec

	refs     *refTable
	envCount atomic.Int64
}

// NewChannelHost creates a host over bridge using the JSON codec.
// A nil bridge is allowed; lookups report the provider unavailable until one is set.
func NewChannelHost(bridge NativeBridge) *ChannelHost {
	return &ChannelHost{
		bridge: bridge,
		codec:  JSONCodec{},
		refs:   newRefTable(),
	}
}

// SetBridge replaces the native bridge.
func (h *ChannelHost) SetBridge(bridge NativeBridge) {
	h.mu.Lock()
	h.bridge = bridge
	h.mu.Unlock()
}

// SetCodec replaces the message codec.
func (h *ChannelHost) SetCodec(codec MessageCodec) {
	h.mu.Lock()
	h.codec = codec
	h.mu.Unlock()
}

// LiveRefs reports handles handed out and not yet released.
func (h *ChannelHost) LiveRefs() int {
	return h.refs.live()
}

// EnvCount reports how many execution contexts were requested.
func (h *ChannelHost) EnvCount() int64 {
	return h.envCount.Load()
}

// Env returns a fresh context that captures the current bridge.
func (h *ChannelHost) Env() (Env, error) {
	h.envCount.Add(1)
	h.mu.RLock()
	defer h.mu.RUnlock()
	return &channelEnv{host: h, bridge: h.bridge, codec: h.codec}, nil
}

type channelEnv struct {
	host   *ChannelHost
	bridge NativeBridge
	codec  MessageCodec
}

func (e *channelEnv) NewString(s string) (Ref, error) {
	return e.host.refs.put(s), nil
}

func (e *channelEnv) String(ref Ref) (string, error) {
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

func (e *channelEnv) FindProvider(name string) (Ref, error) {
	if e.bridge == nil {
		return 0, fmt.Errorf("%w: %s: no native bridge", ErrProviderUnavailable, name)
	}
	return e.host.refs.put(providerObject{name: name}), nil
}

// Method resolves locally; a getter the native side lacks surfaces on Call.
func (e *channelEnv) Method(provider Ref, name string, returns Kind) (MethodID, error) {
	if _, err := e.provider(provider); err != nil {
		return 0, err
	}
	for _, g := range getters {
		if g.name == name && g.returns == returns {
			return g.id, nil
		}
	}
	return 0, fmt.Errorf("%w: %s returning %s", ErrMethodUnavailable, name, returns)
}

func (e *channelEnv) Call(provider Ref, method MethodID, key Ref) (Result, error) {
	p, err := e.provider(provider)
	if err != nil {
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

	args, err := e.codec.Encode(map[string]any{"key": k})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode arguments for %s: %w", k, err)
	}
	reply, err := e.bridge.InvokeMethod(p.name, g.name, args)
	if err != nil {
		return Result{}, channelErr(k, g.name, err)
	}
	raw, err := e.codec.Decode(reply)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode reply for %s: %w", k, err)
	}
	if raw == nil {
		if g.returns == KindString {
			return Result{Kind: KindString}, nil
		}
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	return marshalResult(e.host.refs, g, raw)
}

func (e *channelEnv) Release(ref Ref) {
	e.host.refs.release(ref)
}

func (e *channelEnv) provider(ref Ref) (providerObject, error) {
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

// channelErr maps native error codes onto package sentinels.
func channelErr(key, method string, err error) error {
	var ce *ChannelError
	if errors.As(err, &ce) {
		switch ce.Code {
		case ChannelErrNotFound:
			return fmt.Errorf("%w: %s: %w", ErrNotFound, key, err)
		case ChannelErrMethodNotFound:
			return fmt.Errorf("%w: %s: %w", ErrMethodUnavailable, method, err)
		}
	}
	return fmt.Errorf("native call %s(%s) failed: %w", method, key, err)
}

package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type Key struct {
	Name            string
	Default         interface{}
	Value           interface{}
	EnvNames        []string
	ValidationFuncs []func(interface{}) error
	mutex           sync.Mutex
}

type KeyOption func(*Key)

type ReloadedKey struct {
	Key      string
	Error    error
	OldValue interface{}
	NewValue interface{}
}

// get reads the current value through one of the cast.ToX conversions,
// matching what the viper.GetX accessors return.
func get[T any](k *Key, to func(interface{}) T) T {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	return to(k.Value)
}

func (k *Key) String() string          { return get(k, cast.ToString) }
func (k *Key) Int() int                { return get(k, cast.ToInt) }
func (k *Key) Int64() int64            { return get(k, cast.ToInt64) }
func (k *Key) Duration() time.Duration { return get(k, cast.ToDuration) }
func (k *Key) Bool() bool              { return get(k, cast.ToBool) }
func (k *Key) StringSlice() []string   { return get(k, cast.ToStringSlice) }

func (k *Key) Update() *ReloadedKey {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	r := &ReloadedKey{
		Key:      k.Name,
		OldValue: k.Value,
		NewValue: viper.Get(k.Name),
	}

	if fmt.Sprintf("%+v", r.OldValue) == fmt.Sprintf("%+v", r.NewValue) {
		return nil
	}

	for _, f := range k.ValidationFuncs {
		if err := f(r.NewValue); err != nil {
			r.Error = fmt.Errorf("validation failed: %v", err)
			return r
		}
	}

	k.Value = r.NewValue

	return r
}

func (k *Key) register() {
	keys[k.Name] = k

	if k.Default != nil {
		viper.SetDefault(k.Name, k.Default)
	}

	if len(k.EnvNames) > 0 {
		_ = viper.BindEnv(append([]string{k.Name}, k.EnvNames...)...)
	}
}

// NewKey creates a new configuration key with the specified name and additional options.
func NewKey(name string, opts ...KeyOption) *Key {
	k := &Key{
		Name:  name,
		mutex: sync.Mutex{},
	}

	for _, opt := range opts {
		opt(k)
	}

	k.register()

	return k
}

// WithDefaultValue sets the default value for the configuration key.
func WithDefaultValue(defaultValue interface{}) KeyOption {
	return func(k *Key) {
		if defaultValue != nil {
			k.Default = defaultValue
			viper.SetDefault(k.Name, defaultValue)
		}
	}
}

// WithEnv reads the key from the given environment variables, first match
// wins. The names are used as-is, without the SITESYNC_ prefix.
func WithEnv(names ...string) KeyOption {
	return func(k *Key) {
		k.EnvNames = append(k.EnvNames, names...)
	}
}

// WithValidationFunc adds a validation function for the configuration key.
func WithValidationFunc(f func(interface{}) error) KeyOption {
	return func(k *Key) {
		k.ValidationFuncs = append(k.ValidationFuncs, f)
	}
}

// withCast validates that the value converts with to, then runs check on the
// converted value when check is not nil.
func withCast[T any](to func(interface{}) (T, error), check func(T) error) KeyOption {
	return WithValidationFunc(func(v interface{}) error {
		t, err := to(v)
		if err != nil {
			return err
		}

		if check == nil {
			return nil
		}

		return check(t)
	})
}

// WithAllowedStrings sets the allowed values for the configuration key.
func WithAllowedStrings(values []string) KeyOption {
	return withCast(cast.ToStringE, func(s string) error {
		if slices.Contains(values, s) {
			return nil
		}

		return fmt.Errorf("value %q is not allowed, must be one of %v", s, values)
	})
}

func WithValidString() KeyOption {
	return withCast(cast.ToStringE, nil)
}

func WithValidDuration() KeyOption {
	return withCast(cast.ToDurationE, nil)
}

func WithValidStringSlice() KeyOption {
	return withCast(cast.ToStringSliceE, nil)
}

func WithValidBool() KeyOption {
	return withCast(cast.ToBoolE, nil)
}

// WithValidExistingPathOrEmpty accepts an empty value or a path that exists
// on the local filesystem.
func WithValidExistingPathOrEmpty() KeyOption {
	return withCast(cast.ToStringE, func(s string) error {
		if s == "" {
			return nil
		}

		_, err := os.Stat(s)
		if os.IsNotExist(err) {
			return fmt.Errorf("path %q does not exist", s)
		}

		return err
	})
}

func WithValidPositiveInt() KeyOption {
	return withCast(cast.ToIntE, func(i int) error {
		if i <= 0 {
			return fmt.Errorf("value must be positive")
		}

		return nil
	})
}

// WithValidNetHostPort checks that the value is a resolvable host:port.
func WithValidNetHostPort() KeyOption {
	return withCast(cast.ToStringE, func(s string) error {
		host, port, err := net.SplitHostPort(s)
		if err != nil {
			return fmt.Errorf("invalid host:port %q", s)
		}

		if addrs, err := net.LookupHost(host); err != nil || len(addrs) == 0 {
			return fmt.Errorf("invalid host %q: %w", host, err)
		}

		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}

		return nil
	})
}

// WithValidURLOrEmpty checks if the value is empty or an absolute http(s) URL.
// The host is not resolved.
func WithValidURLOrEmpty() KeyOption {
	return withCast(cast.ToStringE, func(s string) error {
		if s == "" {
			return nil
		}

		u, err := url.Parse(s)
		switch {
		case err != nil:
			return fmt.Errorf("invalid URL %q: %w", s, err)
		case u.Scheme != "http" && u.Scheme != "https":
			return fmt.Errorf("invalid URL %q: scheme must be http or https", s)
		case u.Host == "":
			return fmt.Errorf("invalid URL %q: missing host", s)
		}

		return nil
	})
}

// WithValidURI checks that the value is an absolute path or URL, as used for
// HTTP handler paths.
func WithValidURI() KeyOption {
	return withCast(cast.ToStringE, func(s string) error {
		if _, err := url.ParseRequestURI(s); err != nil {
			return fmt.Errorf("invalid URL path %q: %w", s, err)
		}

		return nil
	})
}

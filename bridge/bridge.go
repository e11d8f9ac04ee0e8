// Package bridge dispatches named commands invoked by the front-end.
//
// Arguments arrive as a JSON object keyed by camelCase argument names, the
// same shape the front-end passes to invoke(). A command either returns a
// JSON-serialisable value or an error whose text is reported to the caller.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownCommand is returned when no command is registered under a name
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArgs is returned when the arguments cannot be decoded
	ErrBadArgs = errors.New("invalid arguments")
)

// CommandError wraps an error returned by the command itself, as opposed to
// a dispatch failure.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandFunc is the signature of a bridge command
type CommandFunc func(ctx context.Context, args Args) (any, error)

// Bridge holds the registered commands
type Bridge struct {
	mu       sync.RWMutex
	commands map[string]CommandFunc
}

// New creates an empty bridge
func New() *Bridge {
	return &Bridge{
		commands: make(map[string]CommandFunc),
	}
}

// Register adds a command. Registering the same name twice panics.
func (b *Bridge) Register(name string, fn CommandFunc) {
	if name == "" || fn == nil {
		panic("bridge: command name and func are required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.commands[name]; exists {
		panic(fmt.Sprintf("bridge: command %q already registered", name))
	}
	b.commands[name] = fn
}

// Commands returns the registered command names in sorted order
func (b *Bridge) Commands() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a command is registered
func (b *Bridge) Has(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.commands[name]
	return ok
}

// Invoke runs the named command with the raw JSON arguments.
// Empty or null raw arguments are treated as an empty object.
func (b *Bridge) Invoke(ctx context.Context, name string, raw json.RawMessage) (any, error) {
	b.mu.RLock()
	fn, ok := b.commands[name]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	args, err := ParseArgs(raw)
	if err != nil {
		return nil, err
	}

	result, err := fn(ctx, args)
	if err != nil {
		var argErr *argError
		if errors.As(err, &argErr) {
			return nil, err
		}
		return nil, &CommandError{Command: name, Err: err}
	}
	return result, nil
}

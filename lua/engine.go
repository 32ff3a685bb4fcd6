package lua

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"go.uber.org/zap"

	"github.com/drake/boxes/element"
)

var errNotInitialized = errors.New("lua: engine not initialized")

// Engine wraps gopher-lua and turns document scripts into element trees.
// It is a pure mechanism: it knows how to run Lua code and expose the
// boxes API. It does NOT know about config dirs or where scripts live.
type Engine struct {
	L      *glua.LState
	protos *lru.Cache[string, *glua.FunctionProto]
	log    *zap.Logger

	// Cached table reference
	boxesTable *glua.LTable

	// Elements passed to boxes.show during the current run
	doc element.Document
}

// NewEngine creates an Engine whose compiled-chunk cache holds up to
// cacheSize scripts.
func NewEngine(log *zap.Logger, cacheSize int) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cache, err := lru.New[string, *glua.FunctionProto](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("chunk cache: %w", err)
	}
	return &Engine{
		protos: cache,
		log:    log,
	}, nil
}

// --- Lifecycle ---

// Init initializes (or re-initializes) the Lua VM with fresh state.
// It registers the API but does NOT load any scripts - that's the caller's job.
// Compiled chunks do not belong to any state, so the cache survives Init.
func (e *Engine) Init() error {
	// Close old Lua state if it exists
	if e.L != nil {
		e.L.Close()
	}

	e.L = glua.NewState()
	e.doc = nil

	registerElementType(e.L)
	e.registerAPIs()

	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	e.doc = nil
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// --- Execution ---

// DoString runs a chunk of Lua code and returns the document it built.
// The name parameter is used for stack traces and error messages.
func (e *Engine) DoString(name, code string) (element.Document, error) {
	if e.L == nil {
		return nil, errNotInitialized
	}
	proto, err := compile(strings.NewReader(code), name)
	if err != nil {
		return nil, err
	}
	return e.run(name, proto)
}

// DoFile runs a Lua file from the filesystem and returns the document it
// built. The script's directory is temporarily prepended to package.path
// so it can require sibling modules.
func (e *Engine) DoFile(path string) (element.Document, error) {
	if e.L == nil {
		return nil, errNotInitialized
	}

	absPath, err := filepath.Abs(expandTilde(path))
	if err != nil {
		return nil, err
	}
	proto, err := e.load(absPath)
	if err != nil {
		return nil, err
	}

	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(filepath.Dir(absPath)+"/?.lua;"+oldPath))
	defer e.L.SetField(pkg, "path", glua.LString(oldPath))

	return e.run(path, proto)
}

// load returns the compiled chunk for path, compiling only when the file
// changed since it was last seen.
func (e *Engine) load(path string) (*glua.FunctionProto, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s@%d:%d", path, info.ModTime().UnixNano(), info.Size())

	if proto, ok := e.protos.Get(key); ok {
		e.log.Debug("chunk cache hit", zap.String("script", path))
		return proto, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	proto, err := compile(f, path)
	if err != nil {
		return nil, err
	}
	e.protos.Add(key, proto)
	e.log.Debug("compiled script", zap.String("script", path), zap.Int64("bytes", info.Size()))
	return proto, nil
}

// run executes a compiled chunk. Elements passed to boxes.show come first,
// followed by any elements the chunk returns.
func (e *Engine) run(name string, proto *glua.FunctionProto) (element.Document, error) {
	e.doc = nil
	defer func() { e.doc = nil }()

	base := e.L.GetTop()
	defer e.L.SetTop(base)

	e.L.Push(e.L.NewFunctionFromProto(proto))
	if err := e.L.PCall(0, glua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	doc := e.doc
	for i := base + 1; i <= e.L.GetTop(); i++ {
		v := e.L.Get(i)
		if v == glua.LNil {
			continue
		}
		el, ok := toElement(v)
		if !ok {
			return nil, fmt.Errorf("run %s: return value %d is a %s, not an element", name, i-base, v.Type())
		}
		doc = append(doc, el)
	}

	e.log.Debug("script done", zap.String("script", name), zap.Int("elements", len(doc)))
	return doc, nil
}

// --- API Registration ---

func (e *Engine) registerAPIs() {
	e.boxesTable = e.L.NewTable()
	e.L.SetGlobal("boxes", e.boxesTable)

	e.registerElementFuncs()
}

// --- Private Helpers ---

func compile(r io.Reader, name string) (*glua.FunctionProto, error) {
	chunk, err := parse.Parse(r, name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	proto, err := glua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return proto, nil
}

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Package host loads LADSPA plugin libraries and drives their descriptors.
//
// It is the consumer side of the ABI implemented by pkg/plugin: libraries
// are opened with dlopen, or looked up in the current process when the
// plugins are linked in, and every call goes through the descriptor's
// function table exactly as a C host would make it.
package host

/*
#cgo CFLAGS: -I${SRCDIR}/../../include
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
#include "ladspa.h"

static void *lg_dlopen(const char *path) {
	return dlopen(path, RTLD_NOW | RTLD_LOCAL);
}

static void *lg_dlsym(void *h, const char *name, char **err) {
	dlerror();
	void *p = dlsym(h, name);
	*err = dlerror();
	return p;
}

static const char *lg_dlerror(void) {
	return dlerror();
}

static const LADSPA_Descriptor *lg_descriptor(void *fn, unsigned long index) {
	return ((LADSPA_Descriptor_Function)fn)(index);
}
*/
import "C"
import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unsafe"

	"github.com/hashicorp/go-multierror"
)

// EntryPoint is the symbol every LADSPA library exports.
const EntryPoint = "ladspa_descriptor"

// DefaultPath is searched when LADSPA_PATH is unset.
const DefaultPath = "/usr/local/lib/ladspa:/usr/lib/ladspa"

// ErrNotFound is returned when a library or plugin label cannot be found.
var ErrNotFound = errors.New("not found")

// Library is an opened plugin library.
type Library struct {
	Path string

	handle unsafe.Pointer
	entry  unsafe.Pointer
	lookup func(uint64) unsafe.Pointer
}

func dlerr() string {
	if e := C.lg_dlerror(); e != nil {
		return C.GoString(e)
	}
	return "unknown dlerror"
}

// Open loads the shared object at path and resolves its entry point.
func Open(path string) (*Library, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	h := C.lg_dlopen(cPath)
	if h == nil {
		return nil, fmt.Errorf("dlopen(%q) failed: %s", path, dlerr())
	}

	cName := C.CString(EntryPoint)
	defer C.free(unsafe.Pointer(cName))

	var cErr *C.char
	sym := C.lg_dlsym(h, cName, &cErr)
	if cErr != nil || sym == nil {
		msg := "symbol is NULL"
		if cErr != nil {
			msg = C.GoString(cErr)
		}
		C.dlclose(h)
		return nil, fmt.Errorf("%s: no %s: %s", path, EntryPoint, msg)
	}

	return &Library{Path: path, handle: h, entry: sym}, nil
}

// InProcess wraps a descriptor function linked into the current binary,
// such as plugin.Lookup.
func InProcess(name string, lookup func(index uint64) unsafe.Pointer) *Library {
	return &Library{Path: name, lookup: lookup}
}

func (l *Library) descriptor(index uint64) *C.LADSPA_Descriptor {
	if l.lookup != nil {
		return (*C.LADSPA_Descriptor)(l.lookup(index))
	}
	if l.entry == nil {
		return nil
	}
	return C.lg_descriptor(l.entry, C.ulong(index))
}

// Descriptors returns every plugin in the library, in index order.
func (l *Library) Descriptors() []*Descriptor {
	var out []*Descriptor
	for i := uint64(0); ; i++ {
		d := l.descriptor(i)
		if d == nil {
			return out
		}
		out = append(out, newDescriptor(l, i, d))
	}
}

// Descriptor returns the plugin at index.
func (l *Library) Descriptor(index uint64) (*Descriptor, error) {
	d := l.descriptor(index)
	if d == nil {
		return nil, fmt.Errorf("%s: plugin index %d: %w", l.Path, index, ErrNotFound)
	}
	return newDescriptor(l, index, d), nil
}

// Find returns the plugin with the given label.
func (l *Library) Find(label string) (*Descriptor, error) {
	for _, d := range l.Descriptors() {
		if d.Label == label {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%s: plugin %q: %w", l.Path, label, ErrNotFound)
}

// Close unloads the library. Descriptors and instances obtained from it must
// not be used afterwards.
func (l *Library) Close() error {
	if l.handle == nil {
		return nil
	}
	h := l.handle
	l.handle, l.entry = nil, nil
	if C.dlclose(h) != 0 {
		return fmt.Errorf("dlclose(%q) failed: %s", l.Path, dlerr())
	}
	return nil
}

// SearchPath splits a LADSPA_PATH value, falling back to DefaultPath.
func SearchPath(value string) []string {
	if strings.TrimSpace(value) == "" {
		value = DefaultPath
	}
	var dirs []string
	for _, d := range filepath.SplitList(value) {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Scan lists the shared objects in dirs, sorted by path. Missing
// directories are skipped.
func Scan(dirs []string) ([]string, error) {
	var result *multierror.Error
	var found []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				result = multierror.Append(result, err)
			}
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".so" {
				found = append(found, filepath.Join(dir, e.Name()))
			}
		}
	}
	sort.Strings(found)
	return found, result.ErrorOrNil()
}

// Resolve finds a library by path, or by file name on dirs the way the
// LADSPA SDK tools do. A missing ".so" suffix is added.
func Resolve(name string, dirs []string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) != ".so" {
		candidates = append(candidates, name+".so")
	}

	for _, c := range candidates {
		if strings.ContainsRune(c, filepath.Separator) {
			if _, err := os.Stat(c); err == nil {
				return c, nil
			}
			continue
		}
		for _, dir := range dirs {
			p := filepath.Join(dir, c)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("library %q: %w", name, ErrNotFound)
}

// LoadAll opens every path, returning the libraries that loaded and an
// error listing the ones that did not.
func LoadAll(paths []string) ([]*Library, error) {
	var result *multierror.Error
	var libs []*Library
	for _, p := range paths {
		lib, err := Open(p)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		libs = append(libs, lib)
	}
	return libs, result.ErrorOrNil()
}

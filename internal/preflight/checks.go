package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"captions/internal/cuecache"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCache opens the cue cache and counts its entries.
func CheckCache(ctx context.Context, path string) Result {
	const name = "Cue cache"

	store, err := cuecache.Open(path)
	if err != nil {
		if errors.Is(err, cuecache.ErrSchemaMismatch) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: schema mismatch; delete the file)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	entries, err := store.List(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d documents)", path, len(entries))}
}

// CheckBind verifies that the API listen address is free.
func CheckBind(bind string) Result {
	const name = "API bind"

	listener, err := net.Listen("tcp", bind)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: address in use)", bind)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", bind, err)}
	}
	_ = listener.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (available)", bind)}
}

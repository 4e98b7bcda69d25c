//go:build !linux || !cgo

package native

import (
	"syscall"

	"github.com/dynoinc/sdjournal/id128"
)

// Default returns a Library that fails every call with ENOSYS. The journal is
// only reachable through cgo on linux.
func Default() Library {
	return unsupported{}
}

var enosys = -int(syscall.ENOSYS)

type unsupported struct{}

func (unsupported) Print(int, string) int { return enosys }
func (unsupported) Sendv([][]byte) int { return enosys }
func (unsupported) Open(int) (Handle, int) { return nil, enosys }
func (unsupported) OpenNamespace(*string, int) (Handle, int) { return nil, enosys }
func (unsupported) OpenDirectory(string, int) (Handle, int) { return nil, enosys }
func (unsupported) OpenFiles([]string, int) (Handle, int) { return nil, enosys }
func (unsupported) CatalogForMessageID(id128.ID) (Buffer, int) { return nil, enosys }

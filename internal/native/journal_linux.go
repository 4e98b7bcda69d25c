//go:build cgo

package native

/*
#cgo pkg-config: libsystemd
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <sys/uio.h>
#include <systemd/sd-id128.h>
#include <systemd/sd-journal.h>

static int sdj_print(int priority, const char *message) {
	return sd_journal_print(priority, "%s", message);
}

static int sdj_seek_monotonic_usec(sd_journal *j, const uint8_t *boot, uint64_t usec) {
	sd_id128_t id;
	memcpy(id.bytes, boot, 16);
	return sd_journal_seek_monotonic_usec(j, id, usec);
}

static int sdj_get_monotonic_usec(sd_journal *j, uint64_t *usec, uint8_t *boot) {
	sd_id128_t id;
	int r = sd_journal_get_monotonic_usec(j, usec, &id);
	if (r >= 0)
		memcpy(boot, id.bytes, 16);
	return r;
}

static int sdj_get_cutoff_monotonic_usec(sd_journal *j, const uint8_t *boot, uint64_t *from, uint64_t *to) {
	sd_id128_t id;
	memcpy(id.bytes, boot, 16);
	return sd_journal_get_cutoff_monotonic_usec(j, id, from, to);
}

static int sdj_get_catalog_for_message_id(const uint8_t *mid, char **text) {
	sd_id128_t id;
	memcpy(id.bytes, mid, 16);
	return sd_journal_get_catalog_for_message_id(id, text);
}
*/
import "C"

import (
	"unsafe"

	"github.com/dynoinc/sdjournal/id128"
)

// Default returns the libsystemd backed Library.
func Default() Library {
	return library{}
}

type library struct{}

type cbuf struct {
	p *C.char
}

func (b cbuf) Bytes() []byte {
	if b.p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(b.p)), int(C.strlen(b.p)))
}

func (b cbuf) Free() {
	C.free(unsafe.Pointer(b.p))
}

func (library) Print(priority int, message string) int {
	m := C.CString(message)
	defer C.free(unsafe.Pointer(m))

	return int(C.sdj_print(C.int(priority), m))
}

func (library) Sendv(fields [][]byte) int {
	base := C.calloc(C.size_t(max(len(fields), 1)), C.size_t(unsafe.Sizeof(C.struct_iovec{})))
	defer C.free(base)

	iov := unsafe.Slice((*C.struct_iovec)(base), len(fields))
	for i, f := range fields {
		iov[i].iov_base = C.CBytes(f)
		iov[i].iov_len = C.size_t(len(f))
	}
	defer func() {
		for i := range iov {
			C.free(iov[i].iov_base)
		}
	}()

	return int(C.sd_journal_sendv((*C.struct_iovec)(base), C.int(len(fields))))
}

func (library) Open(flags int) (Handle, int) {
	var j *C.sd_journal
	r := C.sd_journal_open(&j, C.int(flags))
	if r < 0 {
		return nil, int(r)
	}
	return &handle{j: j}, int(r)
}

func (library) OpenNamespace(namespace *string, flags int) (Handle, int) {
	var ns *C.char
	if namespace != nil {
		ns = C.CString(*namespace)
		defer C.free(unsafe.Pointer(ns))
	}

	var j *C.sd_journal
	r := C.sd_journal_open_namespace(&j, ns, C.int(flags))
	if r < 0 {
		return nil, int(r)
	}
	return &handle{j: j}, int(r)
}

func (library) OpenDirectory(path string, flags int) (Handle, int) {
	p := C.CString(path)
	defer C.free(unsafe.Pointer(p))

	var j *C.sd_journal
	r := C.sd_journal_open_directory(&j, p, C.int(flags))
	if r < 0 {
		return nil, int(r)
	}
	return &handle{j: j}, int(r)
}

func (library) OpenFiles(paths []string, flags int) (Handle, int) {
	// NULL terminated array of C strings.
	base := C.calloc(C.size_t(len(paths)+1), C.size_t(unsafe.Sizeof((*C.char)(nil))))
	defer C.free(base)

	arr := unsafe.Slice((**C.char)(base), len(paths)+1)
	for i, p := range paths {
		arr[i] = C.CString(p)
	}
	defer func() {
		for _, p := range arr {
			C.free(unsafe.Pointer(p))
		}
	}()

	var j *C.sd_journal
	r := C.sd_journal_open_files(&j, (**C.char)(base), C.int(flags))
	if r < 0 {
		return nil, int(r)
	}
	return &handle{j: j}, int(r)
}

func (library) CatalogForMessageID(id id128.ID) (Buffer, int) {
	var text *C.char
	r := C.sdj_get_catalog_for_message_id((*C.uint8_t)(unsafe.Pointer(&id[0])), &text)
	if r < 0 {
		return nil, int(r)
	}
	return cbuf{p: text}, int(r)
}

type handle struct {
	j *C.sd_journal
}

func (h *handle) Close() {
	C.sd_journal_close(h.j)
	h.j = nil
}

func (h *handle) Next() int { return int(C.sd_journal_next(h.j)) }
func (h *handle) Previous() int { return int(C.sd_journal_previous(h.j)) }

func (h *handle) NextSkip(skip uint64) int {
	return int(C.sd_journal_next_skip(h.j, C.uint64_t(skip)))
}

func (h *handle) PreviousSkip(skip uint64) int {
	return int(C.sd_journal_previous_skip(h.j, C.uint64_t(skip)))
}

func (h *handle) SeekHead() int { return int(C.sd_journal_seek_head(h.j)) }
func (h *handle) SeekTail() int { return int(C.sd_journal_seek_tail(h.j)) }

func (h *handle) SeekMonotonicUsec(boot id128.ID, usec uint64) int {
	return int(C.sdj_seek_monotonic_usec(h.j, (*C.uint8_t)(unsafe.Pointer(&boot[0])), C.uint64_t(usec)))
}

func (h *handle) SeekRealtimeUsec(usec uint64) int {
	return int(C.sd_journal_seek_realtime_usec(h.j, C.uint64_t(usec)))
}

func (h *handle) SeekCursor(cursor string) int {
	c := C.CString(cursor)
	defer C.free(unsafe.Pointer(c))

	return int(C.sd_journal_seek_cursor(h.j, c))
}

func (h *handle) TestCursor(cursor string) int {
	c := C.CString(cursor)
	defer C.free(unsafe.Pointer(c))

	return int(C.sd_journal_test_cursor(h.j, c))
}

func (h *handle) GetCursor() (Buffer, int) {
	var c *C.char
	r := C.sd_journal_get_cursor(h.j, &c)
	if r < 0 {
		return nil, int(r)
	}
	return cbuf{p: c}, int(r)
}

func (h *handle) GetRealtimeUsec() (uint64, int) {
	var usec C.uint64_t
	r := C.sd_journal_get_realtime_usec(h.j, &usec)
	return uint64(usec), int(r)
}

func (h *handle) GetMonotonicUsec() (uint64, id128.ID, int) {
	var usec C.uint64_t
	var boot id128.ID
	r := C.sdj_get_monotonic_usec(h.j, &usec, (*C.uint8_t)(unsafe.Pointer(&boot[0])))
	return uint64(usec), boot, int(r)
}

func (h *handle) GetCutoffRealtimeUsec() (uint64, uint64, int) {
	var from, to C.uint64_t
	r := C.sd_journal_get_cutoff_realtime_usec(h.j, &from, &to)
	return uint64(from), uint64(to), int(r)
}

func (h *handle) GetCutoffMonotonicUsec(boot id128.ID) (uint64, uint64, int) {
	var from, to C.uint64_t
	r := C.sdj_get_cutoff_monotonic_usec(h.j, (*C.uint8_t)(unsafe.Pointer(&boot[0])), &from, &to)
	return uint64(from), uint64(to), int(r)
}

func borrowed(d unsafe.Pointer, l C.size_t, r C.int) ([]byte, int) {
	if r <= 0 {
		return nil, int(r)
	}
	return unsafe.Slice((*byte)(d), int(l)), int(r)
}

func (h *handle) GetData(field string) ([]byte, int) {
	f := C.CString(field)
	defer C.free(unsafe.Pointer(f))

	var d unsafe.Pointer
	var l C.size_t
	r := C.sd_journal_get_data(h.j, f, &d, &l)
	if r < 0 {
		return nil, int(r)
	}
	return unsafe.Slice((*byte)(d), int(l)), int(r)
}

func (h *handle) EnumerateData() ([]byte, int) {
	var d unsafe.Pointer
	var l C.size_t
	r := C.sd_journal_enumerate_data(h.j, &d, &l)
	return borrowed(d, l, r)
}

func (h *handle) EnumerateAvailableData() ([]byte, int) {
	var d unsafe.Pointer
	var l C.size_t
	r := C.sd_journal_enumerate_available_data(h.j, &d, &l)
	return borrowed(d, l, r)
}

func (h *handle) RestartData() { C.sd_journal_restart_data(h.j) }

func (h *handle) EnumerateFields() ([]byte, int) {
	var f *C.char
	r := C.sd_journal_enumerate_fields(h.j, &f)
	if r <= 0 {
		return nil, int(r)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(f)), int(C.strlen(f))), int(r)
}

func (h *handle) RestartFields() { C.sd_journal_restart_fields(h.j) }

func (h *handle) QueryUnique(field string) int {
	f := C.CString(field)
	defer C.free(unsafe.Pointer(f))

	return int(C.sd_journal_query_unique(h.j, f))
}

func (h *handle) EnumerateUnique() ([]byte, int) {
	var d unsafe.Pointer
	var l C.size_t
	r := C.sd_journal_enumerate_unique(h.j, &d, &l)
	return borrowed(d, l, r)
}

func (h *handle) EnumerateAvailableUnique() ([]byte, int) {
	var d unsafe.Pointer
	var l C.size_t
	r := C.sd_journal_enumerate_available_unique(h.j, &d, &l)
	return borrowed(d, l, r)
}

func (h *handle) RestartUnique() { C.sd_journal_restart_unique(h.j) }

func (h *handle) AddMatch(data []byte) int {
	// A zero size asks libsystemd to strlen the pointer, so always hand it a
	// NUL terminated copy with an explicit length.
	d := C.CBytes(append(data[:len(data):len(data)], 0))
	defer C.free(d)

	return int(C.sd_journal_add_match(h.j, d, C.size_t(len(data))))
}

func (h *handle) AddDisjunction() int { return int(C.sd_journal_add_disjunction(h.j)) }
func (h *handle) AddConjunction() int { return int(C.sd_journal_add_conjunction(h.j)) }
func (h *handle) FlushMatches() { C.sd_journal_flush_matches(h.j) }
func (h *handle) GetFd() int { return int(C.sd_journal_get_fd(h.j)) }
func (h *handle) GetEvents() int { return int(C.sd_journal_get_events(h.j)) }
func (h *handle) Process() int { return int(C.sd_journal_process(h.j)) }
func (h *handle) HasRuntimeFiles() int { return int(C.sd_journal_has_runtime_files(h.j)) }

func (h *handle) HasPersistentFiles() int {
	return int(C.sd_journal_has_persistent_files(h.j))
}

func (h *handle) GetCatalog() (Buffer, int) {
	var text *C.char
	r := C.sd_journal_get_catalog(h.j, &text)
	if r < 0 {
		return nil, int(r)
	}
	return cbuf{p: text}, int(r)
}

func (h *handle) GetTimeout() (uint64, int) {
	var usec C.uint64_t
	r := C.sd_journal_get_timeout(h.j, &usec)
	return uint64(usec), int(r)
}

func (h *handle) Wait(timeoutUsec uint64) int {
	return int(C.sd_journal_wait(h.j, C.uint64_t(timeoutUsec)))
}

func (h *handle) GetUsage() (uint64, int) {
	var n C.uint64_t
	r := C.sd_journal_get_usage(h.j, &n)
	return uint64(n), int(r)
}

func (h *handle) SetDataThreshold(size uint64) int {
	return int(C.sd_journal_set_data_threshold(h.j, C.size_t(size)))
}

func (h *handle) GetDataThreshold() (uint64, int) {
	var n C.size_t
	r := C.sd_journal_get_data_threshold(h.j, &n)
	return uint64(n), int(r)
}

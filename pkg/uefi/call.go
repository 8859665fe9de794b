package uefi

import (
	"sync"
	"unsafe"
)

var mux sync.Mutex

// defined in call_amd64.s
func callFn(fn uint64, n int, args []uint64) (status uint64)

// callService calls an UEFI service. Boot services are not reentrant, so
// calls are serialized.
func callService(fn uint64, args []uint64) (status uint64) {
	mux.Lock()
	defer mux.Unlock()

	return callFn(fn, len(args), args)
}

func Ptrval(ptr any) uint64 {
	return ptrval(ptr)
}

// This function helps preparing callService arguments, allowing a single call
// for all EFI services.
//
// Obtaining a pointer in this fashion is typically unsafe and tamago/dma
// package would be best to handle this. However, as arguments are prepared
// right before invoking Go assembly, it is considered safe as it is identical
// as having *uint64 as callService prototype.
func ptrval(ptr any) uint64 {
	var p unsafe.Pointer

	switch v := ptr.(type) {
	case *uint64:
		p = unsafe.Pointer(v)
	case *uint32:
		p = unsafe.Pointer(v)
	case *uint16:
		p = unsafe.Pointer(v)
	case *uintptr:
		p = unsafe.Pointer(v)
	case *byte:
		p = unsafe.Pointer(v)
	case *EFI_EVENT:
		p = unsafe.Pointer(v)
	case *UINTN:
		p = unsafe.Pointer(v)
	case *EFI_GUID:
		p = unsafe.Pointer(v)
	default:
		panic("internal error, invalid ptrval")
	}

	return uint64(uintptr(p))
}

func UefiCall1(fn uintptr, a uintptr) EFI_STATUS {
	st := callService(uint64(fn), []uint64{uint64(a)})
	return EFI_STATUS(st)
}

func UefiCall2(fn uintptr, a uintptr, b uintptr) EFI_STATUS {
	st := callService(uint64(fn), []uint64{uint64(a), uint64(b)})
	return EFI_STATUS(st)
}

func UefiCall3(fn uintptr, a uintptr, b uintptr, c uintptr) EFI_STATUS {
	st := callService(uint64(fn), []uint64{uint64(a), uint64(b), uint64(c)})
	return EFI_STATUS(st)
}

func UefiCall4(fn uintptr, a uintptr, b uintptr, c uintptr, d uintptr) EFI_STATUS {
	st := callService(uint64(fn), []uint64{uint64(a), uint64(b), uint64(c), uint64(d)})
	return EFI_STATUS(st)
}

func UefiCall5(fn uintptr, a uintptr, b uintptr, c uintptr, d uintptr, e uintptr) EFI_STATUS {
	st := callService(uint64(fn), []uint64{uint64(a), uint64(b), uint64(c), uint64(d), uint64(e)})
	return EFI_STATUS(st)
}

func UefiCall6(fn uintptr, a uintptr, b uintptr, c uintptr, d uintptr, e uintptr, f uintptr) EFI_STATUS {
	st := callService(uint64(fn), []uint64{uint64(a), uint64(b), uint64(c), uint64(d), uint64(e), uint64(f)})
	return EFI_STATUS(st)
}

package uefi

const (
	uintnSize = 32 << (^uintptr(0) >> 63) // 32 or 64
	errorMask = 1 << uintptr(uintnSize-1)
)

const (
	EFI_SUCCESS           EFI_STATUS = 0
	EFI_LOAD_ERROR        EFI_STATUS = errorMask | 1
	EFI_INVALID_PARAMETER EFI_STATUS = errorMask | 2
	EFI_UNSUPPORTED       EFI_STATUS = errorMask | 3
	EFI_BAD_BUFFER_SIZE   EFI_STATUS = errorMask | 4
	EFI_BUFFER_TOO_SMALL  EFI_STATUS = errorMask | 5
	EFI_NOT_READY         EFI_STATUS = errorMask | 6
	EFI_DEVICE_ERROR      EFI_STATUS = errorMask | 7
	EFI_WRITE_PROTECTED   EFI_STATUS = errorMask | 8
	EFI_OUT_OF_RESOURCES  EFI_STATUS = errorMask | 9
	EFI_NOT_FOUND         EFI_STATUS = errorMask | 14
	EFI_ACCESS_DENIED     EFI_STATUS = errorMask | 15
	EFI_TIMEOUT           EFI_STATUS = errorMask | 18
	EFI_ABORTED           EFI_STATUS = errorMask | 21
)

// IsError returns true when status has the high error bit set. Warning
// statuses and EFI_SUCCESS are not errors.
func IsError(status EFI_STATUS) bool {
	return status&errorMask != 0
}

var errMap = make(map[EFI_STATUS]*Error)

var (
	ErrLoadError        = newError(EFI_LOAD_ERROR, "image failed to load")
	ErrInvalidParameter = newError(EFI_INVALID_PARAMETER, "a parameter was incorrect")
	ErrUnsupported      = newError(EFI_UNSUPPORTED, "operation not supported")
	ErrBadBufferSize    = newError(EFI_BAD_BUFFER_SIZE, "buffer size incorrect for request")
	ErrBufferTooSmall   = newError(EFI_BUFFER_TOO_SMALL, "buffer too small; size returned in parameter")
	ErrNotReady         = newError(EFI_NOT_READY, "no data pending")
	ErrDeviceError      = newError(EFI_DEVICE_ERROR, "physical device reported an error")
	ErrWriteProtected   = newError(EFI_WRITE_PROTECTED, "device is write-protected")
	ErrOutOfResources   = newError(EFI_OUT_OF_RESOURCES, "out of resources")
	ErrNotFound         = newError(EFI_NOT_FOUND, "item not found")
	ErrAccessDenied     = newError(EFI_ACCESS_DENIED, "access denied")
	ErrTimeout          = newError(EFI_TIMEOUT, "timeout expired")
	ErrAborted          = newError(EFI_ABORTED, "operation aborted")
)

type Error struct {
	code EFI_STATUS
	msg  string
}

func newError(code EFI_STATUS, msg string) *Error {
	err := &Error{
		code: code,
		msg:  msg,
	}
	errMap[code] = err
	return err
}

func (e *Error) Error() string {
	return e.msg
}

// Status returns the EFI status the error was mapped from.
func (e *Error) Status() EFI_STATUS {
	return e.code
}

// StatusError returns the error object given by status. These
// can be checked/managed with errors.Is() and the like.
func StatusError(status EFI_STATUS) *Error {
	if status == EFI_SUCCESS {
		return nil
	}
	err, ok := errMap[status]
	if !ok {
		return newError(status, "unknown EFI error")
	}
	return err
}

package uefi

import "unsafe"

// EFI_SYSTEM_TABLE – §4.3 UEFI 2.10. Protocol tables this package does not
// wrap are carried as raw pointers so the structure keeps its ABI layout.
type EFI_SYSTEM_TABLE struct {
	Hdr                  EFI_TABLE_HEADER
	FirmwareVendor       *CHAR16
	FirmwareRevision     uint32
	ConsoleInHandle      EFI_HANDLE
	ConIn                uintptr
	ConsoleOutHandle     EFI_HANDLE
	ConOut               uintptr
	StandardErrorHandle  EFI_HANDLE
	StdErr               uintptr
	RuntimeServices      uintptr
	BootServices         *EFI_BOOT_SERVICES
	NumberOfTableEntries UINTN
	ConfigurationTable   uintptr
}

var (
	imageHandle EFI_HANDLE
	systemTable *EFI_SYSTEM_TABLE
)

// Init binds the package to a running firmware. The handles are the ones
// the firmware passed to the image entry point, e.g. from go-boot's
// x64.UEFI.Handles().
func Init(image uintptr, sysTable uintptr) {
	imageHandle = EFI_HANDLE(image)
	// the firmware owns this memory for the life of the image
	systemTable = (*EFI_SYSTEM_TABLE)(unsafe.Pointer(sysTable))
}

// ST returns the EFI system table, nil before Init.
func ST() *EFI_SYSTEM_TABLE {
	return systemTable
}

// BS returns the EFI boot services table, nil before Init.
func BS() *EFI_BOOT_SERVICES {
	if systemTable == nil {
		return nil
	}
	return systemTable.BootServices
}

// GetImageHandle returns the handle of the running image.
func GetImageHandle() EFI_HANDLE {
	return imageHandle
}

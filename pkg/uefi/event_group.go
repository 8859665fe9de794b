package uefi

// Well-known event group GUIDs. An event created in one of these groups is
// signaled together with every other member when the firmware broadcasts
// the corresponding system milestone.

// gEfiEventExitBootServicesGuid = {27ABF055-B1B8-4C26-8048-748F37BAA2DF}
var EFI_EVENT_GROUP_EXIT_BOOT_SERVICES = EFI_GUID{
	0x27ABF055, 0xB1B8, 0x4C26,
	[8]uint8{0x80, 0x48, 0x74, 0x8f, 0x37, 0xba, 0xa2, 0xdf},
}

// gEfiEventVirtualAddressChangeGuid = {13FA7698-C831-49C7-87EA-8F43FCC25196}
var EFI_EVENT_GROUP_VIRTUAL_ADDRESS_CHANGE = EFI_GUID{
	0x13FA7698, 0xC831, 0x49C7,
	[8]uint8{0x87, 0xea, 0x8f, 0x43, 0xfc, 0xc2, 0x51, 0x96},
}

// gEfiEventMemoryMapChangeGuid = {78BEE926-692F-48FD-9EDB-01422EF0D7AB}
var EFI_EVENT_GROUP_MEMORY_MAP_CHANGE = EFI_GUID{
	0x78BEE926, 0x692F, 0x48FD,
	[8]uint8{0x9e, 0xdb, 0x01, 0x42, 0x2e, 0xf0, 0xd7, 0xab},
}

// gEfiEventReadyToBootGuid = {7CE88FB3-4BD7-4679-87A8-A8D8DEE50D2B}
var EFI_EVENT_GROUP_READY_TO_BOOT = EFI_GUID{
	0x7CE88FB3, 0x4BD7, 0x4679,
	[8]uint8{0x87, 0xa8, 0xa8, 0xd8, 0xde, 0xe5, 0x0d, 0x2b},
}

// gEfiEventDxeDispatchGuid = {7081E22F-CAC6-4053-9468-675782CF88E5}
var EFI_EVENT_GROUP_DXE_DISPATCH = EFI_GUID{
	0x7081E22F, 0xCAC6, 0x4053,
	[8]uint8{0x94, 0x68, 0x67, 0x57, 0x82, 0xcf, 0x88, 0xe5},
}

// gEfiEndOfDxeEventGroupGuid = {02CE967A-DD7E-4FFC-9EE7-810CF0470880}
var EFI_EVENT_GROUP_END_OF_DXE = EFI_GUID{
	0x02CE967A, 0xDD7E, 0x4FFC,
	[8]uint8{0x9e, 0xe7, 0x81, 0x0c, 0xf0, 0x47, 0x08, 0x80},
}

package drive

import "github.com/YLonely/dosdev-manager/api/types"

const (
	MethodAllocate string = "Allocate"
	MethodRelease  string = "Release"
	MethodList     string = "List"
	MethodMask     string = "Mask"
)

type AllocateRequest struct {
	Device string
	Class  string
	// MountPoint, when set, becomes the drive root of the letter
	MountPoint string
}

type AllocateResponse struct {
	Letter string
	Error  types.Error
}

type ReleaseRequest struct {
	Letter string
	// Purge also removes the device entry
	Purge bool
}

type ReleaseResponse struct {
	Error types.Error
}

type ListRequest struct{}

type ListResponse struct {
	Drives []types.Drive
	Error  types.Error
}

type MaskRequest struct {
	Path string
}

type MaskResponse struct {
	Mask    uint32
	Letters string
}

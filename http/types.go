package http

import "github.com/YLonely/dosdev-manager/api/types"

type allocateRequest struct {
	Device     string `json:"device"`
	Class      string `json:"class"`
	MountPoint string `json:"mount_point,omitempty"`
}

type allocateResponse struct {
	Letter string `json:"letter"`
}

type releaseRequest struct {
	Letter string `json:"letter"`
	Purge  bool   `json:"purge,omitempty"`
}

type listResponse struct {
	Drives []types.Drive `json:"drives"`
}

type maskResponse struct {
	Mask    uint32 `json:"mask"`
	Letters string `json:"letters"`
}

type mappingRequest struct {
	Target string `json:"target"`
}

type mappingResponse struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

type errorResponse struct {
	Message string `json:"message"`
}

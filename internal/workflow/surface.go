package workflow

import (
	"github.com/ytget/camroll/internal/capability"
)

// Surface describes one capture screen: which permissions it needs and
// which actions it offers
type Surface struct {
	Name         string
	Permissions  []capability.Permission
	InAppCamera  bool // shutter, preview, recording
	Gallery      bool // multi-select library import
	SystemCamera bool // launch the platform camera app
	LinkImport   bool // import a shared video link
	DeniedText   string
}

// Predefined surfaces
var (
	SurfaceCamera = Surface{
		Name: "camera",
		Permissions: []capability.Permission{
			capability.PermissionCamera,
			capability.PermissionMicrophone,
			capability.PermissionMediaLibrary,
		},
		InAppCamera: true,
		Gallery:     true,
		LinkImport:  true,
		DeniedText:  TextPermissionsCameraMicGallery,
	}

	SurfaceCameraOnly = Surface{
		Name: "camera_only",
		Permissions: []capability.Permission{
			capability.PermissionCamera,
			capability.PermissionMicrophone,
		},
		InAppCamera: true,
		DeniedText:  TextPermissionsCameraMic,
	}

	SurfacePicker = Surface{
		Name: "picker",
		Permissions: []capability.Permission{
			capability.PermissionCamera,
			capability.PermissionMediaLibrary,
		},
		Gallery:      true,
		SystemCamera: true,
		LinkImport:   true,
		DeniedText:   TextPermissionsCameraGallery,
	}

	SurfaceGallery = Surface{
		Name:        "gallery",
		Permissions: []capability.Permission{capability.PermissionMediaLibrary},
		Gallery:     true,
		LinkImport:  true,
		DeniedText:  TextPermissionsGallery,
	}
)

// Requires reports whether the surface needs permission p
func (s Surface) Requires(p capability.Permission) bool {
	for _, have := range s.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// orderedPermissions returns the surface permissions in the fixed request order
func (s Surface) orderedPermissions() []capability.Permission {
	out := make([]capability.Permission, 0, len(s.Permissions))
	for _, p := range capability.PermissionOrder {
		if s.Requires(p) {
			out = append(out, p)
		}
	}
	return out
}

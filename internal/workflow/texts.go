package workflow

// Notice text keys. ui.Localization translates them; without a translator
// the English defaults below are used.
const (
	TextPermissionsTitle            = "permissions_required"
	TextPermissionsCameraMicGallery = "permissions_camera_mic_gallery"
	TextPermissionsCameraMic        = "permissions_camera_mic"
	TextPermissionsCameraGallery    = "permissions_camera_gallery"
	TextPermissionsGallery          = "permissions_gallery"
	TextErrorTitle                  = "error"
	TextCaptureFailed               = "capture_failed"
	TextRecordingFailed             = "recording_failed"
	TextGalleryFailed               = "gallery_open_failed"
	TextCameraLaunchFailed          = "camera_launch_failed"
	TextImportFailed                = "import_failed"
)

// Translator resolves notice text keys
type Translator interface {
	GetText(key string) string
}

var defaultTexts = map[string]string{
	TextPermissionsTitle:            "Permissions required",
	TextPermissionsCameraMicGallery: "We need access to the camera, microphone and gallery.",
	TextPermissionsCameraMic:        "We need access to the camera and microphone.",
	TextPermissionsCameraGallery:    "We need access to the camera and the gallery.",
	TextPermissionsGallery:          "We need access to the gallery.",
	TextErrorTitle:                  "Error",
	TextCaptureFailed:               "Could not take the photo.",
	TextRecordingFailed:             "Could not record the video.",
	TextGalleryFailed:               "Could not open the gallery.",
	TextCameraLaunchFailed:          "Could not open the camera.",
	TextImportFailed:                "Could not import the link.",
}

func (c *Controller) text(key string) string {
	if c.texts != nil {
		if s := c.texts.GetText(key); s != "" && s != key {
			return s
		}
	}
	if s, ok := defaultTexts[key]; ok {
		return s
	}
	return key
}

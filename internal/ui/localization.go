package ui

import (
	"os"
	"strings"

	"github.com/ytget/camroll/internal/gallery"
	"github.com/ytget/camroll/internal/workflow"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyTabCamera         = "tab_camera"
	KeyTabGallery        = "tab_gallery"
	KeyTabPicker         = "tab_picker"
	KeyTabMediaLibrary   = "tab_media_library"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyAllow             = "allow"
	KeyDeny              = "deny"
	KeyAccept            = "accept"
	KeyRetake            = "retake"
	KeyModePicture       = "mode_picture"
	KeyModeVideo         = "mode_video"
	KeyFlipCamera        = "flip_camera"
	KeyRecording         = "recording"
	KeyOpenGallery       = "open_gallery"
	KeyTakePhoto         = "take_photo"
	KeyEnterLink         = "enter_link"
	KeyImport            = "import"
	KeyImporting         = "importing"
	KeySelectMedia       = "select_media"
	KeySelected          = "selected"
	KeyShowInFolder      = "show_in_folder"
	KeyOpen              = "open"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyCaptureDirectory  = "capture_directory"
	KeyPhotoQuality      = "photo_quality"
	KeyDefaultMode       = "default_mode"
	KeyDefaultFacing     = "default_facing"
	KeyVideoDevice       = "video_device"
	KeyFrontDevice       = "front_device"
	KeyAudioDevice       = "audio_device"
	KeySettingsSaved     = "settings_saved"
	KeyPermissionCamera  = "permission_camera"
	KeyPermissionMic     = "permission_microphone"
	KeyPermissionLibrary = "permission_media_library"
	KeyCameraReady       = "camera_ready"
	KeyPermissionPrompt  = "permission_prompt"
	KeyWorking           = "working"
	KeyFacingBack        = "facing_back"
	KeyFacingFront       = "facing_front"
	KeyRestartRequired   = "restart_required"
	KeyGalleryEmpty      = gallery.EmptyMessageKey
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage derives a language code from the POSIX locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && v != "C" && v != "POSIX" {
			return strings.ToLower(v[:min(2, len(v))])
		}
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Camroll",
		KeyTabCamera:         "Camera",
		KeyTabGallery:        "My Photos",
		KeyTabPicker:         "Image Picker",
		KeyTabMediaLibrary:   "Media Library",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyAllow:             "Allow",
		KeyDeny:              "Deny",
		KeyAccept:            "Use photo",
		KeyRetake:            "Retake",
		KeyModePicture:       "Photo",
		KeyModeVideo:         "Video",
		KeyFlipCamera:        "Flip",
		KeyRecording:         "Recording…",
		KeyOpenGallery:       "Open gallery",
		KeyTakePhoto:         "Take a photo",
		KeyEnterLink:         "Paste a video link (https://...)",
		KeyImport:            "Import",
		KeyImporting:         "Importing",
		KeySelectMedia:       "Select photos and videos",
		KeySelected:          "selected",
		KeyShowInFolder:      "Show in folder",
		KeyOpen:              "Open",
		KeyErrorOpeningFile:  "Error opening file",
		KeyCaptureDirectory:  "Capture Directory",
		KeyPhotoQuality:      "Photo Quality",
		KeyDefaultMode:       "Default Mode",
		KeyDefaultFacing:     "Default Camera",
		KeyVideoDevice:       "Camera Device",
		KeyFrontDevice:       "Front Camera Device",
		KeyAudioDevice:       "Microphone Device",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyPermissionCamera:  "Camroll wants to use the camera.",
		KeyPermissionMic:     "Camroll wants to use the microphone.",
		KeyPermissionLibrary: "Camroll wants to access your photos and videos.",
		KeyCameraReady:       "Camera ready",
		KeyPermissionPrompt:  "Permission",
		KeyWorking:           "Working…",
		KeyFacingBack:        "Back camera",
		KeyFacingFront:       "Front camera",
		KeyRestartRequired:   "Camera and microphone changes apply after a restart.",
		KeyGalleryEmpty:      "No items yet. Go to the \"Camera\" tab!",

		workflow.TextPermissionsTitle:            "Permissions required",
		workflow.TextPermissionsCameraMicGallery: "We need access to the camera, microphone and gallery.",
		workflow.TextPermissionsCameraMic:        "We need access to the camera and microphone.",
		workflow.TextPermissionsCameraGallery:    "We need access to the camera and the gallery.",
		workflow.TextPermissionsGallery:          "We need access to the gallery.",
		workflow.TextErrorTitle:                  "Error",
		workflow.TextCaptureFailed:               "Could not take the photo.",
		workflow.TextRecordingFailed:             "Could not record the video.",
		workflow.TextGalleryFailed:               "Could not open the gallery.",
		workflow.TextCameraLaunchFailed:          "Could not open the camera.",
		workflow.TextImportFailed:                "Could not import the link.",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Camroll",
		KeyTabCamera:         "Камера",
		KeyTabGallery:        "Мои фото",
		KeyTabPicker:         "Выбор фото",
		KeyTabMediaLibrary:   "Медиатека",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyAllow:             "Разрешить",
		KeyDeny:              "Запретить",
		KeyAccept:            "Использовать",
		KeyRetake:            "Переснять",
		KeyModePicture:       "Фото",
		KeyModeVideo:         "Видео",
		KeyFlipCamera:        "Повернуть",
		KeyRecording:         "Запись…",
		KeyOpenGallery:       "Открыть галерею",
		KeyTakePhoto:         "Сделать фото",
		KeyEnterLink:         "Вставьте ссылку на видео (https://...)",
		KeyImport:            "Импорт",
		KeyImporting:         "Импорт",
		KeySelectMedia:       "Выберите фото и видео",
		KeySelected:          "выбрано",
		KeyShowInFolder:      "Показать в папке",
		KeyOpen:              "Открыть",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyCaptureDirectory:  "Папка снимков",
		KeyPhotoQuality:      "Качество фото",
		KeyDefaultMode:       "Режим по умолчанию",
		KeyDefaultFacing:     "Камера по умолчанию",
		KeyVideoDevice:       "Устройство камеры",
		KeyFrontDevice:       "Фронтальная камера",
		KeyAudioDevice:       "Микрофон",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyPermissionCamera:  "Camroll запрашивает доступ к камере.",
		KeyPermissionMic:     "Camroll запрашивает доступ к микрофону.",
		KeyPermissionLibrary: "Camroll запрашивает доступ к фото и видео.",
		KeyCameraReady:       "Камера готова",
		KeyPermissionPrompt:  "Разрешение",
		KeyWorking:           "Обработка…",
		KeyFacingBack:        "Основная камера",
		KeyFacingFront:       "Фронтальная камера",
		KeyRestartRequired:   "Изменения камеры и микрофона применятся после перезапуска.",
		KeyGalleryEmpty:      "Пока пусто. Перейдите на вкладку \"Камера\"!",

		workflow.TextPermissionsTitle:            "Требуются разрешения",
		workflow.TextPermissionsCameraMicGallery: "Нужен доступ к камере, микрофону и галерее.",
		workflow.TextPermissionsCameraMic:        "Нужен доступ к камере и микрофону.",
		workflow.TextPermissionsCameraGallery:    "Нужен доступ к камере и галерее.",
		workflow.TextPermissionsGallery:          "Нужен доступ к галерее.",
		workflow.TextErrorTitle:                  "Ошибка",
		workflow.TextCaptureFailed:               "Не удалось сделать фото.",
		workflow.TextRecordingFailed:             "Не удалось записать видео.",
		workflow.TextGalleryFailed:               "Не удалось открыть галерею.",
		workflow.TextCameraLaunchFailed:          "Не удалось открыть камеру.",
		workflow.TextImportFailed:                "Не удалось импортировать ссылку.",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Camroll",
		KeyTabCamera:         "Câmera",
		KeyTabGallery:        "Minhas Fotos",
		KeyTabPicker:         "Seletor de Imagens",
		KeyTabMediaLibrary:   "Biblioteca de Mídia",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyAllow:             "Permitir",
		KeyDeny:              "Negar",
		KeyAccept:            "Usar foto",
		KeyRetake:            "Tirar outra",
		KeyModePicture:       "Foto",
		KeyModeVideo:         "Vídeo",
		KeyFlipCamera:        "Virar",
		KeyRecording:         "Gravando…",
		KeyOpenGallery:       "Abrir galeria",
		KeyTakePhoto:         "Tirar foto",
		KeyEnterLink:         "Cole um link de vídeo (https://...)",
		KeyImport:            "Importar",
		KeyImporting:         "Importando",
		KeySelectMedia:       "Selecione fotos e vídeos",
		KeySelected:          "selecionados",
		KeyShowInFolder:      "Mostrar na pasta",
		KeyOpen:              "Abrir",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyCaptureDirectory:  "Diretório de Capturas",
		KeyPhotoQuality:      "Qualidade da Foto",
		KeyDefaultMode:       "Modo Padrão",
		KeyDefaultFacing:     "Câmera Padrão",
		KeyVideoDevice:       "Dispositivo de Câmera",
		KeyFrontDevice:       "Câmera Frontal",
		KeyAudioDevice:       "Microfone",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyPermissionCamera:  "O Camroll quer usar a câmera.",
		KeyPermissionMic:     "O Camroll quer usar o microfone.",
		KeyPermissionLibrary: "O Camroll quer acessar suas fotos e vídeos.",
		KeyCameraReady:       "Câmera pronta",
		KeyPermissionPrompt:  "Permissão",
		KeyWorking:           "Processando…",
		KeyFacingBack:        "Câmera traseira",
		KeyFacingFront:       "Câmera frontal",
		KeyRestartRequired:   "Mudanças de câmera e microfone valem após reiniciar.",
		KeyGalleryEmpty:      "Nenhum item ainda. Vá para a aba \"Câmera\"!",

		workflow.TextPermissionsTitle:            "Permissões necessárias",
		workflow.TextPermissionsCameraMicGallery: "Precisamos de acesso à câmera, microfone e galeria.",
		workflow.TextPermissionsCameraMic:        "Precisamos de acesso à câmera e ao microfone.",
		workflow.TextPermissionsCameraGallery:    "Precisamos de acesso à câmera e à galeria.",
		workflow.TextPermissionsGallery:          "Precisamos de acesso à galeria.",
		workflow.TextErrorTitle:                  "Erro",
		workflow.TextCaptureFailed:               "Não foi possível tirar a foto.",
		workflow.TextRecordingFailed:             "Não foi possível gravar o vídeo.",
		workflow.TextGalleryFailed:               "Não foi possível abrir a galeria.",
		workflow.TextCameraLaunchFailed:          "Não foi possível abrir a câmera.",
		workflow.TextImportFailed:                "Não foi possível importar o link.",
	}
}

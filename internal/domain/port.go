package domain

// Handle — типизированный направленный порт узла.
//
// Закрытый словарь: восемь тегов, другие значения невалидны.
type Handle string

const (
	// HandleVideoOutput — выход видео.
	HandleVideoOutput Handle = "video-output"

	// HandleVideoInput — вход видео.
	HandleVideoInput Handle = "video-input"

	// HandleAudioOutput — выход аудио.
	HandleAudioOutput Handle = "audio-output"

	// HandleAudioInput — вход аудио.
	HandleAudioInput Handle = "audio-input"

	// HandleDataOutput — выход производных параметров (например, trim).
	HandleDataOutput Handle = "data-output"

	// HandleDataInput — вход производных параметров.
	HandleDataInput Handle = "data-input"

	// HandleReferenceInput — вход эталонного видео узла сравнения.
	HandleReferenceInput Handle = "reference-input"

	// HandleTestInput — вход проверяемого видео узла сравнения.
	HandleTestInput Handle = "test-input"
)

// Media — вид данных, передаваемых через порт.
type Media string

const (
	// MediaVideo — видео.
	MediaVideo Media = "video"

	// MediaAudio — аудио.
	MediaAudio Media = "audio"

	// MediaData — производные параметры.
	MediaData Media = "data"
)

// Valid возвращает true, если тег порта известен.
func (h Handle) Valid() bool {
	switch h {
	case HandleVideoOutput, HandleVideoInput,
		HandleAudioOutput, HandleAudioInput,
		HandleDataOutput, HandleDataInput,
		HandleReferenceInput, HandleTestInput:
		return true
	default:
		return false
	}
}

// IsInput возвращает true для входных портов.
func (h Handle) IsInput() bool {
	switch h {
	case HandleVideoInput, HandleAudioInput, HandleDataInput,
		HandleReferenceInput, HandleTestInput:
		return true
	default:
		return false
	}
}

// IsOutput возвращает true для выходных портов.
func (h Handle) IsOutput() bool {
	switch h {
	case HandleVideoOutput, HandleAudioOutput, HandleDataOutput:
		return true
	default:
		return false
	}
}

// Media возвращает вид данных порта.
// Порты сравнения (reference/test) передают видео.
func (h Handle) Media() Media {
	switch h {
	case HandleVideoOutput, HandleVideoInput, HandleReferenceInput, HandleTestInput:
		return MediaVideo
	case HandleAudioOutput, HandleAudioInput:
		return MediaAudio
	default:
		return MediaData
	}
}

// String возвращает строковое представление тега порта.
func (h Handle) String() string {
	return string(h)
}

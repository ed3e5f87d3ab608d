package domain

// NodeKind — тип узла пайплайна.
//
// Закрытое перечисление: каждый метод классификации ниже
// содержит исчерпывающий switch, поэтому добавление нового
// типа узла — изменение, проверяемое на этапе компиляции.
type NodeKind string

const (
	// KindInputVideo — источник видео (выбранный пользователем файл).
	KindInputVideo NodeKind = "inputVideo"

	// KindInputAudio — источник аудио (выбранный пользователем файл).
	KindInputAudio NodeKind = "inputAudio"

	// KindTrimVideo — обрезка видео. Pass-through: пробрасывает входное
	// видео без изменений, отдельно публикует параметры обрезки на data-output.
	KindTrimVideo NodeKind = "trimVideo"

	// KindTrimAudio — обрезка аудио. Pass-through, аналогично KindTrimVideo.
	KindTrimAudio NodeKind = "trimAudio"

	// KindConvertVideo — конвертация видео. Transform: до выполнения
	// ведёт себя как pass-through, после — источник артефакта движка.
	KindConvertVideo NodeKind = "convertVideo"

	// KindConvertAudio — конвертация аудио. Transform.
	KindConvertAudio NodeKind = "convertAudio"

	// KindViewVideo — просмотр видео (терминальный потребитель).
	KindViewVideo NodeKind = "viewVideo"

	// KindGridView — сетка превью (терминальный потребитель).
	KindGridView NodeKind = "gridView"

	// KindSequenceExtract — извлечение последовательности кадров.
	KindSequenceExtract NodeKind = "sequenceExtract"

	// KindSpectrumAnalyzer — анализатор спектра аудио.
	KindSpectrumAnalyzer NodeKind = "spectrumAnalyzer"

	// KindInfoVideo — инспектор метаданных видео.
	KindInfoVideo NodeKind = "infoVideo"

	// KindInfoAudio — инспектор метаданных аудио.
	KindInfoAudio NodeKind = "infoAudio"

	// KindVmafAnalysis — сравнение качества (VMAF) двух видео:
	// reference-input и test-input.
	KindVmafAnalysis NodeKind = "vmafAnalysis"
)

// NodeClass — класс узла в терминах распространения данных.
type NodeClass int

const (
	// ClassUnknown — нераспознанный тип узла.
	ClassUnknown NodeClass = iota

	// ClassLeafProducer — источник: значение приходит от пользователя (файл).
	ClassLeafProducer

	// ClassPassThrough — пробрасывает вход без изменений, публикует
	// производные параметры отдельно.
	ClassPassThrough

	// ClassTransform — до выполнения preview входа, после — артефакт движка.
	ClassTransform

	// ClassTerminal — потребитель без распространяющего выхода.
	ClassTerminal
)

// Valid возвращает true, если тип узла известен.
func (k NodeKind) Valid() bool {
	return k.Class() != ClassUnknown
}

// Class возвращает класс узла.
func (k NodeKind) Class() NodeClass {
	switch k {
	case KindInputVideo, KindInputAudio:
		return ClassLeafProducer
	case KindTrimVideo, KindTrimAudio:
		return ClassPassThrough
	case KindConvertVideo, KindConvertAudio:
		return ClassTransform
	case KindViewVideo, KindGridView, KindSequenceExtract,
		KindSpectrumAnalyzer, KindInfoVideo, KindInfoAudio, KindVmafAnalysis:
		return ClassTerminal
	default:
		return ClassUnknown
	}
}

// ProducesVideo возвращает true, если узел отдаёт видео на video-output.
func (k NodeKind) ProducesVideo() bool {
	switch k {
	case KindInputVideo, KindTrimVideo, KindConvertVideo:
		return true
	case KindInputAudio, KindTrimAudio, KindConvertAudio,
		KindViewVideo, KindGridView, KindSequenceExtract,
		KindSpectrumAnalyzer, KindInfoVideo, KindInfoAudio, KindVmafAnalysis:
		return false
	default:
		return false
	}
}

// ConsumesVideo возвращает true, если узел принимает видео на video-input.
// Анализатор спектра принимает и видео: звуковая дорожка извлекается движком.
func (k NodeKind) ConsumesVideo() bool {
	switch k {
	case KindTrimVideo, KindConvertVideo, KindViewVideo, KindGridView,
		KindSequenceExtract, KindSpectrumAnalyzer, KindInfoVideo:
		return true
	case KindInputVideo, KindInputAudio, KindTrimAudio, KindConvertAudio,
		KindInfoAudio, KindVmafAnalysis:
		return false
	default:
		return false
	}
}

// ProducesAudio возвращает true, если узел отдаёт аудио на audio-output.
func (k NodeKind) ProducesAudio() bool {
	switch k {
	case KindInputAudio, KindTrimAudio, KindConvertAudio:
		return true
	case KindInputVideo, KindTrimVideo, KindConvertVideo,
		KindViewVideo, KindGridView, KindSequenceExtract,
		KindSpectrumAnalyzer, KindInfoVideo, KindInfoAudio, KindVmafAnalysis:
		return false
	default:
		return false
	}
}

// ConsumesAudio возвращает true, если узел принимает аудио на audio-input.
func (k NodeKind) ConsumesAudio() bool {
	switch k {
	case KindTrimAudio, KindConvertAudio, KindSpectrumAnalyzer, KindInfoAudio:
		return true
	case KindInputVideo, KindInputAudio, KindTrimVideo, KindConvertVideo,
		KindViewVideo, KindGridView, KindSequenceExtract,
		KindInfoVideo, KindVmafAnalysis:
		return false
	default:
		return false
	}
}

// IsComparison возвращает true для узла сравнения качества
// (reference-input / test-input).
func (k NodeKind) IsComparison() bool {
	return k == KindVmafAnalysis
}

// IsLeafProducer возвращает true для узлов-источников.
func (k NodeKind) IsLeafProducer() bool {
	return k.Class() == ClassLeafProducer
}

// IsTerminal возвращает true для терминальных потребителей.
func (k NodeKind) IsTerminal() bool {
	return k.Class() == ClassTerminal
}

// IsDisplay возвращает true для display/inspector узлов, в которые
// оркестратор подставляет артефакты после выполнения.
func (k NodeKind) IsDisplay() bool {
	switch k {
	case KindViewVideo, KindGridView, KindInfoVideo, KindSequenceExtract:
		return true
	case KindInputVideo, KindInputAudio, KindTrimVideo, KindTrimAudio,
		KindConvertVideo, KindConvertAudio, KindSpectrumAnalyzer,
		KindInfoAudio, KindVmafAnalysis:
		return false
	default:
		return false
	}
}

// String возвращает строковое представление типа узла.
func (k NodeKind) String() string {
	return string(k)
}

// ParseNodeKind парсит строку в NodeKind.
// Возвращает пустой NodeKind для неизвестных типов (Valid() == false).
func ParseNodeKind(s string) NodeKind {
	k := NodeKind(s)
	if k.Valid() {
		return k
	}
	return NodeKind("")
}

package domain

// VideoArtifact — видео-артефакт, произведённый движком выполнения.
type VideoArtifact struct {
	Path     string  `json:"path"`
	Format   string  `json:"format"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Duration float64 `json:"duration"`
}

// AudioArtifact — аудио-артефакт, произведённый движком выполнения.
type AudioArtifact struct {
	Path       string  `json:"path"`
	Format     string  `json:"format"`
	Duration   float64 `json:"duration"`
	SampleRate int     `json:"sampleRate,omitempty"`
	Channels   int     `json:"channels,omitempty"`
	Bitrate    int     `json:"bitrate,omitempty"`
}

// VmafScore — результат сравнения качества двух видео.
type VmafScore struct {
	Mean          float64 `json:"mean"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	HarmonicMean  float64 `json:"harmonic_mean"`
	FrameCount    int     `json:"frame_count"`
	Model         string  `json:"model"`
	ReferencePath string  `json:"reference_path"`
	DistortedPath string  `json:"distorted_path"`
}

// ExecutionResult — ответ движка выполнения.
//
// Outputs ключуются по ID узла, который произвёл артефакт.
// Специализированные карты (VmafResults, AudioOutputs) заполняются
// только при наличии соответствующих узлов в пайплайне.
type ExecutionResult struct {
	Success      bool                     `json:"success"`
	Message      string                   `json:"message"`
	Outputs      map[string]VideoArtifact `json:"outputs"`
	VmafResults  map[string]VmafScore     `json:"vmaf_results,omitempty"`
	AudioOutputs map[string]AudioArtifact `json:"audio_outputs,omitempty"`
}

// ValidationStatus — результат проверки готовности пайплайна.
// Возвращается значением, не ошибкой: невалидный пайплайн —
// штатная ситуация, сообщение показывается пользователю.
type ValidationStatus struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

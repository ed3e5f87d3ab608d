package graph

import (
	"testing"

	"github.com/shaiso/Kadr/internal/domain"
)

func testNodes() []domain.Node {
	return []domain.Node{
		{ID: "in-video", Kind: domain.KindInputVideo},
		{ID: "in-audio", Kind: domain.KindInputAudio},
		{ID: "trim-v", Kind: domain.KindTrimVideo},
		{ID: "trim-a", Kind: domain.KindTrimAudio},
		{ID: "conv-v", Kind: domain.KindConvertVideo},
		{ID: "conv-a", Kind: domain.KindConvertAudio},
		{ID: "view", Kind: domain.KindViewVideo},
		{ID: "grid", Kind: domain.KindGridView},
		{ID: "spectrum", Kind: domain.KindSpectrumAnalyzer},
		{ID: "info-a", Kind: domain.KindInfoAudio},
		{ID: "vmaf", Kind: domain.KindVmafAnalysis},
		{ID: "seq", Kind: domain.KindSequenceExtract},
	}
}

func edge(source string, sh domain.Handle, target string, th domain.Handle) domain.Edge {
	return domain.Edge{
		Source:       source,
		SourceHandle: sh,
		Target:       target,
		TargetHandle: th,
	}
}

func TestIsValidConnection_CompatibilityTable(t *testing.T) {
	v := NewValidator(nil)
	nodes := testNodes()

	tests := []struct {
		name string
		e    domain.Edge
		want bool
	}{
		{"video chain to trim", edge("in-video", domain.HandleVideoOutput, "trim-v", domain.HandleVideoInput), true},
		{"video chain to view", edge("trim-v", domain.HandleVideoOutput, "view", domain.HandleVideoInput), true},
		{"convert to grid", edge("conv-v", domain.HandleVideoOutput, "grid", domain.HandleVideoInput), true},
		{"video into spectrum", edge("in-video", domain.HandleVideoOutput, "spectrum", domain.HandleVideoInput), true},
		{"audio chain to trim", edge("in-audio", domain.HandleAudioOutput, "trim-a", domain.HandleAudioInput), true},
		{"audio to inspector", edge("conv-a", domain.HandleAudioOutput, "info-a", domain.HandleAudioInput), true},
		{"trim params to convert", edge("trim-v", domain.HandleDataOutput, "conv-v", domain.HandleDataInput), true},
		{"data ports unrestricted", edge("view", domain.HandleDataOutput, "in-video", domain.HandleDataInput), true},
		{"reference into vmaf", edge("in-video", domain.HandleVideoOutput, "vmaf", domain.HandleReferenceInput), true},
		{"test into vmaf", edge("conv-v", domain.HandleVideoOutput, "vmaf", domain.HandleTestInput), true},
		{"legacy audio over video port", edge("in-audio", domain.HandleVideoOutput, "spectrum", domain.HandleAudioInput), true},

		// Отказы таблицы совместимости
		{"audio source into video input", edge("in-audio", domain.HandleVideoOutput, "view", domain.HandleVideoInput), false},
		{"video source into audio input", edge("in-video", domain.HandleVideoOutput, "trim-a", domain.HandleAudioInput), false},
		{"video source on audio output", edge("in-video", domain.HandleAudioOutput, "trim-a", domain.HandleAudioInput), false},
		{"terminal as source", edge("view", domain.HandleVideoOutput, "grid", domain.HandleVideoInput), false},
		{"vmaf reference from audio", edge("in-audio", domain.HandleVideoOutput, "vmaf", domain.HandleReferenceInput), false},
		{"reference into non-comparison", edge("in-video", domain.HandleVideoOutput, "view", domain.HandleReferenceInput), false},
		{"sequence as source", edge("seq", domain.HandleVideoOutput, "view", domain.HandleVideoInput), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsValidConnection(tt.e, nodes); got != tt.want {
				t.Errorf("IsValidConnection(%s->%s) = %v, want %v",
					tt.e.SourceHandle, tt.e.TargetHandle, got, tt.want)
			}
		})
	}
}

func TestIsValidConnection_MissingNode(t *testing.T) {
	v := NewValidator(nil)
	nodes := testNodes()

	e := edge("no-such-node", domain.HandleVideoOutput, "view", domain.HandleVideoInput)
	if v.IsValidConnection(e, nodes) {
		t.Error("connection with missing source should be rejected")
	}

	e = edge("in-video", domain.HandleVideoOutput, "ghost", domain.HandleVideoInput)
	if v.IsValidConnection(e, nodes) {
		t.Error("connection with missing target should be rejected")
	}
}

func TestIsValidConnection_UnknownKind(t *testing.T) {
	v := NewValidator(nil)
	nodes := []domain.Node{
		{ID: "a", Kind: domain.NodeKind("mystery")},
		{ID: "b", Kind: domain.KindViewVideo},
	}

	e := edge("a", domain.HandleVideoOutput, "b", domain.HandleVideoInput)
	if v.IsValidConnection(e, nodes) {
		t.Error("connection from unknown kind should be rejected")
	}
}

// Лояльность к отсутствующим тегам: редактор исторически не всегда
// присылает handle, такие соединения разрешены с warning'ом.
func TestIsValidConnection_MissingHandles(t *testing.T) {
	v := NewValidator(nil)
	nodes := testNodes()

	tests := []domain.Edge{
		edge("in-video", "", "view", domain.HandleVideoInput),
		edge("in-video", domain.HandleVideoOutput, "view", ""),
		edge("in-video", "", "view", ""),
		// Лояльность срабатывает даже для пары, которую таблица отвергла бы
		edge("in-audio", "", "view", ""),
	}

	for _, e := range tests {
		if !v.IsValidConnection(e, nodes) {
			t.Errorf("connection without handles %s->%s should be accepted", e.Source, e.Target)
		}
	}
}

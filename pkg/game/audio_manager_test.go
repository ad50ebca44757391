package game

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/decker502/pomburst/pkg/config"
)

func TestSynthesizePop(t *testing.T) {
	data := SynthesizePop(440, AudioSampleRate)

	wantSamples := int(popDuration * AudioSampleRate)
	if len(data) != wantSamples*4 {
		t.Fatalf("expected %d bytes of 16-bit stereo, got %d", wantSamples*4, len(data))
	}

	peak := func(from, to int) float64 {
		max := 0.0
		for i := from; i < to; i++ {
			v := int16(binary.LittleEndian.Uint16(data[i*4:]))
			max = math.Max(max, math.Abs(float64(v)))
			if r := int16(binary.LittleEndian.Uint16(data[i*4+2:])); r != v {
				t.Fatalf("sample %d: channels differ", i)
			}
		}
		return max
	}

	head := peak(0, wantSamples/4)
	tail := peak(wantSamples*3/4, wantSamples)
	if head == 0 || tail >= head {
		t.Errorf("expected decaying envelope, head peak %v tail peak %v", head, tail)
	}
}

func TestPopFrequency(t *testing.T) {
	if f := PopFrequency(0); f != 440 {
		t.Errorf("expected 440 Hz for voice 0, got %v", f)
	}
	// 六个序号升高一个八度
	if f := PopFrequency(6); math.Abs(f-880) > 1e-9 {
		t.Errorf("expected 880 Hz for voice 6, got %v", f)
	}
}

func TestAudioManager_DisabledAudio(t *testing.T) {
	rm := NewResourceManager(nil, testManifest(false), config.VariantDesktop)
	am := NewAudioManager(rm, "missing.ogg", 3)

	if am.PlayPop(1) {
		t.Error("PlayPop should fail without an audio context")
	}

	am.SetVolume(2)
	if am.volume != 1 {
		t.Errorf("volume should be clamped to 1, got %v", am.volume)
	}
	am.SetMuted(true)
	if !am.IsMuted() {
		t.Error("expected muted")
	}
}

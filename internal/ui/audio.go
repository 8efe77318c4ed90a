package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundInvalid
	SoundGameEnd
	SoundHint
)

const sampleRate = 44100

// envelope shapes a sample's amplitude over progress in [0,1].
type envelope func(t, progress float64) float64

func percussive(t, _ float64) float64 { return math.Exp(-t * 30) }

func attackDecay(_, progress float64) float64 {
	if progress < 0.1 {
		return progress / 0.1
	}
	return 1.0 - (progress-0.1)/0.9
}

func linearDecay(_, progress float64) float64 { return 1.0 - progress }

// AudioManager plays procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: enabled,
		volume:  0.5,
	}

	am.sounds[SoundMove] = synth([]float64{440}, 0.08, 0.3, percussive)
	am.sounds[SoundCapture] = synth([]float64{330}, 0.12, 0.5, percussive)
	am.sounds[SoundCheck] = synth([]float64{880}, 0.15, 0.4, attackDecay)
	am.sounds[SoundCastle] = concat(
		synth([]float64{400}, 0.06, 0.3, percussive),
		silence(0.05),
		synth([]float64{440}, 0.06, 0.24, percussive),
	)
	am.sounds[SoundInvalid] = synth([]float64{150, 300}, 0.1, 0.15, linearDecay)
	am.sounds[SoundGameEnd] = synth([]float64{261.63, 329.63, 392.00}, 0.4, 0.5, attackDecay)
	am.sounds[SoundHint] = synth([]float64{660, 990}, 0.12, 0.25, attackDecay)
	return am
}

// synth mixes sine waves at freqs into 16-bit stereo PCM.
func synth(freqs []float64, duration, amplitude float64, env envelope) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)

	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		var wave float64
		for _, f := range freqs {
			wave += math.Sin(2 * math.Pi * f * t)
		}
		sample := wave / float64(len(freqs)) * env(t, t/duration) * amplitude

		val := int16(sample * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

func silence(duration float64) []byte {
	return make([]byte, int(sampleRate*duration)*4)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}

	// A player per call lets sounds overlap.
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}

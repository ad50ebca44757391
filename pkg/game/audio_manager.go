package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// popDuration 合成音效时长（秒）
const popDuration = 0.09

// AudioManager 音频管理器
// 职责：
//   - 生成时播放 "pop" 音效
//   - 有音效文件时使用文件，否则按角色序号合成不同音高的短音
//   - 静音开关
type AudioManager struct {
	resourceManager *ResourceManager
	context         *audio.Context

	filePop    *audio.Player   // 来自素材清单的音效文件
	synthPops  [][]byte        // 每个角色序号的合成 PCM
	players    []*audio.Player // 正在播放的合成音效
	maxPlayers int

	volume float64
	muted  bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（提供音频上下文和音效文件加载）
//   - soundPath: 音效文件路径，为空时只使用合成音效
//   - voices: 合成音效的音高数量（通常为角色数）
func NewAudioManager(rm *ResourceManager, soundPath string, voices int) *AudioManager {
	am := &AudioManager{
		resourceManager: rm,
		context:         rm.AudioContext(),
		maxPlayers:      8,
		volume:          0.5,
	}
	if am.context == nil {
		return am
	}

	if soundPath != "" {
		player, err := rm.LoadSoundEffect(soundPath)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to load pop sound %s: %v", soundPath, err)
		} else {
			am.filePop = player
		}
	}

	if voices < 1 {
		voices = 1
	}
	am.synthPops = make([][]byte, voices)
	for i := range am.synthPops {
		am.synthPops[i] = SynthesizePop(PopFrequency(i), AudioSampleRate)
	}

	log.Printf("[AudioManager] Initialized (file sound: %v, voices: %d)", am.filePop != nil, voices)
	return am
}

// PlayPop 播放一次生成音效
//
// 参数：
//   - voice: 角色序号，决定合成音效的音高；负数使用序号 0
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayPop(voice int) bool {
	if am.context == nil || am.muted {
		return false
	}

	if am.filePop != nil {
		am.filePop.SetVolume(am.volume)
		if err := am.filePop.Rewind(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to rewind pop sound: %v", err)
		}
		am.filePop.Play()
		return true
	}

	if len(am.synthPops) == 0 {
		return false
	}
	if voice < 0 {
		voice = 0
	}

	// 回收播放完的播放器，限制同时发声数
	alive := am.players[:0]
	for _, p := range am.players {
		if p.IsPlaying() {
			alive = append(alive, p)
		} else {
			p.Close()
		}
	}
	am.players = alive
	if len(am.players) >= am.maxPlayers {
		return false
	}

	player := am.context.NewPlayerFromBytes(am.synthPops[voice%len(am.synthPops)])
	player.SetVolume(am.volume)
	player.Play()
	am.players = append(am.players, player)
	return true
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	log.Printf("[AudioManager] Muted: %v", muted)
}

// IsMuted 返回是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}

// SetVolume 设置音量 (0.0 ~ 1.0)
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// PopFrequency 返回角色序号对应的音高，每个序号升高两个半音
func PopFrequency(voice int) float64 {
	return 440 * math.Pow(2, float64(2*voice)/12)
}

// SynthesizePop 合成一个向下滑音、指数衰减的短音
// 输出 16 位小端双声道 PCM，可直接用于 audio.Context.NewPlayerFromBytes
func SynthesizePop(freq float64, sampleRate int) []byte {
	n := int(popDuration * float64(sampleRate))
	buf := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		// 频率从 freq 滑到 freq/2
		f := freq * (1 - 0.5*t)
		phase += 2 * math.Pi * f / float64(sampleRate)
		env := math.Exp(-5 * t)
		v := int16(math.Sin(phase) * env * 0.6 * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

package main

import (
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	popSampleRate = beep.SampleRate(44100)
	popDuration   = 60 * time.Millisecond
)

// popPlayer 终端模式的生成音效
// 音频初始化失败不影响运行，只是没有声音
type popPlayer struct {
	ready bool
	muted bool
}

func newPopPlayer(muted bool) *popPlayer {
	p := &popPlayer{muted: muted}
	if err := speaker.Init(popSampleRate, popSampleRate.N(time.Second/10)); err != nil {
		log.Printf("[pomterm] Warning: audio initialization failed: %v", err)
		return p
	}
	p.ready = true
	return p
}

// popFrequency 角色 voice 的音高：以 A4 为基准，每个角色升一个全音
func popFrequency(voice int) float64 {
	return 440 * math.Pow(2, float64(2*voice)/12)
}

// Play 播放角色对应的短音
func (p *popPlayer) Play(voice int) {
	if !p.ready || p.muted {
		return
	}

	sine, err := generators.SineTone(popSampleRate, popFrequency(voice))
	if err != nil {
		log.Printf("[pomterm] Warning: failed to create tone: %v", err)
		return
	}

	tone := &effects.Volume{
		Streamer: beep.Take(popSampleRate.N(popDuration), sine),
		Base:     2,
		Volume:   -2,
	}
	speaker.Play(tone)
}

// ToggleMute 切换静音
func (p *popPlayer) ToggleMute() bool {
	p.muted = !p.muted
	return p.muted
}

// Close 释放音频设备
func (p *popPlayer) Close() {
	if p.ready {
		speaker.Close()
	}
}

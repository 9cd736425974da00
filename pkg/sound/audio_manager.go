// Package sound 合成并播放游戏音效与背景音乐
//
// 所有声音在启动时由正弦音符合成为 PCM 数据，不依赖音频文件。
// 该包依赖 ebiten/audio，只由图形外壳引用，模拟核心与无头工具不链接它。
package sound

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/game"
	"github.com/decker502/towerdefense/pkg/simulation"
)

// SampleRate 音频上下文采样率
const SampleRate = 44100

// 音效ID
const (
	Coin   = "coin"   // 击杀得金币
	Build  = "build"  // 建造/升级
	Damage = "damage" // 敌人逃脱
	Wave   = "wave"   // 波次清空
	Wrong  = "wrong"  // 操作失败
)

// musicGain 背景音乐相对音效的音量
const musicGain = 0.5

// tone 一个音符：频率（Hz）与时长（秒）
type tone struct {
	freq     float64
	duration float64
}

// soundTones 每个音效由若干音符依次组成，频率为 0 表示静音
var soundTones = map[string][]tone{
	Coin:   {{988, 0.06}, {1319, 0.12}},
	Build:  {{392, 0.05}, {523, 0.05}, {659, 0.08}},
	Damage: {{196, 0.08}, {147, 0.16}},
	Wave:   {{523, 0.1}, {659, 0.1}, {784, 0.1}, {1047, 0.2}},
	Wrong:  {{220, 0.08}, {0, 0.04}, {220, 0.12}},
}

// musicTones 循环播放的背景旋律（C 大调琶音，两小节）
var musicTones = []tone{
	{262, 0.2}, {330, 0.2}, {392, 0.2}, {523, 0.2},
	{392, 0.2}, {330, 0.2}, {262, 0.2}, {0, 0.2},
	{220, 0.2}, {262, 0.2}, {330, 0.2}, {440, 0.2},
	{349, 0.2}, {294, 0.2}, {247, 0.2}, {0, 0.2},
}

// MusicState 背景音乐状态
type MusicState int

const (
	MusicStopped MusicState = iota
	MusicPlaying
	MusicPaused
)

// AudioManager 音频管理器
// 音量和开关从 SettingsManager 读取；音效关闭时背景音乐同样静音
type AudioManager struct {
	context         *audio.Context           // 可为 nil（无声模式）
	settingsManager *game.SettingsManager    // 可为 nil，使用默认音量
	soundPlayers    map[string]*audio.Player // 音效ID -> 播放器
	musicPlayer     *audio.Player            // 无限循环的背景音乐，可为 nil
	musicState      MusicState
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，为 nil 时所有播放调用静默返回
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
	if ctx == nil {
		return am
	}

	for id, tones := range soundTones {
		am.soundPlayers[id] = ctx.NewPlayerFromBytes(synthesize(tones, ctx.SampleRate(), 0.3))
	}

	pcm := synthesize(musicTones, ctx.SampleRate(), 0.15)
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := ctx.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create music player: %v", err)
	} else {
		am.musicPlayer = player
	}

	log.Printf("[AudioManager] Synthesized %d sounds and %.1fs of music at %d Hz",
		len(am.soundPlayers), float64(len(pcm))/4/float64(ctx.SampleRate()), ctx.SampleRate())
	return am
}

// PlaySound 播放音效，返回是否实际播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.enabled() {
		return false
	}

	player, ok := am.soundPlayers[soundID]
	if !ok {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 从头开始循环播放背景音乐
func (am *AudioManager) PlayMusic() {
	am.musicState = MusicPlaying
	if am.musicPlayer != nil {
		if err := am.musicPlayer.Rewind(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to rewind music: %v", err)
		}
	}
	am.syncMusic()
}

// PauseMusic 暂停背景音乐，只对正在播放的音乐生效
func (am *AudioManager) PauseMusic() {
	if am.musicState != MusicPlaying {
		return
	}
	am.musicState = MusicPaused
	am.syncMusic()
}

// ResumeMusic 从暂停处继续播放背景音乐
func (am *AudioManager) ResumeMusic() {
	if am.musicState != MusicPaused {
		return
	}
	am.musicState = MusicPlaying
	am.syncMusic()
}

// StopMusic 停止背景音乐，下次 PlayMusic 从头开始
func (am *AudioManager) StopMusic() {
	am.musicState = MusicStopped
	am.syncMusic()
}

// MusicState 返回背景音乐的逻辑状态（与音效开关无关）
func (am *AudioManager) MusicState() MusicState {
	return am.musicState
}

// SetSoundEnabled 开关所有声音，背景音乐随之暂停或继续
func (am *AudioManager) SetSoundEnabled(enabled bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundEnabled(enabled)
	}
	am.syncMusic()
}

// SetSoundVolume 设置音量，立即应用到所有播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.getSoundVolume())
	}
	am.syncMusic()
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// Subscribe 将模拟事件映射为音效
func (am *AudioManager) Subscribe(sim *simulation.Simulation) {
	sim.On(event.EnemyDeath, func(event.Event) { am.PlaySound(Coin) })
	sim.On(event.EnemyEscape, func(event.Event) { am.PlaySound(Damage) })
	sim.On(event.WaveCleared, func(event.Event) { am.PlaySound(Wave) })
}

// syncMusic 让播放器与逻辑状态、音效开关保持一致
func (am *AudioManager) syncMusic() {
	if am.musicPlayer == nil {
		return
	}
	am.musicPlayer.SetVolume(am.getSoundVolume() * musicGain)

	shouldPlay := am.musicState == MusicPlaying && am.enabled()
	switch {
	case shouldPlay && !am.musicPlayer.IsPlaying():
		am.musicPlayer.Play()
	case !shouldPlay && am.musicPlayer.IsPlaying():
		am.musicPlayer.Pause()
	}
	if am.musicState == MusicStopped {
		if err := am.musicPlayer.Rewind(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to rewind music: %v", err)
		}
	}
}

func (am *AudioManager) enabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().SoundEnabled
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// synthesize 生成 16 位小端立体声 PCM
// 每个音符使用正弦波，并线性衰减避免爆音；amplitude 为峰值（0 ~ 1）
func synthesize(tones []tone, sampleRate int, amplitude float64) []byte {
	total := 0
	for _, t := range tones {
		total += int(t.duration * float64(sampleRate))
	}

	buf := make([]byte, 0, total*4)
	var frame [4]byte
	for _, t := range tones {
		n := int(t.duration * float64(sampleRate))
		for i := 0; i < n; i++ {
			var v float64
			if t.freq > 0 {
				envelope := 1 - float64(i)/float64(n)
				v = amplitude * envelope * math.Sin(2*math.Pi*t.freq*float64(i)/float64(sampleRate))
			}
			sample := uint16(int16(v * math.MaxInt16))
			binary.LittleEndian.PutUint16(frame[0:], sample)
			binary.LittleEndian.PutUint16(frame[2:], sample)
			buf = append(buf, frame[:]...)
		}
	}
	return buf
}

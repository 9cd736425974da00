package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// inputState 存储当前帧的指针输入状态
// 统一处理鼠标和触摸输入
type inputState struct {
	// JustPressed 本帧刚发生主点击（左键或触摸）
	JustPressed bool
	// JustPressedSecondary 本帧刚发生次点击（右键或双指触摸）
	JustPressedSecondary bool
	// X, Y 指针位置
	X, Y int
	// IsTouching 是否有活动的触摸
	IsTouching bool
}

// readInput 获取当前帧的输入状态，优先检测触摸
func readInput() inputState {
	state := inputState{}

	// 首先检查触摸输入（移动设备）
	justTouched := inpututil.AppendJustPressedTouchIDs(nil)
	touches := ebiten.AppendTouchIDs(nil)
	if len(justTouched) > 0 {
		state.X, state.Y = ebiten.TouchPosition(justTouched[0])
		state.IsTouching = true
		// 第二根手指落下视为次点击
		if len(touches) >= 2 {
			state.JustPressedSecondary = true
		} else {
			state.JustPressed = true
		}
		return state
	}
	if len(touches) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touches[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	state.X, state.Y = ebiten.CursorPosition()
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.JustPressedSecondary = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	return state
}

// anyKeyJustPressed 检查给定按键中是否有任意一个本帧刚按下
func anyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
	"github.com/Questionxble/2dgameproject-sub002/shard"
)

// InputSource supplies the logical actions of the current frame.
type InputSource interface {
	Frame() shard.Input
}

type InputSystem struct {
	poll  func() shard.InputFrame
	frame shard.InputFrame
}

// NewInputSystem polls the keyboard, mouse and first gamepad. A non-nil poll
// replaces the device polling.
func NewInputSystem(poll func() shard.InputFrame) *InputSystem {
	if poll == nil {
		poll = PollDevices
	}
	return &InputSystem{poll: poll}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	i.frame = i.poll()
}

// Frame returns the snapshot taken by the last Update.
func (i *InputSystem) Frame() shard.Input {
	if i == nil {
		return &shard.InputFrame{}
	}
	return &i.frame
}

type binding struct {
	keys    []ebiten.Key
	mouse   []ebiten.MouseButton
	buttons []ebiten.StandardGamepadButton
}

var bindings = map[shard.Action]binding{
	shard.ActionPrimary: {
		keys:    []ebiten.Key{ebiten.KeyJ},
		mouse:   []ebiten.MouseButton{ebiten.MouseButtonLeft},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
	},
	shard.ActionSecondary: {
		keys:    []ebiten.Key{ebiten.KeyK},
		mouse:   []ebiten.MouseButton{ebiten.MouseButtonRight},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight},
	},
	shard.ActionLeft: {
		keys:    []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
	},
	shard.ActionRight: {
		keys:    []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
	},
	shard.ActionUp: {
		keys:    []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
	},
	shard.ActionDown: {
		keys:    []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
	},
	shard.ActionModifier: {
		keys:    []ebiten.Key{ebiten.KeyShiftLeft},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontBottomLeft},
	},
	shard.ActionJump: {
		keys:    []ebiten.Key{ebiten.KeySpace},
		buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
	},
}

// PollDevices builds an input snapshot from ebiten's device state.
func PollDevices() shard.InputFrame {
	var f shard.InputFrame
	gamepads := ebiten.GamepadIDs()
	for action, b := range bindings {
		held, pressed, released := false, false, false
		for _, k := range b.keys {
			held = held || ebiten.IsKeyPressed(k)
			pressed = pressed || inpututil.IsKeyJustPressed(k)
			released = released || inpututil.IsKeyJustReleased(k)
		}
		for _, m := range b.mouse {
			held = held || ebiten.IsMouseButtonPressed(m)
			pressed = pressed || inpututil.IsMouseButtonJustPressed(m)
			released = released || inpututil.IsMouseButtonJustReleased(m)
		}
		if len(gamepads) > 0 {
			id := gamepads[0]
			for _, btn := range b.buttons {
				held = held || ebiten.IsStandardGamepadButtonPressed(id, btn)
				pressed = pressed || inpututil.IsStandardGamepadButtonJustPressed(id, btn)
				released = released || inpututil.IsStandardGamepadButtonJustReleased(id, btn)
			}
		}
		if held {
			f.Hold(action)
		}
		if pressed {
			f.Press(action)
		}
		if released && !held {
			f.Release(action)
		}
	}
	return f
}

// movementInput converts logical actions into movement intent.
func movementInput(in shard.Input) component.Input {
	var out component.Input
	if in == nil {
		return out
	}
	if in.Held(shard.ActionLeft) {
		out.MoveX--
	}
	if in.Held(shard.ActionRight) {
		out.MoveX++
	}
	if in.Held(shard.ActionUp) {
		out.MoveY--
	}
	if in.Held(shard.ActionDown) {
		out.MoveY++
	}
	out.Jump = in.Held(shard.ActionJump)
	out.JumpPressed = in.Pressed(shard.ActionJump)
	return out
}

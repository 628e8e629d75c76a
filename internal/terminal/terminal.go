package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"keychain-designer/internal/commands"
	"keychain-designer/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of console lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 220)
	termErrorColor  = rl.NewColor(255, 120, 120, 255)
)

// Terminal is the console at the bottom of the preview window. It is shown/hidden with ESC.
// When open, it captures the keyboard and draws the recent console history above the input bar.
// Lines starting with "cmd " run through the command registry; anything else gets a hint.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	lastErr  string  // shown above the history until the next successful command
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
}

// New returns a new Terminal that logs lines and runs "cmd ..." through reg. It starts closed.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing the keyboard.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetOpen shows or hides the terminal.
func (t *Terminal) SetOpen(open bool) {
	t.open = open
}

// SetFont sets the font used to draw the terminal bar (e.g. same as UI). Zero texture ID = use raylib default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Update handles ESC (toggle open/closed), and when open: typing, paste, backspace, enter.
// Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Submit echoes line into the history and runs it. Errors are logged as console lines and kept
// for the error banner until the next successful command.
func (t *Terminal) Submit(line string) {
	t.log.Log(prompt + line)
	handled, err := t.reg.Run(line)
	switch {
	case !handled:
		t.log.Log("unknown input, try: cmd help")
	case err != nil:
		t.lastErr = err.Error()
		t.log.Log(t.lastErr)
		t.log.Warn("command failed", "line", line, "error", err)
	default:
		t.lastErr = ""
	}
}

// Draw draws the input bar at the bottom when open, the recent console lines above it and the
// last command error above the history. Uses GetScreenWidth/GetScreenHeight so the bar follows
// window resizes.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	barY := int(rl.GetScreenHeight()) - BarHeight

	// History area above the bar: last maxLinesOnScreen lines
	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	lines := t.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		t.drawText(line, padding, chatY+(i-start)*lineHeight+padding, rl.LightGray)
	}
	if t.lastErr != "" && chatY >= lineHeight {
		t.drawText(t.lastErr, padding, chatY-lineHeight, termErrorColor)
	}

	// Input bar
	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	t.drawText(prompt+t.inputBuf+"|", padding, barY+padding, rl.White)
}

func (t *Terminal) drawText(text string, x, y int, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, text, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), int32(fontSize), c)
}

package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the preview window. Zero Width or Height uses the primary monitor size.
type Window struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int
	// OnClose runs after the last frame while the GL context still exists (GPU cleanup).
	OnClose   func()
}

// Run opens the window and runs the main loop. Each frame it calls update (input), then
// draw between BeginDrawing and EndDrawing. The window is resizable and multisampled.
// ESC toggles the console, so the window only closes through its close button.
// Run returns after the window closes; call only from the main goroutine.
func Run(win Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	w, h := int32(win.Width), int32(win.Height)
	if w <= 0 || h <= 0 {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	title := win.Title
	if title == "" {
		title = "keychain designer"
	}
	rl.InitWindow(w, h, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	fps := int32(win.TargetFPS)
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	if win.OnClose != nil {
		win.OnClose()
	}
}

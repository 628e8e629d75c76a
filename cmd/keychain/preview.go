package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"keychain-designer/internal/debug"
	"keychain-designer/internal/fonts"
	"keychain-designer/internal/graphics"
	"keychain-designer/internal/scene"
	"keychain-designer/internal/snapshot"
	"keychain-designer/internal/terminal"
	"keychain-designer/internal/ui"
)

// uiFontFamily is loaded for the overlays when present in the font dirs.
const uiFontFamily = "Inter"

// runPreview opens the window and blocks until it is closed. Keys while the console is closed:
// H toggles hole positioning, R resets the camera, A toggles auto-rotate.
func runPreview(a *app) {
	scn := scene.New(a.log, a.fonts)
	scn.AutoRotate = a.prefs.AutoRotate
	a.session.Subscribe(scn.SetModel)
	scn.SetModel(a.session.Current())

	term := terminal.New(a.log, a.reg)
	term.SetOpen(true)
	engine := ui.New()
	if a.prefs.StylesheetPath != "" {
		if err := engine.LoadStyles(a.prefs.StylesheetPath); err != nil {
			a.log.Warn("keeping default stylesheet", "path", a.prefs.StylesheetPath, "error", err)
		}
	}
	panel := ui.NewPanel()
	pad := ui.NewHolePad(a.session.Positioner())
	dbg := debug.New()
	dbg.ShowFPS = a.prefs.ShowFPS
	dbg.ShowMemAlloc = a.prefs.ShowFPS
	dbg.ShowTexture = a.prefs.ShowFPS

	fontsLoaded := false
	var nodes []*ui.Node
	var model *snapshot.Model

	update := func() {
		if !fontsLoaded {
			// GL context exists from the first frame on
			fontsLoaded = true
			dirs := a.prefs.FontDirs
			if len(dirs) == 0 {
				dirs = fonts.DefaultDirs()
			}
			if path, err := fonts.FindFont(dirs, uiFontFamily); err == nil {
				if err := engine.LoadFont(path); err == nil {
					term.SetFont(engine.Font())
					dbg.SetFont(engine.Font())
				}
			}
		}
		a.session.Pump()
		model = a.session.Current()

		term.Update()
		if !term.IsOpen() {
			switch {
			case rl.IsKeyPressed(rl.KeyH):
				if a.session.Positioner().TogglePositioning() {
					a.log.Log("hole positioning on: drag on the pad")
				} else {
					a.log.Log("hole positioning off")
				}
			case rl.IsKeyPressed(rl.KeyR):
				scn.ResetView()
			case rl.IsKeyPressed(rl.KeyA):
				scn.AutoRotate = !scn.AutoRotate
			}
		}
		captured := pad.Update(model)
		scn.Update(captured)
		nodes = panel.AppendNodes(nodes[:0], true, model)
	}
	draw := func() {
		scn.Draw()
		engine.SetNodes(nodes)
		engine.Draw()
		pad.Draw(model, engine.Font())
		term.Draw()
		dbg.Draw(model)
	}

	graphics.Run(graphics.Window{
		Title:   "Keychain Designer",
		Width:   a.prefs.WindowWidth,
		Height:  a.prefs.WindowHeight,
		OnClose: scn.Unload,
	}, update, draw)
}

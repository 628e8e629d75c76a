package main

import (
	"flag"
	"fmt"
	"os"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/commands"
	"keychain-designer/internal/compositor"
	"keychain-designer/internal/config"
	"keychain-designer/internal/designer"
	"keychain-designer/internal/download"
	"keychain-designer/internal/fonts"
	"keychain-designer/internal/googlefonts"
	"keychain-designer/internal/logger"
	"keychain-designer/internal/texture"
)

// app is everything the batch and preview modes share.
type app struct {
	prefs   config.Prefs
	log     *logger.Logger
	session *designer.Session
	loader  *texture.Loader
	reg     *commands.Registry
	fonts   *fonts.Resolver
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "preferences file (YAML)")
	envPath := flag.String("env", ".env", "environment file loaded before the preferences")
	presetPath := flag.String("preset", "", "design preset to start from (YAML)")
	imageSrc := flag.String("image", "", "image file or http(s) URL")
	scriptPath := flag.String("script", "", "console commands to run, one per line")
	exportPath := flag.String("export", "", "write the final model as JSON")
	preview := flag.Bool("preview", false, "open the live preview window")
	flag.Parse()

	if err := run(*configPath, *envPath, *presetPath, *imageSrc, *scriptPath, *exportPath, *preview); err != nil {
		fmt.Fprintln(os.Stderr, "keychain:", err)
		os.Exit(1)
	}
}

func run(configPath, envPath, presetPath, imageSrc, scriptPath, exportPath string, preview bool) error {
	if err := config.LoadEnv(envPath); err != nil {
		return err
	}
	prefs, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a, err := newApp(prefs)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if err := a.start(presetPath, imageSrc, scriptPath); err != nil {
		return err
	}
	if preview {
		runPreview(a)
	} else {
		// batch: let pending decodes land before reading the model
		a.loader.Wait()
		a.session.Pump()
		for _, line := range a.log.Lines() {
			fmt.Println(line)
		}
	}
	if exportPath != "" {
		if err := commands.ExportFile(exportPath, a.session.Current()); err != nil {
			return err
		}
		a.log.Info("model exported", "path", exportPath, "revision", a.session.Current().Revision)
	}
	return nil
}

func newApp(prefs config.Prefs) (*app, error) {
	log, err := logger.New(prefs.LogMode, prefs.LogFile)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	cat := catalog.Default()
	if prefs.CatalogPath != "" {
		if cat, err = catalog.Load(prefs.CatalogPath); err != nil {
			return nil, err
		}
	}

	loader := texture.NewLoader(log, prefs.MaxTextureSize, 8)
	s := designer.New(designer.Options{
		Catalog: cat,
		Logger:  log,
		Decoder: loader,
		Layout:  compositor.ParseLayout(prefs.FaceLayout),
	})
	if prefs.DefaultSize != "" {
		if err := s.SelectSize(prefs.DefaultSize); err != nil {
			log.Warn("ignoring default size", "size", prefs.DefaultSize, "error", err)
		}
	}
	if prefs.DefaultMaterial != "" {
		if err := s.SelectMaterial(prefs.DefaultMaterial); err != nil {
			log.Warn("ignoring default material", "material", prefs.DefaultMaterial, "error", err)
		}
	}

	dl := download.New()
	var fetch fonts.Fetcher
	if prefs.FetchFonts {
		gf := googlefonts.New()
		gf.Download = dl
		fetch = gf
	}
	reg := commands.NewRegistry()
	commands.RegisterKeychain(reg, s, log, dl)

	log.Info("designer ready",
		"layout", compositor.ParseLayout(prefs.FaceLayout).String(),
		"max_texture", prefs.MaxTextureSize,
		"fetch_fonts", prefs.FetchFonts)
	return &app{
		prefs:   prefs,
		log:     log,
		session: s,
		loader:  loader,
		reg:     reg,
		fonts:   fonts.NewResolver(log, prefs.FontDirs, fetch),
	}, nil
}

// start applies the preset, the image and the script, in that order.
func (a *app) start(presetPath, imageSrc, scriptPath string) error {
	if presetPath != "" {
		pr, err := designer.LoadPreset(presetPath)
		if err != nil {
			return err
		}
		if err := a.session.ApplyPreset(pr); err != nil {
			return err
		}
	}
	if imageSrc != "" {
		img, err := commands.OpenImage(imageSrc, download.New())
		if err != nil {
			return err
		}
		a.session.SetImage(img)
	}
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := a.reg.RunScript(f)
		a.log.Info("script finished", "path", scriptPath, "commands", n)
		if err != nil {
			return err
		}
	}
	return nil
}

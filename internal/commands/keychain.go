package commands

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"keychain-designer/internal/colormode"
	"keychain-designer/internal/designer"
	"keychain-designer/internal/download"
	"keychain-designer/internal/logger"
	"keychain-designer/internal/resource"
	"keychain-designer/internal/snapshot"
)

// Fetcher downloads remote images for the image command. download.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, name string, err error)
}

// RegisterKeychain adds the design commands bound to s. Output lines go to log's console history.
func RegisterKeychain(r *Registry, s *designer.Session, log *logger.Logger, fetch Fetcher) {
	if log == nil {
		log = logger.Nop()
	}
	say := func(format string, args ...interface{}) {
		log.Log(fmt.Sprintf(format, args...))
	}

	r.Register("shape", "shape <id>", nil, func(args []string) error {
		if err := need(args, 1, "shape"); err != nil {
			return err
		}
		if err := s.SelectShape(args[0]); err != nil {
			return err
		}
		say("shape: %s (silhouette only, envelope unchanged)", s.Store().Shape())
		return nil
	})

	r.Register("size", "size <mini|small|medium|large|jumbo>", nil, func(args []string) error {
		if err := need(args, 1, "size"); err != nil {
			return err
		}
		if err := s.SelectSize(args[0]); err != nil {
			return err
		}
		size := s.Store().Size()
		say("size: %s %gx%g cm", size.Name, size.Width, size.Height)
		return nil
	})

	r.Register("thickness", "thickness <value|thin|medium|thick>", nil, func(args []string) error {
		if err := need(args, 1, "thickness"); err != nil {
			return err
		}
		if err := s.SelectThickness(args[0]); err != nil {
			return err
		}
		say("thickness: %g", s.Store().Thickness())
		return nil
	})

	r.Register("material", "material <id>", nil, func(args []string) error {
		if err := need(args, 1, "material"); err != nil {
			return err
		}
		if err := s.SelectMaterial(args[0]); err != nil {
			return err
		}
		m := s.Store().Material()
		say("material: %s %s - %s", m.Name, m.Price, m.Description)
		return nil
	})

	r.Register("color", "color <original|#hex|rainbow|sunset|aurora>", nil, func(args []string) error {
		if err := need(args, 1, "color"); err != nil {
			return err
		}
		if err := s.SelectColor(args[0]); err != nil {
			return err
		}
		c := s.Store().Color()
		say("color: %s (%s)", c, c.Description())
		return nil
	})

	r.Register("image", "image <path|url>", nil, func(args []string) error {
		if err := need(args, 1, "image"); err != nil {
			return err
		}
		img, err := OpenImage(args[0], fetch)
		if err != nil {
			return err
		}
		s.SetImage(img)
		say("image: %s (%d bytes), decoding", img.Name(), img.Size())
		return nil
	})

	r.Register("clearimage", "clearimage", nil, func(args []string) error {
		s.ClearImage()
		say("image cleared")
		return nil
	})

	textFS := NewFlagSet("text")
	textOff := textFS.Bool("off", false, "disable the overlay")
	textSize := textFS.Float64("size", 0, "font size 12-48")
	textFont := textFS.String("font", "", "font family (use _ for spaces)")
	textColor := textFS.String("color", "", "text color hex")
	textX := textFS.Float64("x", math.NaN(), "horizontal position -1..1")
	textY := textFS.Float64("y", math.NaN(), "vertical position -1..1")
	textRot := textFS.Float64("rotation", math.NaN(), "rotation degrees -45..45")
	textPos := textFS.String("pos", "", "position preset (top, center, bottom)")
	r.Register("text", "text [-off] [-size n] [-font f] [-color #hex] [-x n -y n|-pos p] [-rotation deg] <words...>", textFS, func(args []string) error {
		t := s.Store().Text()
		t.Enabled = !*textOff
		if len(args) > 0 {
			t.Text = strings.Join(args, " ")
		}
		if *textSize != 0 {
			t.FontSize = float32(*textSize)
		}
		if *textFont != "" {
			t.FontFamily = strings.ReplaceAll(*textFont, "_", " ")
		}
		if *textColor != "" {
			c, ok := colormode.ParseHex(*textColor)
			if !ok {
				return fmt.Errorf("commands: text color %q", *textColor)
			}
			t.Color = c
		}
		if !math.IsNaN(*textX) {
			t.Position.X = float32(*textX)
		}
		if !math.IsNaN(*textY) {
			t.Position.Y = float32(*textY)
		}
		if !math.IsNaN(*textRot) {
			t.Rotation = float32(*textRot)
		}
		s.Store().SetText(t)
		if *textPos != "" {
			if err := s.TextPosition(*textPos); err != nil {
				return err
			}
		}
		if t.Enabled && s.Store().Image() == nil {
			say("text: no image set, text will show once an image is added")
		}
		got := s.Store().Text()
		say("text: %q enabled=%v size=%g font=%s", got.Text, got.Enabled, got.FontSize, got.FontFamily)
		return nil
	})

	r.Register("hole", "hole <x> <y>", nil, func(args []string) error {
		if err := need(args, 2, "hole"); err != nil {
			return err
		}
		x, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return fmt.Errorf("commands: hole x: %w", err)
		}
		y, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("commands: hole y: %w", err)
		}
		s.MoveHole(float32(x), float32(y))
		h := s.Store().Hole()
		say("hole: (%.2f, %.2f)", h.X, h.Y)
		return nil
	})

	r.Register("quickhole", "quickhole <top center|top left|top right|center|side|reset>", nil, func(args []string) error {
		if err := need(args, 1, "quickhole"); err != nil {
			return err
		}
		if err := s.QuickHole(strings.Join(args, " ")); err != nil {
			return err
		}
		h := s.Store().Hole()
		say("hole: (%.2f, %.2f)", h.X, h.Y)
		return nil
	})

	r.Register("preset", "preset <load|save> <file.yaml>", nil, func(args []string) error {
		if err := need(args, 2, "preset"); err != nil {
			return err
		}
		switch args[0] {
		case "load":
			pr, err := designer.LoadPreset(args[1])
			if err != nil {
				return err
			}
			if err := s.ApplyPreset(pr); err != nil {
				return err
			}
			say("preset loaded: %s", args[1])
		case "save":
			if err := s.SavePreset(args[1]); err != nil {
				return err
			}
			say("preset saved: %s", args[1])
		default:
			return fmt.Errorf("commands: preset: unknown action %q", args[0])
		}
		return nil
	})

	r.Register("export", "export <file.json>", nil, func(args []string) error {
		if err := need(args, 1, "export"); err != nil {
			return err
		}
		if err := ExportFile(args[0], s.Current()); err != nil {
			return err
		}
		say("exported revision %d to %s", s.Current().Revision, args[0])
		return nil
	})

	r.Register("help", "help", nil, func(args []string) error {
		for _, name := range r.Names() {
			say("cmd %s", r.Usage(name))
		}
		return nil
	})
}

// ExportFile writes m as JSON to path, creating the directory if needed.
func ExportFile(path string, m *snapshot.Model) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("commands: export: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("commands: export: %w", err)
	}
	if err := snapshot.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OpenImage reads a local file, or downloads src through fetch when it is an http(s) URL.
func OpenImage(src string, fetch Fetcher) (*resource.Image, error) {
	if !download.IsURL(src) {
		return resource.FromFile(src)
	}
	if fetch == nil {
		return nil, fmt.Errorf("commands: image downloads are disabled")
	}
	data, name, err := fetch.Fetch(context.Background(), src)
	if err != nil {
		return nil, err
	}
	return resource.New(name, data), nil
}

func need(args []string, n int, name string) error {
	if len(args) < n {
		return fmt.Errorf("commands: %s needs %d argument(s)", name, n)
	}
	return nil
}

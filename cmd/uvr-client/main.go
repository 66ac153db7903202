// Command uvr-client opens a window and lets the user walk a box avatar around a lit floor
// with an orbit camera.
//
// Controls: WASD or arrows to move, Space to jump, right or middle drag to orbit,
// scroll to zoom, Esc to quit.
package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/uvr-client/engine"
	"github.com/Carmen-Shannon/uvr-client/engine/character"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/frame"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/mesh"
	"github.com/Carmen-Shannon/uvr-client/engine/window"
	"github.com/Carmen-Shannon/uvr-client/engine/world"
	"github.com/pkg/profile"
)

func main() {
	var (
		width     = flag.Int("width", 1280, "initial window width")
		height    = flag.Int("height", 720, "initial window height")
		title     = flag.String("title", "uvr-client", "window title")
		vsync     = flag.Bool("vsync", true, "wait for vertical blank when presenting")
		noDepth   = flag.Bool("no-depth", false, "disable the depth buffer")
		noSky     = flag.Bool("no-sky", false, "disable the sky gradient pass")
		software  = flag.Bool("software", false, "force a fallback (software) adapter")
		props     = flag.Int("props", engine.DefaultPropCount, "maximum number of scattered props")
		seed      = flag.Uint64("seed", engine.DefaultSeed, "prop scatter seed")
		maxJumps  = flag.Int("max-jumps", character.DefaultMaxJumps, "jumps allowed before landing (1 or 2)")
		tickRate  = flag.Float64("tick-rate", 0, "cap on steps per second (0 = uncapped)")
		stats     = flag.Bool("stats", false, "log frame rate and memory statistics every second")
		profMode  = flag.String("profile", "", "write a pprof profile: cpu or mem")
		workers   = flag.Int("workers", 0, "mesh build workers (0 = one per CPU)")
		cacheSize = flag.Int("compass-cache", 0, "compass meshes kept on the GPU (0 = default)")
		armWidth  = flag.Float64("compass-width", 0, "draw compass arms as quads of this NDC width (0 = lines)")
	)
	flag.Parse()

	switch *profMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		log.Fatalf("unknown -profile mode %q (want cpu or mem)", *profMode)
	}

	presentMode := renderer.PresentModeVSync
	if !*vsync {
		presentMode = renderer.PresentModeUncapped
	}

	eng, err := engine.NewEngine(
		engine.WithWindowOptions(
			window.WithTitle(*title),
			window.WithSize(*width, *height),
		),
		engine.WithContextOptions(
			renderer.WithPresentMode(presentMode),
			renderer.WithDepth(!*noDepth),
			renderer.WithForceSoftwareRenderer(*software),
		),
		engine.WithRendererOptions(
			frame.WithSky(!*noSky),
			frame.WithWorkers(*workers),
			frame.WithCacheSize(*cacheSize),
			frame.WithCompass(mesh.WithCompassArmWidth(float32(*armWidth))),
		),
		engine.WithControllerOptions(character.WithMaxJumps(*maxJumps)),
		engine.WithScatter(world.ScatterOptions{Seed: *seed, Count: *props}),
		engine.WithProfiling(*stats),
		engine.WithTickRate(*tickRate),
	)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	eng.Run()
}

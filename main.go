package main

import (
	"flag"
	"math"
	"os"

	"EvasiveDelete/internal/game"
	"EvasiveDelete/internal/server"
)

func main() {
	defaultAddr := ":8080"
	if env := os.Getenv("EVADE_ADDR"); env != "" {
		defaultAddr = env
	}
	addr := flag.String("addr", defaultAddr, "address to listen on (e.g., 127.0.0.1:8080); EVADE_ADDR sets the default")
	configPath := flag.String("config", "configs/page.json", "path to button tuning JSON")
	frameHz := flag.Float64("frame-hz", game.FrameHz, "physics frame rate")
	mass := flag.Float64("mass", math.NaN(), "override button mass")
	friction := flag.Float64("friction", math.NaN(), "override per-frame friction factor (0-1]")
	impulseScale := flag.Float64("impulse-scale", math.NaN(), "override share of pointer velocity passed to the button")
	minImpulse := flag.Float64("min-impulse", math.NaN(), "override minimum impulse in px/s")
	maxImpulse := flag.Float64("max-impulse", math.NaN(), "override maximum impulse in px/s")
	restSpeed := flag.Float64("rest-speed", math.NaN(), "override speed below which the button stops")
	rangeX := flag.Float64("range-x", math.NaN(), "override horizontal travel from the resting slot")
	rangeY := flag.Float64("range-y", math.NaN(), "override vertical travel from the resting slot")
	restitution := flag.Float64("restitution", math.NaN(), "override bounce factor at the range edge (0-1)")
	retention := flag.Float64("retention-ms", math.NaN(), "override pointer history window in ms")
	sampleSize := flag.Int("sample-size", 0, "override samples used for the velocity estimate (0 keeps config)")
	flag.Parse()

	cfg := server.DefaultAppConfig()
	cfg.ConfigPath = *configPath
	cfg.FrameHz = *frameHz

	var overrides server.ButtonParamOverrides
	floats := []struct {
		flag *float64
		dst  **float64
	}{
		{mass, &overrides.Mass},
		{friction, &overrides.Friction},
		{impulseScale, &overrides.ImpulseScale},
		{minImpulse, &overrides.MinImpulse},
		{maxImpulse, &overrides.MaxImpulse},
		{restSpeed, &overrides.RestSpeed},
		{rangeX, &overrides.RangeX},
		{rangeY, &overrides.RangeY},
		{restitution, &overrides.Restitution},
		{retention, &overrides.RetentionMS},
	}
	for _, f := range floats {
		if !math.IsNaN(*f.flag) {
			val := *f.flag
			*f.dst = &val
		}
	}
	if *sampleSize > 0 {
		val := *sampleSize
		overrides.SampleSize = &val
	}

	cfg.Overrides = overrides

	server.StartApp(*addr, cfg)
}

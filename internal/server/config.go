package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	. "EvasiveDelete/internal/game"
)

type buttonConfig struct {
	Mass         *float64 `json:"mass"`
	Friction     *float64 `json:"friction"`
	ImpulseScale *float64 `json:"impulseScale"`
	MinImpulse   *float64 `json:"minImpulse"`
	MaxImpulse   *float64 `json:"maxImpulse"`
	RestSpeed    *float64 `json:"restSpeed"`
	RangeX       *float64 `json:"rangeX"`
	RangeY       *float64 `json:"rangeY"`
	Restitution  *float64 `json:"restitution"`
	SampleSize   *int     `json:"sampleSize"`
	RetentionMS  *float64 `json:"retentionMs"`
}

type pageConfig struct {
	Button *buttonConfig `json:"button"`
}

// ButtonParamOverrides represents optional command-line overrides for tuning the button.
type ButtonParamOverrides struct {
	Mass         *float64
	Friction     *float64
	ImpulseScale *float64
	MinImpulse   *float64
	MaxImpulse   *float64
	RestSpeed    *float64
	RangeX       *float64
	RangeY       *float64
	Restitution  *float64
	SampleSize   *int
	RetentionMS  *float64
}

func (o ButtonParamOverrides) apply(base ButtonParams) ButtonParams {
	return mergeButtonConfig(base, &buttonConfig{
		Mass:         o.Mass,
		Friction:     o.Friction,
		ImpulseScale: o.ImpulseScale,
		MinImpulse:   o.MinImpulse,
		MaxImpulse:   o.MaxImpulse,
		RestSpeed:    o.RestSpeed,
		RangeX:       o.RangeX,
		RangeY:       o.RangeY,
		Restitution:  o.Restitution,
		SampleSize:   o.SampleSize,
		RetentionMS:  o.RetentionMS,
	})
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func mergeButtonConfig(base ButtonParams, cfg *buttonConfig) ButtonParams {
	if cfg == nil {
		return base
	}
	setFloat(&base.Mass, cfg.Mass)
	setFloat(&base.Friction, cfg.Friction)
	setFloat(&base.ImpulseScale, cfg.ImpulseScale)
	setFloat(&base.MinImpulse, cfg.MinImpulse)
	setFloat(&base.MaxImpulse, cfg.MaxImpulse)
	setFloat(&base.RestSpeed, cfg.RestSpeed)
	setFloat(&base.RangeX, cfg.RangeX)
	setFloat(&base.RangeY, cfg.RangeY)
	setFloat(&base.Restitution, cfg.Restitution)
	setFloat(&base.RetentionMS, cfg.RetentionMS)
	if cfg.SampleSize != nil {
		base.SampleSize = *cfg.SampleSize
	}
	return SanitizeButtonParams(base)
}

func loadButtonParamsFromFile(path string, base ButtonParams) (ButtonParams, error) {
	if path == "" {
		return SanitizeButtonParams(base), nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return SanitizeButtonParams(base), nil
		}
		return SanitizeButtonParams(base), fmt.Errorf("read page config %q: %w", cleanPath, err)
	}
	var cfg pageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SanitizeButtonParams(base), fmt.Errorf("parse page config %q: %w", cleanPath, err)
	}
	return mergeButtonConfig(base, cfg.Button), nil
}

func applyButtonOverrides(base ButtonParams, overrides ButtonParamOverrides) ButtonParams {
	return overrides.apply(base)
}

package theme

import (
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// SignalMode selects which color-scheme source DetectSignal may use.
type SignalMode string

const (
	SignalAuto   SignalMode = "auto"
	SignalPortal SignalMode = "portal"
	SignalGTK    SignalMode = "gtk"
	SignalNone   SignalMode = "none"
)

// ParseSignalMode accepts the config/env spelling; unknown values mean auto.
func ParseSignalMode(raw string) SignalMode {
	switch m := SignalMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case SignalPortal, SignalGTK, SignalNone:
		return m
	}
	return SignalAuto
}

// detector hooks, replaced in tests.
var (
	newPortal = func(log *zap.Logger) (Signal, error) { return NewPortalSignal(log) }
	newGTK    = func(log *zap.Logger) (Signal, error) {
		path, err := DefaultGTKSettingsPath()
		if err != nil {
			return nil, err
		}
		return NewGTKSignal(path, log)
	}
)

// DetectSignal picks the color-scheme source once. In auto mode the portal
// is preferred, then the legacy GTK settings file, then StaticSignal.
// An explicitly requested source that is unavailable also degrades to
// StaticSignal.
func DetectSignal(mode SignalMode, log *zap.Logger) Signal {
	if log == nil {
		log = zap.NewNop()
	}

	var candidates []func(*zap.Logger) (Signal, error)
	switch mode {
	case SignalNone:
	case SignalPortal:
		candidates = append(candidates, newPortal)
	case SignalGTK:
		candidates = append(candidates, newGTK)
	default:
		if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
			candidates = append(candidates, newPortal, newGTK)
		}
	}

	for _, try := range candidates {
		sig, err := try(log)
		if err != nil {
			log.Debug("color-scheme source unavailable", zap.Error(err))
			continue
		}
		log.Info("color-scheme source selected", zap.String("source", SignalName(sig)))
		return sig
	}

	log.Info("color-scheme source selected", zap.String("source", "none"))
	return StaticSignal{}
}

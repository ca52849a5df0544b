package observability

import (
	"fmt"
	"runtime"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/config"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
	"github.com/grafana/pyroscope-go"
)

// mutexProfileRate samples one in five contention events.
const mutexProfileRate = 5

// InitPyroscope starts continuous profiling when enabled. The returned func
// flushes and stops the profiler.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Info("profiling disabled")
		return func() error { return nil }, nil
	}

	previousRate := runtime.SetMutexProfileFraction(mutexProfileRate)
	profiler, err := pyroscope.Start(profilerConfig(cfg))
	if err != nil {
		runtime.SetMutexProfileFraction(previousRate)
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	logger.Info("profiling enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return func() error {
		defer runtime.SetMutexProfileFraction(previousRate)
		return profiler.Stop()
	}, nil
}

func profilerConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
			"storage": cfg.StorageDriver,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		},
	}
}

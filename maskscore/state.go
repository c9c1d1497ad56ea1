package maskscore

import (
	"sync"

	"github.com/Maskquerade/Maskquerade/agent/go-service/pkg/scoring"
)

// maxEngines bounds the engine cache; the whole cache is dropped when full.
const maxEngines = 16

type engineEntry struct {
	mu     sync.Mutex
	engine *scoring.Engine
}

var (
	stateMu    sync.Mutex
	engines    = map[string]*engineEntry{}
	lastReport *Report
)

// engineFor returns the cached engine for key, building it on first use.
// build runs without holding stateMu; when two callers race, the first
// engine stored wins.
func engineFor(key string, build func() (*scoring.Engine, error)) (*engineEntry, error) {
	stateMu.Lock()
	e, ok := engines[key]
	stateMu.Unlock()
	if ok {
		return e, nil
	}

	engine, err := build()
	if err != nil {
		return nil, err
	}

	stateMu.Lock()
	defer stateMu.Unlock()
	if cached, ok := engines[key]; ok {
		return cached, nil
	}
	if len(engines) >= maxEngines {
		msLog.Debug().Int("engines", len(engines)).Msg("engine cache full, dropping")
		engines = map[string]*engineEntry{}
	}
	e = &engineEntry{engine: engine}
	engines[key] = e
	return e, nil
}

func setLastReport(r Report) {
	stateMu.Lock()
	defer stateMu.Unlock()
	lastReport = &r
}

func getLastReport() (Report, bool) {
	stateMu.Lock()
	defer stateMu.Unlock()
	if lastReport == nil {
		return Report{}, false
	}
	return *lastReport, true
}

func clearLastReport() {
	stateMu.Lock()
	defer stateMu.Unlock()
	lastReport = nil
}

func resetState() {
	stateMu.Lock()
	engines = map[string]*engineEntry{}
	lastReport = nil
	stateMu.Unlock()
	clearImageCache()
}

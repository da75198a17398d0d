package metrics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
)

// HealthSnapshot combines process runtime stats with the state of the
// itinerary data directory, for the server's health endpoint.
type HealthSnapshot struct {
	HeapAllocMB       uint64 `json:"heap_alloc_mb"`
	HeapSysMB         uint64 `json:"heap_sys_mb"`
	GCCycles          uint32 `json:"gc_cycles"`
	Goroutines        int    `json:"goroutines"`
	StoredItineraries int    `json:"stored_itineraries"`
	StorageSize       string `json:"storage_size"`
}

// Snapshot collects a point-in-time health reading. The dataPath is the
// itinerary store's base directory; a missing or empty directory reads as
// zero itineraries, not an error.
func Snapshot(dataPath string) HealthSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	count, size := scanStorage(dataPath)

	return HealthSnapshot{
		HeapAllocMB:       m.Alloc / 1024 / 1024,
		HeapSysMB:         m.Sys / 1024 / 1024,
		GCCycles:          m.NumGC,
		Goroutines:        runtime.NumGoroutine(),
		StoredItineraries: count,
		StorageSize:       humanSize(size),
	}
}

// scanStorage counts stored itinerary versions and totals their bytes.
// Walk errors are deliberately ignored; health reporting must not fail.
func scanStorage(dataPath string) (count int, size int64) {
	_ = filepath.WalkDir(dataPath, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += info.Size()
		if strings.HasSuffix(d.Name(), ".json") {
			count++
		}
		return nil
	})
	return count, size
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n)
	suffix := ""
	for _, s := range []string{"KB", "MB", "GB", "TB"} {
		value /= unit
		suffix = s
		if value < unit {
			break
		}
	}
	return fmt.Sprintf("%.1f %s", value, suffix)
}

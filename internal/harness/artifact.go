package harness

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/slavakukuyev/elevator-go/internal/engine"
)

// snapshotDatetime formats the current time for use in artifact filenames
// and preambles.
func snapshotDatetime() string {
	return time.Now().UTC().Format("2006-01-02T15-04-05")
}

const artifactPreambleFormat = "fourjr/elevator-simulator %s fourjr/elevator-simulator\x00\x00"

// Snapshot is the serializable state exported to a run artifact: the
// settings a job was built from, plus the initial placement of its
// elevators and loads.
type Snapshot struct {
	Name          string
	AlgorithmName string
	Seed          uint64
	Iteration     int
	Floors        int
	MaxLoad       int
	Elevators     []ElevatorSnapshot
	Loads         []LoadSnapshot
}

// ElevatorSnapshot is one elevator's id and floor at snapshot time.
type ElevatorSnapshot struct {
	ID    int
	Floor int
}

// LoadSnapshot is one load's id, endpoints, and weight at snapshot time.
type LoadSnapshot struct {
	ID          int
	Initial     int
	Destination int
	Weight      int
}

// buildSnapshot captures eng's current elevators and pending loads.
func buildSnapshot(settings TestSettings, seed uint64, iter int, eng *engine.Engine) Snapshot {
	snap := Snapshot{
		Name:          settings.Name,
		AlgorithmName: settings.AlgorithmName,
		Seed:          seed,
		Iteration:     iter,
		Floors:        settings.Floors,
		MaxLoad:       settings.MaxLoad,
	}
	for _, st := range eng.ElevatorStatuses() {
		snap.Elevators = append(snap.Elevators, ElevatorSnapshot{ID: st.ID, Floor: st.CurrentFloor.Value()})
	}
	for _, l := range eng.PendingLoads() {
		snap.Loads = append(snap.Loads, LoadSnapshot{
			ID: l.ID, Initial: l.InitialFloor.Value(), Destination: l.DestinationFloor.Value(), Weight: l.Weight,
		})
	}
	return snap
}

// exportInitialSnapshot writes the job's starting state to
// <exportsDir>/<datetime>_<name>.esi.
func (h *Harness) exportInitialSnapshot(settings TestSettings, iter int, eng *engine.Engine) error {
	seed := (settings.Seed + uint64(iter)) % (uint64(1) << 32)
	snap := buildSnapshot(settings, seed, iter, eng)

	dir := h.cfg.ExportsDir
	if dir == "" {
		dir = "exports"
	}
	datetime := snapshotDatetime()
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.esi", datetime, settings.Name))
	return ExportSnapshot(path, datetime, snap)
}

// ExportSnapshot writes snap to path, framed by the artifact preamble
// (stamped with datetime) repeated as a trailing sentinel, with the
// gob-encoded snapshot gzip-compressed in between.
func ExportSnapshot(path, datetime string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.NewIOFailureError("failed to create exports directory", err)
	}

	var gobBuf bytes.Buffer
	if err := gob.NewEncoder(&gobBuf).Encode(snap); err != nil {
		return domain.NewIOFailureError("failed to encode snapshot", err)
	}

	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	if _, err := gz.Write(gobBuf.Bytes()); err != nil {
		return domain.NewIOFailureError("failed to compress snapshot", err)
	}
	if err := gz.Close(); err != nil {
		return domain.NewIOFailureError("failed to compress snapshot", err)
	}

	preamble := fmt.Sprintf(artifactPreambleFormat, datetime)

	var out bytes.Buffer
	out.WriteString(preamble)
	out.Write(gzBuf.Bytes())
	out.WriteString(preamble)

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return domain.NewIOFailureError("failed to write artifact file", err)
	}
	return nil
}

// ImportSnapshot reads an artifact file written by ExportSnapshot, stripping
// both preambles and decompressing the body.
func ImportSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, domain.NewIOFailureError("failed to read artifact file", err)
	}

	// The preamble's datetime segment varies, so locate it by its fixed
	// prefix/suffix rather than a literal match.
	const prefix = "fourjr/elevator-simulator "
	const suffix = " fourjr/elevator-simulator\x00\x00"
	if len(data) < len(prefix)+len(suffix) || string(data[:len(prefix)]) != prefix {
		return Snapshot{}, domain.NewIOFailureError("artifact missing leading preamble", nil)
	}
	end := bytes.Index(data[len(prefix):], []byte(suffix))
	if end < 0 {
		return Snapshot{}, domain.NewIOFailureError("artifact missing datetime terminator", nil)
	}
	datetime := string(data[len(prefix) : len(prefix)+end])
	preamble := fmt.Sprintf(artifactPreambleFormat, datetime)
	headerLen := len(preamble)
	if len(data) < headerLen+len(preamble) {
		return Snapshot{}, domain.NewIOFailureError("artifact missing trailing sentinel", nil)
	}

	body := data[headerLen : len(data)-len(preamble)]
	trailer := string(data[len(data)-len(preamble):])
	if trailer != preamble {
		return Snapshot{}, domain.NewIOFailureError("artifact trailing sentinel does not match preamble", nil)
	}

	gz, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, domain.NewIOFailureError("failed to decompress artifact", err)
	}
	defer gz.Close()

	var snap Snapshot
	if err := gob.NewDecoder(gz).Decode(&snap); err != nil {
		return Snapshot{}, domain.NewIOFailureError("failed to decode snapshot", err)
	}
	return snap, nil
}

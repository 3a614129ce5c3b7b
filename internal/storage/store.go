// Package storage persists comparison runs: one directory per run holding
// metadata.json and energy.csv (step index plus one energy column per scheme).
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/phys-sim/hamsim/internal/hamil"
	"github.com/phys-sim/hamsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	N         int                `json:"n"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Seed      int64              `json:"seed"`
	Schemes   []string           `json:"schemes"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one comparison run. Metrics are flattened as
// "<scheme>/<metric>" so schemes stay directly comparable in the metadata.
func (s *Store) Save(cfg sim.Config, results map[string]*sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	schemes := make([]string, 0, len(results))
	for name := range results {
		schemes = append(schemes, name)
	}
	sort.Strings(schemes)

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		N:         cfg.N,
		Dt:        cfg.Dt,
		Steps:     cfg.NumSteps(),
		Seed:      cfg.Seed,
		Schemes:   schemes,
		Metrics:   make(map[string]float64),
	}
	for _, scheme := range schemes {
		for name, val := range results[scheme].Metrics {
			meta.Metrics[scheme+"/"+name] = val
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "energy.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"step"}, schemes...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	numSteps := 0
	for _, scheme := range schemes {
		if len(results[scheme].Energies) > numSteps {
			numSteps = len(results[scheme].Energies)
		}
	}
	for k := 0; k < numSteps; k++ {
		row := []string{strconv.Itoa(k)}
		for _, scheme := range schemes {
			traj := results[scheme].Energies
			if k < len(traj) {
				row = append(row, strconv.FormatFloat(traj[k], 'g', 17, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectories reads energy.csv back into one trajectory per scheme.
func (s *Store) LoadTrajectories(runID string) (map[string]hamil.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "energy.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("run %s: empty energy.csv", runID)
	}

	header := records[0]
	trajs := make(map[string]hamil.Trajectory, len(header)-1)
	for col := 1; col < len(header); col++ {
		traj := make(hamil.Trajectory, 0, len(records)-1)
		for i := 1; i < len(records); i++ {
			if col >= len(records[i]) || records[i][col] == "" {
				continue
			}
			val, err := strconv.ParseFloat(records[i][col], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i, err)
			}
			traj = append(traj, val)
		}
		trajs[header[col]] = traj
	}
	return trajs, nil
}

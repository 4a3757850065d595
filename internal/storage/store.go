package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/emfield/internal/config"
	"github.com/san-kum/emfield/internal/field"
	"github.com/san-kum/emfield/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	modesFile    = "modes.csv"
	profileFile  = "profile.csv"
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

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	Config    *config.Config     `json:"config"`
	Shape     [3]int             `json:"shape"`
	Modes     int                `json:"modes"`
	Elapsed   float64            `json:"elapsed_seconds"`
	Stages    map[string]float64 `json:"stages_seconds"`
	Summary   metrics.Summary    `json:"summary"`
}

// ModeRecord is one row of modes.csv.
type ModeRecord struct {
	Index int     `csv:"index"`
	Freq  float64 `csv:"freq"`
	K     float64 `csv:"k"`
	Phase float64 `csv:"phase"`
	E0    float64 `csv:"e0"`
	B0    float64 `csv:"b0"`
	Ex    float64 `csv:"ex"`
	Ey    float64 `csv:"ey"`
	Ez    float64 `csv:"ez"`
	Bx    float64 `csv:"bx"`
	By    float64 `csv:"by"`
	Bz    float64 `csv:"bz"`
}

func ModeRecords(sp *field.Spectrum, w *field.Weights) []ModeRecord {
	out := make([]ModeRecord, sp.Len())
	for i := range out {
		out[i] = ModeRecord{
			Index: i,
			Freq:  sp.Freqs[i],
			K:     sp.Ks[i],
			Phase: sp.Phases[i],
			E0:    sp.E0[i],
			B0:    sp.B0[i],
			Ex:    w.Ex[i],
			Ey:    w.Ey[i],
			Ez:    w.Ez[i],
			Bx:    w.Bx[i],
			By:    w.By[i],
			Bz:    w.Bz[i],
		}
	}
	return out
}

// Weights rebuilds the per-mode field weights of a stored run.
func Weights(recs []ModeRecord) *field.Weights {
	n := len(recs)
	w := &field.Weights{
		Ex: make([]float64, n), Ey: make([]float64, n), Ez: make([]float64, n),
		Bx: make([]float64, n), By: make([]float64, n), Bz: make([]float64, n),
	}
	for i, r := range recs {
		w.Ex[i], w.Ey[i], w.Ez[i] = r.Ex, r.Ey, r.Ez
		w.Bx[i], w.By[i], w.Bz[i] = r.Bx, r.By, r.Bz
	}
	return w
}

// Save writes metadata, the sampled modes and the y-profile of the energy
// density. The full volume is not persisted.
func (s *Store) Save(cfg *config.Config, seed uint64, res *field.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	runID, runDir, err := s.newRunDir(time.Now())
	if err != nil {
		return "", err
	}
	if err := writeRun(runDir, runID, cfg, seed, res); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir, runID string, cfg *config.Config, seed uint64, res *field.Result) error {
	profile, err := metrics.Profile(res.Energy, res.Grid.Y)
	if err != nil {
		return err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      seed,
		Config:    cfg,
		Shape:     res.Grid.Shape(),
		Modes:     res.Spectrum.Len(),
		Elapsed:   res.Elapsed.Seconds(),
		Stages:    make(map[string]float64, len(res.Stages)),
		Summary:   metrics.Summarize(res.Energy),
	}
	for name, d := range res.Stages {
		meta.Stages[name] = d.Seconds()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(runDir, modesFile), ModeRecords(res.Spectrum, res.Weights)); err != nil {
		return err
	}
	return writeCSV(filepath.Join(runDir, profileFile), profile)
}

func (s *Store) newRunDir(now time.Time) (string, string, error) {
	base := fmt.Sprintf("emf_%s", now.Format("20060102_150405"))
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, records any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// closeFile reports the Close error unless an earlier one is already set.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); *err == nil {
		*err = cerr
	}
}

// List returns saved runs, oldest first. Directories without readable
// metadata are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the ID of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs in %s", s.baseDir)
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadModes(runID string) ([]ModeRecord, error) {
	var modes []ModeRecord
	if err := readCSV(filepath.Join(s.baseDir, runID, modesFile), &modes); err != nil {
		return nil, err
	}
	return modes, nil
}

func (s *Store) LoadProfile(runID string) ([]metrics.Slice, error) {
	var profile []metrics.Slice
	if err := readCSV(filepath.Join(s.baseDir, runID, profileFile), &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.Unmarshal(f, out); err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return nil
}

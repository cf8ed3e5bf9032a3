package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/stickpoint/internal/config"
	"github.com/san-kum/stickpoint/internal/sim"
	"github.com/san-kum/stickpoint/internal/verlet"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	sceneFile    = "scene.yaml"
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
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Timestamp   time.Time          `json:"timestamp"`
	Ticks       int                `json:"ticks"`
	RecordEvery int                `json:"record_every"`
	Points      int                `json:"points"`
	Sticks      int                `json:"sticks"`
	World       config.WorldConfig `json:"world"`
	Metrics     map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv. Positions holds x0,y0,x1,y1,...
type FrameRecord struct {
	Tick      int       `json:"tick"`
	Energy    float64   `json:"energy"`
	Positions []float64 `json:"positions"`
}

func (f FrameRecord) Point(i int) (x, y float64) {
	return f.Positions[2*i], f.Positions[2*i+1]
}

// Save writes the run into a new directory and returns its id. The scene is
// stored next to the frames so the topology can be rebuilt later.
func (s *Store) Save(scene *config.Scene, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(scene.Name, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scene:       scene.Name,
		Timestamp:   now,
		Ticks:       result.StepsTaken,
		RecordEvery: cfg.RecordEvery,
		Points:      len(scene.Points),
		Sticks:      len(scene.Sticks),
		World:       scene.World,
		Metrics:     result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, sceneFile), scene); err != nil {
		return "", err
	}

	if err := writeFrames(filepath.Join(runDir, framesFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if name == "" {
		name = "scene"
	}
	base := fmt.Sprintf("%s_%d", name, now.Unix())
	runID := base
	for i := 2; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeFrames(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if len(result.Frames) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"tick", "energy"}
	for i := range result.Frames[0].Points {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	first := result.Frames[0].Tick
	for _, f := range result.Frames {
		energy := 0.0
		if idx := f.Tick - first; idx >= 0 && idx < len(result.Energy) {
			energy = result.Energy[idx]
		}

		row := []string{strconv.Itoa(f.Tick), strconv.FormatFloat(energy, 'f', 6, 64)}
		for _, val := range f.Positions() {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

func (s *Store) LoadScene(runID string) (*config.Scene, error) {
	return config.Load(filepath.Join(s.baseDir, runID, sceneFile))
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
		}
		energy, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
		}

		pos := make([]float64, 0, len(record)-2)
		for j := 2; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
			}
			pos = append(pos, val)
		}

		frames = append(frames, FrameRecord{Tick: tick, Energy: energy, Positions: pos})
	}

	return frames, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

// Frame rebuilds a renderable frame from the stored positions and the
// scene's topology.
func (f FrameRecord) Frame(scene *config.Scene) (verlet.Frame, error) {
	n := len(scene.Points)
	if len(f.Positions) != 2*n {
		return verlet.Frame{}, fmt.Errorf("frame at tick %d has %d coordinates, scene has %d points", f.Tick, len(f.Positions), n)
	}

	pos := func(i int) (verlet.Vec2, error) {
		if i < 0 || i >= n {
			return verlet.Vec2{}, verlet.ErrUnknownPoint
		}
		return verlet.Vec2{X: f.Positions[2*i], Y: f.Positions[2*i+1]}, nil
	}

	frame := verlet.Frame{
		Tick:     f.Tick,
		Width:    scene.World.Width,
		Height:   scene.World.Height,
		Points:   make([]verlet.PointState, n),
		Sticks:   make([]verlet.Segment, 0, len(scene.Sticks)),
		Polygons: make([]verlet.Shape, 0, len(scene.Polygons)),
	}
	for i, p := range scene.Points {
		x, y := f.Point(i)
		frame.Points[i] = verlet.PointState{X: x, Y: y, Radius: p.Radius, Pinned: p.Pinned}
	}
	for _, st := range scene.Sticks {
		a, err := pos(st.P0)
		if err != nil {
			return verlet.Frame{}, err
		}
		b, err := pos(st.P1)
		if err != nil {
			return verlet.Frame{}, err
		}
		frame.Sticks = append(frame.Sticks, verlet.Segment{A: a, B: b, Hidden: st.Hidden, Spring: st.Stiffness > 0})
	}
	for _, poly := range scene.Polygons {
		verts := make([]verlet.Vec2, 0, len(poly.Vertices))
		for _, v := range poly.Vertices {
			p, err := pos(v)
			if err != nil {
				return verlet.Frame{}, err
			}
			verts = append(verts, p)
		}
		frame.Polygons = append(frame.Polygons, verlet.Shape{Vertices: verts, Color: poly.Color.NRGBA()})
	}

	return frame, nil
}

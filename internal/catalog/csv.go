package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

// CSVSource loads the catalog from the two tables the ingestion pipeline
// exports: learning_objects.csv and prerequisites.csv.
//
// learning_objects.csv columns:
//
//	lo_id,kind,duration_min,required_mastery,required_language,devices,media_bandwidth_class,accuracy_stat
//
// prerequisites.csv columns:
//
//	from_id,to_id
type CSVSource struct {
	ObjectsPath string
	EdgesPath   string
	Version     string
}

func (s CSVSource) Load(ctx context.Context) (*Catalog, error) {
	objects, err := loadObjectsCSV(s.ObjectsPath)
	if err != nil {
		return nil, err
	}
	var edges []domain.PrerequisiteEdge
	if s.EdgesPath != "" {
		edges, err = loadEdgesCSV(s.EdgesPath)
		if err != nil {
			return nil, err
		}
	}
	version := s.Version
	if version == "" {
		version = s.ObjectsPath
	}
	return New(version, objects, edges)
}

func loadObjectsCSV(path string) ([]domain.LearningObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open objects csv: %w", err)
	}
	defer f.Close()
	return ParseObjects(f)
}

func loadEdgesCSV(path string) ([]domain.PrerequisiteEdge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open edges csv: %w", err)
	}
	defer f.Close()
	return ParseEdges(f)
}

// ParseObjects reads the learning-object table from r. The first record is
// a header and resolves column positions, so column order is free.
func ParseObjects(r io.Reader) ([]domain.LearningObject, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: read objects csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog: objects csv is empty")
	}

	col := headerIndex(records[0])
	for _, required := range []string{"lo_id", "duration_min"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog: objects csv missing column %q", required)
		}
	}

	objects := make([]domain.LearningObject, 0, len(records)-1)
	for i, rec := range records[1:] {
		lo := domain.LearningObject{
			ID:                  field(rec, col, "lo_id"),
			Kind:                domain.LOKind(defaultString(field(rec, col, "kind"), string(domain.KindQuestion))),
			RequiredLanguage:    defaultString(field(rec, col, "required_language"), "any"),
			DeviceCompat:        domain.SplitDevices(field(rec, col, "devices")),
			MediaBandwidthClass: domain.BandwidthClass(defaultString(field(rec, col, "media_bandwidth_class"), string(domain.BandwidthLow))),
		}
		lo.DurationMin, err = parseFloatField(rec, col, "duration_min", i)
		if err != nil {
			return nil, err
		}
		lo.RequiredMastery, err = parseFloatField(rec, col, "required_mastery", i)
		if err != nil {
			return nil, err
		}
		lo.AccuracyStat, err = parseFloatField(rec, col, "accuracy_stat", i)
		if err != nil {
			return nil, err
		}
		objects = append(objects, lo)
	}
	return objects, nil
}

// ParseEdges reads the prerequisite table from r.
func ParseEdges(r io.Reader) ([]domain.PrerequisiteEdge, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: read edges csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := headerIndex(records[0])
	for _, required := range []string{"from_id", "to_id"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog: edges csv missing column %q", required)
		}
	}

	edges := make([]domain.PrerequisiteEdge, 0, len(records)-1)
	for _, rec := range records[1:] {
		from := field(rec, col, "from_id")
		to := field(rec, col, "to_id")
		if from == "" || to == "" {
			continue
		}
		edges = append(edges, domain.PrerequisiteEdge{FromID: from, ToID: to})
	}
	return edges, nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return col
}

func field(rec []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseFloatField(rec []string, col map[string]int, name string, row int) (float64, error) {
	raw := field(rec, col, name)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("catalog: row %d: bad %s %q", row+1, name, raw)
	}
	return f, nil
}

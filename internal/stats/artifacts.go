package stats

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"punnettlab/internal/genetics"
	"punnettlab/internal/model"
)

const (
	crossIndexFile     = "cross_index.json"
	crossFile          = "cross.json"
	genotypesFile      = "genotypes.csv"
	phenotypesFile     = "phenotypes.csv"
	artifactsDirPerm   = 0o755
	artifactsFilePerm  = 0o644
	percentPrecision   = 2
	distributionHeader = "label"
)

var crossArtifactFiles = []string{crossFile, genotypesFile, phenotypesFile}

// ErrInvalidCrossID reports an id that cannot name a single artifact directory.
var ErrInvalidCrossID = errors.New("invalid cross id")

// ValidateCrossID rejects ids that are empty or would resolve outside their base directory.
func ValidateCrossID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: cross id is required", ErrInvalidCrossID)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return fmt.Errorf("%w: %q", ErrInvalidCrossID, id)
	}
	return nil
}

// WriteCrossArtifacts writes the record and both distributions under baseDir/<id>.
func WriteCrossArtifacts(baseDir string, record model.CrossRecord) (string, error) {
	if err := ValidateCrossID(record.ID); err != nil {
		return "", err
	}

	crossDir := filepath.Join(baseDir, record.ID)
	if err := os.MkdirAll(crossDir, artifactsDirPerm); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(crossDir, crossFile), record); err != nil {
		return "", err
	}
	if err := WriteDistribution(filepath.Join(crossDir, genotypesFile), "genotype", record.Stats.Genotypes); err != nil {
		return "", err
	}
	if err := WriteDistribution(filepath.Join(crossDir, phenotypesFile), "phenotype", record.Stats.Phenotypes); err != nil {
		return "", err
	}
	return crossDir, nil
}

// ReadCrossArtifacts loads baseDir/<id>/cross.json and checks that both distribution
// files agree with it. A missing cross reports ok=false.
func ReadCrossArtifacts(baseDir, id string) (model.CrossRecord, bool, error) {
	if err := ValidateCrossID(id); err != nil {
		return model.CrossRecord{}, false, err
	}
	crossDir := filepath.Join(baseDir, id)
	data, err := os.ReadFile(filepath.Join(crossDir, crossFile))
	if err != nil {
		if os.IsNotExist(err) {
			return model.CrossRecord{}, false, nil
		}
		return model.CrossRecord{}, false, err
	}

	var record model.CrossRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.CrossRecord{}, false, err
	}

	checks := []struct {
		file string
		want genetics.Distribution
	}{
		{file: genotypesFile, want: record.Stats.Genotypes},
		{file: phenotypesFile, want: record.Stats.Phenotypes},
	}
	for _, check := range checks {
		dist, err := ReadDistribution(filepath.Join(crossDir, check.file))
		if err != nil {
			return model.CrossRecord{}, false, fmt.Errorf("read %s: %w", check.file, err)
		}
		if len(dist) != len(check.want) || dist.Total() != check.want.Total() {
			return model.CrossRecord{}, false, fmt.Errorf("%s does not match %s for cross %s", check.file, crossFile, id)
		}
	}
	return record, true, nil
}

// WriteDistribution writes label,count,percent rows. labelColumn names the first column.
func WriteDistribution(path, labelColumn string, dist genetics.Distribution) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if labelColumn == "" {
		labelColumn = distributionHeader
	}
	writer := csv.NewWriter(file)
	if err := writer.Write([]string{labelColumn, "count", "percent"}); err != nil {
		return err
	}
	for _, entry := range dist {
		if err := writer.Write([]string{
			entry.Label,
			strconv.Itoa(entry.Count),
			strconv.FormatFloat(entry.Percent, 'f', percentPrecision, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadDistribution(path string) (genetics.Distribution, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return genetics.Distribution{}, nil
		}
		return nil, err
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("distribution header must have 3 columns")
	}

	dist := genetics.Distribution{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("distribution row must have 3 columns")
		}
		count, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, err
		}
		percent, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, err
		}
		dist = append(dist, genetics.Entry{Label: row[0], Count: count, Percent: percent})
	}
	return dist, nil
}

// AppendIndex records a cross summary, replacing any entry with the same id.
func AppendIndex(baseDir string, entry model.CrossSummary) error {
	if entry.ID == "" {
		return fmt.Errorf("cross id is required")
	}
	if err := os.MkdirAll(baseDir, artifactsDirPerm); err != nil {
		return err
	}

	index, err := ListIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].ID == entry.ID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, crossIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, crossIndexFile), index)
}

// ListIndex returns indexed crosses newest first.
func ListIndex(baseDir string) ([]model.CrossSummary, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, crossIndexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []model.CrossSummary{}, nil
		}
		return nil, err
	}

	var entries []model.CrossSummary
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry model.CrossSummary
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]model.CrossSummary, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

// ExportCross copies a cross artifact directory into outDir/<id>.
func ExportCross(baseDir, id, outDir string) (string, error) {
	if err := ValidateCrossID(id); err != nil {
		return "", err
	}

	src := filepath.Join(baseDir, id)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, id)
	if err := os.MkdirAll(dst, artifactsDirPerm); err != nil {
		return "", err
	}

	for _, file := range crossArtifactFiles {
		if err := copyFile(filepath.Join(src, file), filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}
	return dst, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, artifactsFilePerm)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

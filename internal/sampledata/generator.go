// Package sampledata writes synthetic timesheet files for manual report runs.
package sampledata

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/paysheet/internal/domain/timesheet"
	"github.com/okian/paysheet/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Constants for value generation ranges.
const (
	minHalfHours   = 2   // 1.0h
	maxHalfHours   = 120 // 60.0h
	minRateCents   = 1500
	rateCentsRange = 7500
	fileMode       = 0o644
	dirMode        = 0o755
)

var firstNames = []string{ //nolint:gochecknoglobals // fixed name pool
	"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi",
	"Ivan", "Judy", "Mallory", "Niaj", "Olivia", "Peggy", "Rupert", "Sybil",
	"Trent", "Uma", "Victor", "Walter",
}

// File describes one generated file.
type File struct {
	Path       string
	RateColumn string
	Rows       int
	Malformed  int
}

// Generate writes cfg.Files timesheet files into cfg.Dir and returns them in
// index order. Files are rendered concurrently; the content of each depends
// only on cfg and its index.
func Generate(ctx context.Context, cfg Config) ([]File, Stats, error) {
	stats := Stats{StartTime: time.Now()}
	if err := cfg.validate(); err != nil {
		return nil, stats, err
	}
	if err := os.MkdirAll(cfg.Dir, dirMode); err != nil {
		return nil, stats, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Get().Info(ctx, "generating sample timesheets",
		logger.Int("files", cfg.Files),
		logger.Int("rows", cfg.Rows),
		logger.Any("seed", cfg.Seed),
	)

	files := make([]File, cfg.Files)
	var rows, malformed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range cfg.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, f := Render(cfg, i)
			f.Path = filepath.Join(cfg.Dir, fmt.Sprintf("%s_%03d.csv", cfg.Prefix, i+1))
			if err := os.WriteFile(f.Path, []byte(content), fileMode); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.Path, err)
			}
			files[i] = f
			rows.Add(int64(f.Rows))
			malformed.Add(int64(f.Malformed))
			logger.Get().Debug(gctx, "wrote sample file",
				logger.String("path", f.Path),
				logger.String("rate_column", f.RateColumn),
				logger.Int("rows", f.Rows),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	stats.Files = len(files)
	stats.Rows = int(rows.Load())
	stats.Malformed = int(malformed.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Get().Info(ctx, "generated sample timesheets",
		logger.Int("files", stats.Files),
		logger.Int("rows", stats.Rows),
		logger.Int("malformed", stats.Malformed),
	)
	return files, stats, nil
}

// Render builds the content of file index without touching the filesystem.
// The header columns are shuffled and the rate column is one of
// cfg.RateAliases. The returned File has no Path.
func Render(cfg Config, index int) (string, File) {
	rng := newRand(cfg.Seed, index)

	rate := cfg.RateAliases[rng.IntN(len(cfg.RateAliases))]
	header := append(timesheet.RequiredColumns(), rate)
	rng.Shuffle(len(header), func(i, j int) { header[i], header[j] = header[j], header[i] })

	f := File{RateColumn: rate, Rows: cfg.Rows}
	lines := make([]string, 0, cfg.Rows+1)
	lines = append(lines, strings.Join(header, ","))

	for row := 1; row <= cfg.Rows; row++ {
		name := firstNames[rng.IntN(len(firstNames))]
		values := map[string]string{
			timesheet.ColumnID:          uuid.Must(uuid.NewRandomFromReader(rng.reader)).String(),
			timesheet.ColumnEmail:       fmt.Sprintf("%s.%d@example.com", strings.ToLower(name), index*cfg.Rows+row),
			timesheet.ColumnName:        name,
			timesheet.ColumnDepartment:  cfg.Departments[rng.IntN(len(cfg.Departments))],
			timesheet.ColumnHoursWorked: strconv.FormatFloat(float64(minHalfHours+rng.IntN(maxHalfHours-minHalfHours+1))/2, 'f', -1, 64),
			rate:                        strconv.FormatFloat(float64(minRateCents+rng.IntN(rateCentsRange))/100, 'f', 2, 64),
		}

		fields := make([]string, len(header))
		for i, col := range header {
			fields[i] = values[col]
		}
		if cfg.MalformedEvery > 0 && row%cfg.MalformedEvery == 0 {
			fields = fields[:len(fields)-1]
			f.Malformed++
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n") + "\n", f
}

type seededRand struct {
	*rand.Rand
	reader *rand.ChaCha8
}

// newRand derives an independent stream for each file index.
func newRand(seed uint64, index int) seededRand {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], uint64(index))
	src := rand.NewChaCha8(key)
	return seededRand{Rand: rand.New(src), reader: src}
}

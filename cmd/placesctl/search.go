package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/traveller-backend/internal/domain"
	"github.com/traveller-backend/internal/export"
	"github.com/traveller-backend/internal/pkg/validator"
	"github.com/traveller-backend/internal/usecase/dto"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

type searchFlags struct {
	lat    float64
	long   float64
	radius uint
	mode   string
	date   string
	size   int
	format string
	out    string
}

func newSearchCmd(a *app) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "найти места и посчитать время в пути",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.search(cmd, args[0], f)
		},
	}

	cmd.Flags().Float64Var(&f.lat, "lat", 0, "origin latitude (default SEARCH_DEFAULT_LAT)")
	cmd.Flags().Float64Var(&f.long, "long", 0, "origin longitude (default SEARCH_DEFAULT_LONG)")
	cmd.Flags().UintVar(&f.radius, "radius", 0, "search radius in meters (default SEARCH_DEFAULT_RADIUS)")
	cmd.Flags().StringVar(&f.mode, "mode", string(domain.DefaultTravelMode), "car, bike, walk or transit")
	cmd.Flags().StringVar(&f.date, "date", "now", "departure time: now or unix seconds")
	cmd.Flags().IntVar(&f.size, "size", 0, "max places before filtering (default SEARCH_DEFAULT_SIZE)")
	cmd.Flags().StringVar(&f.format, "format", formatJSON, "output format: json or xlsx")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout)")

	return cmd
}

func (a *app) search(cmd *cobra.Command, keyword string, f *searchFlags) error {
	format := strings.ToLower(f.format)
	if format != formatJSON && format != formatXLSX {
		return fmt.Errorf("unknown format %q", f.format)
	}

	req := dto.PlacesSearchRequest{
		Keyword: keyword,
		Lat:     a.cfg.Search.DefaultLat,
		Long:    a.cfg.Search.DefaultLong,
		Radius:  a.cfg.Search.DefaultRadius,
		Mode:    f.mode,
		Date:    f.date,
		Size:    a.cfg.Search.DefaultSize,
	}
	flags := cmd.Flags()
	if flags.Changed("lat") {
		req.Lat = f.lat
	}
	if flags.Changed("long") {
		req.Long = f.long
	}
	if flags.Changed("radius") {
		req.Radius = f.radius
	}
	if flags.Changed("size") {
		req.Size = f.size
	}

	if err := validator.Validate(&req); err != nil {
		return fmt.Errorf("invalid search parameters: %w", err)
	}

	progress := newProgress(cmd.ErrOrStderr())
	req.OnBatchDone = progress.update

	result, err := a.services.Places.Search(cmd.Context(), req)
	progress.finish()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d places reachable, %d/%d batches failed\n",
		len(result.Records), result.Candidates, result.FailedBatches(), len(result.Batches))

	if f.out == "" {
		return writeRecords(cmd.OutOrStdout(), format, keyword, result.Records)
	}
	return writeRecordsFile(f.out, format, keyword, result.Records)
}

// writeRecordsFile пишет результат в файл; ошибка Close тоже ошибка записи
func writeRecordsFile(path, format, keyword string, records []domain.TravelRecord) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return writeRecords(file, format, keyword, records)
}

func writeRecords(w io.Writer, format, keyword string, records []domain.TravelRecord) error {
	if format == formatXLSX {
		return export.WriteTravelRecords(w, records, keyword)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// progress рисует бар по батчам, только если stderr - терминал
type progress struct {
	w   io.Writer
	tty bool
	bar *progressbar.ProgressBar
}

func newProgress(w io.Writer) *progress {
	p := &progress{w: w}
	if file, ok := w.(*os.File); ok {
		p.tty = isatty.IsTerminal(file.Fd())
	}
	return p
}

// update вызывается из use case под мьютексом
func (p *progress) update(done, total int) {
	if !p.tty {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Distance batches"),
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// CSVOptions controls bar-file parsing.
type CSVOptions struct {
	// GBK decodes the file from GBK before parsing. Daily exports from
	// mainland exchanges commonly carry GBK-encoded instrument names.
	GBK bool
}

const dateLayout = "2006-01-02"

// ReadBars parses daily bars for one instrument from r.
//
// Expected columns: date,open,high,low,close,volume,amount[,name].
// A header row is detected and skipped. Rows that fail to parse are
// dropped; the count of dropped rows is returned so callers can log it.
// Bars come back sorted by date ascending.
func ReadBars(r io.Reader, code string, opts CSVOptions) ([]Bar, int, error) {
	if opts.GBK {
		r = transform.NewReader(r, simplifiedchinese.GBK.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var bars []Bar
	skipped := 0

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read bars for %s: %w", code, err)
		}
		if len(rec) < 7 {
			skipped++
			continue
		}

		date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(rec[0]), time.UTC)
		if err != nil {
			// Header row lands here too.
			skipped++
			continue
		}

		vals := make([]float64, 6)
		ok := true
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			skipped++
			continue
		}

		b := Bar{
			Code:   code,
			Date:   date,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
			Amount: vals[5],
		}
		if len(rec) > 7 {
			b.Name = strings.TrimSpace(rec[7])
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, skipped, nil
}

// LoadBarFile reads one instrument's bar file. The instrument code is the
// file name without its extension, e.g. data/600036.csv -> "600036".
func LoadBarFile(path string, opts CSVOptions) (string, []Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	bars, _, err := ReadBars(f, base, opts)
	if err != nil {
		return "", nil, err
	}
	return base, bars, nil
}

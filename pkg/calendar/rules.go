package calendar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// StageSpan is one growth stage in a crop's expected timeline.
type StageSpan struct {
	Stage    string `json:"stage"`
	StartDay int    `json:"start_day"`
	Days     int    `json:"days"`
	Note     string `json:"note,omitempty"`
}

type Rules interface {
	// StageFor returns the expected stage and its note for a crop planted at
	// planting, evaluated at now. Past the final stage it answers "harvested".
	StageFor(planting, now time.Time) (string, string)
	Timeline(planting time.Time) []StageSpan
}

type stageRow struct {
	Name string
	Days int
	Note string
}

type rules struct{ cfg []stageRow }

// Default is the built-in generic stage table used when no config file is
// provided.
func Default() Rules {
	return &rules{cfg: []stageRow{
		{"planted", 10, "Keep soil moist; watch for germination"},
		{"germination", 15, "Thin seedlings; light irrigation"},
		{"vegetative", 40, "Main feeding window; scout for pests"},
		{"flowering", 25, "Steady water; avoid fertilizer shocks"},
		{"maturity", 30, "Reduce irrigation; plan harvest"},
	}}
}

// LoadFromFiles builds the stage table from a CSV and/or XLSX config. Either
// path may be empty; with both empty the built-in table is used.
func LoadFromFiles(csvPath, xlsxPath string) (Rules, error) {
	r := &rules{}
	if csvPath != "" {
		if err := r.loadCSV(csvPath); err != nil {
			return nil, err
		}
	}
	if xlsxPath != "" {
		if err := r.loadXLSX(xlsxPath); err != nil {
			return nil, err
		}
	}
	if len(r.cfg) == 0 {
		return Default(), nil
	}
	return r, nil
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func (r *rules) addRows(head []string, rows [][]string) error {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cStage := findAny("Stage", "stage", "phase")
	cDays := findAny("Days", "duration", "days_in_stage", "stagedays")
	cNote := findAny("Notes", "note", "remark", "tips")
	if cStage == -1 || cDays == -1 {
		return fmt.Errorf("stage config missing required columns, found headers: %v (need Stage, Days)", head)
	}

	get := func(rec []string, idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}
	for _, rec := range rows {
		days, _ := strconv.Atoi(strings.TrimSpace(get(rec, cDays)))
		if days <= 0 {
			continue // skip invalid rows
		}
		name := strings.ToLower(strings.TrimSpace(get(rec, cStage)))
		if name == "" {
			continue
		}
		r.cfg = append(r.cfg, stageRow{Name: name, Days: days, Note: strings.TrimSpace(get(rec, cNote))})
	}
	return nil
}

func (r *rules) loadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		rows = append(rows, rec)
	}
	return r.addRows(head, rows)
}

func (r *rules) loadXLSX(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return errors.New("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}
	return r.addRows(rows[0], rows[1:])
}

func (r *rules) Timeline(planting time.Time) []StageSpan {
	out := make([]StageSpan, 0, len(r.cfg))
	day := 0
	for _, s := range r.cfg {
		out = append(out, StageSpan{Stage: s.Name, StartDay: day, Days: s.Days, Note: s.Note})
		day += s.Days
	}
	return out
}

func (r *rules) StageFor(planting, now time.Time) (string, string) {
	if now.Before(planting) {
		return "planted", ""
	}
	elapsed := int(now.Sub(planting).Hours() / 24)
	day := 0
	for _, s := range r.cfg {
		day += s.Days
		if elapsed < day {
			return s.Name, s.Note
		}
	}
	return "harvested", ""
}

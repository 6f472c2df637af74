package testkit

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// HousingGeneratorConfig configures the sample dataset generator
type HousingGeneratorConfig struct {
	Rows  int     `json:"rows"`
	Noise float64 `json:"noise"` // standard deviation of the price noise, in thousands
	Seed  int64   `json:"seed"`
}

// DefaultHousingConfig returns sensible defaults for sample generation
func DefaultHousingConfig() HousingGeneratorConfig {
	return HousingGeneratorConfig{
		Rows:  200,
		Noise: 15,
		Seed:  42,
	}
}

// HousingColumns is the header of every generated dataset. price is a
// regression target, sold a binary classification target.
var HousingColumns = []string{"area_sqm", "rooms", "age_years", "district", "has_garden", "price", "sold"}

var districts = []string{"north", "south", "east", "west", "centre"}

// HousingRecord is one generated listing
type HousingRecord struct {
	AreaSqm   float64
	Rooms     int
	AgeYears  int
	District  string
	HasGarden bool
	Price     float64
	Sold      int
}

// HousingDataGenerator produces deterministic housing listings
type HousingDataGenerator struct {
	config HousingGeneratorConfig
	rng    *rand.Rand
}

// NewHousingDataGenerator creates a generator; the same seed yields the same rows
func NewHousingDataGenerator(config HousingGeneratorConfig) *HousingDataGenerator {
	return &HousingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces config.Rows records
func (g *HousingDataGenerator) Generate() []HousingRecord {
	records := make([]HousingRecord, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		records = append(records, g.listing())
	}
	return records
}

func (g *HousingDataGenerator) listing() HousingRecord {
	area := math.Round((35+g.rng.Float64()*145)*10) / 10
	rooms := 1 + int(area/30) + g.rng.Intn(2)
	age := g.rng.Intn(80)
	district := districts[g.rng.Intn(len(districts))]
	garden := g.rng.Float64() < 0.35

	// Price in thousands: linear in area and rooms, discounted by age
	price := 40 + area*2.8 + float64(rooms)*12 - float64(age)*0.9
	if garden {
		price += 25
	}
	if district == "centre" {
		price *= 1.3
	}
	price += g.rng.NormFloat64() * g.config.Noise
	price = math.Round(math.Max(price, 20)*100) / 100

	sold := 0
	if g.rng.Float64() < 1/(1+math.Exp((price-350)/60)) {
		sold = 1
	}

	return HousingRecord{
		AreaSqm:   area,
		Rooms:     rooms,
		AgeYears:  age,
		District:  district,
		HasGarden: garden,
		Price:     price,
		Sold:      sold,
	}
}

func (r HousingRecord) fields() []string {
	return []string{
		strconv.FormatFloat(r.AreaSqm, 'f', -1, 64),
		strconv.Itoa(r.Rooms),
		strconv.Itoa(r.AgeYears),
		r.District,
		strconv.FormatBool(r.HasGarden),
		strconv.FormatFloat(r.Price, 'f', -1, 64),
		strconv.Itoa(r.Sold),
	}
}

func (r HousingRecord) values() []any {
	return []any{r.AreaSqm, r.Rooms, r.AgeYears, r.District, r.HasGarden, r.Price, r.Sold}
}

// WriteDelimited writes records as text separated by sep (',' or '\t')
func WriteDelimited(w io.Writer, records []HousingRecord, sep rune) error {
	s := string(sep)
	if _, err := fmt.Fprintln(w, strings.Join(HousingColumns, s)); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, strings.Join(r.fields(), s)); err != nil {
			return err
		}
	}
	return nil
}

// WriteWorkbook returns records as an xlsx workbook with typed cells on a
// sheet named "listings"
func WriteWorkbook(records []HousingRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "listings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]any, len(HousingColumns))
	for i, c := range HousingColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := r.values()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

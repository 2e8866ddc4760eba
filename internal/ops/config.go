// Package ops loads desk configuration and resolves it into reference
// data.
package ops

import (
	"encoding/json"
	"os"
	"time"

	"github.com/yanun0323/errors"

	"tradedesk/internal/refdata"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Bonds    []BondConfig   `json:"bonds"`
	Books    []string       `json:"books"`
	Sectors  []SectorConfig `json:"sectors"`
	GUI      GUIConfig      `json:"gui"`
	Output   OutputConfig   `json:"output"`
	Database DatabaseConfig `json:"database"`
}

// BondConfig describes one bond of the universe.
type BondConfig struct {
	CUSIP    string  `json:"cusip"`
	Ticker   string  `json:"ticker"`
	Coupon   float64 `json:"coupon"`
	Maturity string  `json:"maturity"`
	PV01     float64 `json:"pv01"`
}

// SectorConfig describes one risk bucket.
type SectorConfig struct {
	Name   string   `json:"name"`
	CUSIPs []string `json:"cusips"`
}

// GUIConfig captures display settings.
type GUIConfig struct {
	ThrottleMillis int `json:"throttleMillis"`
}

// OutputConfig captures where audit files land.
type OutputConfig struct {
	Dir string `json:"dir"`
}

// DatabaseConfig captures optional PostgreSQL audit storage. Audit
// records go to flat files when Enabled is false.
type DatabaseConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	RefData     *refdata.Provider
	GUIThrottle time.Duration
	OutputDir   string
	Database    DatabaseConfig
}

// Load reads a JSON config file and resolves the reference data.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, errors.Wrap(err, "reading config")
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, errors.Wrap(err, "parsing config")
	}
	return resolve(cfg)
}

// Default returns the stock seven-bond treasury desk configuration.
func Default() Loaded {
	loaded, err := resolve(defaultConfig())
	if err != nil {
		panic(err)
	}
	return loaded
}

func resolve(cfg FileConfig) (Loaded, error) {
	bonds := make([]refdata.Bond, 0, len(cfg.Bonds))
	pv01 := make(map[string]float64, len(cfg.Bonds))
	for _, b := range cfg.Bonds {
		bonds = append(bonds, refdata.Bond{
			CUSIP:    b.CUSIP,
			Ticker:   b.Ticker,
			Coupon:   b.Coupon,
			Maturity: b.Maturity,
		})
		pv01[b.CUSIP] = b.PV01
	}

	sectors := make([]refdata.Sector, 0, len(cfg.Sectors))
	for _, s := range cfg.Sectors {
		sectors = append(sectors, refdata.Sector{Name: s.Name, CUSIPs: s.CUSIPs})
	}

	ref, err := refdata.NewProvider(bonds, pv01, cfg.Books, sectors)
	if err != nil {
		return Loaded{}, err
	}

	throttle := time.Duration(cfg.GUI.ThrottleMillis) * time.Millisecond
	if cfg.GUI.ThrottleMillis == 0 {
		throttle = 300 * time.Millisecond
	}
	outputDir := cfg.Output.Dir
	if outputDir == "" {
		outputDir = "output"
	}

	return Loaded{
		RefData:     ref,
		GUIThrottle: throttle,
		OutputDir:   outputDir,
		Database:    cfg.Database,
	}, nil
}

func defaultConfig() FileConfig {
	return FileConfig{
		Bonds: []BondConfig{
			{CUSIP: "91282CJL6", Ticker: "US2Y", Coupon: 0.04875, Maturity: "2025-11-30", PV01: 0.01},
			{CUSIP: "91282CJK8", Ticker: "US3Y", Coupon: 0.04625, Maturity: "2026-11-15", PV01: 0.02},
			{CUSIP: "91282CJN2", Ticker: "US5Y", Coupon: 0.04375, Maturity: "2028-11-30", PV01: 0.04},
			{CUSIP: "91282CJM4", Ticker: "US7Y", Coupon: 0.04375, Maturity: "2030-11-30", PV01: 0.06},
			{CUSIP: "91282CJJ1", Ticker: "US10Y", Coupon: 0.045, Maturity: "2033-11-15", PV01: 0.08},
			{CUSIP: "912810TW8", Ticker: "US20Y", Coupon: 0.0475, Maturity: "2043-11-15", PV01: 0.12},
			{CUSIP: "912810TV0", Ticker: "US30Y", Coupon: 0.0475, Maturity: "2053-11-15", PV01: 0.20},
		},
		Books: []string{"TRSY1", "TRSY2", "TRSY3"},
		Sectors: []SectorConfig{
			{Name: "FrontEnd", CUSIPs: []string{"91282CJL6", "91282CJK8"}},
			{Name: "Belly", CUSIPs: []string{"91282CJN2", "91282CJM4", "91282CJJ1"}},
			{Name: "LongEnd", CUSIPs: []string{"912810TW8", "912810TV0"}},
		},
	}
}
